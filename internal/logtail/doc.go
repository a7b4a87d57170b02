// Package logtail reads the end of vie's own log file for the log pane.
//
// # Reading Log Files
//
// Read uses a ring buffer to extract the last maxLines from a file,
// regardless of file size:
//
//   - Scans the file sequentially (one pass)
//   - Uses O(maxLines) memory, not O(file size)
//   - Returns lines in chronological order
//
// A maxLines of zero or less returns the whole file.
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//
// # Rendering
//
// The log file holds zerolog JSON, one object per line. Pretty runs each
// line through zerolog.ConsoleWriter to get the familiar
// "15:04:05 INF message key=value" form, optionally with ANSI colours.
// Lines that are not JSON, such as a panic trace, are passed through as is.
//
// # Error Handling
//
// Read returns nil, nil for non-existent files, since the log may not have
// been written yet. Other errors (permission denied, I/O errors) are
// returned wrapped. Pretty never fails.
package logtail
