// Package ui runs the watch face in the terminal.
//
// # Architecture Overview
//
// The package is a Bubble Tea program. Its Update loop is the single-threaded
// dispatcher of the face: every message that reaches it becomes at most one
// face.Event, face.Step runs, display effects are written to state.Store and
// request effects become tea.Cmds whose results come back as messages.
// Nothing else mutates face.State.
//
// # Package Structure
//
//   - app.go: Model, Options, message handling, Run and NewProgram
//   - commands.go: Messages and the commands that call the sources
//   - view.go: Face panel and footer rendering
//   - logs.go: Log pane over the vie log file
//   - help.go: Help overlay built from the key map
//   - keys.go: Key bindings
//   - theme.go: Color themes and Lipgloss styles
//   - style_helpers.go: Background-preserving render helpers
//   - layout.go: Width thresholds and timing constants
//
// # Event Flow
//
//  1. Init draws the face from the current clock reading and arms the
//     minute tick, aligned to the next wall-clock minute.
//  2. Each tick steps the face; the face asks for a location, the zone and a
//     heartbeat as its rules require.
//  3. Location, zone, weather and heartbeat results arrive as messages and
//     are turned into LocationFix, LocationLost, TimezoneInfo,
//     WeatherSuccess, WeatherFailure, SendFailure and LinkStatusChanged.
//  4. Inbound phone messages (sent into the program by the mirror) arrive
//     as face.MessageReceived.
//  5. View reads the store snapshot.
//
// # Key Bindings
//
//   - c: Toggle 12/24-hour clock (saved to prefs)
//   - r: Drop the fix and relocate
//   - l: Toggle the log pane
//   - j/k, g/G: Scroll the log pane
//   - T: Cycle theme (saved to prefs)
//   - h/?: Toggle help
//   - e or Ctrl+C: Exit
package ui
