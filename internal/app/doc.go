// Package app is the composition root of vie.
//
// # Overview
//
// Run loads the configuration, points logging at the rotating log file,
// reads the saved preferences and builds the sources the face draws from:
// a weather service, a location source and a time zone source. It then
// starts the Bubble Tea program together with the optional display mirror
// and, for a serial GPS, the NMEA reader.
//
// # Lifecycle
//
//  1. Load ~/.config/vie/config.toml (defaults when missing) and validate it
//  2. Set up zerolog on ~/.local/state/vie/vie.log
//  3. Load ~/.config/vie/prefs.toml (theme, 12/24-hour clock)
//  4. Build the weather, location and time zone sources
//  5. Run the UI, the mirror and any readers under one errgroup
//  6. Stop everything when the UI exits or the context is cancelled
//
// # Components
//
//   - app.go: Run and the wiring between packages
//   - sources.go: Source construction and the restart loop for readers
//
// # Failure Handling
//
// Configuration, logging and source construction errors abort Run. After
// start-up nothing is fatal: a failing GPS reader is restarted with
// exponential backoff (2s doubling to 30s), a mirror that cannot listen is
// logged and the face carries on, and request failures surface on the face.
package app
