// Package state holds what the watch face currently displays.
//
// # Overview
//
// The face state machine emits display effects; the UI dispatcher writes them
// into a Store. The terminal view and the display mirror read Snapshots from
// the same Store.
//
//	Writer (UI dispatcher):         Readers:
//	┌──────────────────┐           ┌────────────────────┐
//	│ face.Step(...)   │           │ View()             │
//	│      ↓           │           │ mirror /api/display│
//	│ store.Apply(fx)  │──────────→│ store.Snapshot()   │
//	└──────────────────┘  (mutex)  │ mirror websocket   │
//	                               └────────────────────┘
//
// # Core Types
//
// Store:
//   - Thread-safe container for the displayed texts, weather image and link
//     status
//   - Single writer, multiple readers
//
// Snapshot:
//   - Copy of the display at a point in time
//   - Version increases by one on every visible change
//
// # Change Notification
//
// Changed returns a channel that is closed on the next visible change. A
// reader waits on it, takes a Snapshot, then asks for a new channel:
//
//	for {
//		ch := store.Changed()
//		push(store.Snapshot())
//		select {
//		case <-ch:
//		case <-ctx.Done():
//			return
//		}
//	}
//
// Writes that leave the display as it was do not bump the version and do not
// signal.
//
// # Error Reporting
//
// Report records the outcome of a location, timezone or weather request.
// Failures keep the display and are counted; a success resets the count.
// IsOffline reports two or more failures in a row so the view can flag it.
//
// The zero Store is ready to use.
package state
