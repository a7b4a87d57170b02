// Package face is the refresh state machine behind the watch face.
//
// # Overview
//
// Everything the face knows lives in a State value: whether a location fix
// is held, the fixed-point coordinate, the UTC offset, the computed sun
// times, whether a temperature has ever been shown, the link status and the
// hour gate that decides when the date text is rebuilt.
//
// State only changes through Step:
//
//	next, effects := face.Step(state, event)
//
// Step is pure. It never performs I/O, reads the clock or logs. Requests to
// the outside world and changes to the display come back as Effect values
// that the caller executes. Results of those requests arrive later as new
// events. This keeps the machine testable without a terminal or a network.
//
// # Events
//
//	Tick               once per wall-clock minute
//	LocationFix        a position report arrived
//	LocationLost       the position source failed or a refresh was forced
//	TimezoneInfo       the zone source answered
//	WeatherSuccess     a weather response with cookie, status and fields
//	WeatherFailure     a weather request failed
//	SendFailure        an outbound message could not be delivered
//	LinkStatusChanged  the link monitor moved to a new status
//	MessageReceived    an inbound message from the phone side
//	SettingsChanged    the 12/24-hour preference changed
//
// # Tick rules
//
// On every tick, in order:
//
//  1. The clock text is rendered.
//  2. When the display hour differs from the last rendered one, the date,
//     weekday and moon phase texts are rebuilt.
//  3. Without a fix, or on every fifteenth minute, a location request is
//     issued.
//  4. A timezone request is issued.
//  5. While sun times are not computed, both sun fields show "Wait!".
//  6. On even minutes, or while the link status is unknown, a heartbeat is
//     requested.
//
// # Sun times
//
// Sun times are computed once, on the first timezone answer that arrives
// while a fix is held and the offset is known. A new fix discards them so
// the next timezone answer recomputes. The UTC result is shifted by the zone
// offset (minus one hour when the zone reports DST) and then by one more hour
// when the device clock is not in DST. The two DST signals are independent
// and the combination is intentional.
//
// At polar latitudes where the sun does not rise or set, both fields show
// "--:--".
//
// # Weather cookies
//
// Each weather request carries a fresh, non-zero cookie. A success is only
// applied when its cookie matches the most recent request. A failure is
// honoured for the current cookie or for cookie zero, and only changes the
// display while no temperature has been shown yet.
package face
