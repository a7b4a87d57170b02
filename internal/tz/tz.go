// Package tz shifts fractional-hour UTC times into local time using the
// whole-hour offset reported by the time source.
package tz

import "strconv"

// Offset is a UTC offset in whole hours.
type Offset int

// Unknown marks an offset that has not been reported yet. It lies outside the
// valid range of real offsets.
const Unknown Offset = 99

// Real offsets span UTC-12 to UTC+14.
const (
	minOffset Offset = -12
	maxOffset Offset = 14
)

// Known reports whether o holds a reported offset.
func (o Offset) Known() bool {
	return o != Unknown
}

func (o Offset) String() string {
	if !o.Known() {
		return "unknown"
	}
	if o >= 0 {
		return "UTC+" + strconv.Itoa(int(o))
	}
	return "UTC" + strconv.Itoa(int(o))
}

// FromUTCSeconds converts the time source's raw offset into hours. When the
// source reports DST the hour it added is taken back out.
func FromUTCSeconds(seconds int, isDST bool) Offset {
	o := Offset(seconds / 3600)
	if isDST {
		o--
	}
	return o
}

// Apply shifts a fractional hour by o and wraps once into [0,24). Inputs are
// within one day of range, so a single wrap is all that is ever needed.
func Apply(hour float64, o Offset) float64 {
	hour += float64(o)
	if hour < 0 {
		hour += 24
	}
	// Also catches -ε + 24 rounding up to exactly 24.
	if hour >= 24 {
		hour -= 24
	}
	return hour
}

// CorrectForClock adds an hour when the device clock says DST is not in
// effect. The time source runs an hour behind the device outside DST; this
// and the DST adjustment in FromUTCSeconds are read from two different clocks
// and can stack or cancel around a DST switch.
func CorrectForClock(hour float64, clockIsDST bool) float64 {
	if clockIsDST {
		return hour
	}
	return Apply(hour, 1)
}
