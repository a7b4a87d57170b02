// Package format turns clock readings and computed values into the strings
// shown on the face.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Placeholder texts.
const (
	Wait          = "Wait!"
	NoTemperature = "---°"
	Unknown       = "?"
	NoEvent       = "--:--"
)

// DisplayHour maps a 0-23 hour onto the clock face: unchanged on a 24-hour
// clock, 1-12 otherwise.
func DisplayHour(hour int, use24h bool) int {
	if use24h {
		return hour
	}
	if h := hour % 12; h != 0 {
		return h
	}
	return 12
}

// Clock renders the time as "HH:MM " including the trailing space.
func Clock(t time.Time, use24h bool) string {
	return fmt.Sprintf("%02d:%02d ", DisplayHour(t.Hour(), use24h), t.Minute())
}

// Ordinal returns the English ordinal suffix for a day of the month.
func Ordinal(day int) string {
	switch day % 10 {
	case 1:
		if day%100 != 11 {
			return "st"
		}
	case 2:
		if day%100 != 12 {
			return "nd"
		}
	case 3:
		if day%100 != 13 {
			return "rd"
		}
	}
	return "th"
}

// Date renders "Mon D<ord>, YYYY", e.g. "Oct 19th, 2026".
func Date(t time.Time) string {
	var b strings.Builder
	b.WriteString(t.Format("Jan"))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(t.Day()))
	b.WriteString(Ordinal(t.Day()))
	b.WriteString(", ")
	b.WriteString(strconv.Itoa(t.Year()))
	return b.String()
}

// HourTime renders a fractional hour, such as a sunrise, as "HH:MM".
func HourTime(hour float64, use24h bool) string {
	h := int(hour)
	m := int(60 * (hour - float64(h)))
	return fmt.Sprintf("%02d:%02d", DisplayHour(h, use24h), m)
}

// Temperature renders a whole-degree temperature with a degree sign.
func Temperature(deg int) string {
	return strconv.Itoa(deg) + "°"
}

// Counter renders n, or the "?" placeholder while the link is down.
func Counter(n int, linkOK bool) string {
	if !linkOK {
		return Unknown
	}
	return strconv.Itoa(n)
}

// HourGate tracks the last rendered display hour so that date text is only
// rebuilt when the hour on the face changes.
type HourGate struct {
	last   int
	primed bool
}

// Changed records displayHour and reports whether it differs from the
// previous one. The first call always reports a change.
func (g *HourGate) Changed(displayHour int) bool {
	if g.primed && g.last == displayHour {
		return false
	}
	g.last = displayHour
	g.primed = true
	return true
}

// Reset forgets the last hour, forcing the next Changed to report true.
func (g *HourGate) Reset() {
	g.primed = false
}
