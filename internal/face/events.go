package face

import (
	"time"

	"github.com/five82/vie/internal/geo"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/weather"
)

// Event is one input to Step.
type Event interface {
	isEvent()
}

// Tick fires once per minute with the device clock reading.
type Tick struct {
	Time time.Time
}

// LocationFix carries a new position.
type LocationFix struct {
	Coordinate geo.Coordinate
	Altitude   float64
	Accuracy   float64
}

// LocationLost reports a failed or abandoned position source.
type LocationLost struct {
	Err error
}

// TimezoneInfo is a zone source answer. Clock is the device clock reading at
// delivery and supplies the calendar date and the clock DST flag.
type TimezoneInfo struct {
	UTCOffsetSeconds int
	IsDST            bool
	Unix             int64
	Name             string
	Clock            time.Time
}

// WeatherSuccess is a completed weather request.
type WeatherSuccess struct {
	Cookie uint32
	Status int
	Fields weather.Fields
}

// WeatherFailure is a weather request that did not complete.
type WeatherFailure struct {
	Cookie uint32
	Status int
	Err    error
}

// SendFailure reports an outbound message the link could not deliver.
type SendFailure struct {
	Reason error
}

// LinkStatusChanged reports a new status from the link monitor.
type LinkStatusChanged struct {
	Status link.Status
}

// MessageReceived is an inbound message from the phone side. Counters are
// optional.
type MessageReceived struct {
	Missed *int
	Unread *int
}

// SettingsChanged switches between 12- and 24-hour display.
type SettingsChanged struct {
	Use24h bool
	Time   time.Time
}

func (Tick) isEvent()              {}
func (LocationFix) isEvent()       {}
func (LocationLost) isEvent()      {}
func (TimezoneInfo) isEvent()      {}
func (WeatherSuccess) isEvent()    {}
func (WeatherFailure) isEvent()    {}
func (SendFailure) isEvent()       {}
func (LinkStatusChanged) isEvent() {}
func (MessageReceived) isEvent()   {}
func (SettingsChanged) isEvent()   {}
