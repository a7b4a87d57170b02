package face

import "github.com/five82/vie/internal/weather"

// Field identifies a text slot on the face.
type Field int

const (
	FieldClock Field = iota
	FieldDate
	FieldWeekday
	FieldMoon
	FieldSunrise
	FieldSunset
	FieldTemperature
	FieldMissed
	FieldUnread
	fieldCount
)

// FieldCount is the number of text slots.
const FieldCount = int(fieldCount)

var fieldNames = [...]string{
	"clock",
	"date",
	"weekday",
	"moon",
	"sunrise",
	"sunset",
	"temperature",
	"missed",
	"unread",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// Effect is an action Step asks the caller to perform.
type Effect interface {
	isEffect()
}

// SetText replaces the text of a field.
type SetText struct {
	Field Field
	Text  string
}

// SetImage replaces the weather picture.
type SetImage struct {
	Image weather.Image
}

// RequestLocation asks the location source for a fix.
type RequestLocation struct{}

// RequestTimezone asks the zone source for the current offset.
type RequestTimezone struct{}

// RequestWeather asks for current conditions. The response must echo Cookie.
type RequestWeather struct {
	weather.Request
}

// Ping asks the link monitor for a heartbeat.
type Ping struct{}

func (SetText) isEffect()         {}
func (SetImage) isEffect()        {}
func (RequestLocation) isEffect() {}
func (RequestTimezone) isEffect() {}
func (RequestWeather) isEffect()  {}
func (Ping) isEffect()            {}
