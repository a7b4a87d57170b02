package face

import (
	"errors"
	"time"

	"github.com/five82/vie/internal/ephemeris"
	"github.com/five82/vie/internal/format"
	"github.com/five82/vie/internal/geo"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/tz"
	"github.com/five82/vie/internal/weather"
)

// Config holds the settings Step reads but never changes on its own.
type Config struct {
	Units    weather.Units
	Use24h   bool
	Weekdays format.Weekdays
}

// State is everything the face remembers between events.
type State struct {
	Config

	Located          bool
	SolarComputed    bool
	TemperatureKnown bool

	Coordinate geo.Coordinate
	Offset     tz.Offset

	// Local sun times in fractional hours. Meaningful only when
	// SolarComputed is set and NoSolarEvent is not.
	Sunrise      float64
	Sunset       float64
	NoSolarEvent bool

	// Cookie of the most recent weather request; zero before the first.
	Cookie uint32

	Link           link.Status
	Missed, Unread int
	CountersKnown  bool

	// DateRenders counts how often the hour gate rebuilt the date text.
	DateRenders int

	gate format.HourGate
}

// New returns the start-up state: nothing located, offset unknown, link
// unknown.
func New(cfg Config) State {
	if cfg.Weekdays == (format.Weekdays{}) {
		cfg.Weekdays = format.WeekdaysFor("en")
	}
	if cfg.Units == "" {
		cfg.Units = weather.Metric
	}
	return State{
		Config: cfg,
		Offset: tz.Unknown,
		Link:   link.Unknown,
	}
}

// Step applies one event and returns the new state and the effects to run.
func Step(s State, ev Event) (State, []Effect) {
	var fx []Effect
	switch ev := ev.(type) {
	case Tick:
		fx = s.tick(ev.Time)
	case LocationFix:
		s.Located = true
		s.Coordinate = ev.Coordinate
		s.SolarComputed = false
		fx = s.requestWeather()
	case LocationLost:
		s.Located = false
		fx = s.requestWeather()
	case TimezoneInfo:
		s.Offset = tz.FromUTCSeconds(ev.UTCOffsetSeconds, ev.IsDST)
		if s.Located && s.Offset.Known() && !s.SolarComputed {
			fx = s.computeSolar(ev.Clock)
		}
	case WeatherSuccess:
		if ev.Cookie != s.Cookie {
			return s, nil
		}
		u := weather.Handle(ev.Fields)
		if u.Image != nil {
			fx = append(fx, SetImage{Image: *u.Image})
		}
		if u.Temperature != nil {
			fx = append(fx, SetText{Field: FieldTemperature, Text: *u.Temperature})
			s.TemperatureKnown = true
		}
	case WeatherFailure:
		if (ev.Cookie == 0 || ev.Cookie == s.Cookie) && !s.TemperatureKnown {
			fx = append(fx,
				SetImage{Image: weather.ImageNoData},
				SetText{Field: FieldTemperature, Text: format.NoTemperature},
			)
		}
	case SendFailure:
		// The link monitor reacts; its verdict arrives as LinkStatusChanged.
	case LinkStatusChanged:
		s.Link = ev.Status
		if s.CountersKnown {
			fx = s.counters()
		}
	case MessageReceived:
		if ev.Missed != nil {
			s.Missed = *ev.Missed
			s.CountersKnown = true
		}
		if ev.Unread != nil {
			s.Unread = *ev.Unread
			s.CountersKnown = true
		}
		if s.CountersKnown {
			fx = s.counters()
		}
		if !s.Located {
			fx = append(fx, s.requestWeather()...)
		}
	case SettingsChanged:
		s.Use24h = ev.Use24h
		s.gate.Reset()
		fx = append(fx, SetText{Field: FieldClock, Text: format.Clock(ev.Time, s.Use24h)})
		fx = append(fx, s.renderDate(ev.Time)...)
		if s.SolarComputed && s.Located && s.Offset.Known() {
			fx = append(fx, s.solarText()...)
		}
	}
	return s, fx
}

func (s *State) tick(now time.Time) []Effect {
	fx := []Effect{SetText{Field: FieldClock, Text: format.Clock(now, s.Use24h)}}
	fx = append(fx, s.renderDate(now)...)

	if !s.Located || now.Minute()%15 == 0 {
		fx = append(fx, RequestLocation{})
	}
	fx = append(fx, RequestTimezone{})

	if !s.SolarComputed {
		fx = append(fx,
			SetText{Field: FieldSunrise, Text: format.Wait},
			SetText{Field: FieldSunset, Text: format.Wait},
		)
	}
	if now.Minute()%2 == 0 || s.Link == link.Unknown {
		fx = append(fx, Ping{})
	}
	return fx
}

// renderDate rebuilds the hour-gated texts when the display hour changed.
func (s *State) renderDate(now time.Time) []Effect {
	if !s.gate.Changed(format.DisplayHour(now.Hour(), s.Use24h)) {
		return nil
	}
	s.DateRenders++
	phase := ephemeris.MoonPhase(now.Year(), int(now.Month()), now.Day())
	return []Effect{
		SetText{Field: FieldDate, Text: format.Date(now)},
		SetText{Field: FieldWeekday, Text: s.Weekdays.Name(now)},
		SetText{Field: FieldMoon, Text: ephemeris.PhaseName(phase)},
	}
}

// requestWeather asks for a fix first when none is held; otherwise it sends a
// weather request under a new cookie and refreshes the zone.
func (s *State) requestWeather() []Effect {
	if !s.Located {
		return []Effect{RequestLocation{}}
	}
	s.Cookie++
	if s.Cookie == 0 {
		s.Cookie = 1
	}
	return []Effect{
		RequestWeather{Request: weather.Request{
			Cookie:     s.Cookie,
			Coordinate: s.Coordinate,
			Units:      s.Units,
		}},
		RequestTimezone{},
	}
}

func (s *State) computeSolar(clock time.Time) []Effect {
	y, m, d := clock.Date()
	lat, lng := s.Coordinate.Lat(), s.Coordinate.Lng()

	rise, errRise := ephemeris.Sunrise(y, int(m), d, lat, lng, ephemeris.OfficialZenith)
	set, errSet := ephemeris.Sunset(y, int(m), d, lat, lng, ephemeris.OfficialZenith)
	switch {
	case errors.Is(errRise, ephemeris.ErrNoEvent) || errors.Is(errSet, ephemeris.ErrNoEvent):
		s.NoSolarEvent = true
	case errRise != nil || errSet != nil:
		return nil
	default:
		s.NoSolarEvent = false
		dst := clock.IsDST()
		s.Sunrise = tz.CorrectForClock(tz.Apply(rise, s.Offset), dst)
		s.Sunset = tz.CorrectForClock(tz.Apply(set, s.Offset), dst)
	}
	s.SolarComputed = true
	return s.solarText()
}

func (s *State) solarText() []Effect {
	if s.NoSolarEvent {
		return []Effect{
			SetText{Field: FieldSunrise, Text: format.NoEvent},
			SetText{Field: FieldSunset, Text: format.NoEvent},
		}
	}
	return []Effect{
		SetText{Field: FieldSunrise, Text: format.HourTime(s.Sunrise, s.Use24h)},
		SetText{Field: FieldSunset, Text: format.HourTime(s.Sunset, s.Use24h)},
	}
}

func (s *State) counters() []Effect {
	ok := s.Link == link.OK
	return []Effect{
		SetText{Field: FieldMissed, Text: format.Counter(s.Missed, ok)},
		SetText{Field: FieldUnread, Text: format.Counter(s.Unread, ok)},
	}
}
