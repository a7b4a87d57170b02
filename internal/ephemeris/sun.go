// Package ephemeris computes sunrise, sunset and moon phase for a calendar
// date and a position on the globe.
//
// Sun times use the almanac algorithm (Almanac for Computers, 1990, as popularised
// by Schlyter and NOAA). Results are fractional hours in UTC, good to about a
// minute, which is all a watch face needs.
package ephemeris

import (
	"errors"
	"fmt"
	"math"
)

// OfficialZenith is the "official" sunrise/sunset zenith angle in degrees. It
// accounts for atmospheric refraction and the radius of the solar disc.
const OfficialZenith = 91.0

var (
	// ErrNoEvent is returned when the sun does not cross the zenith on the
	// requested date (polar day or polar night).
	ErrNoEvent = errors.New("ephemeris: no sunrise or sunset")
	// ErrNoSunrise means the sun stays below the horizon all day.
	ErrNoSunrise = fmt.Errorf("%w: sun never rises", ErrNoEvent)
	// ErrNoSunset means the sun stays above the horizon all day.
	ErrNoSunset = fmt.Errorf("%w: sun never sets", ErrNoEvent)
	// ErrOutOfRange is returned for coordinates that are not on the globe.
	ErrOutOfRange = errors.New("ephemeris: coordinate out of range")
)

// Sunrise returns the time of sunrise in fractional hours UTC, in [0,24).
func Sunrise(year, month, day int, lat, lng, zenith float64) (float64, error) {
	return riseSet(year, month, day, lat, lng, zenith, false)
}

// Sunset returns the time of sunset in fractional hours UTC, in [0,24).
func Sunset(year, month, day int, lat, lng, zenith float64) (float64, error) {
	return riseSet(year, month, day, lat, lng, zenith, true)
}

func riseSet(year, month, day int, lat, lng, zenith float64, setting bool) (float64, error) {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.Abs(lat) > 90 || math.Abs(lng) > 180 {
		return 0, fmt.Errorf("%w: lat=%v lng=%v", ErrOutOfRange, lat, lng)
	}

	n := dayOfYear(year, month, day)
	lngHour := lng / 15

	// Approximate time of the event, in days since Jan 0.
	approx := 6.0
	if setting {
		approx = 18.0
	}
	t := float64(n) + (approx-lngHour)/24

	// Sun's mean anomaly, then true longitude.
	m := 0.9856*t - 3.289
	l := normalize(m+1.916*sinDeg(m)+0.020*sinDeg(2*m)+282.634, 360)

	// Right ascension, moved into the same quadrant as the true longitude.
	ra := normalize(rad2deg(math.Atan(0.91764*tanDeg(l))), 360)
	ra += math.Floor(l/90)*90 - math.Floor(ra/90)*90
	ra /= 15

	sinDec := 0.39782 * sinDeg(l)
	cosDec := math.Cos(math.Asin(sinDec))

	cosH := (cosDeg(zenith) - sinDec*sinDeg(lat)) / (cosDec * cosDeg(lat))
	switch {
	case cosH > 1 || math.IsNaN(cosH):
		return 0, ErrNoSunrise
	case cosH < -1:
		return 0, ErrNoSunset
	}

	h := rad2deg(math.Acos(cosH))
	if !setting {
		h = 360 - h
	}
	h /= 15

	local := h + ra - 0.06571*t - 6.622
	return normalize(local-lngHour, 24), nil
}

// dayOfYear is the almanac day number, valid for the Gregorian calendar.
func dayOfYear(year, month, day int) int {
	n1 := 275 * month / 9
	n2 := (month + 9) / 12
	n3 := 1 + (year-4*(year/4)+2)/3
	return n1 - n2*n3 + day - 30
}

func normalize(v, period float64) float64 {
	v = math.Mod(v, period)
	if v < 0 {
		v += period
	}
	if v >= period {
		v -= period
	}
	return v
}

func deg2rad(d float64) float64 { return d * math.Pi / 180 }
func rad2deg(r float64) float64 { return r * 180 / math.Pi }
func sinDeg(d float64) float64  { return math.Sin(deg2rad(d)) }
func cosDeg(d float64) float64  { return math.Cos(deg2rad(d)) }
func tanDeg(d float64) float64  { return math.Tan(deg2rad(d)) }
