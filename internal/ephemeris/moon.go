package ephemeris

// Phase indices returned by MoonPhase.
const (
	NewMoon  = 0
	FullMoon = 4
)

const synodicMonth = 29.53

var phaseNames = [8]string{
	"New",
	"Waxing Crescent",
	"First Quarter",
	"Waxing Gibbous",
	"Full",
	"Waning Gibbous",
	"Last Quarter",
	"Waning Crescent",
}

// MoonPhase returns the phase of the moon as an index in [0,7], accurate to
// one segment: 0 is new moon, 4 is full moon.
func MoonPhase(year, month, day int) int {
	if month < 3 {
		year--
		month += 12
	}
	month++

	c := int(365.25 * float64(year))
	e := int(30.6 * float64(month))
	elapsed := float64(c+e+day) - 694039.09 // days since the 1900 epoch new moon
	cycles := elapsed / synodicMonth
	frac := cycles - float64(int(cycles))
	if frac < 0 {
		frac++
	}
	// Scale to eighths and round; 8 folds back onto 0.
	return int(frac*8+0.5) & 7
}

// PhaseName returns a human name for a MoonPhase index.
func PhaseName(phase int) string {
	return phaseNames[phase&7]
}
