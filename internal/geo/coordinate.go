// Package geo holds the fixed-point coordinate the watch face keeps between
// location fixes.
package geo

import (
	"fmt"
	"math"
)

// Scale is the number of fixed-point units per degree (4 implied decimals).
const Scale = 10000

// Coordinate is a latitude/longitude pair stored as degrees × 10000.
type Coordinate struct {
	LatE4 int32 `json:"lat_e4"`
	LngE4 int32 `json:"lng_e4"`
}

// FromDegrees rounds floating degrees to the nearest fixed-point unit.
func FromDegrees(lat, lng float64) Coordinate {
	return Coordinate{
		LatE4: int32(math.Round(lat * Scale)),
		LngE4: int32(math.Round(lng * Scale)),
	}
}

// Lat returns the latitude in degrees.
func (c Coordinate) Lat() float64 { return float64(c.LatE4) / Scale }

// Lng returns the longitude in degrees.
func (c Coordinate) Lng() float64 { return float64(c.LngE4) / Scale }

// Valid reports whether the coordinate lies on the globe.
func (c Coordinate) Valid() bool {
	return math.Abs(c.Lat()) <= 90 && math.Abs(c.Lng()) <= 180
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Lat(), c.Lng())
}
