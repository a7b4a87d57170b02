package location

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/five82/vie/internal/geo"
)

// ErrNoFix is returned when a source has no position to report yet.
var ErrNoFix = errors.New("location: no fix")

// Fix is one position report.
type Fix struct {
	Lat      float64 // degrees
	Lng      float64 // degrees
	Alt      float64 // metres
	Accuracy float64 // metres, 0 when unknown
}

// Coordinate converts the fix to the fixed-point form the face stores.
func (f Fix) Coordinate() geo.Coordinate {
	return geo.FromDegrees(f.Lat, f.Lng)
}

func (f Fix) valid() bool {
	// Far out-of-range degrees would overflow the fixed-point form.
	if math.IsNaN(f.Lat) || math.IsNaN(f.Lng) || math.Abs(f.Lat) > 360 || math.Abs(f.Lng) > 360 {
		return false
	}
	return f.Coordinate().Valid()
}

// Source reports the current position.
type Source interface {
	Locate(ctx context.Context) (Fix, error)
}

// Static always reports the same position.
type Static struct {
	fix Fix
}

var _ Source = (*Static)(nil)

// NewStatic validates the coordinate and returns a Static source.
func NewStatic(lat, lng float64) (*Static, error) {
	fix := Fix{Lat: lat, Lng: lng}
	if !fix.valid() {
		return nil, fmt.Errorf("location: coordinate %v,%v out of range", lat, lng)
	}
	return &Static{fix: fix}, nil
}

// Locate implements Source.
func (s *Static) Locate(context.Context) (Fix, error) {
	return s.fix, nil
}
