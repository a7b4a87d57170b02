package weather

import (
	"fmt"

	"github.com/five82/vie/internal/geo"
)

// Units selects the unit system the service reports temperatures in.
type Units string

const (
	Metric   Units = "metric"
	Imperial Units = "imperial"
)

// ParseUnits accepts "metric" or "imperial", defaulting to metric.
func ParseUnits(s string) Units {
	if Units(s) == Imperial {
		return Imperial
	}
	return Metric
}

// Request describes one weather lookup.
type Request struct {
	Cookie     uint32
	Coordinate geo.Coordinate
	Units      Units
}

// Fields mirrors the service payload. Either field may be absent.
type Fields struct {
	Icon        *int `json:"icon,omitempty"`
	Temperature *int `json:"temperature,omitempty"`
}

// Response is a completed lookup.
type Response struct {
	Cookie uint32
	Status int
	Fields Fields
}

// StatusError reports a request the service answered with an error status.
type StatusError struct {
	Status int
	Path   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("weather %s returned status %d", e.Path, e.Status)
}
