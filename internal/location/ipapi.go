package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// DefaultIPAPIURL is the free ip-api.com JSON endpoint.
const DefaultIPAPIURL = "http://ip-api.com/json"

// IPAPI geolocates the host from its public address.
type IPAPI struct {
	url  string
	http *http.Client
}

var _ Source = (*IPAPI)(nil)

// NewIPAPI returns an IPAPI source for url, or the public endpoint when empty.
func NewIPAPI(url string) *IPAPI {
	url = strings.TrimSpace(url)
	if url == "" {
		url = DefaultIPAPIURL
	}
	return &IPAPI{
		url:  url,
		http: &http.Client{Timeout: 10 * time.Second},
	}
}

type ipapiPayload struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	City    string  `json:"city"`
}

// Locate implements Source.
func (s *IPAPI) Locate(ctx context.Context) (Fix, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return Fix{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return Fix{}, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return Fix{}, fmt.Errorf("ip geolocation returned status %d", resp.StatusCode)
	}
	var payload ipapiPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Fix{}, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "" && payload.Status != "success" {
		return Fix{}, fmt.Errorf("%w: %s", ErrNoFix, payload.Message)
	}

	// City-level accuracy.
	fix := Fix{Lat: payload.Lat, Lng: payload.Lon, Accuracy: 5000}
	if !fix.valid() {
		return Fix{}, fmt.Errorf("%w: coordinate %v,%v out of range", ErrNoFix, payload.Lat, payload.Lon)
	}
	return fix, nil
}
