package app

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/five82/vie/internal/config"
	"github.com/five82/vie/internal/location"
	"github.com/five82/vie/internal/timezone"
	"github.com/five82/vie/internal/weather"
)

func TestCalculateBackoff(t *testing.T) {
	baseInterval := 2 * time.Second

	tests := []struct {
		name     string
		failures int
		want     time.Duration
	}{
		{"zero failures", 0, 2 * time.Second},
		{"negative failures", -1, 2 * time.Second},
		{"one failure", 1, 4 * time.Second},
		{"two failures", 2, 8 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 30 * time.Second}, // Would be 32s, capped to 30s
		{"many failures capped", 10, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := calculateBackoff(tt.failures, baseInterval)
			if got != tt.want {
				t.Errorf("calculateBackoff(%d, %v) = %v, want %v", tt.failures, baseInterval, got, tt.want)
			}
		})
	}
}

func TestCalculateBackoff_MaxCap(t *testing.T) {
	baseInterval := 2 * time.Second
	for failures := 0; failures <= 20; failures++ {
		got := calculateBackoff(failures, baseInterval)
		if got > maxBackoff {
			t.Errorf("calculateBackoff(%d, %v) = %v, exceeds maxBackoff %v", failures, baseInterval, got, maxBackoff)
		}
	}
}

func TestSuperviseRestartsWithBackoff(t *testing.T) {
	defer goleak.VerifyNone(t)

	clock := clockwork.NewFakeClock()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	runs := make(chan struct{}, 10)
	r := runner{name: "gps", run: func(context.Context) error {
		runs <- struct{}{}
		return errors.New("port gone")
	}}

	done := make(chan struct{})
	go func() {
		supervise(ctx, clock, r)
		close(done)
	}()

	<-runs
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(baseBackoff)
	<-runs

	// Second failure waits twice as long.
	require.NoError(t, clock.BlockUntilContext(ctx, 1))
	clock.Advance(baseBackoff)
	select {
	case <-runs:
		t.Fatal("restarted before the doubled backoff")
	case <-time.After(50 * time.Millisecond):
	}
	clock.Advance(baseBackoff)
	<-runs

	cancel()
	<-done
}

func TestSuperviseReturnsWhenRunEndsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	r := runner{name: "gps", run: func(ctx context.Context) error {
		cancel()
		<-ctx.Done()
		return ctx.Err()
	}}

	supervise(ctx, clockwork.NewFakeClock(), r)
}

func TestNewWeather(t *testing.T) {
	cfg := config.Default()
	f, err := newWeather(cfg)
	require.NoError(t, err)
	assert.IsType(t, &weather.OpenMeteo{}, f)

	cfg.Weather = config.Weather{Provider: config.ProviderHTTP, URL: "http://localhost:8080/weather"}
	f, err = newWeather(cfg)
	require.NoError(t, err)
	assert.IsType(t, &weather.Client{}, f)
}

func TestNewLocator(t *testing.T) {
	lat, lng := 48.137, 11.575

	cfg := config.Default()
	cfg.Location = config.Location{Source: config.SourceStatic, Latitude: &lat, Longitude: &lng}
	l, err := newLocator(cfg)
	require.NoError(t, err)
	fix, err := l.source.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lat, fix.Lat)
	assert.Empty(t, l.runners)

	cfg.Location = config.Location{Source: config.SourceNMEA, Port: "/dev/ttyUSB0"}
	l, err = newLocator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &location.NMEA{}, l.source)
	require.Len(t, l.runners, 1)
	assert.Equal(t, "gps", l.runners[0].name)

	cfg.Location = config.Location{Source: config.SourceIPAPI}
	l, err = newLocator(cfg)
	require.NoError(t, err)
	assert.IsType(t, &location.IPAPI{}, l.source)

	bad := 123.0
	cfg.Location = config.Location{Source: config.SourceStatic, Latitude: &bad, Longitude: &lng}
	_, err = newLocator(cfg)
	assert.Error(t, err)
}

func TestNewZones(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC))

	cfg := config.Default()
	cfg.Timezone = config.Timezone{Source: config.ZoneSystem, Zone: "Europe/Berlin"}
	src, loc, err := newZones(cfg, clock)
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", loc.String())
	info, err := src.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3600, info.UTCOffsetSeconds)

	cfg.Timezone = config.Timezone{Source: config.ZoneHTTP, Zone: "America/New_York"}
	src, loc, err = newZones(cfg, clock)
	require.NoError(t, err)
	assert.IsType(t, &timezone.HTTP{}, src)
	assert.Equal(t, "America/New_York", loc.String())

	cfg.Timezone = config.Timezone{Source: config.ZoneSystem, Zone: "Nowhere/Special"}
	_, _, err = newZones(cfg, clock)
	assert.Error(t, err)
}
