package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/five82/vie/internal/config"
	"github.com/five82/vie/internal/location"
	"github.com/five82/vie/internal/timezone"
	"github.com/five82/vie/internal/weather"
)

const (
	baseBackoff = 2 * time.Second
	maxBackoff  = 30 * time.Second
)

// calculateBackoff doubles base for every consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}

// runner is a long-lived reader such as the serial GPS.
type runner struct {
	name string
	run  func(context.Context) error
}

// supervise keeps r running until ctx is cancelled, restarting it with
// backoff when it fails. A run that lasted longer than maxBackoff resets the
// failure count.
func supervise(ctx context.Context, clock clockwork.Clock, r runner) {
	failures := 0
	for {
		started := clock.Now()
		err := r.run(ctx)
		if ctx.Err() != nil {
			return
		}
		if clock.Since(started) > maxBackoff {
			failures = 0
		}
		wait := calculateBackoff(failures, baseBackoff)
		failures++
		log.Warn().Str("component", r.name).Err(err).Dur("retry_in", wait).Msg("reader stopped")

		select {
		case <-ctx.Done():
			return
		case <-clock.After(wait):
		}
	}
}

// newWeather builds the configured weather service.
func newWeather(cfg config.Config) (weather.Fetcher, error) {
	switch cfg.Weather.Provider {
	case config.ProviderHTTP:
		return weather.NewClient(cfg.Weather.URL)
	default:
		return weather.NewOpenMeteo(cfg.Weather.URL)
	}
}

// locator is a location source plus whatever must run or be closed with it.
type locator struct {
	source  location.Source
	runners []runner
	close   func()
}

// newLocator builds the configured location source. MQTT connects here; a
// broker that is down is logged and the source reports no fix until it
// comes back.
func newLocator(cfg config.Config) (locator, error) {
	l := locator{close: func() {}}
	switch cfg.Location.Source {
	case config.SourceStatic:
		src, err := location.NewStatic(*cfg.Location.Latitude, *cfg.Location.Longitude)
		if err != nil {
			return l, err
		}
		l.source = src
	case config.SourceNMEA:
		src := location.NewNMEA(cfg.Location.Port, cfg.Location.Baud)
		l.source = src
		l.runners = append(l.runners, runner{name: "gps", run: src.Run})
	case config.SourceMQTT:
		src := location.NewMQTT(cfg.Location.Broker, cfg.Location.Topic)
		if err := src.Connect(); err != nil {
			log.Warn().Str("component", "mqtt").Err(err).Msg("initial connect failed")
		}
		l.source = src
		l.close = src.Close
	case config.SourceIPAPI:
		l.source = location.NewIPAPI(cfg.Location.URL)
	default:
		return l, fmt.Errorf("unknown location source %q", cfg.Location.Source)
	}
	return l, nil
}

// newZones builds the configured zone source and the zone the device clock
// reads in.
func newZones(cfg config.Config, clock clockwork.Clock) (timezone.Source, *time.Location, error) {
	if cfg.Timezone.Source == config.ZoneHTTP {
		loc := time.Local
		if cfg.Timezone.Zone != "" {
			var err error
			if loc, err = time.LoadLocation(cfg.Timezone.Zone); err != nil {
				return nil, nil, fmt.Errorf("load zone %q: %w", cfg.Timezone.Zone, err)
			}
		}
		return timezone.NewHTTP(cfg.Timezone.URL), loc, nil
	}

	sys, err := timezone.NewSystem(cfg.Timezone.Zone, clock)
	if err != nil {
		return nil, nil, err
	}
	return sys, sys.Location(), nil
}
