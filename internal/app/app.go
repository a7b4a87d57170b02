package app

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/five82/vie/internal/config"
	"github.com/five82/vie/internal/face"
	"github.com/five82/vie/internal/format"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/logging"
	"github.com/five82/vie/internal/mirror"
	"github.com/five82/vie/internal/prefs"
	"github.com/five82/vie/internal/state"
	"github.com/five82/vie/internal/ui"
	"github.com/five82/vie/internal/weather"
)

// Options configure the vie application.
type Options struct {
	ConfigPath string // empty uses default ~/.config/vie/config.toml
	PrefsPath  string // empty uses default ~/.config/vie/prefs.toml
}

// Run boots the watch face until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logFile, err := logging.Setup(logging.Options{File: cfg.LogFile, Level: cfg.LogLevel})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		log.Warn().Str("component", "app").Err(err).Msg("load preferences")
	}

	clock := clockwork.NewRealClock()

	fetcher, err := newWeather(cfg)
	if err != nil {
		return fmt.Errorf("init weather: %w", err)
	}
	loc, err := newLocator(cfg)
	if err != nil {
		return fmt.Errorf("init location: %w", err)
	}
	defer loc.close()
	zones, clockZone, err := newZones(cfg, clock)
	if err != nil {
		return fmt.Errorf("init time zone: %w", err)
	}

	log.Info().Str("component", "app").
		Str("weather", cfg.Weather.Provider).
		Str("location", cfg.Location.Source).
		Str("timezone", cfg.Timezone.Source).
		Str("zone", clockZone.String()).
		Msg("vie starting")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	program := ui.NewProgram(ui.Options{
		Context:  ctx,
		Clock:    clock,
		Location: clockZone,
		Store:    store,
		Monitor:  link.NewMonitor(fetcher, clock),
		Locator:  loc.source,
		Zones:    zones,
		Weather:  fetcher,
		Face: face.Config{
			Units:    weather.ParseUnits(cfg.Units),
			Weekdays: format.WeekdaysFor(cfg.Language),
		},
		Prefs:     userPrefs,
		PrefsPath: prefsPath,
		LogPath:   cfg.LogFile,
	})

	g, gctx := errgroup.WithContext(ctx)

	for _, r := range loc.runners {
		g.Go(func() error {
			supervise(gctx, clock, r)
			return nil
		})
	}

	if cfg.Mirror.Listen != "" {
		srv := mirror.New(store, func(msg face.MessageReceived) { program.Send(msg) })
		g.Go(func() error {
			// The face keeps running without its mirror.
			if err := srv.Run(gctx, cfg.Mirror.Listen); err != nil {
				log.Error().Str("component", "mirror").Err(err).Msg("mirror stopped")
			}
			return nil
		})
	}

	g.Go(func() error {
		defer cancel()
		if _, err := program.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("ui: %w", err)
		}
		return nil
	})

	err = g.Wait()
	log.Info().Str("component", "app").Msg("vie stopped")
	return err
}
