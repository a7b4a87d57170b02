package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is vie's runtime configuration.
type Config struct {
	Units    string
	Language string
	Weather  Weather
	Location Location
	Timezone Timezone
	Mirror   Mirror
	LogFile  string
	LogLevel string
}

// Weather selects the weather provider.
type Weather struct {
	Provider string `toml:"provider"`
	URL      string `toml:"url"`
}

// Location selects where position fixes come from.
type Location struct {
	Source    string   `toml:"source"`
	Latitude  *float64 `toml:"latitude"`
	Longitude *float64 `toml:"longitude"`
	URL       string   `toml:"url"`
	Port      string   `toml:"port"`
	Baud      int      `toml:"baud"`
	Broker    string   `toml:"broker"`
	Topic     string   `toml:"topic"`
}

// Timezone selects where the UTC offset comes from.
type Timezone struct {
	Source string `toml:"source"`
	URL    string `toml:"url"`
	Zone   string `toml:"zone"`
}

// Mirror configures the optional display mirror. An empty Listen disables it.
type Mirror struct {
	Listen string `toml:"listen"`
}

// Accepted values.
const (
	UnitsMetric   = "metric"
	UnitsImperial = "imperial"

	ProviderHTTP      = "http"
	ProviderOpenMeteo = "open-meteo"

	SourceStatic = "static"
	SourceIPAPI  = "ipapi"
	SourceNMEA   = "nmea"
	SourceMQTT   = "mqtt"

	ZoneSystem = "system"
	ZoneHTTP   = "http"
)

const (
	defaultConfigPath = "~/.config/vie/config.toml"
	defaultLogFile    = "~/.local/state/vie/vie.log"
	defaultLogLevel   = "info"
	defaultLanguage   = "en"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Units:    UnitsMetric,
		Language: defaultLanguage,
		Weather:  Weather{Provider: ProviderOpenMeteo},
		Location: Location{Source: SourceIPAPI},
		Timezone: Timezone{Source: ZoneSystem},
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
	}
}

// Load locates and parses the config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Units    string   `toml:"units"`
		Language string   `toml:"language"`
		Weather  Weather  `toml:"weather"`
		Location Location `toml:"location"`
		Timezone Timezone `toml:"timezone"`
		Mirror   Mirror   `toml:"mirror"`
		LogFile  string   `toml:"log_file"`
		LogLevel string   `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Units = orDefault(strings.ToLower(raw.Units), cfg.Units)
	cfg.Language = orDefault(raw.Language, cfg.Language)
	cfg.LogLevel = orDefault(strings.ToLower(raw.LogLevel), cfg.LogLevel)
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}

	cfg.Weather = Weather{
		Provider: orDefault(strings.ToLower(raw.Weather.Provider), cfg.Weather.Provider),
		URL:      strings.TrimSpace(raw.Weather.URL),
	}
	cfg.Location = raw.Location
	cfg.Location.Source = orDefault(strings.ToLower(raw.Location.Source), SourceIPAPI)
	cfg.Location.URL = strings.TrimSpace(raw.Location.URL)
	cfg.Location.Port = strings.TrimSpace(raw.Location.Port)
	cfg.Location.Broker = strings.TrimSpace(raw.Location.Broker)
	cfg.Location.Topic = strings.TrimSpace(raw.Location.Topic)
	cfg.Timezone = Timezone{
		Source: orDefault(strings.ToLower(raw.Timezone.Source), ZoneSystem),
		URL:    strings.TrimSpace(raw.Timezone.URL),
		Zone:   strings.TrimSpace(raw.Timezone.Zone),
	}
	cfg.Mirror.Listen = strings.TrimSpace(raw.Mirror.Listen)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values and the fields each source requires.
func (c Config) Validate() error {
	var errs []error
	switch c.Units {
	case UnitsMetric, UnitsImperial:
	default:
		errs = append(errs, fmt.Errorf("units: unknown value %q", c.Units))
	}

	switch c.Weather.Provider {
	case ProviderOpenMeteo:
	case ProviderHTTP:
		if c.Weather.URL == "" {
			errs = append(errs, errors.New("weather.url: required for the http provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("weather.provider: unknown value %q", c.Weather.Provider))
	}

	switch c.Location.Source {
	case SourceIPAPI:
	case SourceStatic:
		if c.Location.Latitude == nil || c.Location.Longitude == nil {
			errs = append(errs, errors.New("location: latitude and longitude are required for the static source"))
		}
	case SourceNMEA:
		if c.Location.Port == "" {
			errs = append(errs, errors.New("location.port: required for the nmea source"))
		}
	case SourceMQTT:
		if c.Location.Broker == "" {
			errs = append(errs, errors.New("location.broker: required for the mqtt source"))
		}
	default:
		errs = append(errs, fmt.Errorf("location.source: unknown value %q", c.Location.Source))
	}

	switch c.Timezone.Source {
	case ZoneSystem, ZoneHTTP:
	default:
		errs = append(errs, fmt.Errorf("timezone.source: unknown value %q", c.Timezone.Source))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func orDefault(value, fallback string) string {
	if trimmed := strings.TrimSpace(value); trimmed != "" {
		return trimmed
	}
	return fallback
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
