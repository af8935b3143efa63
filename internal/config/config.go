// Package config handles ls-starmap configuration loading.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-starmap/internal/astro"
)

// Config holds all settings.
type Config struct {
	Observer ObserverConfig `yaml:"observer"`
	Time     string         `yaml:"time"` // RFC 3339 instant or "now"
	Catalog  CatalogConfig  `yaml:"catalog"`
	View     ViewConfig     `yaml:"view"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ObserverConfig is the observing site, longitude east positive.
type ObserverConfig struct {
	Name         string  `yaml:"name"`
	LatitudeDeg  float64 `yaml:"latitude_deg"`
	LongitudeDeg float64 `yaml:"longitude_deg"`
}

// CatalogConfig selects the star catalog.
type CatalogConfig struct {
	Path         string  `yaml:"path"` // empty uses the built-in bright stars
	MaxMagnitude float64 `yaml:"max_magnitude"`
}

// ViewConfig holds sky map display settings.
type ViewConfig struct {
	MinAltitudeDeg float64 `yaml:"min_altitude_deg"`
	Labels         bool    `yaml:"labels"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Now is the Time value meaning the current instant.
const Now = "now"

// Default returns a Config with sensible default values. The observer
// defaults to Goldstone.
func Default() *Config {
	return &Config{
		Observer: ObserverConfig{
			Name:         "Goldstone",
			LatitudeDeg:  35.4267,
			LongitudeDeg: -116.8900,
		},
		Time: Now,
		Catalog: CatalogConfig{
			MaxMagnitude: 4.5,
		},
		View: ViewConfig{
			MinAltitudeDeg: 0,
			Labels:         true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Geographic(); err != nil {
		errs = append(errs, fmt.Errorf("observer: %w", err))
	}
	if math.IsNaN(c.Observer.LongitudeDeg) || math.IsInf(c.Observer.LongitudeDeg, 0) {
		errs = append(errs, errors.New("observer: longitude must be finite"))
	}
	if _, err := c.Instant(time.Now()); err != nil {
		errs = append(errs, err)
	}
	if m := c.View.MinAltitudeDeg; m < -90 || m > 90 {
		errs = append(errs, fmt.Errorf("view: min_altitude_deg %v outside [-90, 90]", m))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error", "":
	default:
		errs = append(errs, fmt.Errorf("logging: unknown level %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

// Geographic returns the observer as validated coordinates.
func (c *Config) Geographic() (astro.Geographic, error) {
	return astro.NewGeographic(
		astro.Degrees(c.Observer.LatitudeDeg),
		astro.Degrees(c.Observer.LongitudeDeg),
	)
}

// Live reports whether the configured time follows the wall clock.
func (c *Config) Live() bool {
	s := strings.TrimSpace(c.Time)
	return s == "" || strings.EqualFold(s, Now)
}

// Instant resolves the configured time, using now for "now" or an empty value.
func (c *Config) Instant(now time.Time) (time.Time, error) {
	if c.Live() {
		return now, nil
	}
	t, err := time.Parse(time.RFC3339, strings.TrimSpace(c.Time))
	if err != nil {
		return time.Time{}, fmt.Errorf("time: %w", err)
	}
	return t, nil
}
