package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-starmap/internal/astro"
	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/config"
	"github.com/litescript/ls-starmap/internal/logging"
)

// rootOptions holds the persistent flags. Flags the user sets override the
// config file.
type rootOptions struct {
	configPath  string
	observer    string
	lat, lon    float64
	at          string
	catalogPath string
	maxMag      float64
	minAlt      float64
	noLabels    bool
	logLevel    string
	logFile     string
}

func (o *rootOptions) bind(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.StringVarP(&o.configPath, "config", "c", "", "YAML config file")
	f.StringVar(&o.observer, "observer", "", "observer name")
	f.Float64Var(&o.lat, "lat", 0, "observer latitude in degrees, north positive")
	f.Float64Var(&o.lon, "lon", 0, "observer longitude in degrees, east positive")
	f.StringVarP(&o.at, "time", "t", "", `observation instant (RFC 3339) or "now"`)
	f.StringVar(&o.catalogPath, "catalog", "", "YAML star catalog (default: built-in bright stars)")
	f.Float64VarP(&o.maxMag, "mag", "m", 0, "faintest magnitude to show")
	f.Float64Var(&o.minAlt, "min-alt", 0, "hide stars at or below this altitude in degrees")
	f.BoolVar(&o.noLabels, "no-labels", false, "start the map with labels off")
	f.StringVar(&o.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.StringVar(&o.logFile, "log-file", "", "write logs to a rotating file")
}

// env is everything a command needs after config, flags and catalog are
// resolved.
type env struct {
	cfg         *config.Config
	log         *logging.Logger
	observer    string
	geo         astro.Geographic
	instant     time.Time
	live        bool
	minAltitude astro.Angle
	catalog     *catalog.Catalog
}

// resolve loads the config, applies flag overrides and loads the catalog.
// Interactive runs never log to the terminal.
func (o *rootOptions) resolve(cmd *cobra.Command, interactive bool) (*env, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	o.override(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := logging.ParseLevel(cfg.Logging.Level)
	var log *logging.Logger
	switch {
	case cfg.Logging.File != "":
		log = logging.NewFile(level, logging.DefaultFileConfig(cfg.Logging.File))
	case interactive:
		log = logging.Discard()
	default:
		log = logging.NewWriter(level, cmd.ErrOrStderr())
	}

	e := &env{
		cfg:         cfg,
		log:         log,
		observer:    cfg.Observer.Name,
		live:        cfg.Live(),
		minAltitude: astro.Degrees(cfg.View.MinAltitudeDeg),
	}
	if e.geo, err = cfg.Geographic(); err != nil {
		return nil, fmt.Errorf("observer: %w", err)
	}
	if e.instant, err = cfg.Instant(time.Now()); err != nil {
		return nil, err
	}

	log.Debug("observer %s at %.4f, %.4f; time %s", e.observer,
		cfg.Observer.LatitudeDeg, cfg.Observer.LongitudeDeg, e.instant.Format(time.RFC3339))

	e.catalog, err = loadCatalog(cfg.Catalog.Path, log)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (o *rootOptions) override(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("lat") || flags.Changed("lon") {
		cfg.Observer.Name = "custom site"
	}
	if flags.Changed("lat") {
		cfg.Observer.LatitudeDeg = o.lat
	}
	if flags.Changed("lon") {
		cfg.Observer.LongitudeDeg = o.lon
	}
	if flags.Changed("observer") {
		cfg.Observer.Name = o.observer
	}
	if flags.Changed("time") {
		cfg.Time = o.at
	}
	if flags.Changed("catalog") {
		cfg.Catalog.Path = o.catalogPath
	}
	if flags.Changed("mag") {
		cfg.Catalog.MaxMagnitude = o.maxMag
	}
	if flags.Changed("min-alt") {
		cfg.View.MinAltitudeDeg = o.minAlt
	}
	if flags.Changed("no-labels") {
		cfg.View.Labels = !o.noLabels
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = o.logFile
	}
}

// loadCatalog returns the built-in bright stars for an empty path. Skipped
// records are logged; only an unreadable file is an error.
func loadCatalog(path string, log *logging.Logger) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.BrightStars(), nil
	}

	cat, err := catalog.LoadFile(path)
	if cat == nil {
		return nil, err
	}
	if err != nil {
		skipped := []error{err}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			skipped = joined.Unwrap()
		}
		log.Warn("catalog %s: skipped %d records", path, len(skipped))
		for _, e := range skipped {
			log.Debug("  %v", e)
		}
	}
	log.Info("loaded %d stars from %s", cat.Len(), path)
	return cat, nil
}

// lookupStar finds a star by name, "HR n" or "HIP n".
func lookupStar(cat *catalog.Catalog, query string) (astro.Star, error) {
	q := strings.TrimSpace(query)
	fields := strings.Fields(q)
	if len(fields) == 2 {
		if n, err := strconv.Atoi(fields[1]); err == nil {
			switch strings.ToUpper(fields[0]) {
			case "HR":
				if s, ok := cat.LookupHR(n); ok {
					return s, nil
				}
				return astro.Star{}, fmt.Errorf("HR %d: %w", n, errStarNotFound)
			case "HIP":
				if s, ok := cat.LookupHIP(n); ok {
					return s, nil
				}
				return astro.Star{}, fmt.Errorf("HIP %d: %w", n, errStarNotFound)
			}
		}
	}
	if s, ok := cat.Lookup(q); ok {
		return s, nil
	}
	return astro.Star{}, fmt.Errorf("%q: %w", q, errStarNotFound)
}

var errStarNotFound = errors.New("star not in catalog")
