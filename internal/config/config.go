package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"horse.fit/paddock/internal/score"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	InputDir string `envconfig:"PADDOCK_INPUT_DIR" default:"input"`
	CacheDir string `envconfig:"PADDOCK_CACHE_DIR" default:"output"`

	// DatabaseURL enables the optional Postgres odds archive when set.
	DatabaseURL string `envconfig:"DATABASE_URL" default:""`

	PasteSentinel      string `envconfig:"PADDOCK_PASTE_SENTINEL" default:"KABOOM"`
	AutoRestore        bool   `envconfig:"PADDOCK_AUTO_RESTORE" default:"false"`
	DisableCacheBackup bool   `envconfig:"PADDOCK_DISABLE_CACHE_BACKUP" default:"false"`

	DefaultTimezone string `envconfig:"PADDOCK_DEFAULT_TZ" default:"UTC"`
	// TrackTimezones overrides the per-track IANA zone lookup, as
	// comma-separated "course=zone" pairs.
	TrackTimezones string `envconfig:"PADDOCK_TRACK_TIMEZONES" default:""`

	FieldSizeWeight    float64 `envconfig:"PADDOCK_FIELD_SIZE_WEIGHT" default:"0.35"`
	FavoriteOddsWeight float64 `envconfig:"PADDOCK_FAVORITE_ODDS_WEIGHT" default:"0.45"`
	OddsSpreadWeight   float64 `envconfig:"PADDOCK_ODDS_SPREAD_WEIGHT" default:"0.15"`
	DataQualityWeight  float64 `envconfig:"PADDOCK_DATA_QUALITY_WEIGHT" default:"0.05"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.CacheDir) == "" {
		return fmt.Errorf("PADDOCK_CACHE_DIR is required")
	}
	if strings.TrimSpace(c.InputDir) == "" {
		return fmt.Errorf("PADDOCK_INPUT_DIR is required")
	}
	if strings.TrimSpace(c.PasteSentinel) == "" {
		return fmt.Errorf("PADDOCK_PASTE_SENTINEL is required")
	}
	for name, weight := range map[string]float64{
		"PADDOCK_FIELD_SIZE_WEIGHT":    c.FieldSizeWeight,
		"PADDOCK_FAVORITE_ODDS_WEIGHT": c.FavoriteOddsWeight,
		"PADDOCK_ODDS_SPREAD_WEIGHT":   c.OddsSpreadWeight,
		"PADDOCK_DATA_QUALITY_WEIGHT":  c.DataQualityWeight,
	} {
		if weight < 0 {
			return fmt.Errorf("%s must be >= 0", name)
		}
	}
	if c.FieldSizeWeight+c.FavoriteOddsWeight+c.OddsSpreadWeight+c.DataQualityWeight <= 0 {
		return fmt.Errorf("scorer weights must sum to a positive value")
	}
	if _, err := c.TrackTimezoneMap(); err != nil {
		return err
	}
	return nil
}

// ScorerWeights returns the configured signal weights.
func (c *Config) ScorerWeights() score.Weights {
	return score.Weights{
		FieldSize:    c.FieldSizeWeight,
		FavoriteOdds: c.FavoriteOddsWeight,
		OddsSpread:   c.OddsSpreadWeight,
		DataQuality:  c.DataQualityWeight,
	}
}

// TrackTimezoneMap parses the course=zone override pairs.
func (c *Config) TrackTimezoneMap() (map[string]string, error) {
	overrides := make(map[string]string)
	if strings.TrimSpace(c.TrackTimezones) == "" {
		return overrides, nil
	}
	for _, pair := range strings.Split(c.TrackTimezones, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		course, zone, found := strings.Cut(pair, "=")
		course = strings.TrimSpace(course)
		zone = strings.TrimSpace(zone)
		if !found || course == "" || zone == "" {
			return nil, fmt.Errorf("PADDOCK_TRACK_TIMEZONES entry %q must be course=zone", pair)
		}
		overrides[strings.ToLower(course)] = zone
	}
	return overrides, nil
}
