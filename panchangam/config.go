package panchangam

import (
	"fmt"
	"os"
	"time"

	"github.com/vedavox/panchangam/astronomy"
	"github.com/vedavox/panchangam/solarcalendar"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the Panchangam service.
type Config struct {
	// Ephemeris cache settings.
	CacheSize int           `yaml:"cache_size"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`

	// DefaultLocation is used by callers that don't supply their own.
	DefaultLocation astronomy.Location `yaml:"default_location"`

	// RegionSolarCalendars maps a region name to the regional solar
	// calendar its civil day assignment follows.
	RegionSolarCalendars map[string]solarcalendar.CalendarType `yaml:"region_solar_calendars"`
}

// DefaultConfig returns the default configuration: New Delhi as the
// default location, and the regional solar calendar each Indian state
// traditionally follows.
func DefaultConfig() Config {
	return Config{
		CacheSize: 1000,
		CacheTTL:  24 * time.Hour,
		DefaultLocation: astronomy.Location{
			Latitude:  28.6139,
			Longitude: 77.2090,
			UTCOffset: 5.5,
		},
		RegionSolarCalendars: map[string]solarcalendar.CalendarType{
			"Tamil Nadu":  solarcalendar.Tamil,
			"Kerala":      solarcalendar.Malayalam,
			"West Bengal": solarcalendar.Bengali,
			"Odisha":      solarcalendar.Odia,
		},
	}
}

// LoadConfigFile reads a YAML configuration file and overlays it onto
// DefaultConfig, so a file only needs to set the fields it wants to
// override (e.g. just default_location, leaving cache settings and the
// region table at their defaults).
func LoadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
