// Package config holds the application settings for cantwait.
package config

import (
	"fmt"
	"strings"
	"time"

	"cantwait/internal/errors"
	"cantwait/internal/event"
	"cantwait/internal/timeline"
)

// Config is the full set of settings. Field tags name the viper keys.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Refresh  RefreshConfig  `mapstructure:"refresh"`
	Timeline TimelineConfig `mapstructure:"timeline"`
	Logging  LoggingConfig  `mapstructure:"logging"`

	// Events are used when no event is given on the command line.
	Events []string `mapstructure:"events"`
}

// ServerConfig configures the web shell.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RefreshConfig configures how often live views recompute.
type RefreshConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

// TimelineConfig configures parsing and validation.
type TimelineConfig struct {
	// AllowEqual accepts adjacent events with the same timestamp.
	AllowEqual bool `mapstructure:"allow_equal"`
	// Location is an IANA zone name, "Local" or "UTC". Date-times without
	// an offset are read in it.
	Location string `mapstructure:"location"`
}

// LoggingConfig configures zerolog.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
	// Caller adds the source file and line to every entry.
	Caller bool `mapstructure:"caller"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            "",
			Port:            8484,
			ShutdownTimeout: 5 * time.Second,
		},
		Refresh: RefreshConfig{
			Interval: time.Second,
		},
		Timeline: TimelineConfig{
			AllowEqual: false,
			Location:   "Local",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "auto",
		},
	}
}

var (
	validLevels  = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "disabled"}
	validFormats = []string{"auto", "console", "json"}
)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c == nil {
		return errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return errors.Wrapf(errors.ErrConfigInvalid, "server.port %d out of range 1-65535", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "server.shutdown_timeout must be > 0, got %s", c.Server.ShutdownTimeout)
	}
	if c.Refresh.Interval <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid, "refresh.interval must be > 0, got %s", c.Refresh.Interval)
	}
	if !contains(validLevels, c.Logging.Level) {
		return errors.Wrapf(errors.ErrConfigInvalid, "logging.level %q must be one of %v", c.Logging.Level, validLevels)
	}
	if !contains(validFormats, c.Logging.Format) {
		return errors.Wrapf(errors.ErrConfigInvalid, "logging.format %q must be one of %v", c.Logging.Format, validFormats)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timeline.Location.
func (c *Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timeline.Location)
	switch strings.ToLower(name) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrConfigInvalid, "timeline.location %q: %v", name, err)
	}
	return loc, nil
}

// TimelineOptions turns the timeline settings into Build options.
func (c *Config) TimelineOptions() ([]timeline.Option, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	ordering := event.Strict
	if c.Timeline.AllowEqual {
		ordering = event.AllowEqual
	}
	return []timeline.Option{timeline.WithLocation(loc), timeline.WithOrdering(ordering)}, nil
}

// ListenAddr returns the host:port the web shell binds to.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Addr, c.Server.Port)
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
