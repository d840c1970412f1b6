package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cantwait/internal/errors"
)

// EnvPrefix is the prefix of every environment override, e.g.
// CANTWAIT_SERVER_PORT.
const EnvPrefix = "CANTWAIT"

// Loader handles configuration loading with Viper.
type Loader struct {
	v          *viper.Viper
	configFile string
	dirs       []string
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		v: viper.New(),
	}
}

// SetConfigFile sets an explicit config file path. A missing explicit file
// is an error; a missing file found by searching is not.
func (l *Loader) SetConfigFile(path string) {
	l.configFile = path
}

// AddConfigPath adds a directory searched for cantwait.yaml ahead of the
// standard locations.
func (l *Loader) AddConfigPath(dir string) {
	l.dirs = append(l.dirs, dir)
}

// BindFlags maps config keys to command-line flags. Flags only override the
// other sources when they were set explicitly.
func (l *Loader) BindFlags(flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := l.v.BindPFlag(key, f); err != nil {
			return errors.Wrapf(err, "bind flag --%s", name)
		}
	}
	return nil
}

// ConfigFileUsed returns the file the last Load read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

// Load loads configuration with precedence
// defaults < config file < env vars < explicit flags.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	l.setupViper(cfg)

	if err := l.loadConfigFile(); err != nil {
		return nil, err
	}

	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

func (l *Loader) setupViper(cfg *Config) {
	v := l.v

	v.SetConfigName("cantwait")
	v.SetConfigType("yaml")

	for _, dir := range l.dirs {
		v.AddConfigPath(dir)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		v.AddConfigPath(filepath.Join(xdg, "cantwait"))
	}
	if home, _ := os.UserHomeDir(); home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "cantwait"))
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	l.setDefaults(cfg)

	v.AutomaticEnv()
}

// setDefaults registers every key so env vars reach nested fields on Unmarshal.
func (l *Loader) setDefaults(cfg *Config) {
	v := l.v

	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.port", cfg.Server.Port)
	v.SetDefault("server.shutdown_timeout", cfg.Server.ShutdownTimeout)

	v.SetDefault("refresh.interval", cfg.Refresh.Interval)

	v.SetDefault("timeline.allow_equal", cfg.Timeline.AllowEqual)
	v.SetDefault("timeline.location", cfg.Timeline.Location)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.caller", cfg.Logging.Caller)

	v.SetDefault("events", []string{})
}

func (l *Loader) loadConfigFile() error {
	if l.configFile != "" {
		if _, err := os.Stat(l.configFile); err != nil {
			return errors.Wrapf(errors.ErrConfigNotFound, "%s", l.configFile)
		}
		l.v.SetConfigFile(l.configFile)
	}

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if l.configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrap(err, "failed to read config file")
	}
	return nil
}
