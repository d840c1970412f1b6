package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantwait/internal/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestLoader_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Server, cfg.Server)
	assert.Empty(t, cfg.Events)
}

func TestLoader_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "custom.yaml", `
server:
  port: 9090
refresh:
  interval: 250ms
timeline:
  allow_equal: true
  location: UTC
logging:
  level: debug
  caller: true
events:
  - "2013-01-01"
  - "2015-01-01"
`)

	l := NewLoader()
	l.SetConfigFile(path)
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Refresh.Interval)
	assert.True(t, cfg.Timeline.AllowEqual)
	assert.Equal(t, "UTC", cfg.Timeline.Location)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Caller)
	assert.Equal(t, []string{"2013-01-01", "2015-01-01"}, cfg.Events)
	assert.Equal(t, path, l.ConfigFileUsed())
}

func TestLoader_SearchPath(t *testing.T) {
	dir := isolate(t)
	writeFile(t, dir, "cantwait.yaml", "server:\n  port: 7000\n")

	l := NewLoader()
	l.AddConfigPath(dir)
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "c.yaml", "server:\n  port: 9090\nlogging:\n  format: json\n")
	t.Setenv("CANTWAIT_SERVER_PORT", "9191")
	t.Setenv("CANTWAIT_REFRESH_INTERVAL", "2s")

	l := NewLoader()
	l.SetConfigFile(path)
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, 2*time.Second, cfg.Refresh.Interval)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoader_FlagsOverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("CANTWAIT_SERVER_PORT", "9191")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 0, "")
	flags.Bool("allow-equal", false, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--port", "8000"}))

	l := NewLoader()
	require.NoError(t, l.BindFlags(flags, map[string]string{
		"server.port":          "port",
		"timeline.allow_equal": "allow-equal",
		"logging.level":        "log-level",
		"logging.file":         "not-a-flag",
	}))
	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
	// Unset flags do not clobber defaults.
	assert.False(t, cfg.Timeline.AllowEqual)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoader_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	l := NewLoader()
	l.SetConfigFile(filepath.Join(dir, "nope.yaml"))
	_, err := l.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigNotFound))
}

func TestLoader_InvalidValues(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "bad.yaml", "server:\n  port: -1\n")

	l := NewLoader()
	l.SetConfigFile(path)
	_, err := l.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrConfigInvalid))
}

func TestLoader_MalformedFile(t *testing.T) {
	dir := isolate(t)
	path := writeFile(t, dir, "broken.yaml", "server: [port\n")

	l := NewLoader()
	l.SetConfigFile(path)
	_, err := l.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}
