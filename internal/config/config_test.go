package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the config search at empty temp directories and clears
// every override variable.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	for _, key := range []string{
		"PLAYRING_ADDR", "PLAYRING_WEB_DIR", "PLAYRING_CORS_ORIGINS",
		"PLAYRING_IMPL", "PLAYRING_SEED", "PLAYRING_SEED_FILE",
		"PLAYRING_LOOKUP_ENABLED", "PLAYRING_LOOKUP_ENDPOINT", "PLAYRING_LOOKUP_TIMEOUT_MS",
		"PLAYRING_FAVORITES_DB", "PLAYRING_WATCH_DIR",
		"PLAYRING_LOG_LEVEL", "PLAYRING_LOG_FORMAT",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
	assert.Empty(t, Path())
}

func TestLoad_XDGFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "xdg", "playring", "config.toml")
	writeConfig(t, path, `
[server]
addr = ":9000"

[playlist]
impl = "list"
seed = "none"

[lookup]
enabled = false
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, path, Path())
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "list", cfg.Playlist.Impl)
	assert.Equal(t, SeedNone, cfg.Playlist.Seed)
	assert.False(t, cfg.Lookup.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Lookup.Timeout())
}

func TestLoad_HomeFallback(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, ".config", "playring", "config.toml"), `
[log]
level = "debug"
format = "json"
`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)

	lc := cfg.Log.LoggerConfig()
	assert.Equal(t, slog.LevelDebug, lc.Level)
	assert.Equal(t, "json", lc.Format)
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	writeConfig(t, path, `
[server]
addr = ":9000"
request_timeout_ms = 5000
`)
	t.Setenv("PLAYRING_ADDR", "127.0.0.1:8080")
	t.Setenv("PLAYRING_CORS_ORIGINS", "http://a,http://b")
	t.Setenv("PLAYRING_LOOKUP_ENABLED", "false")
	t.Setenv("PLAYRING_LOOKUP_TIMEOUT_MS", "250")
	t.Setenv("PLAYRING_FAVORITES_DB", "/tmp/fav.db")
	t.Setenv("PLAYRING_LOG_LEVEL", "warn")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout())
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.CORSOrigins)
	assert.False(t, cfg.Lookup.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Lookup.Timeout())
	assert.Equal(t, "/tmp/fav.db", cfg.Storage.FavoritesDB)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadFrom_Errors(t *testing.T) {
	dir := isolate(t)

	_, err := LoadFrom(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	writeConfig(t, bad, "[server\naddr = ")
	_, err = LoadFrom(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"unknown impl", func(c *Config) { c.Playlist.Impl = "shuffle" }, "playlist: invalid impl"},
		{"unknown seed", func(c *Config) { c.Playlist.Seed = "random" }, "invalid seed mode"},
		{"file seed without path", func(c *Config) { c.Playlist.Seed = SeedFile }, "seed_file is required"},
		{"file seed", func(c *Config) { c.Playlist.Seed = SeedFile; c.Playlist.SeedFile = "songs.csv" }, ""},
		{"bad endpoint", func(c *Config) { c.Lookup.Endpoint = "ftp://x" }, "lookup: invalid endpoint"},
		{"negative timeout", func(c *Config) { c.Lookup.TimeoutMS = -1 }, "timeout_ms"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "addr must not be empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Playlist.Impl = "shuffle"
	cfg.Log.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "playlist:")
	assert.Contains(t, err.Error(), "log:")
}
