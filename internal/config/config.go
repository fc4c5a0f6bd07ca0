package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tejashwikalptaru/playring/internal/logger"
)

// Load reads configuration from standard locations with environment overrides.
// Search order: $XDG_CONFIG_HOME/playring/config.toml, ~/.config/playring/config.toml
func Load() (*Config, error) {
	path := findConfigFile()
	if path == "" {
		cfg := Default()
		applyEnvOverrides(cfg)
		return cfg, nil
	}
	return LoadFrom(path)
}

// LoadFrom reads configuration from a specific file path. Keys missing
// from the file keep their default value.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Path returns the config file Load would read, or "" when none exists.
func Path() string {
	return findConfigFile()
}

// findConfigFile returns the first existing config file path.
func findConfigFile() string {
	var paths []string

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "playring", "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "playring", "config.toml"))
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	// Server
	if v := os.Getenv("PLAYRING_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("PLAYRING_WEB_DIR"); v != "" {
		cfg.Server.WebDir = v
	}
	if v := os.Getenv("PLAYRING_CORS_ORIGINS"); v != "" {
		cfg.Server.CORSOrigins = strings.Split(v, ",")
	}

	// Playlist
	if v := os.Getenv("PLAYRING_IMPL"); v != "" {
		cfg.Playlist.Impl = v
	}
	if v := os.Getenv("PLAYRING_SEED"); v != "" {
		cfg.Playlist.Seed = v
	}
	if v := os.Getenv("PLAYRING_SEED_FILE"); v != "" {
		cfg.Playlist.SeedFile = v
	}

	// Lookup
	if v := os.Getenv("PLAYRING_LOOKUP_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Lookup.Enabled = b
		}
	}
	if v := os.Getenv("PLAYRING_LOOKUP_ENDPOINT"); v != "" {
		cfg.Lookup.Endpoint = v
	}
	if v := os.Getenv("PLAYRING_LOOKUP_TIMEOUT_MS"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.Lookup.TimeoutMS = i
		}
	}

	// Storage / library
	if v := os.Getenv("PLAYRING_FAVORITES_DB"); v != "" {
		cfg.Storage.FavoritesDB = v
	}
	if v := os.Getenv("PLAYRING_WATCH_DIR"); v != "" {
		cfg.Library.WatchDir = v
	}

	// Log
	if v := os.Getenv(logger.EnvLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PLAYRING_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// RequestTimeout returns the per-request timeout of the HTTP API.
func (c *ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// Timeout returns the preview lookup timeout.
func (c *LookupConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// LoggerConfig converts the log section into a logger configuration.
// Validate has already rejected unknown levels.
func (c *LogConfig) LoggerConfig() logger.Config {
	level, _ := logger.ParseLevel(c.Level)
	return logger.Config{
		Level:  level,
		Format: strings.ToLower(c.Format),
	}
}
