// Package config loads the playring TOML configuration with environment overrides.
package config

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server" json:"server"`
	Playlist PlaylistConfig `toml:"playlist" json:"playlist"`
	Lookup   LookupConfig   `toml:"lookup" json:"lookup"`
	Storage  StorageConfig  `toml:"storage" json:"storage"`
	Library  LibraryConfig  `toml:"library" json:"library"`
	Log      LogConfig      `toml:"log" json:"log"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr             string   `toml:"addr" json:"addr"`
	WebDir           string   `toml:"web_dir" json:"web_dir"`
	CORSOrigins      []string `toml:"cors_origins" json:"cors_origins"`
	RequestTimeoutMS int      `toml:"request_timeout_ms" json:"request_timeout_ms"`
}

// PlaylistConfig selects the starting implementation and seed data.
type PlaylistConfig struct {
	Impl     string `toml:"impl" json:"impl"`
	Seed     string `toml:"seed" json:"seed"` // demo, none or file
	SeedFile string `toml:"seed_file" json:"seed_file"`
}

// LookupConfig holds preview lookup settings.
type LookupConfig struct {
	Enabled   bool   `toml:"enabled" json:"enabled"`
	Endpoint  string `toml:"endpoint" json:"endpoint"`
	TimeoutMS int    `toml:"timeout_ms" json:"timeout_ms"`
}

// StorageConfig holds persistence settings. An empty FavoritesDB keeps
// favorites and the session in memory.
type StorageConfig struct {
	FavoritesDB string `toml:"favorites_db" json:"favorites_db"`
}

// LibraryConfig holds library import settings. An empty WatchDir disables the watcher.
type LibraryConfig struct {
	WatchDir string `toml:"watch_dir" json:"watch_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `toml:"level" json:"level"`
	Format string `toml:"format" json:"format"`
}

// Seed modes.
const (
	SeedDemo = "demo"
	SeedNone = "none"
	SeedFile = "file"
)
