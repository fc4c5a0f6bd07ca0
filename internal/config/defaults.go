package config

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:             ":8000",
			CORSOrigins:      []string{"*"},
			RequestTimeoutMS: 30000,
		},
		Playlist: PlaylistConfig{
			Impl: "circular",
			Seed: SeedDemo,
		},
		Lookup: LookupConfig{
			Enabled:   true,
			Endpoint:  "https://itunes.apple.com/search",
			TimeoutMS: 3000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// ApplyDefaults fills in zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	d := Default()

	// Server
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.CORSOrigins == nil {
		c.Server.CORSOrigins = d.Server.CORSOrigins
	}
	if c.Server.RequestTimeoutMS == 0 {
		c.Server.RequestTimeoutMS = d.Server.RequestTimeoutMS
	}

	// Playlist
	if c.Playlist.Impl == "" {
		c.Playlist.Impl = d.Playlist.Impl
	}
	if c.Playlist.Seed == "" {
		c.Playlist.Seed = d.Playlist.Seed
	}

	// Lookup
	if c.Lookup.Endpoint == "" {
		c.Lookup.Endpoint = d.Lookup.Endpoint
	}
	if c.Lookup.TimeoutMS == 0 {
		c.Lookup.TimeoutMS = d.Lookup.TimeoutMS
	}

	// Log
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
}
