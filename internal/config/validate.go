package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/logger"
)

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("server: %w", err))
	}
	if err := c.Playlist.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("playlist: %w", err))
	}
	if err := c.Lookup.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("lookup: %w", err))
	}
	if err := c.Log.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log: %w", err))
	}

	return errors.Join(errs...)
}

// Validate checks ServerConfig for errors.
func (c *ServerConfig) Validate() error {
	if c.Addr == "" {
		return errors.New("addr must not be empty")
	}
	if c.RequestTimeoutMS < 0 {
		return errors.New("request_timeout_ms must be non-negative")
	}
	return nil
}

// Validate checks PlaylistConfig for errors.
func (c *PlaylistConfig) Validate() error {
	if _, err := domain.ParseImplementation(c.Impl); err != nil {
		return fmt.Errorf("invalid impl: %s (must be circular or list)", c.Impl)
	}
	switch c.Seed {
	case "", SeedDemo, SeedNone:
		// valid
	case SeedFile:
		if c.SeedFile == "" {
			return errors.New("seed_file is required when seed is \"file\"")
		}
	default:
		return fmt.Errorf("invalid seed mode: %s (must be demo, none, or file)", c.Seed)
	}
	return nil
}

// Validate checks LookupConfig for errors.
func (c *LookupConfig) Validate() error {
	if c.Endpoint != "" {
		u, err := url.Parse(c.Endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid endpoint: %s (must be http or https)", c.Endpoint)
		}
	}
	if c.TimeoutMS < 0 {
		return errors.New("timeout_ms must be non-negative")
	}
	return nil
}

// Validate checks LogConfig for errors.
func (c *LogConfig) Validate() error {
	if c.Level != "" {
		if _, ok := logger.ParseLevel(c.Level); !ok {
			return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Level)
		}
	}
	switch strings.ToLower(c.Format) {
	case "", "text", "json":
		// valid
	default:
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Format)
	}
	return nil
}
