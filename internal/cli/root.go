// Package cli implements the playring command line.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/playring/internal/app"
	"github.com/tejashwikalptaru/playring/internal/config"
	"github.com/tejashwikalptaru/playring/internal/logger"
)

var (
	cfgFile string
	jsonOut bool
	verbose bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "playring",
	Short: "Playlist navigation server with circular and list engines",
	Long: `Playring keeps a playlist in two interchangeable engines, a circular ring
and a flat list, with play history and an up-next queue. It serves the
playlist over HTTP or drives it from a text menu.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: $XDG_CONFIG_HOME/playring/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// newApplication builds the application for an interactive command. Logging
// stays at warn level unless --verbose is set so it does not interleave with
// command output.
func newApplication(c *config.Config, opts ...app.Option) (*app.Application, error) {
	lc := c.Log.LoggerConfig()
	if verbose {
		lc.Level = slog.LevelDebug
	} else if lc.Level < slog.LevelWarn {
		lc.Level = slog.LevelWarn
	}
	return app.NewApplication(c, append(opts, app.WithLogger(logger.NewLogger(lc)))...)
}
