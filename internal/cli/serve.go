package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/playring/internal/app"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the playlist over HTTP",
	Long: `Start the HTTP API and websocket event stream. The server runs until
interrupted and then shuts down gracefully.

Examples:
  playring serve
  playring serve --addr 127.0.0.1:9000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	c := *Config()
	if serveAddr != "" {
		c.Server.Addr = serveAddr
	}

	application, err := app.NewApplication(&c)
	if err != nil {
		return err
	}
	defer func() { _ = application.Shutdown() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return application.Run(ctx)
}
