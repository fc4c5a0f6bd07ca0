package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/playring/internal/app"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	// version works without a readable config file
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		info := app.GetVersionInfo()
		out := cmd.OutOrStdout()

		if JSONOutput() {
			data, _ := json.MarshalIndent(map[string]string{
				"version":    info.Version,
				"commit":     info.GitCommit,
				"tag":        info.GitTag,
				"build_time": info.BuildTime,
				"go_version": runtime.Version(),
				"os":         runtime.GOOS,
				"arch":       runtime.GOARCH,
			}, "", "  ")
			_, _ = fmt.Fprintln(out, string(data))
			return
		}

		_, _ = fmt.Fprintln(out, info.FullString())
		if Verbose() {
			_, _ = fmt.Fprintf(out, "  go version: %s\n", runtime.Version())
			_, _ = fmt.Fprintf(out, "  platform:   %s/%s\n", runtime.GOOS, runtime.GOARCH)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
