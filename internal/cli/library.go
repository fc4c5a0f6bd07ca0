package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/playring/internal/domain"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Inspect music folders",
}

var libraryScanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "List the audio tracks found under a folder",
	Long: `Walk a folder and read the tags of every supported audio file. Files
without tags are listed under their file name.

Examples:
  playring library scan ~/Music
  playring library scan --json ~/Music`,
	Args: cobra.ExactArgs(1),
	RunE: runLibraryScan,
}

func init() {
	libraryCmd.AddCommand(libraryScanCmd)
	rootCmd.AddCommand(libraryCmd)
}

func runLibraryScan(cmd *cobra.Command, args []string) error {
	application, err := newApplication(Config())
	if err != nil {
		return err
	}
	defer func() { _ = application.Shutdown() }()

	if Verbose() {
		stderr := cmd.ErrOrStderr()
		application.GetEventBus().Subscribe(domain.EventScanProgress, func(e domain.Event) {
			if p, ok := e.(domain.ScanProgressEvent); ok {
				_, _ = fmt.Fprintf(stderr, "[%d/%d] %s\n", p.Progress.FilesScanned, p.Progress.TotalFiles, p.Progress.CurrentFile)
			}
		})
	}

	_, _, library := application.GetServices()
	tracks, err := library.ScanFolder(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		data, err := json.MarshalIndent(tracks, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(data))
		return nil
	}

	renderTracks(out, args[0], tracks)
	return nil
}

// renderTracks prints tracks as a table with paths relative to root.
func renderTracks(out io.Writer, root string, tracks []domain.TrackInfo) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)

	t.AppendHeader(table.Row{"#", "File", "Title", "Artist", "Album", "Format"})
	for i, track := range tracks {
		file := track.FilePath
		if rel, err := filepath.Rel(root, track.FilePath); err == nil {
			file = rel
		}
		t.AppendRow(table.Row{i + 1, file, track.Title, track.Artist, track.Album, track.Format})
	}
	t.AppendFooter(table.Row{"", fmt.Sprintf("%d tracks", len(tracks))})

	t.Render()
}
