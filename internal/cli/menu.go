package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tejashwikalptaru/playring/internal/app"
	"github.com/tejashwikalptaru/playring/internal/config"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/service"
)

var menuSeed bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Drive the playlist from an interactive text menu",
	Long: `Run the numbered text menu over the playlist service. The playlist starts
empty unless --seed is given, and no preview URLs are looked up.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&menuSeed, "seed", false, "apply the configured startup seed")
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	c := *Config()
	if !menuSeed {
		c.Playlist.Seed = config.SeedNone
	}

	application, err := newApplication(&c, app.WithoutPreviewLookup())
	if err != nil {
		return err
	}
	defer func() { _ = application.Shutdown() }()

	ctx := cmd.Context()
	if err := application.Start(ctx); err != nil {
		return err
	}

	playlist, _, _ := application.GetServices()
	return NewMenu(playlist, cmd.InOrStdin(), cmd.OutOrStdout()).Run(ctx)
}

// Menu is the numbered text front-end over a PlaylistService.
type Menu struct {
	playlist *service.PlaylistService
	in       *bufio.Scanner
	out      io.Writer
}

// NewMenu creates a menu reading choices from in and writing to out.
func NewMenu(playlist *service.PlaylistService, in io.Reader, out io.Writer) *Menu {
	return &Menu{playlist: playlist, in: bufio.NewScanner(in), out: out}
}

var errEOF = errors.New("end of input")

// Run loops until option 0 or end of input.
func (m *Menu) Run(ctx context.Context) error {
	m.println(fmt.Sprintf("Initialized with %s playlist. Use option 10 to switch.", displayImpl(m.playlist.Active())))

	for {
		m.printMenu()
		choice, err := m.prompt("Select an option: ")
		if err != nil {
			m.println("\nBye!")
			return nil
		}
		if choice == "0" {
			m.println("Bye!")
			return nil
		}

		if err := m.handle(ctx, choice); err != nil {
			if errors.Is(err, errEOF) {
				m.println("\nBye!")
				return nil
			}
			return err
		}
	}
}

func (m *Menu) printMenu() {
	m.println("\n=== Circular Music Playlist ===")
	m.println("1. Add song")
	m.println("2. Remove song")
	m.println("3. Play current")
	m.println("4. Next song")
	m.println("5. Previous song")
	m.println("6. Enqueue song to play next")
	m.println("7. Show all songs")
	m.println("8. Show queue")
	m.println("9. Show history")
	m.println("10. Switch playlist implementation (Circular/List)")
	m.println("0. Exit")
}

func (m *Menu) handle(ctx context.Context, choice string) error {
	switch choice {
	case "1":
		return m.addSong(ctx)

	case "2":
		sid, err := m.prompt("Song id to remove: ")
		if err != nil {
			return err
		}
		id, err := domain.ParseSongID(sid)
		if err != nil {
			m.println("Invalid id")
			return nil
		}
		if err := m.playlist.RemoveSong(id); err != nil {
			m.println("Song not found")
			return nil
		}
		m.println("Removed")

	case "3":
		m.println("Playing: " + describe(m.playlist.Play(ctx)))

	case "4":
		m.println("Next: " + describe(m.playlist.Next(ctx)))

	case "5":
		m.println("Previous: " + describe(m.playlist.Previous(ctx)))

	case "6":
		sid, err := m.prompt("Song id to enqueue next: ")
		if err != nil {
			return err
		}
		id, err := domain.ParseSongID(sid)
		if err != nil {
			m.println("Invalid id")
			return nil
		}
		if err := m.playlist.EnqueueNext(id); err != nil {
			m.println("Song not found")
			return nil
		}
		m.println("Enqueued")

	case "7":
		m.list(m.playlist.Songs(), "No songs")

	case "8":
		m.list(m.playlist.Queue(), "Queue empty")

	case "9":
		m.list(m.playlist.History(), "History empty")

	case "10":
		impl := m.playlist.Toggle()
		m.println(fmt.Sprintf("Switched to %s playlist", displayImpl(impl)))

	default:
		m.println("Invalid choice")
	}
	return nil
}

func (m *Menu) addSong(ctx context.Context) error {
	title, err := m.prompt("Title: ")
	if err != nil {
		return err
	}
	artist, err := m.prompt("Artist: ")
	if err != nil {
		return err
	}
	durS, err := m.prompt("Duration in seconds (optional): ")
	if err != nil {
		return err
	}

	// Anything that is not a number counts as unknown.
	duration, convErr := strconv.Atoi(durS)
	if convErr != nil || duration < 0 {
		duration = 0
	}

	song, err := m.playlist.AddSong(ctx, domain.SongInput{Title: title, Artist: artist, DurationSec: duration})
	if err != nil {
		m.println("Error: " + err.Error())
		return nil
	}
	m.println(fmt.Sprintf("Added: %s (id=%d)", song, song.ID))
	return nil
}

func (m *Menu) list(songs []domain.Song, empty string) {
	if len(songs) == 0 {
		m.println(empty)
		return
	}
	for _, s := range songs {
		m.println(fmt.Sprintf("- %s (id=%d)", s, s.ID))
	}
}

// prompt writes label and reads one trimmed line.
func (m *Menu) prompt(label string) (string, error) {
	_, _ = io.WriteString(m.out, label)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", errEOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) println(s string) {
	_, _ = fmt.Fprintln(m.out, s)
}

func describe(song *domain.Song) string {
	if song == nil {
		return "<no song>"
	}
	return song.String()
}

func displayImpl(impl domain.Implementation) string {
	s := string(impl)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
