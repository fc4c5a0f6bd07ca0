// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the playring playlist engine.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// SongID identifies a song within one playlist engine.
// IDs are assigned monotonically starting at 1 and are never reused.
type SongID int

// String returns the decimal form of the id.
func (id SongID) String() string {
	return strconv.Itoa(int(id))
}

// ParseSongID parses a song id coming from a text interface (menu input, URL path).
// Returns ErrInvalidSongID for anything that is not a base-10 integer.
func ParseSongID(s string) (SongID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSongID, s)
	}
	return SongID(n), nil
}

// Song represents a single entry of a playlist.
//
// Identity is ID. AudioURL is the only field that changes after creation; it is
// filled in lazily by a preview lookup and the change is visible to every
// holder of the same record.
type Song struct {
	// ID is the engine-assigned identifier
	ID SongID `json:"id"`

	// Title is the song title
	Title string `json:"title"`

	// Artist is the performing artist name
	Artist string `json:"artist"`

	// DurationSec is the length in whole seconds (0 = unknown)
	DurationSec int `json:"duration_sec"`

	// AudioURL points at a playable preview, empty when unknown
	AudioURL string `json:"audio_url,omitempty"`
}

// String returns the display form "title - artist", plus " MM:SS" when the duration is known.
func (s Song) String() string {
	if s.DurationSec > 0 {
		return fmt.Sprintf("%s - %s %02d:%02d", s.Title, s.Artist, s.DurationSec/60, s.DurationSec%60)
	}
	return s.Title + " - " + s.Artist
}

// SongInput carries the caller-supplied fields of a new song.
type SongInput struct {
	Title       string `json:"title" csv:"title"`
	Artist      string `json:"artist" csv:"artist"`
	DurationSec int    `json:"duration_sec" csv:"duration_sec"`
	AudioURL    string `json:"audio_url,omitempty" csv:"audio_url"`
}

// Validate checks the input before it reaches a playlist engine.
func (in SongInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return NewValidationError("title", in.Title, "must not be empty")
	}
	if in.DurationSec < 0 {
		return NewValidationError("duration_sec", in.DurationSec, "must be zero or positive")
	}
	return nil
}

// Implementation names one of the two interchangeable playlist engines.
type Implementation string

const (
	// ImplCircular is the circular doubly linked ring engine
	ImplCircular Implementation = "circular"

	// ImplList is the flat indexed sequence engine
	ImplList Implementation = "list"
)

// ParseImplementation validates an implementation name.
func ParseImplementation(s string) (Implementation, error) {
	switch Implementation(s) {
	case ImplCircular, ImplList:
		return Implementation(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownImplementation, s)
	}
}

// Other returns the implementation that is not i.
func (i Implementation) Other() Implementation {
	if i == ImplCircular {
		return ImplList
	}
	return ImplCircular
}

// Title returns the capitalised display name ("Circular", "List").
func (i Implementation) Title() string {
	if i == ImplCircular {
		return "Circular"
	}
	return "List"
}

// TrackInfo is the metadata read from an audio file during a library scan.
type TrackInfo struct {
	// FilePath is the absolute path to the audio file
	FilePath string `json:"file_path"`

	// Title is the tag title, or the file name without extension
	Title string `json:"title"`

	// Artist is the tag artist, or "Unknown Artist"
	Artist string `json:"artist"`

	// Album is the tag album (informational)
	Album string `json:"album"`

	// Format is the container/tag format reported by the reader
	Format string `json:"format"`
}

// Input converts scanned metadata into a song input.
func (t TrackInfo) Input() SongInput {
	return SongInput{Title: t.Title, Artist: t.Artist}
}

// ScanProgress represents the progress of a library scan operation.
type ScanProgress struct {
	// CurrentFile is the file currently being scanned
	CurrentFile string `json:"current_file"`

	// FilesScanned is the number of files processed so far
	FilesScanned int `json:"files_scanned"`

	// TotalFiles is the total number of files to scan
	TotalFiles int `json:"total_files"`

	// TracksFound is the number of readable tracks found
	TracksFound int `json:"tracks_found"`
}

// Percentage returns the completion percentage (0-100), or -1 if total is unknown.
func (p ScanProgress) Percentage() float64 {
	if p.TotalFiles <= 0 {
		return -1
	}
	return float64(p.FilesScanned) / float64(p.TotalFiles) * 100.0
}

// Session is the logged-in user of the API layer.
type Session struct {
	User  string `json:"user"`
	Token string `json:"token"`
}
