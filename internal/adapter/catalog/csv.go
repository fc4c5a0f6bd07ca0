// Package catalog provides ports.SongSource implementations for seeding.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// CSVSource reads songs from a CSV file with the header
// title,artist,duration_sec,audio_url. Only title is required.
type CSVSource struct {
	path string
}

// NewCSVSource creates a source for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{path: path}
}

// Name returns the file path.
func (s *CSVSource) Name() string { return "csv:" + s.path }

// Songs parses the file. Rows with an empty title are rejected.
func (s *CSVSource) Songs(_ context.Context) ([]domain.SongInput, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrFileNotFound, s.path)
	}
	if err != nil {
		return nil, err
	}
	defer func(c io.Closer) {
		_ = c.Close()
	}(f)

	return ParseCSV(f)
}

// ParseCSV decodes song rows from r.
func ParseCSV(r io.Reader) ([]domain.SongInput, error) {
	entries := make([]domain.SongInput, 0)
	if err := gocsv.Unmarshal(r, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse songs csv: %w", err)
	}

	for i := range entries {
		entries[i].Title = strings.TrimSpace(entries[i].Title)
		entries[i].Artist = strings.TrimSpace(entries[i].Artist)
		entries[i].AudioURL = strings.TrimSpace(entries[i].AudioURL)
		if entries[i].Title == "" {
			return nil, domain.NewValidationError("title", fmt.Sprintf("row %d", i+1), "must not be empty")
		}
		if err := entries[i].Validate(); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

// WriteCSV encodes songs in the format ParseCSV reads.
func WriteCSV(w io.Writer, songs []domain.SongInput) error {
	return gocsv.Marshal(songs, w)
}

var _ ports.SongSource = (*CSVSource)(nil)
