// Package tags reads audio file metadata with github.com/dhowden/tag.
package tags

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// UnknownArtist is used when a file carries no artist tag.
const UnknownArtist = "Unknown Artist"

// Reader implements ports.TagReader.
type Reader struct{}

// NewReader creates a tag reader.
func NewReader() *Reader { return &Reader{} }

// ReadTags reads the tags of r. A file without tags is not an error: the
// title falls back to the file name without extension and the artist to
// UnknownArtist.
func (Reader) ReadTags(path string, r io.ReadSeeker) (domain.TrackInfo, error) {
	info := domain.TrackInfo{
		FilePath: path,
		Title:    strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Artist:   UnknownArtist,
	}

	metadata, err := tag.ReadFrom(r)
	switch {
	case errors.Is(err, tag.ErrNoTagsFound):
		return info, nil
	case err != nil:
		return info, fmt.Errorf("failed to read tags of %s: %w", path, err)
	}

	if title := strings.TrimSpace(metadata.Title()); title != "" {
		info.Title = title
	}
	if artist := strings.TrimSpace(metadata.Artist()); artist != "" {
		info.Artist = artist
	}
	info.Album = strings.TrimSpace(metadata.Album())
	if format := metadata.Format(); format != tag.UnknownFormat {
		info.Format = string(format)
	}
	return info, nil
}

var _ ports.TagReader = Reader{}
