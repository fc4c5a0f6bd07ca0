package ports

import (
	"context"
	"io"

	"github.com/tejashwikalptaru/playring/internal/domain"
)

// PreviewLookup finds a playable preview URL for a song.
//
// Implementations return domain.ErrLookupFailed (possibly wrapped) when they
// have no answer. The playlist core never calls a lookup itself; the
// playlist service does, outside its lock.
type PreviewLookup interface {
	Lookup(ctx context.Context, title, artist string) (string, error)
}

// SongSource yields song inputs for seeding a playlist.
type SongSource interface {
	// Name identifies the source in logs.
	Name() string

	// Songs returns the inputs in the order they should be added.
	Songs(ctx context.Context) ([]domain.SongInput, error)
}

// TagReader extracts metadata from an audio file.
type TagReader interface {
	// ReadTags reads the title, artist, album and format of r.
	// path is used for the title fallback and error messages.
	ReadTags(path string, r io.ReadSeeker) (domain.TrackInfo, error)
}
