package catalog

import (
	"context"
	"slices"

	"github.com/tejashwikalptaru/playring/internal/adapter/lookup"
	"github.com/tejashwikalptaru/playring/internal/domain"
	"github.com/tejashwikalptaru/playring/internal/ports"
)

// Static is a SongSource over a fixed list.
type Static struct {
	name  string
	songs []domain.SongInput
}

// NewStatic creates a source named name.
func NewStatic(name string, songs []domain.SongInput) *Static {
	return &Static{name: name, songs: songs}
}

// Name implements ports.SongSource.
func (s *Static) Name() string { return s.name }

// Songs returns a copy of the list.
func (s *Static) Songs(context.Context) ([]domain.SongInput, error) {
	return slices.Clone(s.songs), nil
}

// Popular is the sample set seeded by POST /seed. Audio URLs are left empty
// so they go through the preview lookup.
func Popular() *Static {
	return NewStatic("popular", []domain.SongInput{
		{Title: "Blinding Lights", Artist: "The Weeknd", DurationSec: 200},
		{Title: "Shape of You", Artist: "Ed Sheeran", DurationSec: 233},
		{Title: "Levitating", Artist: "Dua Lipa", DurationSec: 203},
		{Title: "Someone Like You", Artist: "Adele", DurationSec: 285},
	})
}

// Demo is the SoundHelix sample set with playable URLs filled in; it needs
// no network lookup.
func Demo() *Static {
	titles := []string{"SoundHelix Song 1", "SoundHelix Song 2", "SoundHelix Song 3", "SoundHelix Song 4"}
	durations := []int{200, 233, 203, 285}

	songs := make([]domain.SongInput, len(titles))
	for i, title := range titles {
		songs[i] = domain.SongInput{
			Title:       title,
			Artist:      "SoundHelix",
			DurationSec: durations[i],
			AudioURL:    lookup.DemoURLs[title],
		}
	}
	return NewStatic("demo", songs)
}

var _ ports.SongSource = (*Static)(nil)
