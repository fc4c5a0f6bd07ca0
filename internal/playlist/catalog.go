// Package playlist implements the navigation core: two interchangeable song
// containers (a circular ring and a flat sequence) behind one cursor-based
// Engine, plus the history stack and up-next queue they share.
//
// The package is not safe for concurrent use. Callers that share an engine
// between goroutines must serialise access (see service.PlaylistService).
package playlist

import "github.com/tejashwikalptaru/playring/internal/domain"

// catalog owns every song record an engine has ever created, keyed by id.
// Stores, history and up-next hold ids only and resolve them here, so a
// mutation of a record is visible through all of them.
// Removed songs stay in the catalog because history and up-next may still
// reference them.
type catalog struct {
	songs  map[domain.SongID]*domain.Song
	nextID domain.SongID
}

func newCatalog() *catalog {
	return &catalog{
		songs:  make(map[domain.SongID]*domain.Song),
		nextID: 1,
	}
}

// create assigns the next unused id.
func (c *catalog) create(in domain.SongInput) *domain.Song {
	song := &domain.Song{
		ID:          c.nextID,
		Title:       in.Title,
		Artist:      in.Artist,
		DurationSec: in.DurationSec,
		AudioURL:    in.AudioURL,
	}
	c.songs[song.ID] = song
	c.nextID++
	return song
}

func (c *catalog) get(id domain.SongID) *domain.Song {
	return c.songs[id]
}
