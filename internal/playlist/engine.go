package playlist

import (
	"fmt"
	"iter"

	"github.com/tejashwikalptaru/playring/internal/domain"
)

// Engine is the cursor-based navigation contract shared by the ring and
// flat variants.
//
// Song pointers returned by an engine are the engine's own records: the
// same pointer is handed out for the same id everywhere (current, history,
// up-next, listings). Callers must not keep them across calls that are not
// serialised with the engine.
//
// No operation fails. Absence is reported as nil or false.
type Engine interface {
	// Kind names the variant.
	Kind() domain.Implementation

	// AddSong creates a song with the next unused id and appends it.
	// The first song added to an empty engine becomes current.
	AddSong(in domain.SongInput) *domain.Song

	// RemoveSong deletes id from the store. When id is current the cursor
	// advances first (as Next does). Returns false if id is not in the store.
	RemoveSong(id domain.SongID) bool

	// Play returns the current song without moving the cursor.
	Play() *domain.Song

	// Next moves to the front of up-next if any, otherwise one step
	// forward, recording the departed song in history.
	Next() *domain.Song

	// Previous moves to the last song in history when it is still in the
	// store, otherwise one step backward.
	Previous() *domain.Song

	// EnqueueNext schedules a song of the store to be played by the next
	// call to Next. Returns false if id is not in the store.
	EnqueueNext(id domain.SongID) bool

	// ListSongs yields the store in order. The sequence is restartable.
	ListSongs() iter.Seq[*domain.Song]

	// History yields previously current songs, most recent first.
	History() iter.Seq[*domain.Song]

	// UpNext yields scheduled songs, front first.
	UpNext() iter.Seq[*domain.Song]

	// Song resolves any id this engine has issued, including removed songs.
	Song(id domain.SongID) (*domain.Song, bool)

	// Contains reports whether id is currently in the store.
	Contains(id domain.SongID) bool

	// SetAudioURL updates the shared record of id.
	SetAudioURL(id domain.SongID, url string) bool

	// Len returns the number of songs in the store.
	Len() int
}

// New returns an empty engine of the given kind.
func New(kind domain.Implementation) (Engine, error) {
	switch kind {
	case domain.ImplCircular:
		return NewRing(), nil
	case domain.ImplList:
		return NewFlat(), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownImplementation, kind)
	}
}

// navigation is the state both variants share apart from their store.
type navigation struct {
	catalog *catalog
	history Stack[domain.SongID]
	upNext  Queue[domain.SongID]
}

func newNavigation() navigation {
	return navigation{catalog: newCatalog()}
}

func (n *navigation) Song(id domain.SongID) (*domain.Song, bool) {
	s := n.catalog.get(id)
	return s, s != nil
}

func (n *navigation) SetAudioURL(id domain.SongID, url string) bool {
	s := n.catalog.get(id)
	if s == nil {
		return false
	}
	s.AudioURL = url
	return true
}

func (n *navigation) History() iter.Seq[*domain.Song] {
	return n.resolve(n.history.All())
}

func (n *navigation) UpNext() iter.Seq[*domain.Song] {
	return n.resolve(n.upNext.All())
}

func (n *navigation) resolve(ids iter.Seq[domain.SongID]) iter.Seq[*domain.Song] {
	return func(yield func(*domain.Song) bool) {
		for id := range ids {
			if !yield(n.catalog.get(id)) {
				return
			}
		}
	}
}
