package playlist

import (
	"iter"

	"github.com/tejashwikalptaru/playring/internal/domain"
)

// Ring is the navigation engine over a circular doubly linked ring.
// Stepping forward from the last song wraps to the first.
type Ring struct {
	navigation
	store   *ring
	current handle
}

var _ Engine = (*Ring)(nil)

// NewRing returns an empty ring engine.
func NewRing() *Ring {
	return &Ring{
		navigation: newNavigation(),
		store:      newRing(),
		current:    nilHandle,
	}
}

// Kind returns domain.ImplCircular.
func (r *Ring) Kind() domain.Implementation { return domain.ImplCircular }

// Len returns the number of songs in the ring.
func (r *Ring) Len() int { return r.store.Len() }

// AddSong implements Engine.
func (r *Ring) AddSong(in domain.SongInput) *domain.Song {
	song := r.catalog.create(in)
	r.store.Append(song.ID)
	if r.current == nilHandle {
		r.current = r.store.Head()
	}
	return song
}

// RemoveSong implements Engine. The search starts at the (possibly moved)
// cursor and covers the whole ring.
func (r *Ring) RemoveSong(id domain.SongID) bool {
	if r.store.IsEmpty() {
		return false
	}
	if r.current != nilHandle && r.store.ID(r.current) == id {
		r.Next()
	}
	h := r.store.FindFrom(r.current, id)
	if h == nilHandle {
		return false
	}
	succ := r.store.After(h)
	r.store.unlink(h)
	// Next can land back on the doomed node (one-node ring, or the song
	// was itself up next).
	if r.current == h {
		if r.store.IsEmpty() {
			r.current = nilHandle
		} else {
			r.current = succ
		}
	}
	return true
}

// Play implements Engine.
func (r *Ring) Play() *domain.Song {
	if r.current == nilHandle {
		return nil
	}
	return r.catalog.get(r.store.ID(r.current))
}

// Next implements Engine.
//
// A dequeued song that is no longer in the ring is appended again and
// becomes current.
func (r *Ring) Next() *domain.Song {
	if id, ok := r.upNext.Dequeue(); ok {
		if r.current != nilHandle {
			r.history.Push(r.store.ID(r.current))
		}
		h := r.store.Find(id)
		if h == nilHandle {
			h = r.store.Append(id)
		}
		r.current = h
		return r.catalog.get(id)
	}

	if r.current == nilHandle {
		return r.activateHead()
	}

	r.history.Push(r.store.ID(r.current))
	r.current = r.store.After(r.current)
	return r.Play()
}

// Previous implements Engine. A history entry whose song has left the ring
// is discarded and the cursor steps backward instead.
func (r *Ring) Previous() *domain.Song {
	if id, ok := r.history.Pop(); ok {
		if h := r.store.Find(id); h != nilHandle {
			r.current = h
			return r.catalog.get(id)
		}
	}

	if r.current == nilHandle {
		return r.activateHead()
	}

	r.current = r.store.Before(r.current)
	return r.Play()
}

// EnqueueNext implements Engine.
func (r *Ring) EnqueueNext(id domain.SongID) bool {
	if r.store.FindFrom(r.current, id) == nilHandle {
		return false
	}
	r.upNext.Enqueue(id)
	return true
}

// ListSongs implements Engine. Iteration starts at the head.
func (r *Ring) ListSongs() iter.Seq[*domain.Song] {
	return r.resolve(r.store.All(nilHandle))
}

// Contains implements Engine.
func (r *Ring) Contains(id domain.SongID) bool {
	return r.store.Find(id) != nilHandle
}

func (r *Ring) activateHead() *domain.Song {
	if r.store.IsEmpty() {
		return nil
	}
	r.current = r.store.Head()
	return r.Play()
}
