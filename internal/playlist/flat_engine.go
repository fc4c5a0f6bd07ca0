package playlist

import (
	"iter"

	"github.com/tejashwikalptaru/playring/internal/domain"
)

// Flat is the navigation engine over an indexed sequence.
// Forward and backward steps wrap modulo the sequence length.
type Flat struct {
	navigation
	store *flat
}

var _ Engine = (*Flat)(nil)

// NewFlat returns an empty flat engine.
func NewFlat() *Flat {
	return &Flat{
		navigation: newNavigation(),
		store:      newFlat(),
	}
}

// Kind returns domain.ImplList.
func (f *Flat) Kind() domain.Implementation { return domain.ImplList }

// Len returns the number of entries in the sequence.
func (f *Flat) Len() int { return f.store.Len() }

// AddSong implements Engine.
func (f *Flat) AddSong(in domain.SongInput) *domain.Song {
	song := f.catalog.create(in)
	f.store.Append(song.ID)
	return song
}

// RemoveSong implements Engine. Only the first entry holding id is removed.
func (f *Flat) RemoveSong(id domain.SongID) bool {
	if f.store.Len() == 0 {
		return false
	}
	if cur, ok := f.store.Current(); ok && cur == id {
		queued := f.upNext.Len()
		f.Next()
		if cur, _ := f.store.Current(); cur == id && f.upNext.Len() < queued {
			// Next dequeued id itself and appended it. Take that entry back
			// and land on the successor of the original entry.
			f.store.DropLast()
			i := f.store.PositionOf(id)
			f.store.Remove(id)
			if n := f.store.Len(); n > 0 {
				f.store.pos = i % n
			}
			return true
		}
	}
	return f.store.Remove(id)
}

// Play implements Engine.
func (f *Flat) Play() *domain.Song {
	id, ok := f.store.Current()
	if !ok {
		return nil
	}
	return f.catalog.get(id)
}

// Next implements Engine.
//
// A dequeued song is appended to the tail, even when already present, and
// the cursor moves to it.
func (f *Flat) Next() *domain.Song {
	if id, ok := f.upNext.Dequeue(); ok {
		f.pushCurrent()
		f.store.Append(id)
		f.store.pos = f.store.Len() - 1
		return f.catalog.get(id)
	}

	n := f.store.Len()
	if n == 0 {
		return nil
	}
	if f.store.pos < 0 {
		f.store.pos = 0
		return f.Play()
	}
	f.pushCurrent()
	f.store.pos = (f.store.pos + 1) % n
	return f.Play()
}

// Previous implements Engine.
func (f *Flat) Previous() *domain.Song {
	if id, ok := f.history.Pop(); ok {
		if i := f.store.PositionOf(id); i >= 0 {
			f.store.pos = i
			return f.catalog.get(id)
		}
	}

	n := f.store.Len()
	if n == 0 {
		return nil
	}
	if f.store.pos < 0 {
		f.store.pos = 0
		return f.Play()
	}
	f.store.pos = (f.store.pos - 1 + n) % n
	return f.Play()
}

// EnqueueNext implements Engine.
func (f *Flat) EnqueueNext(id domain.SongID) bool {
	if f.store.PositionOf(id) < 0 {
		return false
	}
	f.upNext.Enqueue(id)
	return true
}

// ListSongs implements Engine.
func (f *Flat) ListSongs() iter.Seq[*domain.Song] {
	return f.resolve(f.store.All())
}

// Contains implements Engine.
func (f *Flat) Contains(id domain.SongID) bool {
	return f.store.PositionOf(id) >= 0
}

func (f *Flat) pushCurrent() {
	if id, ok := f.store.Current(); ok {
		f.history.Push(id)
	}
}
