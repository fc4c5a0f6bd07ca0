package playlist

import (
	"iter"
	"slices"

	"github.com/tejashwikalptaru/playring/internal/domain"
)

// flat is an ordered sequence of song ids with an integer cursor.
// pos is -1 when the sequence is empty and a valid index otherwise.
// The same id may appear more than once (a dequeued up-next song is
// appended even if it is already present).
type flat struct {
	ids []domain.SongID
	pos int
}

func newFlat() *flat {
	return &flat{pos: -1}
}

// Len returns the number of entries.
func (f *flat) Len() int { return len(f.ids) }

// Append adds id at the tail. The cursor moves to 0 only for the first entry.
func (f *flat) Append(id domain.SongID) {
	f.ids = append(f.ids, id)
	if len(f.ids) == 1 {
		f.pos = 0
	}
}

// PositionOf returns the first index holding id, or -1.
func (f *flat) PositionOf(id domain.SongID) int {
	return slices.Index(f.ids, id)
}

// Get returns the id at index i.
func (f *flat) Get(i int) (domain.SongID, bool) {
	if i < 0 || i >= len(f.ids) {
		return 0, false
	}
	return f.ids[i], true
}

// Current returns the id under the cursor.
func (f *flat) Current() (domain.SongID, bool) {
	return f.Get(f.pos)
}

// Remove deletes the first entry holding id. The cursor stays on the same
// entry when an earlier one is removed, and is clamped to the new last
// index (or -1) when it falls off the end.
func (f *flat) Remove(id domain.SongID) bool {
	i := f.PositionOf(id)
	if i < 0 {
		return false
	}
	f.ids = slices.Delete(f.ids, i, i+1)
	if i < f.pos {
		f.pos--
	}
	if f.pos >= len(f.ids) {
		f.pos = len(f.ids) - 1
	}
	return true
}

// DropLast deletes the tail entry and clamps the cursor.
func (f *flat) DropLast() {
	if len(f.ids) == 0 {
		return
	}
	f.ids = f.ids[:len(f.ids)-1]
	if f.pos >= len(f.ids) {
		f.pos = len(f.ids) - 1
	}
}

// All yields the ids in sequence order.
func (f *flat) All() iter.Seq[domain.SongID] {
	return slices.Values(f.ids)
}
