package playlist

import (
	"iter"

	"github.com/tejashwikalptaru/playring/internal/domain"
)

// handle addresses a node in the ring arena. nilHandle means "no node".
type handle int32

const nilHandle handle = -1

type ringNode struct {
	id   domain.SongID
	prev handle
	next handle
}

// ring is a circular doubly linked list of song ids.
//
// Nodes live in an arena slice and link to each other by handle, so the
// cycle never involves owning pointers. Handles of removed nodes go to a
// free list and are reused by later appends.
//
// Lookup by id is a linear scan of at most size nodes.
type ring struct {
	nodes []ringNode
	free  []handle
	head  handle
	size  int
}

func newRing() *ring {
	return &ring{head: nilHandle}
}

// Len returns the number of live nodes.
func (r *ring) Len() int { return r.size }

// IsEmpty reports whether the ring holds no nodes.
func (r *ring) IsEmpty() bool { return r.size == 0 }

// Head returns the forward-iteration origin, or nilHandle when empty.
func (r *ring) Head() handle { return r.head }

// ID returns the song id stored at h.
func (r *ring) ID(h handle) domain.SongID { return r.nodes[h].id }

// After returns the successor of h. On a one-node ring it is h itself.
func (r *ring) After(h handle) handle { return r.nodes[h].next }

// Before returns the predecessor of h. On a one-node ring it is h itself.
func (r *ring) Before(h handle) handle { return r.nodes[h].prev }

// Append inserts id immediately before the head, which keeps insertion
// order when iterating from the head.
func (r *ring) Append(id domain.SongID) handle {
	h := r.alloc(id)
	if r.head == nilHandle {
		r.nodes[h].prev, r.nodes[h].next = h, h
		r.head = h
	} else {
		tail := r.nodes[r.head].prev
		r.nodes[h].prev = tail
		r.nodes[h].next = r.head
		r.nodes[tail].next = h
		r.nodes[r.head].prev = h
	}
	r.size++
	return h
}

// Find returns the node holding id, scanning from the head.
func (r *ring) Find(id domain.SongID) handle {
	return r.FindFrom(r.head, id)
}

// FindFrom scans at most size nodes forward from start.
func (r *ring) FindFrom(start handle, id domain.SongID) handle {
	if r.size == 0 {
		return nilHandle
	}
	if start == nilHandle {
		start = r.head
	}
	h := start
	for range r.size {
		if r.nodes[h].id == id {
			return h
		}
		h = r.nodes[h].next
	}
	return nilHandle
}

// Remove unlinks the node holding id. It returns false when the ring is
// empty or id is absent.
func (r *ring) Remove(id domain.SongID) bool {
	h := r.Find(id)
	if h == nilHandle {
		return false
	}
	r.unlink(h)
	return true
}

// unlink removes h, moving the head to its successor when h was the head.
func (r *ring) unlink(h handle) {
	if r.size == 1 {
		r.head = nilHandle
	} else {
		prev, next := r.nodes[h].prev, r.nodes[h].next
		r.nodes[prev].next = next
		r.nodes[next].prev = prev
		if h == r.head {
			r.head = next
		}
	}
	r.nodes[h] = ringNode{prev: nilHandle, next: nilHandle}
	r.free = append(r.free, h)
	r.size--
}

// All yields the ids of exactly size nodes forward from start (the head
// when start is nilHandle). The sequence can be ranged over repeatedly.
func (r *ring) All(start handle) iter.Seq[domain.SongID] {
	return func(yield func(domain.SongID) bool) {
		if r.size == 0 {
			return
		}
		h := start
		if h == nilHandle {
			h = r.head
		}
		for range r.size {
			if !yield(r.nodes[h].id) {
				return
			}
			h = r.nodes[h].next
		}
	}
}

func (r *ring) alloc(id domain.SongID) handle {
	if n := len(r.free); n > 0 {
		h := r.free[n-1]
		r.free = r.free[:n-1]
		r.nodes[h] = ringNode{id: id}
		return h
	}
	r.nodes = append(r.nodes, ringNode{id: id})
	return handle(len(r.nodes) - 1)
}
