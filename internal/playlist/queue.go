package playlist

import "iter"

// compactThreshold is the minimum number of consumed slots before the
// queue considers reclaiming its front.
const compactThreshold = 32

// Queue is a FIFO container backed by a slice and a read offset.
// Consumed slots are reclaimed once more than compactThreshold of them
// accumulate and they outnumber the live tail.
type Queue[T any] struct {
	items []T
	head  int
}

// Enqueue appends item at the back.
func (q *Queue[T]) Enqueue(item T) {
	q.items = append(q.items, item)
}

// Dequeue removes and returns the front item.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.head >= len(q.items) {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head++
	if q.head > compactThreshold && q.head > len(q.items)/2 {
		q.items = append([]T(nil), q.items[q.head:]...)
		q.head = 0
	}
	return item, true
}

// Peek returns the front item without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.head >= len(q.items) {
		var zero T
		return zero, false
	}
	return q.items[q.head], true
}

// Len returns the number of pending items.
func (q *Queue[T]) Len() int { return len(q.items) - q.head }

// All yields pending items front first.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := q.head; i < len(q.items); i++ {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}
