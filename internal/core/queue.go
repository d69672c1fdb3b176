package core

import "errors"

// ErrEmptyQueue is returned when removing from a queue with no items.
var ErrEmptyQueue = errors.New("queue is empty")

// Queue is an immutable FIFO. Add and Remove return a new queue and leave
// the receiver untouched, so a Queue can be shared freely between state
// snapshots. Every mutation bumps Version, which lets observers detect a
// change without comparing contents.
type Queue[T any] struct {
	items   []T
	version uint64
}

// NewQueue builds a queue holding items in order.
func NewQueue[T any](items ...T) Queue[T] {
	if len(items) == 0 {
		return Queue[T]{}
	}
	dup := make([]T, len(items))
	copy(dup, items)
	return Queue[T]{items: dup}
}

// Add returns a queue with v appended at the tail.
func (q Queue[T]) Add(v T) Queue[T] {
	next := make([]T, len(q.items), len(q.items)+1)
	copy(next, q.items)
	return Queue[T]{items: append(next, v), version: q.version + 1}
}

// Remove returns the head and a queue without it. On an empty queue it
// returns ErrEmptyQueue and q unchanged.
func (q Queue[T]) Remove() (T, Queue[T], error) {
	var zero T
	if len(q.items) == 0 {
		return zero, q, ErrEmptyQueue
	}
	head := q.items[0]
	rest := make([]T, len(q.items)-1)
	copy(rest, q.items[1:])
	return head, Queue[T]{items: rest, version: q.version + 1}, nil
}

// Peek returns the head without removing it.
func (q Queue[T]) Peek() (T, bool) {
	if len(q.items) == 0 {
		var zero T
		return zero, false
	}
	return q.items[0], true
}

// Len returns the number of queued items.
func (q Queue[T]) Len() int {
	return len(q.items)
}

// IsEmpty reports whether the queue has no items.
func (q Queue[T]) IsEmpty() bool {
	return len(q.items) == 0
}

// Items returns a copy of the queued items in FIFO order.
func (q Queue[T]) Items() []T {
	dup := make([]T, len(q.items))
	copy(dup, q.items)
	return dup
}

// Version counts the mutations that produced this queue.
func (q Queue[T]) Version() uint64 {
	return q.version
}
