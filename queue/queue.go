// Package queue provides a generic FIFO container backed by a growable ring
// buffer.
//
// Items are appended at the tail and removed from the head. When the backing
// store is full, its capacity doubles (starting at 4) and the items are
// compacted to the start of the new store in FIFO order.
package queue

import (
	"errors"
	"fmt"
	"iter"
)

// baseCapacity is the capacity allocated by the first growth of an empty queue.
const baseCapacity = 4

var (
	// ErrEmpty is returned by operations that need at least one item.
	ErrEmpty = errors.New("empty queue")
	// ErrAllocation is returned when the backing store cannot grow.
	ErrAllocation = errors.New("unable to allocate a new buffer for queue")
	// ErrOutOfRange is returned when an index does not address a queued item.
	ErrOutOfRange = errors.New("index out of range")
)

// Queue is a FIFO container of T.
//
// The zero value is an empty queue ready to use.
// A Queue is not safe for concurrent use.
type Queue[T any] struct {
	data  []T // ring storage, len(data) is the capacity
	head  int // index of the first item
	tail  int // index where the next item goes
	size  int
	limit int // maximum capacity, 0 means unbounded
}

// Option configures a Queue created by New.
type Option func(*options)

type options struct {
	capacity int
	limit    int
}

// WithCapacity preallocates the backing store for n items.
func WithCapacity(n int) Option {
	return func(o *options) { o.capacity = n }
}

// WithLimit bounds the backing store to n items. A Push that would grow the
// store beyond n fails with ErrAllocation.
func WithLimit(n int) Option {
	return func(o *options) { o.limit = n }
}

// New creates an empty queue.
func New[T any](opts ...Option) *Queue[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	q := &Queue[T]{limit: o.limit}
	if o.capacity > 0 {
		if o.limit > 0 && o.capacity > o.limit {
			o.capacity = o.limit
		}
		q.data = make([]T, o.capacity)
	}
	return q
}

// IsEmpty reports whether the queue holds no item.
func (q *Queue[T]) IsEmpty() bool { return q.size == 0 }

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return q.size }

// Cap returns the number of items the current backing store can hold.
func (q *Queue[T]) Cap() int { return len(q.data) }

// Clear empties the queue.
//
// The backing store is kept and reused by the next pushes.
func (q *Queue[T]) Clear() {
	clear(q.data)
	q.head, q.tail, q.size = 0, 0, 0
}

// Push appends item at the tail, growing the backing store if it is full.
func (q *Queue[T]) Push(item T) error {
	if q.size == len(q.data) {
		if err := q.grow(); err != nil {
			return err
		}
	}
	q.data[q.tail] = item
	q.tail = (q.tail + 1) % len(q.data)
	q.size++
	return nil
}

// Grow makes room for n more items so that the next n pushes cannot fail.
//
// The store grows with the same doubling policy as Push. On error the queue is
// left unchanged.
func (q *Queue[T]) Grow(n int) error {
	need := q.size + n
	newCap := len(q.data)
	for newCap < need {
		newCap = max(baseCapacity, 2*newCap)
	}
	if newCap == len(q.data) {
		return nil
	}
	if q.limit > 0 && newCap > q.limit {
		return fmt.Errorf("%w: growing to %d exceeds the limit of %d", ErrAllocation, newCap, q.limit)
	}
	q.resize(newCap)
	return nil
}

// grow reallocates the backing store to max(4, 2*capacity) and moves the
// items to its start in FIFO order.
func (q *Queue[T]) grow() error {
	newCap := max(baseCapacity, 2*len(q.data))
	if q.limit > 0 && newCap > q.limit {
		return fmt.Errorf("%w: growing to %d exceeds the limit of %d", ErrAllocation, newCap, q.limit)
	}
	q.resize(newCap)
	return nil
}

func (q *Queue[T]) resize(capacity int) {
	data := make([]T, capacity)
	q.copyTo(data)
	q.data = data
	q.head = 0
	q.tail = q.size % capacity
}

// copyTo copies the items in FIFO order at the start of dst.
// dst must be able to hold q.size items.
func (q *Queue[T]) copyTo(dst []T) {
	if q.size == 0 {
		return
	}
	if q.head < q.tail {
		copy(dst, q.data[q.head:q.tail])
		return
	}
	// the items wrap around the end of the store.
	n := copy(dst, q.data[q.head:])
	copy(dst[n:], q.data[:q.tail])
}

// PopFront removes and returns the item at the head.
func (q *Queue[T]) PopFront() (T, error) {
	var zero T
	if q.size == 0 {
		return zero, fmt.Errorf("pop: %w", ErrEmpty)
	}
	item := q.data[q.head]
	q.data[q.head] = zero
	q.head = (q.head + 1) % len(q.data)
	q.size--
	return item, nil
}

// Front returns a pointer to the item at the head.
//
// The pointer is valid until the next Push or Clear.
func (q *Queue[T]) Front() (*T, error) {
	if q.size == 0 {
		return nil, fmt.Errorf("front: %w", ErrEmpty)
	}
	return &q.data[q.head], nil
}

// Back returns a pointer to the item at the tail.
//
// The pointer is valid until the next Push or Clear.
func (q *Queue[T]) Back() (*T, error) {
	if q.size == 0 {
		return nil, fmt.Errorf("back: %w", ErrEmpty)
	}
	last := (q.tail - 1 + len(q.data)) % len(q.data)
	return &q.data[last], nil
}

// At returns the i-th item counting from the head.
func (q *Queue[T]) At(i int) (T, error) {
	if i < 0 || i >= q.size {
		var zero T
		return zero, fmt.Errorf("at %d of %d: %w", i, q.size, ErrOutOfRange)
	}
	return q.data[(q.head+i)%len(q.data)], nil
}

// All iterates over the items from head to tail without removing them.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < q.size; i++ {
			if !yield(q.data[(q.head+i)%len(q.data)]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of q.
//
// The copy has its own backing store of the same capacity, and holds the same
// items in the same order. Items are copied by assignment, so a T holding
// pointers shares the pointed values.
func (q *Queue[T]) Clone() *Queue[T] {
	c := &Queue[T]{limit: q.limit, size: q.size}
	if len(q.data) == 0 {
		return c
	}
	c.data = make([]T, len(q.data))
	q.copyTo(c.data)
	c.tail = q.size % len(c.data)
	return c
}
