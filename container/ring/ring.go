package ring

import (
	"fmt"
	"iter"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/internal/growth"
)

// Buffer is a growable ring buffer. The zero value is an empty buffer with
// capacity 0.
type Buffer[T any] struct {
	// Items [head, head+length) modulo len(storage) are valid.
	// Invariants:
	// - If len(storage) == 0, head == 0; otherwise head < len(storage).
	// - length <= len(storage).
	storage []T
	head    int
	length  int
}

// New returns an empty buffer with capacity 0.
func New[T any]() *Buffer[T] {
	return &Buffer[T]{}
}

// WithCapacity returns an empty buffer with exactly n slots.
func WithCapacity[T any](a alloc.Allocator[T], n int) (*Buffer[T], error) {
	s, err := a.Alloc(n)
	if err != nil {
		return nil, fmt.Errorf("ring: reserve %d: %w", n, err)
	}
	return &Buffer[T]{storage: s}, nil
}

// Len returns the number of queued elements.
func (r *Buffer[T]) Len() int { return r.length }

// Cap returns the number of slots.
func (r *Buffer[T]) Cap() int { return len(r.storage) }

// Enqueue appends v at the logical end, growing when every slot is taken.
func (r *Buffer[T]) Enqueue(a alloc.Allocator[T], v T) error {
	if r.length+1 > len(r.storage) {
		if err := r.resize(a, r.length+1); err != nil {
			return err
		}
	}
	r.storage[r.slot(r.head+r.length)] = v
	r.length++
	return nil
}

// EnqueueBulk appends vs in order. The copy is split in two when it crosses
// the physical end of the buffer.
func (r *Buffer[T]) EnqueueBulk(a alloc.Allocator[T], vs []T) error {
	k := len(vs)
	if k == 0 {
		return nil
	}
	need, err := growth.Need(r.length, k)
	if err != nil {
		return err
	}
	if need > len(r.storage) {
		if err := r.resize(a, need); err != nil {
			return err
		}
	}

	start := r.slot(r.head + r.length)
	diff := len(r.storage) - start // contiguous run before the wrap
	if k > diff {
		copy(r.storage[start:], vs[:diff])
		copy(r.storage, vs[diff:])
	} else {
		copy(r.storage[start:], vs)
	}
	r.length += k
	return nil
}

// Dequeue removes and returns the oldest element, or ok = false when empty.
func (r *Buffer[T]) Dequeue() (T, bool) {
	var zero T
	if r.length == 0 {
		return zero, false
	}
	v := r.storage[r.head]
	r.storage[r.head] = zero
	r.head = r.slot(r.head + 1)
	r.length--
	return v, true
}

// Peek returns the oldest element without removing it.
func (r *Buffer[T]) Peek() (T, bool) {
	if r.length == 0 {
		var zero T
		return zero, false
	}
	return r.storage[r.head], true
}

// PeekRef returns a pointer to the oldest element. The pointer is valid until
// the next operation that may grow the buffer.
func (r *Buffer[T]) PeekRef() (*T, bool) {
	if r.length == 0 {
		return nil, false
	}
	return &r.storage[r.head], true
}

// All iterates from oldest to newest.
func (r *Buffer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := range r.length {
			if !yield(r.storage[r.slot(r.head+i)]) {
				return
			}
		}
	}
}

// Release returns the buffer to a and resets to empty.
// It must be called exactly once, with the allocator that grew the buffer.
func (r *Buffer[T]) Release(a alloc.Allocator[T]) {
	if r.storage != nil {
		a.Free(r.storage)
	}
	r.storage = nil
	r.head = 0
	r.length = 0
}

// slot maps a logical offset from index 0 onto a physical index.
// i is always below 2*len(storage).
func (r *Buffer[T]) slot(i int) int {
	c := len(r.storage)
	if growth.IsPow2(c) {
		return i & (c - 1)
	}
	return i % c
}

// resize grows to pow2(2*hint+1) and un-wraps the live range to offset 0.
func (r *Buffer[T]) resize(a alloc.Allocator[T], hint int) error {
	want, err := growth.Pow2(hint)
	if err != nil {
		return err
	}
	s, err := growth.Grow(a, r.storage, want, r.head, r.length)
	if err != nil {
		return fmt.Errorf("ring: grow %d -> %d: %w", len(r.storage), want, err)
	}
	r.storage = s
	r.head = 0
	return nil
}
