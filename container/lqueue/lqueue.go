package lqueue

import (
	"fmt"
	"iter"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/internal/growth"
)

// Queue is a FIFO queue with explicit head-side compaction. The zero value is
// an empty queue with capacity 0.
type Queue[T any] struct {
	storage []T
	head    int // next element to dequeue
	tail    int // next slot to enqueue into
}

// New returns an empty queue with capacity 0.
func New[T any]() *Queue[T] {
	return &Queue[T]{}
}

// WithCapacity returns an empty queue pre-sized to n elements.
func WithCapacity[T any](a alloc.Allocator[T], n int) (*Queue[T], error) {
	s, err := a.Alloc(n)
	if err != nil {
		return nil, fmt.Errorf("lqueue: reserve %d: %w", n, err)
	}
	return &Queue[T]{storage: s}, nil
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int { return q.tail - q.head }

// Cap returns the size of the backing buffer, waste included.
func (q *Queue[T]) Cap() int { return len(q.storage) }

// Head returns the number of wasted slots before the first live element.
func (q *Queue[T]) Head() int { return q.head }

// Enqueue appends v at the tail.
func (q *Queue[T]) Enqueue(a alloc.Allocator[T], v T) error {
	if q.tail == len(q.storage) {
		if err := q.resize(a, q.Len()+1); err != nil {
			return err
		}
	}
	q.storage[q.tail] = v
	q.tail++
	return nil
}

// EnqueueBulk appends vs in order, resizing at most once.
func (q *Queue[T]) EnqueueBulk(a alloc.Allocator[T], vs []T) error {
	k := len(vs)
	end, err := growth.Need(q.tail, k)
	if err != nil {
		return err
	}
	if end > len(q.storage) {
		hint, err := growth.Need(q.Len(), k)
		if err != nil {
			return err
		}
		if err := q.resize(a, hint); err != nil {
			return err
		}
	}
	copy(q.storage[q.tail:], vs)
	q.tail += k
	return nil
}

// Dequeue removes and returns the head element, or ok = false when empty.
// The vacated slot becomes waste; Dequeue never compacts.
func (q *Queue[T]) Dequeue() (T, bool) {
	var zero T
	if q.head == q.tail {
		return zero, false
	}
	v := q.storage[q.head]
	q.storage[q.head] = zero
	q.head++
	return v, true
}

// Peek returns the head element without removing it.
func (q *Queue[T]) Peek() (T, bool) {
	if q.head == q.tail {
		var zero T
		return zero, false
	}
	return q.storage[q.head], true
}

// PeekRef returns a pointer to the head element. The pointer is valid until
// the next operation that may grow or compact the queue.
func (q *Queue[T]) PeekRef() (*T, bool) {
	if q.head == q.tail {
		return nil, false
	}
	return &q.storage[q.head], true
}

// Compact shifts the live range to offset 0, reclaiming the waste before head.
// It is a no-op when head is already 0.
func (q *Queue[T]) Compact() {
	if q.head == 0 {
		return
	}
	n := copy(q.storage, q.storage[q.head:q.tail])
	clear(q.storage[n:q.tail])
	q.head = 0
	q.tail = n
}

// All iterates from head to tail.
func (q *Queue[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := q.head; i < q.tail; i++ {
			if !yield(q.storage[i]) {
				return
			}
		}
	}
}

// Release returns the buffer to a and resets the queue to empty.
// It must be called exactly once, with the allocator that grew the queue.
func (q *Queue[T]) Release(a alloc.Allocator[T]) {
	if q.storage != nil {
		a.Free(q.storage)
	}
	q.storage = nil
	q.head = 0
	q.tail = 0
}

// resize makes room for hint live elements. It compacts instead of
// allocating when the waste alone covers the 2*hint+1 target, or when the
// target would not exceed the current capacity.
//
// Post: head == 0, tail == Len().
func (q *Queue[T]) resize(a alloc.Allocator[T], hint int) error {
	want, err := growth.Hinted(hint)
	if err != nil {
		return err
	}
	if q.head >= want || want <= len(q.storage) {
		q.Compact()
		return nil
	}

	n := q.Len()
	s, err := growth.Grow(a, q.storage, want, q.head, n)
	if err != nil {
		return fmt.Errorf("lqueue: grow %d -> %d: %w", len(q.storage), want, err)
	}
	q.storage = s
	q.head = 0
	q.tail = n
	return nil
}
