package darray

import (
	"fmt"
	"iter"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/internal/buf"
	"github.com/joshuapare/contig/internal/growth"
	"github.com/joshuapare/contig/pkg/types"
)

// Array is a contiguous growable array. The zero value is an empty array with
// capacity 0.
type Array[T any] struct {
	storage  []T // len(storage) is the capacity
	occupied int
}

// New returns an empty array with capacity 0.
func New[T any]() *Array[T] {
	return &Array[T]{}
}

// WithCapacity returns an empty array pre-sized to n elements.
func WithCapacity[T any](a alloc.Allocator[T], n int) (*Array[T], error) {
	s, err := a.Alloc(n)
	if err != nil {
		return nil, fmt.Errorf("darray: reserve %d: %w", n, err)
	}
	return &Array[T]{storage: s}, nil
}

// Len returns the number of live elements.
func (d *Array[T]) Len() int { return d.occupied }

// Cap returns the number of elements the array can hold before growing.
func (d *Array[T]) Cap() int { return len(d.storage) }

// Append writes v after the last element, growing to 2*Cap+1 when full.
func (d *Array[T]) Append(a alloc.Allocator[T], v T) error {
	if d.occupied == len(d.storage) {
		if err := d.growAmortized(a); err != nil {
			return err
		}
	}
	d.storage[d.occupied] = v
	d.occupied++
	return nil
}

// AppendBulk appends vs in order, growing at most once.
func (d *Array[T]) AppendBulk(a alloc.Allocator[T], vs []T) error {
	if err := d.reserve(a, len(vs)); err != nil {
		return err
	}
	copy(d.storage[d.occupied:], vs)
	d.occupied += len(vs)
	return nil
}

// InsertAt inserts v at pos, shifting [pos, Len) right by one.
// pos == Len appends. pos > Len returns types.ErrOutOfBounds.
func (d *Array[T]) InsertAt(a alloc.Allocator[T], v T, pos int) error {
	if !buf.InRangeIncl(pos, d.occupied) {
		return fmt.Errorf("darray: insert at %d (len %d): %w", pos, d.occupied, types.ErrOutOfBounds)
	}
	if d.occupied+1 > len(d.storage) {
		if err := d.growAmortized(a); err != nil {
			return err
		}
	}
	copy(d.storage[pos+1:d.occupied+1], d.storage[pos:d.occupied])
	d.storage[pos] = v
	d.occupied++
	return nil
}

// InsertBulkAt inserts vs at pos, shifting [pos, Len) right by len(vs).
// Bounds follow InsertAt.
func (d *Array[T]) InsertBulkAt(a alloc.Allocator[T], vs []T, pos int) error {
	if !buf.InRangeIncl(pos, d.occupied) {
		return fmt.Errorf("darray: insert %d at %d (len %d): %w", len(vs), pos, d.occupied, types.ErrOutOfBounds)
	}
	if err := d.reserve(a, len(vs)); err != nil {
		return err
	}
	k := len(vs)
	copy(d.storage[pos+k:d.occupied+k], d.storage[pos:d.occupied])
	copy(d.storage[pos:pos+k], vs)
	d.occupied += k
	return nil
}

// DeleteAt removes and returns the element at pos, shifting the tail left.
func (d *Array[T]) DeleteAt(pos int) (T, error) {
	if !buf.InRange(pos, d.occupied) {
		var zero T
		return zero, fmt.Errorf("darray: delete at %d (len %d): %w", pos, d.occupied, types.ErrOutOfBounds)
	}
	return d.DeleteAtUnchecked(pos), nil
}

// DeleteAtUnchecked removes and returns the element at pos.
//
// Preconditions: 0 <= pos < Len.
func (d *Array[T]) DeleteAtUnchecked(pos int) T {
	v := d.storage[pos]
	copy(d.storage[pos:], d.storage[pos+1:d.occupied])
	d.occupied--
	var zero T
	d.storage[d.occupied] = zero
	return v
}

// Get returns the element at pos, or ok = false when pos is out of range.
func (d *Array[T]) Get(pos int) (T, bool) {
	if !buf.InRange(pos, d.occupied) {
		var zero T
		return zero, false
	}
	return d.storage[pos], true
}

// GetUnchecked returns the element at pos.
//
// Preconditions: 0 <= pos < Len.
func (d *Array[T]) GetUnchecked(pos int) T {
	return d.storage[pos]
}

// GetRef returns a pointer to the element at pos, or ok = false when pos is
// out of range. The pointer is valid until the next growth.
func (d *Array[T]) GetRef(pos int) (*T, bool) {
	if !buf.InRange(pos, d.occupied) {
		return nil, false
	}
	return &d.storage[pos], true
}

// GetRefUnchecked returns a pointer to the element at pos.
//
// Preconditions: 0 <= pos < Len.
func (d *Array[T]) GetRefUnchecked(pos int) *T {
	return &d.storage[pos]
}

// Slice returns the live elements as a view into the buffer. The view is
// valid until the next mutation.
func (d *Array[T]) Slice() []T {
	return d.storage[:d.occupied:d.occupied]
}

// All iterates over index, value pairs in order.
func (d *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < d.occupied; i++ {
			if !yield(i, d.storage[i]) {
				return
			}
		}
	}
}

// Clear drops all elements but keeps the buffer.
func (d *Array[T]) Clear() {
	clear(d.storage[:d.occupied])
	d.occupied = 0
}

// Release returns the buffer to a and resets the array to empty.
// It must be called exactly once, with the allocator that grew the array.
func (d *Array[T]) Release(a alloc.Allocator[T]) {
	if d.storage != nil {
		a.Free(d.storage)
	}
	d.storage = nil
	d.occupied = 0
}

func (d *Array[T]) growAmortized(a alloc.Allocator[T]) error {
	n, err := growth.Amortized(len(d.storage))
	if err != nil {
		return err
	}
	return d.resizeUp(a, n)
}

// reserve makes room for k more elements, growing exactly to fit.
func (d *Array[T]) reserve(a alloc.Allocator[T], k int) error {
	need, err := growth.Need(d.occupied, k)
	if err != nil {
		return err
	}
	if need <= len(d.storage) {
		return nil
	}
	return d.resizeUp(a, growth.Exact(need, len(d.storage)))
}

func (d *Array[T]) resizeUp(a alloc.Allocator[T], n int) error {
	s, err := growth.Grow(a, d.storage, n, 0, d.occupied)
	if err != nil {
		return fmt.Errorf("darray: grow %d -> %d: %w", len(d.storage), n, err)
	}
	d.storage = s
	return nil
}
