// Package stack provides a LIFO adapter over darray.Array.
package stack

import (
	"fmt"
	"iter"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/container/darray"
	"github.com/joshuapare/contig/pkg/types"
)

// Stack is a last-in first-out stack. The zero value is an empty stack.
type Stack[T any] struct {
	arr darray.Array[T]
}

// New returns an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{}
}

// WithCapacity returns an empty stack that holds n elements before growing.
func WithCapacity[T any](a alloc.Allocator[T], n int) (*Stack[T], error) {
	arr, err := darray.WithCapacity(a, n)
	if err != nil {
		return nil, fmt.Errorf("stack: %w", err)
	}
	return &Stack[T]{arr: *arr}, nil
}

// Push places v on top.
func (s *Stack[T]) Push(a alloc.Allocator[T], v T) error {
	return s.arr.Append(a, v)
}

// Pop removes and returns the top element.
// An empty stack reports ErrOutOfBounds.
func (s *Stack[T]) Pop() (T, error) {
	n := s.arr.Len()
	if n == 0 {
		var zero T
		return zero, fmt.Errorf("stack: pop from empty stack: %w", types.ErrOutOfBounds)
	}
	return s.arr.DeleteAtUnchecked(n - 1), nil
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (T, bool) {
	return s.arr.Get(s.arr.Len() - 1)
}

// Len returns the number of elements.
func (s *Stack[T]) Len() int { return s.arr.Len() }

// Cap returns the capacity of the underlying array.
func (s *Stack[T]) Cap() int { return s.arr.Cap() }

// All iterates from the bottom of the stack to the top.
func (s *Stack[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, v := range s.arr.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Release returns the storage to a.
func (s *Stack[T]) Release(a alloc.Allocator[T]) {
	s.arr.Release(a)
}
