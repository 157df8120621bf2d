package alloc

import (
	"fmt"

	"github.com/joshuapare/contig/pkg/types"
)

// Budget enforces a ceiling on the number of live elements obtained through
// an inner allocator. Requests that would cross the ceiling fail with
// ErrOutOfMemory (Alloc) or report false (Extend); the inner allocator is
// not consulted in that case.
type Budget[T any] struct {
	inner Allocator[T]
	limit int
	live  int
}

// NewBudget wraps inner with a ceiling of limit live elements.
func NewBudget[T any](inner Allocator[T], limit int) *Budget[T] {
	return &Budget[T]{inner: inner, limit: limit}
}

// Alloc forwards to the inner allocator when n fits under the ceiling.
func (b *Budget[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, errNegative(n)
	}
	if n > b.limit-b.live {
		return nil, fmt.Errorf("alloc: budget: %d live + %d requested exceeds limit %d: %w",
			b.live, n, b.limit, types.ErrOutOfMemory)
	}
	s, err := b.inner.Alloc(n)
	if err != nil {
		return nil, err
	}
	b.live += len(s)
	return s, nil
}

// Extend forwards to the inner allocator when the growth fits under the ceiling.
func (b *Budget[T]) Extend(s []T, n int) ([]T, bool) {
	grow := n - len(s)
	if grow < 0 || grow > b.limit-b.live {
		return s, false
	}
	ext, ok := b.inner.Extend(s, n)
	if !ok {
		return s, false
	}
	b.live += grow
	return ext, true
}

// Free returns s to the inner allocator and credits the budget.
func (b *Budget[T]) Free(s []T) {
	if s == nil {
		return
	}
	b.live -= len(s)
	b.inner.Free(s)
}

// Live returns the number of elements currently charged against the budget.
func (b *Budget[T]) Live() int { return b.live }

// Limit returns the ceiling.
func (b *Budget[T]) Limit() int { return b.limit }

// Compile-time interface check
var _ Allocator[int] = (*Budget[int])(nil)
