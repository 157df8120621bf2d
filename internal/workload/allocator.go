package workload

import (
	"fmt"

	"github.com/joshuapare/contig/container/alloc"
)

// newAllocator builds the allocator a script asks for, wrapped in a Budget
// when the script sets one. The returned close function releases any
// backing the allocator holds outside the Go heap.
func newAllocator(s *Script) (alloc.Allocator[int64], func() error, error) {
	var (
		a       alloc.Allocator[int64]
		closeFn = func() error { return nil }
	)

	switch s.Allocator {
	case AllocHeap, "":
		a = alloc.Heap[int64]{}
	case AllocBump:
		a = alloc.NewBump[int64](s.Slab, 0)
	case AllocMmap:
		m, err := alloc.NewMmap[int64]()
		if err != nil {
			return nil, nil, fmt.Errorf("workload: mmap allocator: %w", err)
		}
		a, closeFn = m, m.Close
	default:
		return nil, nil, fmt.Errorf("%w: unknown allocator %q", ErrInvalidScript, s.Allocator)
	}

	if s.Budget > 0 {
		a = alloc.NewBudget(a, s.Budget)
	}
	return a, closeFn, nil
}
