// Package alloc provides the allocation capability used by every contig container.
//
// # Overview
//
// Containers never allocate on their own. Every operation that may grow storage
// takes an Allocator[T] argument, and Release hands the backing buffer back to
// the same allocator. An allocator may be shared by many containers as long as
// callers serialize access to it.
//
// # Allocator Interface
//
// The core abstraction is the Allocator interface, which supports:
//
//   - Alloc(n): Acquire a zeroed buffer of exactly n elements
//   - Extend(buf, n): Grow buf to n elements without moving it, if possible
//   - Free(buf): Release a buffer obtained from Alloc or Extend
//
// Extend is the cheap path: a container that grows in place moves no data.
// When Extend reports false the container falls back to Alloc, copy, Free.
//
// # Implementations
//
// Heap: Go-managed slices
//
//   - Alloc is make([]T, n)
//   - Extend succeeds only within the slice's existing capacity
//   - Free is a no-op (the garbage collector reclaims the slice)
//
// Bump: slab arena for short-lived container sets
//
//   - O(1) allocation from the active slab
//   - The most recent allocation can be extended in place and freeing it rolls back
//   - Other frees become dead space until Reset
//   - A total element cap turns exhaustion into ErrOutOfMemory
//
// Budget: live-element ceiling around any allocator
//
// Tracker: counts allocations, frees, extensions and live elements, optionally
// exporting them as Prometheus metrics
//
// Mmap: anonymous memory mappings (Linux only)
//
//   - Extend uses mremap without MREMAP_MAYMOVE, so it never relocates
//   - Element types holding Go pointers are rejected
//
// # Usage Example
//
//	var heap alloc.Heap[int]
//	tr := alloc.NewTracker[int](heap)
//
//	arr := darray.New[int]()
//	if err := arr.Append(tr, 42); err != nil {
//	    return err
//	}
//	arr.Release(tr)
//
//	// tr.Stats().Live == 0
//
// # Thread Safety
//
// Allocator instances are not thread-safe. Callers must synchronize access
// externally.
package alloc
