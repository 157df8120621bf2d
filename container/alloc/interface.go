package alloc

// Allocator is the capability through which containers acquire, extend and
// release their backing storage.
//
// Implementations:
//   - Heap: Go-managed slices
//   - Bump: slab arena with in-place extension of the latest allocation
//   - Budget: live-element ceiling around another allocator
//   - Tracker: statistics and metrics around another allocator
//   - Mmap: anonymous mappings with mremap-based extension (Linux)
type Allocator[T any] interface {
	// Alloc returns a zeroed buffer with len(buf) == n.
	// Alloc(0) returns a nil buffer and no error.
	// Failures wrap types.ErrOutOfMemory.
	Alloc(n int) ([]T, error)

	// Extend grows buf to n elements without moving its first element.
	// Elements [len(buf), n) of the result are zeroed.
	// When ok is false buf is unchanged and still owned by the caller.
	Extend(buf []T, n int) ([]T, bool)

	// Free releases buf. Free(nil) is a no-op.
	// buf must have been returned by Alloc or Extend on the same allocator.
	Free(buf []T)
}
