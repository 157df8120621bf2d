package alloc

import (
	"unsafe"

	"github.com/joshuapare/contig/internal/buf"
)

// maxHeapBytes bounds a single heap request. make() panics well before the
// address space runs out, so requests beyond this are reported as out of memory.
const maxHeapBytes = 1 << 47

// Heap allocates Go-managed slices. The zero value is ready to use.
//
// Free is a no-op: once a container drops its reference the garbage
// collector reclaims the slice. Extend only succeeds when the slice already
// has spare capacity, which is never the case for buffers Heap returns itself.
type Heap[T any] struct{}

// Alloc returns make([]T, n).
func (Heap[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, errNegative(n)
	}
	if n == 0 {
		return nil, nil
	}
	bytes, ok := buf.Mul(n, elemSize[T]())
	if !ok || bytes > maxHeapBytes {
		return nil, errTooLarge(n)
	}
	return make([]T, n), nil
}

// Extend reslices buf when its capacity already covers n.
func (Heap[T]) Extend(b []T, n int) ([]T, bool) {
	if n < len(b) || n > cap(b) {
		return b, false
	}
	ext := b[:n]
	clear(ext[len(b):])
	return ext, true
}

// Free is a no-op.
func (Heap[T]) Free([]T) {}

// elemSize returns unsafe.Sizeof for T, counting zero-size types as one byte
// so size arithmetic never divides work by zero.
func elemSize[T any]() int {
	var zero T
	if s := int(unsafe.Sizeof(zero)); s > 0 {
		return s
	}
	return 1
}

// Compile-time interface check
var _ Allocator[int] = Heap[int]{}
