//go:build linux

package alloc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/joshuapare/contig/internal/buf"
	"github.com/joshuapare/contig/pkg/types"
)

// Mmap backs each buffer with its own anonymous private mapping.
//
// Mappings are page-granular, so a buffer usually has slack up to the next
// page boundary; Extend consumes that slack first and otherwise asks the
// kernel to grow the mapping with mremap(2) without MREMAP_MAYMOVE. The
// buffer therefore never moves: either the pages after it are free or Extend
// reports false.
//
// The garbage collector does not scan mapped memory, so T must not contain
// Go pointers. NewMmap enforces this.
type Mmap[T any] struct {
	maps     map[*T][]byte
	pageSize int
	elemSize int
}

// NewMmap returns an Mmap allocator for T, or ErrNotSupported when T holds
// pointers or has zero size.
func NewMmap[T any]() (*Mmap[T], error) {
	if err := checkMappable[T](); err != nil {
		return nil, err
	}
	var zero T
	return &Mmap[T]{
		maps:     make(map[*T][]byte),
		pageSize: unix.Getpagesize(),
		elemSize: int(unsafe.Sizeof(zero)),
	}, nil
}

// Alloc maps enough pages for n elements.
func (m *Mmap[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, errNegative(n)
	}
	if n == 0 {
		return nil, nil
	}
	length, ok := m.mapLen(n)
	if !ok {
		return nil, errTooLarge(n)
	}

	mem, err := unix.Mmap(-1, 0, length, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("alloc: mmap %d bytes: %w: %w", length, types.ErrOutOfMemory, err)
	}

	p := (*T)(unsafe.Pointer(&mem[0]))
	m.maps[p] = mem
	return unsafe.Slice(p, n), nil
}

// Extend grows s within its mapping, or grows the mapping in place.
func (m *Mmap[T]) Extend(s []T, n int) ([]T, bool) {
	if len(s) == 0 || n < len(s) {
		return s, false
	}
	p := &s[0]
	mem, ok := m.maps[p]
	if !ok {
		return s, false
	}

	need, ok := buf.Mul(n, m.elemSize)
	if !ok {
		return s, false
	}
	if need > len(mem) {
		length, ok := buf.AlignUp(need, m.pageSize)
		if !ok {
			return s, false
		}
		grown, err := unix.Mremap(mem, length, 0)
		if err != nil {
			return s, false
		}
		m.maps[p] = grown
	}

	ext := unsafe.Slice(p, n)
	clear(ext[len(s):])
	return ext, true
}

// Free unmaps the pages behind s.
func (m *Mmap[T]) Free(s []T) {
	if len(s) == 0 {
		return
	}
	p := &s[0]
	mem, ok := m.maps[p]
	if !ok {
		return
	}
	delete(m.maps, p)
	_ = unix.Munmap(mem)
}

// Mappings returns the number of live mappings.
func (m *Mmap[T]) Mappings() int { return len(m.maps) }

// MappedBytes returns the total size of live mappings.
func (m *Mmap[T]) MappedBytes() int {
	total := 0
	for _, mem := range m.maps {
		total += len(mem)
	}
	return total
}

// Close unmaps every live mapping. Buffers still held by containers become invalid.
func (m *Mmap[T]) Close() error {
	var firstErr error
	for p, mem := range m.maps {
		if err := unix.Munmap(mem); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(m.maps, p)
	}
	return firstErr
}

func (m *Mmap[T]) mapLen(n int) (int, bool) {
	bytes, ok := buf.Mul(n, m.elemSize)
	if !ok {
		return 0, false
	}
	return buf.AlignUp(bytes, m.pageSize)
}

// Compile-time interface check
var _ Allocator[int] = (*Mmap[int])(nil)
