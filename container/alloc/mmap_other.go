//go:build !linux

package alloc

// Mmap is only available on Linux, where mremap(2) can grow a mapping in place.
type Mmap[T any] struct{}

// NewMmap reports ErrNotSupported on this platform.
func NewMmap[T any]() (*Mmap[T], error) {
	return nil, ErrNotSupported
}

func (m *Mmap[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, errNegative(n)
	}
	return nil, ErrNotSupported
}

func (m *Mmap[T]) Extend(s []T, _ int) ([]T, bool) { return s, false }

func (m *Mmap[T]) Free([]T) {}

func (m *Mmap[T]) Mappings() int { return 0 }

func (m *Mmap[T]) MappedBytes() int { return 0 }

func (m *Mmap[T]) Close() error { return nil }
