package alloc

import (
	"fmt"

	"github.com/joshuapare/contig/internal/buf"
	"github.com/joshuapare/contig/pkg/types"
)

const (
	// DefaultSlabElems is the slab size used when NewBump is given a non-positive size.
	DefaultSlabElems = 4096

	// DefaultMaxElems caps the total elements a Bump may hold across all slabs.
	DefaultMaxElems = 1 << 26
)

// Bump is a multi-slab bump allocator. It sub-allocates from pre-allocated
// slabs, adding a new slab when the active one is exhausted.
//
// Key characteristics:
//   - O(1) allocation: pure bump pointer within the active slab
//   - The most recent allocation may be extended in place (no copy)
//   - Freeing the most recent allocation rolls the bump pointer back
//   - Any other Free leaves dead space until Reset
//   - Total size is capped; exceeding the cap reports ErrOutOfMemory
//
// A container that is the only user of a Bump therefore grows in place for as
// long as the active slab has room.
type Bump[T any] struct {
	slabs    [][]T
	current  int // index of the active slab
	off      int // next free element in the active slab
	lastOff  int // start of the most recent live allocation, -1 if none
	lastLen  int
	slabSize int
	total    int // elements across all slabs
	maxTotal int
}

// NewBump creates a Bump whose slabs hold slabElems elements and whose slabs
// together never exceed maxElems. Non-positive arguments select the defaults.
// No memory is reserved until the first allocation.
func NewBump[T any](slabElems, maxElems int) *Bump[T] {
	if slabElems <= 0 {
		slabElems = DefaultSlabElems
	}
	if maxElems <= 0 {
		maxElems = DefaultMaxElems
	}
	return &Bump[T]{
		slabSize: slabElems,
		maxTotal: maxElems,
		lastOff:  -1,
	}
}

// Alloc carves n zeroed elements from the active slab.
func (b *Bump[T]) Alloc(n int) ([]T, error) {
	if n < 0 {
		return nil, errNegative(n)
	}
	if n == 0 {
		return nil, nil
	}

	end, ok := buf.Add(b.off, n)
	if len(b.slabs) == 0 || !ok || end > len(b.slabs[b.current]) {
		if err := b.nextSlab(n); err != nil {
			return nil, err
		}
	}

	s := b.slabs[b.current][b.off : b.off+n : b.off+n]
	// Freed regions are handed out again, so zero lazily here.
	clear(s)

	b.lastOff = b.off
	b.lastLen = n
	b.off += n
	return s, nil
}

// Extend grows the most recent allocation in place while the active slab has room.
func (b *Bump[T]) Extend(s []T, n int) ([]T, bool) {
	if n < len(s) || !b.isLast(s) {
		return s, false
	}
	slab := b.slabs[b.current]
	end, ok := buf.Add(b.lastOff, n)
	if !ok || end > len(slab) {
		return s, false
	}

	ext := slab[b.lastOff:end:end]
	clear(ext[len(s):])
	b.off = end
	b.lastLen = n
	return ext, true
}

// Free rolls the bump pointer back when s is the most recent allocation.
// Any other buffer becomes dead space until Reset.
func (b *Bump[T]) Free(s []T) {
	if !b.isLast(s) {
		return
	}
	b.off = b.lastOff
	b.lastOff = -1
	b.lastLen = 0
}

// Reset rewinds to the first slab. Slabs are retained for reuse, so every
// buffer previously handed out must be considered released.
func (b *Bump[T]) Reset() {
	b.current = 0
	b.off = 0
	b.lastOff = -1
	b.lastLen = 0
}

// Used returns the number of elements handed out since the last Reset,
// including dead space.
func (b *Bump[T]) Used() int {
	used := 0
	for i := 0; i < b.current && i < len(b.slabs); i++ {
		used += len(b.slabs[i])
	}
	return used + b.off
}

// Reserved returns the total number of elements held by all slabs.
func (b *Bump[T]) Reserved() int { return b.total }

// Slabs returns the number of slabs allocated so far.
func (b *Bump[T]) Slabs() int { return len(b.slabs) }

func (b *Bump[T]) isLast(s []T) bool {
	if len(s) == 0 || b.lastOff < 0 || len(s) != b.lastLen {
		return false
	}
	return &s[0] == &b.slabs[b.current][b.lastOff]
}

// nextSlab makes a slab with room for n elements active, reusing retained
// slabs after a Reset before allocating a new one.
func (b *Bump[T]) nextSlab(n int) error {
	for b.current+1 < len(b.slabs) {
		b.current++
		b.off = 0
		b.lastOff = -1
		if len(b.slabs[b.current]) >= n {
			return nil
		}
	}

	size := max(b.slabSize, n)
	newTotal, ok := buf.Add(b.total, size)
	if !ok || newTotal > b.maxTotal {
		return fmt.Errorf("alloc: bump: slab of %d elements exceeds cap (reserved=%d, max=%d): %w",
			size, b.total, b.maxTotal, types.ErrOutOfMemory)
	}
	if bytes, ok := buf.Mul(size, elemSize[T]()); !ok || bytes > maxHeapBytes {
		return errTooLarge(size)
	}

	b.slabs = append(b.slabs, make([]T, size))
	b.current = len(b.slabs) - 1
	b.total = newTotal
	b.off = 0
	b.lastOff = -1
	return nil
}

// Compile-time interface check
var _ Allocator[int] = (*Bump[int])(nil)
