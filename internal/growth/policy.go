package growth

import (
	"fmt"

	"github.com/joshuapare/contig/internal/buf"
	"github.com/joshuapare/contig/pkg/types"
)

// Amortized returns the single-element growth target 2c+1 for capacity c.
func Amortized(c int) (int, error) {
	n, ok := buf.DoublePlusOne(c)
	if !ok {
		return 0, overflow(c)
	}
	return n, nil
}

// Exact returns the bulk growth target: need elements, never below c.
func Exact(need, c int) int {
	return max(need, c)
}

// Hinted returns 2h+1 for a size hint h.
func Hinted(h int) (int, error) {
	return Amortized(h)
}

// Pow2 returns the ring growth target: 2h+1 rounded up to a power of two.
func Pow2(h int) (int, error) {
	n, err := Hinted(h)
	if err != nil {
		return 0, err
	}
	p, ok := AlignPow2(n)
	if !ok {
		return 0, overflow(h)
	}
	return p, nil
}

// Need returns have+k, the element count an operation adding k elements requires.
func Need(have, k int) (int, error) {
	n, ok := buf.Add(have, k)
	if !ok {
		return 0, overflow(have)
	}
	return n, nil
}

func overflow(n int) error {
	return fmt.Errorf("growth: target for %d elements overflows int: %w", n, types.ErrOutOfMemory)
}
