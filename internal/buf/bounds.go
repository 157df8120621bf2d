// Package buf holds overflow-checked size arithmetic shared by the allocators
// and the growth policy. All helpers report ok = false instead of wrapping.
package buf

import "math"

// Add returns a+b for non-negative operands, or ok = false on overflow or
// when either operand is negative.
func Add(a, b int) (int, bool) {
	if a < 0 || b < 0 || a > math.MaxInt-b {
		return 0, false
	}
	return a + b, true
}

// Mul returns a*b for non-negative operands, or ok = false on overflow.
// Used for count*elementSize byte calculations.
func Mul(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// DoublePlusOne returns 2n+1, the amortized growth target for a container
// whose current size or size hint is n.
func DoublePlusOne(n int) (int, bool) {
	d, ok := Mul(n, 2)
	if !ok {
		return 0, false
	}
	return Add(d, 1)
}

// AlignUp rounds n up to the next multiple of align, which must be a power of two.
//
// Example:
//
//	AlignUp(1, 4096)    = 4096
//	AlignUp(4096, 4096) = 4096
//	AlignUp(4097, 4096) = 8192
func AlignUp(n, align int) (int, bool) {
	mask := align - 1
	s, ok := Add(n, mask)
	if !ok {
		return 0, false
	}
	return s &^ mask, true
}

// InRange reports whether off lies in [0, n).
func InRange(off, n int) bool {
	return off >= 0 && off < n
}

// InRangeIncl reports whether off lies in [0, n]. Insert positions use this:
// inserting at n appends.
func InRangeIncl(off, n int) bool {
	return off >= 0 && off <= n
}
