package growth

import "math/bits"

// IsPow2 reports whether n is a positive power of two.
func IsPow2(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// AlignPow2 returns the smallest power of two >= n, with ok = false when that
// value does not fit in an int.
//
// Example:
//
//	AlignPow2(1)  = 1
//	AlignPow2(5)  = 8
//	AlignPow2(8)  = 8
//	AlignPow2(21) = 32
func AlignPow2(n int) (int, bool) {
	if n <= 1 {
		return 1, true
	}
	shift := bits.Len(uint(n - 1))
	if shift >= bits.UintSize-1 {
		return 0, false
	}
	return 1 << shift, true
}
