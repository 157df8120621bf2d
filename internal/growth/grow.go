package growth

import "github.com/joshuapare/contig/container/alloc"

// Grow returns a buffer of n elements whose [0, length) holds the live range
// of old in logical order. The live range starts at head and may wrap past
// the end of old back to 0.
//
// The in-place path is tried first: when a.Extend succeeds no allocation
// happens and the range is linearized inside the extended buffer. Otherwise
// Grow allocates, copies the tail segment then the wrapped prefix, and frees
// old. On error old is untouched and still owned by the caller.
//
// n must be at least length. A wrapped range that does not fit the extended
// buffer's spare room skips the in-place path.
func Grow[T any](a alloc.Allocator[T], old []T, n, head, length int) ([]T, error) {
	oldCap := len(old)
	wrapped := head + length - oldCap // > 0 when the range wraps

	if oldCap > 0 && n >= oldCap+max(wrapped, 0) {
		if ext, ok := a.Extend(old, n); ok {
			linearize(ext, oldCap, head, length)
			return ext, nil
		}
	}

	s, err := a.Alloc(n)
	if err != nil {
		return nil, err
	}
	if length > 0 {
		first := min(length, oldCap-head)
		copy(s, old[head:head+first])
		copy(s[first:], old[:length-first])
	}
	if oldCap > 0 {
		a.Free(old)
	}
	return s, nil
}

// linearize moves the live range of an extended buffer to offset 0.
// The wrapped prefix is first appended after the old end, which makes the
// range contiguous, then the whole range is shifted down.
func linearize[T any](s []T, oldCap, head, length int) {
	if head == 0 {
		return
	}
	end := head + length
	if wrapped := end - oldCap; wrapped > 0 {
		copy(s[oldCap:], s[:wrapped])
	}
	copy(s, s[head:end])
	// Drop stale copies so the reserve holds no references.
	clear(s[length:end])
}
