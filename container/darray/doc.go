// Package darray provides Array, a contiguous growable array with amortized
// O(1) append and O(n) positional insert and delete.
//
// # Storage
//
// An Array owns one buffer obtained from an alloc.Allocator. Elements
// [0, Len) are live; [Len, Cap) is zeroed reserve. Capacity only grows.
//
// # Growth
//
// Single-element operations grow to 2*Cap+1. Bulk operations grow exactly to
// what they need (never below the current capacity). Growth first asks the
// allocator to extend the buffer in place and only then falls back to
// allocate-copy-free.
//
// # Checked and Unchecked Access
//
// Get, GetRef and DeleteAt validate the position and report absence or
// types.ErrOutOfBounds. The Unchecked variants skip validation; callers must
// guarantee 0 <= pos < Len. Misuse either panics (Go slice bounds) or reads
// a reserve slot.
//
// # References
//
// Pointers returned by GetRef and GetRefUnchecked alias the buffer and are
// valid only until the next operation that may grow it.
//
// # Thread Safety
//
// Array is not safe for concurrent use.
package darray
