// Package types defines the error surface shared by every container and
// allocator in contig.
//
// There are exactly two failure kinds:
//   - ErrKindOutOfBounds: a position argument exceeds the valid range.
//   - ErrKindOutOfMemory: the allocator could not satisfy a growth request.
//
// Both are returned as ordinary error values wrapping the ErrOutOfBounds and
// ErrOutOfMemory sentinels, so callers may use errors.Is or KindOf.
//
// This package has no dependencies beyond the standard library.
package types
