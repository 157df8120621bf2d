package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindNone        ErrKind = iota // not a container error
	ErrKindOutOfBounds                // position outside the logically valid range
	ErrKindOutOfMemory                // the allocator could not satisfy a growth request
)

func (k ErrKind) String() string {
	switch k {
	case ErrKindOutOfBounds:
		return "out-of-bounds"
	case ErrKindOutOfMemory:
		return "out-of-memory"
	default:
		return "none"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Sentinels returned (wrapped with context) by containers and allocators.
var (
	// ErrOutOfBounds indicates an index or position outside the valid range.
	ErrOutOfBounds = &Error{Kind: ErrKindOutOfBounds, Msg: "index out of bounds"}
	// ErrOutOfMemory indicates an allocation or extension request could not be met.
	ErrOutOfMemory = &Error{Kind: ErrKindOutOfMemory, Msg: "out of memory"}
)

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) ErrKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrKindNone
}

// IsOutOfBounds reports whether err carries ErrOutOfBounds.
func IsOutOfBounds(err error) bool { return KindOf(err) == ErrKindOutOfBounds }

// IsOutOfMemory reports whether err carries ErrOutOfMemory.
func IsOutOfMemory(err error) bool { return KindOf(err) == ErrKindOutOfMemory }
