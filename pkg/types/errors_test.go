package types

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrKind_String(t *testing.T) {
	tests := []struct {
		name     string
		kind     ErrKind
		expected string
	}{
		{name: "none", kind: ErrKindNone, expected: "none"},
		{name: "bounds", kind: ErrKindOutOfBounds, expected: "out-of-bounds"},
		{name: "memory", kind: ErrKindOutOfMemory, expected: "out-of-memory"},
		{name: "unknown", kind: ErrKind(99), expected: "none"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("darray: get 7 (len 3): %w", ErrOutOfBounds)
	if KindOf(err) != ErrKindOutOfBounds {
		t.Fatalf("KindOf = %v, want out-of-bounds", KindOf(err))
	}
	if !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("errors.Is should match the sentinel through wrapping")
	}
	if IsOutOfMemory(err) {
		t.Fatalf("bounds error must not report out-of-memory")
	}

	oom := fmt.Errorf("ring: grow to 64: %w", ErrOutOfMemory)
	if !IsOutOfMemory(oom) {
		t.Fatalf("expected out-of-memory kind")
	}
	if KindOf(errors.New("plain")) != ErrKindNone {
		t.Fatalf("plain errors have no kind")
	}
	if KindOf(nil) != ErrKindNone {
		t.Fatalf("nil has no kind")
	}
}

func TestError_Message(t *testing.T) {
	e := &Error{Kind: ErrKindOutOfMemory, Msg: "out of memory", Err: errors.New("mmap: ENOMEM")}
	if e.Error() != "out of memory: mmap: ENOMEM" {
		t.Fatalf("unexpected message %q", e.Error())
	}
	var nilErr *Error
	if nilErr.Error() != "<nil>" {
		t.Fatalf("nil receiver message = %q", nilErr.Error())
	}
}
