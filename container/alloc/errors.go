package alloc

import (
	"errors"
	"fmt"

	"github.com/joshuapare/contig/pkg/types"
)

var (
	// ErrNotSupported indicates the allocator cannot serve this platform or element type.
	ErrNotSupported = errors.New("alloc: not supported")

	// ErrNegativeSize is returned for negative element counts. It matches
	// types.ErrOutOfBounds under errors.Is.
	ErrNegativeSize = fmt.Errorf("alloc: negative size: %w", types.ErrOutOfBounds)
)

func errNegative(n int) error {
	return fmt.Errorf("%w (%d)", ErrNegativeSize, n)
}

func errTooLarge(n int) error {
	return fmt.Errorf("alloc: %d elements overflow addressable memory: %w", n, types.ErrOutOfMemory)
}
