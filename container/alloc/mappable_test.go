package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type plainRecord struct {
	ID    uint64
	Score float64
	Flags [4]byte
}

type pointerRecord struct {
	ID   uint64
	Name string
}

func TestCheckMappable(t *testing.T) {
	require.NoError(t, checkMappable[int64]())
	require.NoError(t, checkMappable[plainRecord]())
	require.NoError(t, checkMappable[[8]uint32]())

	require.ErrorIs(t, checkMappable[pointerRecord](), ErrNotSupported)
	require.ErrorIs(t, checkMappable[*int](), ErrNotSupported)
	require.ErrorIs(t, checkMappable[[]byte](), ErrNotSupported)
	require.ErrorIs(t, checkMappable[any](), ErrNotSupported)
	require.ErrorIs(t, checkMappable[struct{}](), ErrNotSupported)
	require.ErrorIs(t, checkMappable[[2]map[int]int](), ErrNotSupported)
}
