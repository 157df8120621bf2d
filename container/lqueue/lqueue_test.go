package lqueue

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/eapache/queue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/pkg/types"
)

func TestQueue_FIFO(t *testing.T) {
	var h alloc.Heap[int]
	q := New[int]()
	for i := range 50 {
		require.NoError(t, q.Enqueue(h, i))
	}
	for i := range 50 {
		v, ok := q.Dequeue()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := q.Dequeue()
	require.False(t, ok)
	require.Zero(t, q.Len())
}

func TestQueue_NoReallocWhenWasteCoversRequest(t *testing.T) {
	tr := alloc.NewTracker[int](alloc.Heap[int]{})
	q, err := WithCapacity[int](tr, 10)
	require.NoError(t, err)
	before := &q.storage[0]

	require.NoError(t, q.EnqueueBulk(tr, []int{0, 1, 2, 3, 4}))
	for i := range 4 {
		v, ok := q.Dequeue()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Equal(t, 4, q.Head())
	require.Equal(t, 1, q.Len())

	require.NoError(t, q.Enqueue(tr, 100))
	require.Same(t, before, &q.storage[0], "backing storage must not move")
	require.Equal(t, 1, tr.Stats().Allocs)

	got := slices.Collect(q.All())
	require.Equal(t, []int{4, 100}, got)
	v, _ := q.Dequeue()
	require.Equal(t, 4, v)
	v, _ = q.Dequeue()
	require.Equal(t, 100, v)
}

func TestQueue_FullTailCompactsInsteadOfGrowing(t *testing.T) {
	tr := alloc.NewTracker[int](alloc.Heap[int]{})
	q, err := WithCapacity[int](tr, 10)
	require.NoError(t, err)
	for i := range 10 {
		require.NoError(t, q.Enqueue(tr, i))
	}
	for range 9 {
		_, ok := q.Dequeue()
		require.True(t, ok)
	}
	// tail == cap, head == 9, hint 2 -> target 5 <= waste 9.
	require.NoError(t, q.Enqueue(tr, 10))
	require.Equal(t, 10, q.Cap())
	require.Equal(t, 0, q.Head())
	require.Equal(t, 1, tr.Stats().Allocs, "compaction must not allocate")
	require.Equal(t, []int{9, 10}, slices.Collect(q.All()))
}

func TestQueue_GrowWhenWasteInsufficient(t *testing.T) {
	tr := alloc.NewTracker[int](alloc.Heap[int]{})
	q, err := WithCapacity[int](tr, 4)
	require.NoError(t, err)
	require.NoError(t, q.EnqueueBulk(tr, []int{1, 2, 3, 4}))
	_, _ = q.Dequeue()

	require.NoError(t, q.Enqueue(tr, 5))
	// hint = 3 live + 1 -> 2*4+1.
	require.Equal(t, 9, q.Cap())
	require.Zero(t, q.Head())
	require.Equal(t, []int{2, 3, 4, 5}, slices.Collect(q.All()))
	require.Equal(t, 2, tr.Stats().Allocs)
	require.Equal(t, 1, tr.Stats().Frees)
}

func TestQueue_CapacityNeverShrinks(t *testing.T) {
	var h alloc.Heap[int]
	q, err := WithCapacity[int](h, 30)
	require.NoError(t, err)
	for i := range 30 {
		require.NoError(t, q.Enqueue(h, i))
	}
	for range 20 {
		q.Dequeue()
	}
	// hint 11 -> target 23 < capacity 30, waste 20 < 23: compaction, not shrink.
	require.NoError(t, q.Enqueue(h, 30))
	require.Equal(t, 30, q.Cap())
	require.Equal(t, 11, q.Len())
	first, _ := q.Peek()
	require.Equal(t, 20, first)
}

func TestQueue_CompactIdempotent(t *testing.T) {
	var h alloc.Heap[int]
	q := New[int]()
	require.NoError(t, q.EnqueueBulk(h, []int{1, 2, 3, 4, 5}))
	q.Dequeue()
	q.Dequeue()

	q.Compact()
	require.Zero(t, q.Head())
	require.Equal(t, 3, q.Len())
	require.Equal(t, []int{3, 4, 5}, slices.Collect(q.All()))
	// Slots past the new tail hold no stale values.
	require.Equal(t, []int{0, 0}, q.storage[3:5])

	q.Compact()
	require.Zero(t, q.Head())
	require.Equal(t, []int{3, 4, 5}, slices.Collect(q.All()))
}

func TestQueue_EnqueueBulkWithWaste(t *testing.T) {
	var h alloc.Heap[int]
	q, err := WithCapacity[int](h, 8)
	require.NoError(t, err)
	require.NoError(t, q.EnqueueBulk(h, []int{1, 2, 3, 4, 5, 6}))
	for range 5 {
		q.Dequeue()
	}
	// tail 6 + 3 > 8 although Len()+3 fits; the queue must still make room.
	require.NoError(t, q.EnqueueBulk(h, []int{7, 8, 9}))
	require.Equal(t, []int{6, 7, 8, 9}, slices.Collect(q.All()))
	require.LessOrEqual(t, q.Len(), q.Cap())
}

func TestQueue_PeekAndPeekRef(t *testing.T) {
	var h alloc.Heap[string]
	q := New[string]()
	_, ok := q.Peek()
	require.False(t, ok)
	_, ok = q.PeekRef()
	require.False(t, ok)

	require.NoError(t, q.Enqueue(h, "a"))
	require.NoError(t, q.Enqueue(h, "b"))
	p, ok := q.PeekRef()
	require.True(t, ok)
	*p = "A"
	v, ok := q.Peek()
	require.True(t, ok)
	require.Equal(t, "A", v)
	require.Equal(t, 2, q.Len(), "peek must not consume")
}

func TestQueue_FailedGrowthLeavesState(t *testing.T) {
	budget := alloc.NewBudget[int](alloc.Heap[int]{}, 4)
	q, err := WithCapacity[int](budget, 4)
	require.NoError(t, err)
	require.NoError(t, q.EnqueueBulk(budget, []int{1, 2, 3, 4}))

	err = q.Enqueue(budget, 5)
	require.ErrorIs(t, err, types.ErrOutOfMemory)
	err = q.EnqueueBulk(budget, []int{5, 6})
	require.True(t, types.IsOutOfMemory(err))

	require.Equal(t, []int{1, 2, 3, 4}, slices.Collect(q.All()))
	require.Equal(t, 4, q.Cap())
}

func TestQueue_GrowsInPlaceWithBump(t *testing.T) {
	tr := alloc.NewTracker[int](alloc.NewBump[int](4096, 0))
	q := New[int]()
	for i := range 500 {
		require.NoError(t, q.Enqueue(tr, i))
		if i%3 == 0 {
			q.Dequeue()
		}
	}
	st := tr.Stats()
	assert.Equal(t, 1, st.Allocs)
	assert.Zero(t, st.Frees)
	assert.Greater(t, st.Extends, 0)
}

func TestQueue_ReleaseReturnsEverything(t *testing.T) {
	tr := alloc.NewTracker[int](alloc.Heap[int]{})
	q := New[int]()
	for i := range 100 {
		require.NoError(t, q.Enqueue(tr, i))
	}
	q.Release(tr)
	require.Zero(t, tr.Stats().Live)
	require.Zero(t, q.Len())
	require.Zero(t, q.Cap())
}

// TestQueue_RandomOpsMatchReference cross-checks against eapache/queue.
func TestQueue_RandomOpsMatchReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var h alloc.Heap[int]
	q := New[int]()
	ref := queue.New()

	for step := range 5000 {
		switch op := rng.Intn(10); {
		case op < 4:
			v := rng.Int()
			require.NoError(t, q.Enqueue(h, v))
			ref.Add(v)
		case op < 6:
			k := rng.Intn(6)
			vs := make([]int, k)
			for i := range vs {
				vs[i] = rng.Int()
				ref.Add(vs[i])
			}
			require.NoError(t, q.EnqueueBulk(h, vs))
		case op < 9:
			v, ok := q.Dequeue()
			if ref.Length() == 0 {
				require.False(t, ok, "step %d", step)
				continue
			}
			require.True(t, ok, "step %d", step)
			require.Equal(t, ref.Remove().(int), v, "step %d", step)
		default:
			q.Compact()
			require.Zero(t, q.Head())
		}
		require.Equal(t, ref.Length(), q.Len(), "step %d", step)
		require.LessOrEqual(t, q.Len(), q.Cap())
		require.GreaterOrEqual(t, q.Len(), 0)
	}
}
