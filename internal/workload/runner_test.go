package workload

import (
	"runtime"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/pkg/types"
)

func mustParse(t *testing.T, doc string) *Script {
	t.Helper()
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	return s
}

func TestRun_DArrayBulkInsert(t *testing.T) {
	s := mustParse(t, `
container: darray
capacity: 3
ops:
  - {op: enqueue, values: [1, 2]}
  - {op: insert, pos: 1, values: [10, 20, 30, 40]}
  - {op: get, pos: 4}
`)
	res, err := Run(s)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, []int64{1, 10, 20, 30, 40, 2}, res.Final)
	assert.Equal(t, []int64{40}, res.Observed)
	assert.Zero(t, res.Stats.Live)
}

func TestRun_LQueueReusesWaste(t *testing.T) {
	s := mustParse(t, `
container: lqueue
capacity: 10
ops:
  - {op: enqueue, values: [0, 1, 2, 3, 4]}
  - {op: dequeue, count: 4}
  - {op: enqueue, values: [100]}
  - {op: dequeue, count: 2}
`)
	res, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, []int64{0, 1, 2, 3, 4, 100}, res.Observed)
	assert.Equal(t, 10, res.Cap)
	assert.Equal(t, 1, res.Stats.Allocs)
}

func TestRun_StackIsLIFO(t *testing.T) {
	s := mustParse(t, `
container: stack
ops:
  - {op: enqueue, values: [1, 2, 3]}
  - {op: peek}
  - {op: dequeue, count: 5}
`)
	res, err := Run(s)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 3, 2, 1}, res.Observed)
	assert.Empty(t, res.Final)
}

func TestRun_RecordsOutOfBoundsAndContinues(t *testing.T) {
	s := mustParse(t, `
container: darray
ops:
  - {op: get, pos: 0}
  - {op: delete, pos: -1}
  - {op: insert, pos: 2, values: [1]}
  - {op: enqueue, values: [7]}
`)
	res, err := Run(s)
	require.NoError(t, err)
	require.Len(t, res.Errors, 3)
	for i, e := range res.Errors {
		assert.Equal(t, i, e.Index)
		assert.ErrorIs(t, e, types.ErrOutOfBounds)
	}
	assert.Equal(t, 3, res.Failures(types.ErrKindOutOfBounds))
	assert.Equal(t, []int64{7}, res.Final)
	assert.Equal(t, 4, res.Ops)
}

func TestRun_BudgetExhaustion(t *testing.T) {
	s := mustParse(t, `
container: ring
capacity: 4
budget: 4
ops:
  - {op: enqueue, values: [1, 2, 3, 4]}
  - {op: enqueue, values: [5]}
  - {op: dequeue, count: 4}
`)
	res, err := Run(s)
	require.NoError(t, err)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 1, res.Errors[0].Index)
	assert.Equal(t, 1, res.Failures(types.ErrKindOutOfMemory))
	assert.Equal(t, []int64{1, 2, 3, 4}, res.Observed)
	assert.Equal(t, 1, res.Stats.Failures)
}

func TestRun_StopOnError(t *testing.T) {
	s := mustParse(t, `
container: darray
ops:
  - {op: delete, pos: 0}
  - {op: enqueue, values: [1]}
`)
	res, err := Run(s, WithStopOnError())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Ops)
	assert.Empty(t, res.Final)
}

func TestRun_BumpExtendsInPlace(t *testing.T) {
	s := Generate(GenOptions{Container: ContainerRing, Allocator: AllocBump, Ops: 400, Seed: 5})
	s.Slab = 1 << 16
	res, err := Run(s)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Equal(t, 1, res.Stats.Allocs)
	assert.Positive(t, res.Stats.Extends)
	assert.Zero(t, res.Stats.Live)
}

func TestRun_Mmap(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("mmap allocator requires linux")
	}
	s := Generate(GenOptions{Container: ContainerDArray, Allocator: AllocMmap, Ops: 300, Seed: 9})
	res, err := Run(s)
	require.NoError(t, err)
	assert.Empty(t, res.Errors)
	assert.Zero(t, res.Stats.Live)
}

func TestRun_FeedsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := alloc.NewMetrics(reg, "lqueue")
	require.NoError(t, err)

	s := Generate(GenOptions{Container: ContainerLQueue, Ops: 200, Seed: 2})
	res, err := Run(s, WithMetrics(m))
	require.NoError(t, err)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	values := map[string]float64{}
	for _, mf := range mfs {
		metric := mf.GetMetric()[0]
		if c := metric.GetCounter(); c != nil {
			values[mf.GetName()] = c.GetValue()
		} else {
			values[mf.GetName()] = metric.GetGauge().GetValue()
		}
	}
	assert.Equal(t, float64(res.Stats.Allocs), values["contig_alloc_allocs_total"])
	assert.Equal(t, float64(res.Stats.Frees), values["contig_alloc_frees_total"])
	assert.Zero(t, values["contig_alloc_live_elements"])
}
