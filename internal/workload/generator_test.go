package workload

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Deterministic(t *testing.T) {
	a := Generate(GenOptions{Container: ContainerDArray, Ops: 300, Seed: 42})
	b := Generate(GenOptions{Container: ContainerDArray, Ops: 300, Seed: 42})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed produced different scripts (-a +b):\n%s", diff)
	}
	c := Generate(GenOptions{Container: ContainerDArray, Ops: 300, Seed: 43})
	assert.NotEqual(t, a, c)
}

func TestGenerate_RunsCleanOnEveryContainer(t *testing.T) {
	for _, container := range Containers {
		t.Run(container, func(t *testing.T) {
			s := Generate(GenOptions{Container: container, Ops: 2000, Seed: 7})
			require.NoError(t, s.Validate())
			require.Len(t, s.Ops, 2000)

			res, err := Run(s)
			require.NoError(t, err)
			assert.Empty(t, res.Errors, "generated positions must stay in range")
			assert.Zero(t, res.Stats.Live)
		})
	}
}

func TestGenerate_FIFOMatchesBaseline(t *testing.T) {
	for _, container := range []string{ContainerLQueue, ContainerRing} {
		t.Run(container, func(t *testing.T) {
			s := Generate(GenOptions{Container: container, Ops: 3000, MaxBulk: 16, Seed: 99})
			res, err := Run(s)
			require.NoError(t, err)
			base, err := Baseline(s)
			require.NoError(t, err)

			if diff := cmp.Diff(base.Observed, res.Observed); diff != "" {
				t.Fatalf("observed mismatch (-baseline +%s):\n%s", container, diff)
			}
			if diff := cmp.Diff(base.Final, res.Final); diff != "" {
				t.Fatalf("final mismatch (-baseline +%s):\n%s", container, diff)
			}
		})
	}
}

func TestBaseline_RejectsNonFIFO(t *testing.T) {
	for _, container := range []string{ContainerDArray, ContainerStack} {
		_, err := Baseline(&Script{Container: container})
		require.ErrorIs(t, err, ErrNoBaseline)
	}
}
