package workload

import (
	"math/rand"
)

// GenOptions shapes a generated script.
type GenOptions struct {
	Container string
	Allocator string
	Capacity  int
	Ops       int   // number of ops, default 1000
	MaxBulk   int   // largest enqueue or insert batch, default 8
	Seed      int64 // same seed, same script
}

// Generate returns a random script that is valid for o.Container. Values are
// a running counter, so FIFO containers observe an increasing sequence.
// Positions are chosen from a length model, which is exact as long as the
// script runs without a budget.
func Generate(o GenOptions) *Script {
	if o.Ops <= 0 {
		o.Ops = 1000
	}
	if o.MaxBulk <= 0 {
		o.MaxBulk = 8
	}
	if o.Allocator == "" {
		o.Allocator = AllocHeap
	}

	g := generator{rng: rand.New(rand.NewSource(o.Seed)), maxBulk: o.MaxBulk}
	s := &Script{
		Container: o.Container,
		Allocator: o.Allocator,
		Capacity:  o.Capacity,
		Ops:       make([]Op, 0, o.Ops),
	}
	for range o.Ops {
		s.Ops = append(s.Ops, g.next(o.Container))
	}
	return s
}

type generator struct {
	rng     *rand.Rand
	maxBulk int
	counter int64
	length  int
}

func (g *generator) values() []int64 {
	vs := make([]int64, 1+g.rng.Intn(g.maxBulk))
	for i := range vs {
		g.counter++
		vs[i] = g.counter
	}
	g.length += len(vs)
	return vs
}

func (g *generator) next(container string) Op {
	p := g.rng.Intn(100)
	switch {
	case p < 45 || g.length == 0 && p < 80:
		return Op{Op: OpEnqueue, Values: g.values()}
	case p < 80:
		n := 1 + g.rng.Intn(g.maxBulk)
		g.length = max(g.length-n, 0)
		return Op{Op: OpDequeue, Count: n}
	case p < 88:
		return Op{Op: OpPeek}
	}

	switch container {
	case ContainerDArray:
		switch {
		case p < 94:
			pos := g.rng.Intn(g.length + 1)
			return Op{Op: OpInsert, Pos: pos, Values: g.values()}
		case g.length == 0:
			return Op{Op: OpEnqueue, Values: g.values()}
		case p < 97:
			g.length--
			return Op{Op: OpDelete, Pos: g.rng.Intn(g.length + 1)}
		default:
			return Op{Op: OpGet, Pos: g.rng.Intn(g.length)}
		}
	case ContainerLQueue:
		return Op{Op: OpCompact}
	default:
		return Op{Op: OpEnqueue, Values: g.values()}
	}
}
