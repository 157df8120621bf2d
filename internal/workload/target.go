package workload

import (
	"errors"
	"fmt"
	"slices"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/container/darray"
	"github.com/joshuapare/contig/container/lqueue"
	"github.com/joshuapare/contig/container/ring"
	"github.com/joshuapare/contig/container/stack"
	"github.com/joshuapare/contig/pkg/types"
)

var errUnsupported = errors.New("workload: operation not supported by container")

// Target adapts one container to the script operations. Each adapter owns
// its container and borrows the allocator it was built with.
type Target interface {
	Enqueue(vs []int64) error
	Dequeue() (int64, bool, error)
	Insert(pos int, vs []int64) error
	Delete(pos int) (int64, error)
	Compact() error
	Peek() (int64, bool)
	Get(pos int) (int64, bool)
	Len() int
	Cap() int
	Contents() []int64
	Release()
}

// NewTarget builds an empty container of the given kind with the requested
// initial capacity.
func NewTarget(kind string, a alloc.Allocator[int64], capacity int) (Target, error) {
	switch kind {
	case ContainerDArray:
		d, err := darray.WithCapacity(a, capacity)
		if err != nil {
			return nil, err
		}
		return &arrayTarget{a: a, d: d}, nil
	case ContainerLQueue:
		q, err := lqueue.WithCapacity(a, capacity)
		if err != nil {
			return nil, err
		}
		return &queueTarget{a: a, q: q}, nil
	case ContainerRing:
		r, err := ring.WithCapacity(a, capacity)
		if err != nil {
			return nil, err
		}
		return &ringTarget{a: a, r: r}, nil
	case ContainerStack:
		s, err := stack.WithCapacity(a, capacity)
		if err != nil {
			return nil, err
		}
		return &stackTarget{a: a, s: s}, nil
	default:
		return nil, fmt.Errorf("%w: unknown container %q", ErrInvalidScript, kind)
	}
}

type arrayTarget struct {
	a alloc.Allocator[int64]
	d *darray.Array[int64]
}

func (t *arrayTarget) Enqueue(vs []int64) error {
	if len(vs) == 1 {
		return t.d.Append(t.a, vs[0])
	}
	return t.d.AppendBulk(t.a, vs)
}

func (t *arrayTarget) Dequeue() (int64, bool, error) {
	if t.d.Len() == 0 {
		return 0, false, nil
	}
	v, err := t.d.DeleteAt(0)
	return v, err == nil, err
}

func (t *arrayTarget) Insert(pos int, vs []int64) error {
	if len(vs) == 1 {
		return t.d.InsertAt(t.a, vs[0], pos)
	}
	return t.d.InsertBulkAt(t.a, vs, pos)
}

func (t *arrayTarget) Delete(pos int) (int64, error) { return t.d.DeleteAt(pos) }
func (t *arrayTarget) Compact() error { return errUnsupported }
func (t *arrayTarget) Peek() (int64, bool) { return t.d.Get(0) }
func (t *arrayTarget) Get(pos int) (int64, bool) { return t.d.Get(pos) }
func (t *arrayTarget) Len() int { return t.d.Len() }
func (t *arrayTarget) Cap() int { return t.d.Cap() }
func (t *arrayTarget) Contents() []int64 { return slices.Clone(t.d.Slice()) }
func (t *arrayTarget) Release() { t.d.Release(t.a) }

type queueTarget struct {
	a alloc.Allocator[int64]
	q *lqueue.Queue[int64]
}

func (t *queueTarget) Enqueue(vs []int64) error {
	if len(vs) == 1 {
		return t.q.Enqueue(t.a, vs[0])
	}
	return t.q.EnqueueBulk(t.a, vs)
}

func (t *queueTarget) Dequeue() (int64, bool, error) {
	v, ok := t.q.Dequeue()
	return v, ok, nil
}

func (t *queueTarget) Insert(int, []int64) error { return errUnsupported }
func (t *queueTarget) Delete(int) (int64, error) { return 0, errUnsupported }
func (t *queueTarget) Compact() error { t.q.Compact(); return nil }
func (t *queueTarget) Peek() (int64, bool) { return t.q.Peek() }
func (t *queueTarget) Get(int) (int64, bool) { return 0, false }
func (t *queueTarget) Len() int { return t.q.Len() }
func (t *queueTarget) Cap() int { return t.q.Cap() }
func (t *queueTarget) Contents() []int64 { return slices.Collect(t.q.All()) }
func (t *queueTarget) Release() { t.q.Release(t.a) }

type ringTarget struct {
	a alloc.Allocator[int64]
	r *ring.Buffer[int64]
}

func (t *ringTarget) Enqueue(vs []int64) error {
	if len(vs) == 1 {
		return t.r.Enqueue(t.a, vs[0])
	}
	return t.r.EnqueueBulk(t.a, vs)
}

func (t *ringTarget) Dequeue() (int64, bool, error) {
	v, ok := t.r.Dequeue()
	return v, ok, nil
}

func (t *ringTarget) Insert(int, []int64) error { return errUnsupported }
func (t *ringTarget) Delete(int) (int64, error) { return 0, errUnsupported }
func (t *ringTarget) Compact() error { return errUnsupported }
func (t *ringTarget) Peek() (int64, bool) { return t.r.Peek() }
func (t *ringTarget) Get(int) (int64, bool) { return 0, false }
func (t *ringTarget) Len() int { return t.r.Len() }
func (t *ringTarget) Cap() int { return t.r.Cap() }
func (t *ringTarget) Contents() []int64 { return slices.Collect(t.r.All()) }
func (t *ringTarget) Release() { t.r.Release(t.a) }

type stackTarget struct {
	a alloc.Allocator[int64]
	s *stack.Stack[int64]
}

func (t *stackTarget) Enqueue(vs []int64) error {
	for _, v := range vs {
		if err := t.s.Push(t.a, v); err != nil {
			return err
		}
	}
	return nil
}

func (t *stackTarget) Dequeue() (int64, bool, error) {
	v, err := t.s.Pop()
	if types.IsOutOfBounds(err) {
		return 0, false, nil
	}
	return v, err == nil, err
}

func (t *stackTarget) Insert(int, []int64) error { return errUnsupported }
func (t *stackTarget) Delete(int) (int64, error) { return 0, errUnsupported }
func (t *stackTarget) Compact() error { return errUnsupported }
func (t *stackTarget) Peek() (int64, bool) { return t.s.Peek() }
func (t *stackTarget) Get(int) (int64, bool) { return 0, false }
func (t *stackTarget) Len() int { return t.s.Len() }
func (t *stackTarget) Cap() int { return t.s.Cap() }
func (t *stackTarget) Release() { t.s.Release(t.a) }

// Contents lists the stack bottom to top.
func (t *stackTarget) Contents() []int64 { return slices.Collect(t.s.All()) }
