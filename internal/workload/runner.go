package workload

import (
	"errors"
	"fmt"
	"time"

	"github.com/joshuapare/contig/container/alloc"
	"github.com/joshuapare/contig/pkg/types"
)

// OpError records a container error raised by one scripted op.
type OpError struct {
	Index int
	Op    string
	Err   error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("op %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// Result summarizes one replay.
type Result struct {
	Container string
	Allocator string
	Ops       int        // ops executed
	Observed  []int64    // values returned by dequeue, delete, peek and get, in order
	Errors    []*OpError // container errors; replay continues past them unless stopped
	Final     []int64    // contents before release, in logical order
	Len       int
	Cap       int
	Stats     alloc.Stats // allocator activity, sampled after release
	Elapsed   time.Duration
}

// Failures counts recorded errors of kind k.
func (r *Result) Failures(k types.ErrKind) int {
	n := 0
	for _, e := range r.Errors {
		if types.KindOf(e) == k {
			n++
		}
	}
	return n
}

// RunOption configures Run.
type RunOption func(*runOptions)

type runOptions struct {
	metrics     *alloc.Metrics
	stopOnError bool
}

// WithMetrics mirrors allocator activity into m.
func WithMetrics(m *alloc.Metrics) RunOption {
	return func(o *runOptions) { o.metrics = m }
}

// WithStopOnError ends the replay at the first container error.
func WithStopOnError() RunOption {
	return func(o *runOptions) { o.stopOnError = true }
}

// Run replays s on a fresh allocator and container. Container errors
// (out of bounds, out of memory) are recorded in the Result; only setup
// failures are returned as errors. The container is always released, so
// Result.Stats.Live is 0 for a correct container.
func Run(s *Script, opts ...RunOption) (*Result, error) {
	var o runOptions
	for _, opt := range opts {
		opt(&o)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	a, closeAlloc, err := newAllocator(s)
	if err != nil {
		return nil, err
	}
	defer closeAlloc()

	tr := alloc.NewTracker(a, alloc.WithMetrics(o.metrics))
	tgt, err := NewTarget(s.Container, tr, s.Capacity)
	if err != nil {
		return nil, fmt.Errorf("workload: create %s with capacity %d: %w", s.Container, s.Capacity, err)
	}

	res := &Result{Container: s.Container, Allocator: s.Allocator}
	start := time.Now()
	for i, op := range s.Ops {
		res.Ops++
		err := apply(tgt, op, res)
		if err == nil {
			continue
		}
		if errors.Is(err, errUnsupported) {
			tgt.Release()
			return nil, fmt.Errorf("workload: op %d (%s) on %s: %w", i, op.Op, s.Container, err)
		}
		res.Errors = append(res.Errors, &OpError{Index: i, Op: op.Op, Err: err})
		if o.stopOnError {
			break
		}
	}
	res.Elapsed = time.Since(start)

	res.Final = tgt.Contents()
	res.Len = tgt.Len()
	res.Cap = tgt.Cap()
	tgt.Release()
	res.Stats = tr.Stats()
	return res, nil
}

func apply(t Target, op Op, res *Result) error {
	switch op.Op {
	case OpEnqueue:
		return t.Enqueue(op.Values)
	case OpDequeue:
		for range max(op.Count, 1) {
			v, ok, err := t.Dequeue()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			res.Observed = append(res.Observed, v)
		}
		return nil
	case OpInsert:
		return t.Insert(op.Pos, op.Values)
	case OpDelete:
		v, err := t.Delete(op.Pos)
		if err != nil {
			return err
		}
		res.Observed = append(res.Observed, v)
		return nil
	case OpCompact:
		return t.Compact()
	case OpPeek:
		if v, ok := t.Peek(); ok {
			res.Observed = append(res.Observed, v)
		}
		return nil
	case OpGet:
		v, ok := t.Get(op.Pos)
		if !ok {
			return fmt.Errorf("get at %d (len %d): %w", op.Pos, t.Len(), types.ErrOutOfBounds)
		}
		res.Observed = append(res.Observed, v)
		return nil
	default:
		return errUnsupported
	}
}
