package workload

import (
	"errors"
	"fmt"
	"time"

	"github.com/eapache/queue"
)

// ErrNoBaseline is returned by Baseline for containers without FIFO semantics.
var ErrNoBaseline = errors.New("workload: no baseline for container")

// BaselineResult is the outcome of replaying a script on eapache/queue.
type BaselineResult struct {
	Observed []int64
	Final    []int64
	Elapsed  time.Duration
}

// Baseline replays a FIFO script (lqueue or ring) on github.com/eapache/queue.
// Compact has no counterpart and is skipped. The observed sequence must match
// Run's for the same script.
func Baseline(s *Script) (*BaselineResult, error) {
	if s.Container != ContainerLQueue && s.Container != ContainerRing {
		return nil, fmt.Errorf("%w %q", ErrNoBaseline, s.Container)
	}

	q := queue.New()
	res := &BaselineResult{}
	start := time.Now()
	for _, op := range s.Ops {
		switch op.Op {
		case OpEnqueue:
			for _, v := range op.Values {
				q.Add(v)
			}
		case OpDequeue:
			for range max(op.Count, 1) {
				if q.Length() == 0 {
					break
				}
				res.Observed = append(res.Observed, q.Remove().(int64))
			}
		case OpPeek:
			if q.Length() > 0 {
				res.Observed = append(res.Observed, q.Peek().(int64))
			}
		}
	}
	res.Elapsed = time.Since(start)

	res.Final = make([]int64, q.Length())
	for i := range res.Final {
		res.Final[i] = q.Get(i).(int64)
	}
	return res, nil
}
