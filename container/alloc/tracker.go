package alloc

// Stats aggregates allocator activity. Element counts, not bytes.
type Stats struct {
	Allocs       int // successful Alloc calls returning a non-empty buffer
	Frees        int // Free calls with a non-empty buffer
	Extends      int // successful in-place extensions
	ExtendMisses int // Extend calls that reported false
	Failures     int // Alloc calls that returned an error
	Live         int // elements currently held by callers
	Peak         int // high-water mark of Live
}

// TrackerOption configures a Tracker.
type TrackerOption func(*trackerOptions)

type trackerOptions struct {
	metrics *Metrics
}

// WithMetrics mirrors every recorded event into m.
// A nil m is ignored.
func WithMetrics(m *Metrics) TrackerOption {
	return func(o *trackerOptions) {
		if m != nil {
			o.metrics = m
		}
	}
}

// Tracker wraps an allocator and records Stats for every call.
// It is how tests and the CLI verify that containers release exactly what
// they acquired.
type Tracker[T any] struct {
	inner   Allocator[T]
	stats   Stats
	metrics *Metrics
}

// NewTracker wraps inner.
func NewTracker[T any](inner Allocator[T], opts ...TrackerOption) *Tracker[T] {
	var o trackerOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &Tracker[T]{inner: inner, metrics: o.metrics}
}

// Alloc forwards to the inner allocator and records the outcome.
func (t *Tracker[T]) Alloc(n int) ([]T, error) {
	s, err := t.inner.Alloc(n)
	if err != nil {
		t.stats.Failures++
		t.metrics.recordFailure()
		return nil, err
	}
	if len(s) > 0 {
		t.stats.Allocs++
		t.addLive(len(s))
		t.metrics.recordAlloc(len(s))
	}
	return s, nil
}

// Extend forwards to the inner allocator and records hit or miss.
func (t *Tracker[T]) Extend(s []T, n int) ([]T, bool) {
	ext, ok := t.inner.Extend(s, n)
	if !ok {
		t.stats.ExtendMisses++
		t.metrics.recordExtendMiss()
		return s, false
	}
	t.stats.Extends++
	t.addLive(len(ext) - len(s))
	t.metrics.recordExtend(len(ext) - len(s))
	return ext, true
}

// Free forwards to the inner allocator.
func (t *Tracker[T]) Free(s []T) {
	if len(s) > 0 {
		t.stats.Frees++
		t.stats.Live -= len(s)
		t.metrics.recordFree(len(s))
	}
	t.inner.Free(s)
}

// Stats returns a snapshot of the recorded activity.
func (t *Tracker[T]) Stats() Stats { return t.stats }

func (t *Tracker[T]) addLive(n int) {
	t.stats.Live += n
	if t.stats.Live > t.stats.Peak {
		t.stats.Peak = t.stats.Live
	}
}

// Compile-time interface check
var _ Allocator[int] = (*Tracker[int])(nil)
