package alloc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus collectors fed by one or more Trackers.
// The live gauge moves by deltas, so several trackers may share one Metrics.
type Metrics struct {
	allocs       prometheus.Counter
	frees        prometheus.Counter
	extends      prometheus.Counter
	extendMisses prometheus.Counter
	failures     prometheus.Counter
	live         prometheus.Gauge
}

// NewMetrics creates allocator metrics labelled with component and registers
// them with reg.
func NewMetrics(reg prometheus.Registerer, component string) (*Metrics, error) {
	labels := prometheus.Labels{"component": component}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "contig",
			Subsystem:   "alloc",
			Name:        name,
			ConstLabels: labels,
			Help:        help,
		})
	}

	m := &Metrics{
		allocs:       counter("allocs_total", "Total number of successful allocations"),
		frees:        counter("frees_total", "Total number of released buffers"),
		extends:      counter("extends_total", "Total number of in-place extensions"),
		extendMisses: counter("extend_misses_total", "Total number of extension attempts that required relocation"),
		failures:     counter("failures_total", "Total number of failed allocations"),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "contig",
			Subsystem:   "alloc",
			Name:        "live_elements",
			ConstLabels: labels,
			Help:        "Number of elements currently held by containers",
		}),
	}

	for _, c := range []prometheus.Collector{m.allocs, m.frees, m.extends, m.extendMisses, m.failures, m.live} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// The record helpers accept a nil receiver so Tracker can call them unconditionally.

func (m *Metrics) recordAlloc(n int) {
	if m == nil {
		return
	}
	m.allocs.Inc()
	m.live.Add(float64(n))
}

func (m *Metrics) recordExtend(n int) {
	if m == nil {
		return
	}
	m.extends.Inc()
	m.live.Add(float64(n))
}

func (m *Metrics) recordExtendMiss() {
	if m == nil {
		return
	}
	m.extendMisses.Inc()
}

func (m *Metrics) recordFree(n int) {
	if m == nil {
		return
	}
	m.frees.Inc()
	m.live.Sub(float64(n))
}

func (m *Metrics) recordFailure() {
	if m == nil {
		return
	}
	m.failures.Inc()
}
