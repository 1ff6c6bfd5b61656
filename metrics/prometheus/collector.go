// ABOUTME: Prometheus implementation of the collector metrics hook
// ABOUTME: Counts allocations, collections, reclaimed objects and contract violations

package prometheus

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/prateek/tracegc/gc"
)

// Metrics is the Prometheus-backed gc.Metrics.
type Metrics struct {
	allocations prometheus.Counter
	collections *prometheus.CounterVec
	reclaimed   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	live        prometheus.Gauge
	violations  *prometheus.CounterVec
}

var _ gc.Metrics = (*Metrics)(nil)

// New registers the collector metrics on reg under namespace.
func New(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		allocations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Total number of objects allocated on the heap",
		}),
		collections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collections_total",
			Help:      "Total number of collection cycles by trigger",
		}, []string{"trigger"}), // "threshold", "explicit"
		reclaimed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reclaimed_objects_total",
			Help:      "Total number of objects reclaimed by trigger",
		}, []string{"trigger"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collection_duration_seconds",
			Help:      "Duration of collection cycles",
			Buckets: []float64{
				0.00001, // 10us - tiny heaps
				0.0001,  // 100us
				0.001,   // 1ms
				0.005,   // 5ms
				0.01,    // 10ms
				0.05,    // 50ms
				0.1,     // 100ms
				0.5,     // 500ms
				1,       // 1s - very large heaps
			},
		}, []string{"trigger"}),
		live: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_objects",
			Help:      "Objects in the heap after the most recent collection",
		}),
		violations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contract_violations_total",
			Help:      "Collections aborted because a traced edge did not resolve",
		}, []string{"kind"}),
	}
}

// ObserveAllocation records one allocation.
func (m *Metrics) ObserveAllocation() {
	m.allocations.Inc()
}

// ObserveCollection records a finished collection.
func (m *Metrics) ObserveCollection(trigger gc.Trigger, reclaimed, live int, d time.Duration) {
	t := string(trigger)
	m.collections.WithLabelValues(t).Inc()
	m.reclaimed.WithLabelValues(t).Add(float64(reclaimed))
	m.duration.WithLabelValues(t).Observe(d.Seconds())
	m.live.Set(float64(live))
}

// ObserveViolation records an aborted collection.
func (m *Metrics) ObserveViolation(err error) {
	m.violations.WithLabelValues(violationKind(err)).Inc()
}

func violationKind(err error) string {
	switch {
	case errors.Is(err, gc.ErrDanglingEdge):
		return "dangling_edge"
	case errors.Is(err, gc.ErrForeignEdge):
		return "foreign_edge"
	case errors.Is(err, gc.ErrRootSetCorrupted):
		return "root_set"
	default:
		return "unknown"
	}
}
