package publisher

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks audit persistence. A nil *Metrics is a no-op.
type Metrics struct {
	Persisted       prometheus.Counter
	Failures        prometheus.Counter
	Dropped         prometheus.Counter
	PersistDuration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Persisted: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_audit_events_persisted_total",
			Help: "Total number of audit events persisted",
		}),
		Failures: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_audit_persist_failures_total",
			Help: "Total number of audit events that failed to persist",
		}),
		Dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_audit_events_dropped_total",
			Help: "Total number of audit events dropped because the buffer was full",
		}),
		PersistDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "propaudit_audit_persist_duration_seconds",
			Help:    "Duration of audit store appends",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) ObservePersist(start time.Time) {
	if m == nil {
		return
	}
	m.Persisted.Inc()
	m.PersistDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncFailures() {
	if m == nil {
		return
	}
	m.Failures.Inc()
}

func (m *Metrics) IncDropped() {
	if m == nil {
		return
	}
	m.Dropped.Inc()
}
