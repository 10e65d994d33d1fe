package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the credit ledger. A nil *Metrics is
// a no-op so services can run without a registry in tests.
type Metrics struct {
	PropertiesAdded     prometheus.Counter
	CreditsDebited      prometheus.Counter
	CreditsGranted      prometheus.Counter
	InsufficientCredits prometheus.Counter
	DebitRetries        prometheus.Counter
	DebitDuration       prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		PropertiesAdded: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_ledger_properties_added_total",
			Help: "Total number of properties added against credits",
		}),
		CreditsDebited: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_ledger_credits_debited_total",
			Help: "Total number of credits debited",
		}),
		CreditsGranted: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_ledger_credits_granted_total",
			Help: "Total number of credits granted by administrators",
		}),
		InsufficientCredits: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_ledger_insufficient_credits_total",
			Help: "Total number of property adds rejected for lack of credits",
		}),
		DebitRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_ledger_debit_retries_total",
			Help: "Total number of debit attempts retried after a lost race",
		}),
		DebitDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "propaudit_ledger_debit_duration_seconds",
			Help:    "Duration of AddProperty including lock wait and retries",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncPropertyAdded(credits int) {
	if m == nil {
		return
	}
	m.PropertiesAdded.Inc()
	m.CreditsDebited.Add(float64(credits))
}

func (m *Metrics) AddCreditsGranted(credits int) {
	if m == nil {
		return
	}
	m.CreditsGranted.Add(float64(credits))
}

func (m *Metrics) IncInsufficientCredits() {
	if m == nil {
		return
	}
	m.InsufficientCredits.Inc()
}

func (m *Metrics) IncDebitRetry() {
	if m == nil {
		return
	}
	m.DebitRetries.Inc()
}

// ObserveDebit records AddProperty latency. Call with time.Now() at the start.
func (m *Metrics) ObserveDebit(start time.Time) {
	if m == nil {
		return
	}
	m.DebitDuration.Observe(time.Since(start).Seconds())
}
