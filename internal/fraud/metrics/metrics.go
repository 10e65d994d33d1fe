package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"propaudit/internal/scoring"
)

// Metrics for fraud analysis. A nil *Metrics is a no-op.
type Metrics struct {
	Analyses         *prometheus.CounterVec
	AnalysisFailures prometheus.Counter
	AnalysisDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Analyses: f.NewCounterVec(prometheus.CounterOpts{
			Name: "propaudit_fraud_analyses_total",
			Help: "Total number of completed fraud analyses by risk level",
		}, []string{"risk_level"}),
		AnalysisFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "propaudit_fraud_analysis_failures_total",
			Help: "Total number of fraud analyses that could not gather evidence",
		}),
		AnalysisDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "propaudit_fraud_analysis_duration_seconds",
			Help:    "Duration of evidence gathering and scoring",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

func (m *Metrics) IncAnalysis(level scoring.RiskLevel) {
	if m == nil {
		return
	}
	m.Analyses.WithLabelValues(string(level)).Inc()
}

func (m *Metrics) IncFailure() {
	if m == nil {
		return
	}
	m.AnalysisFailures.Inc()
}

func (m *Metrics) ObserveAnalysis(start time.Time) {
	if m == nil {
		return
	}
	m.AnalysisDuration.Observe(time.Since(start).Seconds())
}
