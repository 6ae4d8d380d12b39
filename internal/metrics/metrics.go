package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for evaluations and recommendations.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	// Verdicts by tri-state status
	Verdicts *prometheus.CounterVec

	// Programs returned by the ranker
	Recommendations prometheus.Counter

	// Catalog source failures by operation
	CatalogErrors *prometheus.CounterVec

	// Isolated per-program evaluation failures
	ItemFailures prometheus.Counter

	// Duration of a full catalog evaluation
	EvaluateLatency prometheus.Histogram
}

// New creates and registers all metrics on reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		Verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "foerdercheck_verdicts_total",
			Help: "Eligibility verdicts by status",
		}, []string{"status"}), // eligible, ineligible, indeterminate

		Recommendations: factory.NewCounter(prometheus.CounterOpts{
			Name: "foerdercheck_recommendations_total",
			Help: "Programs returned as recommendations",
		}),

		CatalogErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "foerdercheck_catalog_errors_total",
			Help: "Catalog source failures by operation",
		}, []string{"operation"}),

		ItemFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "foerdercheck_item_failures_total",
			Help: "Programs whose evaluation failed and was isolated",
		}),

		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "foerdercheck_evaluate_duration_seconds",
			Help:    "Duration of a full catalog evaluation",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		}),
	}
}

// IncrementVerdict records a verdict status
func (m *Metrics) IncrementVerdict(status string) {
	if m != nil {
		m.Verdicts.WithLabelValues(status).Inc()
	}
}

// AddRecommendations records n recommended programs
func (m *Metrics) AddRecommendations(n int) {
	if m != nil {
		m.Recommendations.Add(float64(n))
	}
}

// IncrementCatalogError records a catalog source failure
func (m *Metrics) IncrementCatalogError(operation string) {
	if m != nil {
		m.CatalogErrors.WithLabelValues(operation).Inc()
	}
}

// IncrementItemFailure records an isolated per-program failure
func (m *Metrics) IncrementItemFailure() {
	if m != nil {
		m.ItemFailures.Inc()
	}
}

// ObserveEvaluateLatency records the duration of a catalog evaluation
func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	if m != nil {
		m.EvaluateLatency.Observe(d.Seconds())
	}
}
