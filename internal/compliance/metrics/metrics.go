package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compliance module.
type Metrics struct {
	// Requirement records created/updated by aggregation runs
	RequirementsCreated prometheus.Counter
	RequirementsUpdated prometheus.Counter

	// Warnings emitted by status
	Warnings *prometheus.CounterVec

	// Full aggregation latency
	ComputeLatency prometheus.Histogram
}

// New creates a new Metrics instance with all compliance module metrics
// registered.
func New() *Metrics {
	return &Metrics{
		RequirementsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nachweis_requirements_created_total",
			Help: "Total requirement records created by aggregation runs",
		}),
		RequirementsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nachweis_requirements_updated_total",
			Help: "Total requirement records updated by aggregation runs",
		}),
		Warnings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nachweis_compliance_warnings_total",
			Help: "Total compliance warnings emitted by status",
		}, []string{"status"}),
		ComputeLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "nachweis_compliance_compute_duration_seconds",
			Help:    "Duration of full requirement aggregation including persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

// ObserveCompute records one aggregation run.
func (m *Metrics) ObserveCompute(created, updated int, d time.Duration) {
	if m != nil {
		m.RequirementsCreated.Add(float64(created))
		m.RequirementsUpdated.Add(float64(updated))
		m.ComputeLatency.Observe(d.Seconds())
	}
}

// IncrementWarning records an emitted warning.
func (m *Metrics) IncrementWarning(status string) {
	if m != nil {
		m.Warnings.WithLabelValues(status).Inc()
	}
}
