package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for NHI checks.
type Metrics struct {
	// Check outcomes by result and format
	CheckOutcome *prometheus.CounterVec

	// Batch sizes as submitted
	BatchSize prometheus.Histogram

	// Duration of a full batch check
	BatchLatency prometheus.Histogram
}

// New creates the check metrics registered with reg.
// Pass prometheus.DefaultRegisterer in production and a fresh
// prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CheckOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "nhi_checks_total",
			Help: "Total NHI checks by outcome and format",
		}, []string{"outcome", "format"}), // outcome: "valid", "invalid_format", "reserved_for_testing"

		BatchSize: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nhi_check_batch_size",
			Help:    "Number of values submitted per batch check",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),

		BatchLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "nhi_check_batch_duration_seconds",
			Help:    "Duration of batch NHI checks",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
	}
}

// IncrementOutcome records a single check outcome.
func (m *Metrics) IncrementOutcome(outcome, format string) {
	if m != nil {
		m.CheckOutcome.WithLabelValues(outcome, format).Inc()
	}
}

// ObserveBatch records the size and duration of a batch check.
func (m *Metrics) ObserveBatch(size int, d time.Duration) {
	if m != nil {
		m.BatchSize.Observe(float64(size))
		m.BatchLatency.Observe(d.Seconds())
	}
}
