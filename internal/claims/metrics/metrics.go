package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for claim adjudication.
// Denials are labelled by gate so exhausted budgets and cooldown storms are
// distinguishable on a dashboard.
type Metrics struct {
	ClaimsApproved     prometheus.Counter
	ClaimsDenied       *prometheus.CounterVec
	ClaimsRejected     prometheus.Counter
	AmountDisbursed    prometheus.Counter
	AdjudicateDuration prometheus.Histogram
}

// New creates a new Metrics instance with all adjudication metrics registered.
func New() *Metrics {
	return &Metrics{
		ClaimsApproved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitaran_claims_approved_total",
			Help: "Total number of approved claims",
		}),
		ClaimsDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vitaran_claims_denied_total",
			Help: "Total number of denied claims by failing gate",
		}, []string{"gate"}),
		ClaimsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitaran_claims_rejected_total",
			Help: "Total number of claims rejected because the system was not active",
		}),
		AmountDisbursed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitaran_amount_disbursed_total",
			Help: "Cumulative amount disbursed in the smallest currency unit",
		}),
		AdjudicateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vitaran_adjudicate_duration_seconds",
			Help:    "Duration of claim adjudication including commit",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementDenied records a denial attributed to the first failing gate.
func (m *Metrics) IncrementDenied(gate string) {
	m.ClaimsDenied.WithLabelValues(gate).Inc()
}

// ObserveAdjudicate records the duration of one adjudication.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAdjudicate(start time.Time) {
	m.AdjudicateDuration.Observe(time.Since(start).Seconds())
}
