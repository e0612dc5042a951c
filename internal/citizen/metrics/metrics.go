package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the citizen registry.
type Metrics struct {
	CitizensRegistered prometheus.Counter
	CitizensImported   prometheus.Counter
	CitizensPurged     prometheus.Counter
	AadhaarUpdates     prometheus.Counter
	RegisterDuration   prometheus.Histogram
	LookupDuration     prometheus.Histogram
}

// New creates a new Metrics instance with all registry metrics registered.
func New() *Metrics {
	return &Metrics{
		CitizensRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitaran_citizens_registered_total",
			Help: "Total number of citizens registered individually",
		}),
		CitizensImported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitaran_citizens_imported_total",
			Help: "Total number of citizens registered via batch import",
		}),
		CitizensPurged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitaran_citizens_purged_total",
			Help: "Total number of inactive citizens removed from the registry",
		}),
		AadhaarUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vitaran_aadhaar_updates_total",
			Help: "Total number of aadhaar link status updates",
		}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vitaran_citizen_register_duration_seconds",
			Help:    "Duration of citizen registration operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		LookupDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vitaran_citizen_lookup_duration_seconds",
			Help:    "Duration of citizen lookup operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveRegister records the duration of a registration operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}

// ObserveLookup records the duration of a lookup operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveLookup(start time.Time) {
	m.LookupDuration.Observe(time.Since(start).Seconds())
}
