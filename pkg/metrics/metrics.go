package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	// Scheduling metrics
	BookingsTotal      prometheus.Counter
	BookingFailures    *prometheus.CounterVec
	CancellationsTotal prometheus.Counter
	ReschedulesTotal   prometheus.Counter
	RescheduleFailures *prometheus.CounterVec
	OpenSlots          prometheus.Gauge
	RegisteredPatients prometheus.Gauge
	RegisteredDoctors  prometheus.Gauge
	SnapshotDuration   prometheus.Histogram
	SnapshotFailures   prometheus.Counter
}

// New creates and registers all application metrics
func New(namespace string) *Metrics {
	return &Metrics{
		BookingsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Total number of successfully booked appointments",
		}),
		BookingFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_failures_total",
			Help:      "Total number of failed booking attempts",
		}, []string{"reason"}),
		CancellationsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Total number of cancelled appointments",
		}),
		ReschedulesTotal: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_total",
			Help:      "Total number of rescheduled appointments",
		}),
		RescheduleFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedule_failures_total",
			Help:      "Total number of failed reschedule attempts",
		}, []string{"reason"}),
		OpenSlots: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_slots",
			Help:      "Current number of open slots across all doctors",
		}),
		RegisteredPatients: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_patients",
			Help:      "Current number of registered patients",
		}),
		RegisteredDoctors: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_doctors",
			Help:      "Current number of registered doctors",
		}),
		SnapshotDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Time spent writing collection snapshots",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		SnapshotFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_failures_total",
			Help:      "Total number of failed snapshot writes",
		}),
	}
}

// NewWithRegistry registers the metrics on a private registry, used by tests
// to avoid duplicate registration on the default registerer.
func NewWithRegistry(namespace string, reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		BookingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Total number of successfully booked appointments",
		}),
		BookingFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_failures_total",
			Help:      "Total number of failed booking attempts",
		}, []string{"reason"}),
		CancellationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cancellations_total",
			Help:      "Total number of cancelled appointments",
		}),
		ReschedulesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_total",
			Help:      "Total number of rescheduled appointments",
		}),
		RescheduleFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedule_failures_total",
			Help:      "Total number of failed reschedule attempts",
		}, []string{"reason"}),
		OpenSlots: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "open_slots",
			Help:      "Current number of open slots across all doctors",
		}),
		RegisteredPatients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_patients",
			Help:      "Current number of registered patients",
		}),
		RegisteredDoctors: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "registered_doctors",
			Help:      "Current number of registered doctors",
		}),
		SnapshotDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_duration_seconds",
			Help:      "Time spent writing collection snapshots",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		SnapshotFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_failures_total",
			Help:      "Total number of failed snapshot writes",
		}),
	}
}
