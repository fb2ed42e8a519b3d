// Package metrics exposes Prometheus instrumentation for the dispatcher and
// its handlers.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every Prometheus collector the core registers.
type Metrics struct {
	MobileQueueDepth prometheus.Gauge
	HMIQueueDepth    prometheus.Gauge

	MobileRequestsTotal *prometheus.CounterVec
	HMIEventsTotal      *prometheus.CounterVec

	HandlerDuration *prometheus.HistogramVec

	CorrelationEntries *prometheus.GaugeVec
	ActiveApps         prometheus.Gauge
	RegisteredApps     prometheus.Counter

	SyncPJobsTotal   *prometheus.CounterVec
	SyncPQueueDepth  prometheus.Gauge

	startTime time.Time
}

// New registers and returns a fresh Metrics instance. Registering the same
// metric name twice panics, so tests that need isolated metrics should use
// prometheus.NewRegistry with NewWithRegisterer instead of New.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers metrics against a caller-supplied registerer,
// letting tests use an isolated prometheus.NewRegistry().
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		startTime: time.Now(),

		MobileQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "appmgr_mobile_queue_depth",
			Help: "Current number of items buffered in the mobile-inbound queue.",
		}),
		HMIQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "appmgr_hmi_queue_depth",
			Help: "Current number of items buffered in the HMI-inbound queue.",
		}),
		MobileRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appmgr_mobile_requests_total",
			Help: "Total mobile requests handled, by method and result code.",
		}, []string{"method", "result_code"}),
		HMIEventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appmgr_hmi_events_total",
			Help: "Total HMI bus messages handled, by method.",
		}, []string{"method"}),
		HandlerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appmgr_handler_duration_seconds",
			Help:    "Time spent inside a single dispatcher handler invocation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"queue"}),
		CorrelationEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "appmgr_correlation_entries",
			Help: "Number of live entries per correlation table.",
		}, []string{"table"}),
		ActiveApps: factory.NewGauge(prometheus.GaugeOpts{
			Name: "appmgr_active_apps",
			Help: "Number of registered applications.",
		}),
		RegisteredApps: factory.NewCounter(prometheus.CounterOpts{
			Name: "appmgr_registered_apps_total",
			Help: "Total RegisterAppInterface calls that succeeded.",
		}),
		SyncPJobsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appmgr_syncp_jobs_total",
			Help: "Total deferred SyncP send jobs, by outcome.",
		}, []string{"outcome"}),
		SyncPQueueDepth: factory.NewGauge(prometheus.GaugeOpts{
			Name: "appmgr_syncp_queue_depth",
			Help: "Current number of queued deferred SyncP send jobs.",
		}),
	}
}

// ObserveHandler records how long a handler invocation took on one queue.
func (m *Metrics) ObserveHandler(queue string, d time.Duration) {
	m.HandlerDuration.WithLabelValues(queue).Observe(d.Seconds())
}

// UptimeSeconds returns how long this Metrics instance has existed.
func (m *Metrics) UptimeSeconds() float64 {
	return time.Since(m.startTime).Seconds()
}
