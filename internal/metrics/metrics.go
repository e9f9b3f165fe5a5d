package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the slot service on a private
// registry so tests can build isolated instances.
type Metrics struct {
	// SlotOpsTotal counts engine operations by op (add_slot, remove_slot,
	// swap_slot) and outcome (ok, error).
	SlotOpsTotal *prometheus.CounterVec

	// AuditWriteFailuresTotal counts audit entries that could not be
	// persisted. Audit writes are best effort, so this counter is the main
	// signal that the trail is incomplete.
	AuditWriteFailuresTotal prometheus.Counter

	HTTPRequestsTotal          *prometheus.CounterVec
	HTTPRequestDurationSeconds *prometheus.HistogramVec

	registry *prometheus.Registry
}

// New creates a Metrics instance with all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		SlotOpsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_slot_ops_total",
				Help: "Total slot engine operations by op and outcome",
			},
			[]string{"op", "outcome"},
		),
		AuditWriteFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "crm_audit_write_failures_total",
				Help: "Total audit entries that failed to persist",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "crm_http_requests_total",
				Help: "Total HTTP requests by method, route and status",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "crm_http_request_duration_seconds",
				Help:    "HTTP request duration by method and route",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		registry: reg,
	}

	reg.MustRegister(
		m.SlotOpsTotal,
		m.AuditWriteFailuresTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestDurationSeconds,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSlotOp records one engine operation outcome. Nil-safe so the
// usecase can run without metrics in tests.
func (m *Metrics) ObserveSlotOp(op, outcome string) {
	if m == nil {
		return
	}
	m.SlotOpsTotal.WithLabelValues(op, outcome).Inc()
}

// ObserveAuditFailure records one failed audit write. Nil-safe.
func (m *Metrics) ObserveAuditFailure() {
	if m == nil {
		return
	}
	m.AuditWriteFailuresTotal.Inc()
}

// Handler exposes the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
