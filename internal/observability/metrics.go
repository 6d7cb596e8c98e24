package observability

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes engine and HTTP counters via Prometheus. All record
// methods are nil-safe so pure components can be tested without a registry.
type Metrics struct {
	httpRequests      *prometheus.CounterVec
	httpErrors        *prometheus.CounterVec
	deadlinesComputed *prometheus.CounterVec
	slaSkips          *prometheus.CounterVec
	hoursDebited      prometheus.Counter
}

// NewMetrics registers collectors on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by path, method and status.",
		}, []string{"path", "method", "status"}),
		httpErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "HTTP error responses by path, method and error code.",
		}, []string{"path", "method", "code"}),
		deadlinesComputed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sla_deadlines_computed_total",
			Help: "SLA deadlines computed, by metric (response or solution).",
		}, []string{"metric"}),
		slaSkips: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sla_skips_total",
			Help: "Tickets created without SLA deadlines, by reason.",
		}, []string{"reason"}),
		hoursDebited: factory.NewCounter(prometheus.CounterOpts{
			Name: "contract_hours_debited_total",
			Help: "Contract hours debited through the hour ledger.",
		}),
	}
}

// RecordRequest counts a completed HTTP request.
func (m *Metrics) RecordRequest(path, method string, status int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
}

// RecordError counts an HTTP error response.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.httpErrors.WithLabelValues(path, method, code).Inc()
}

// RecordDeadline counts a computed deadline for the given metric.
func (m *Metrics) RecordDeadline(metric string) {
	if m == nil {
		return
	}
	m.deadlinesComputed.WithLabelValues(metric).Inc()
}

// RecordSlaSkip counts a ticket that proceeded without deadlines.
func (m *Metrics) RecordSlaSkip(reason string) {
	if m == nil {
		return
	}
	m.slaSkips.WithLabelValues(reason).Inc()
}

// RecordHoursDebited accumulates debited contract hours.
func (m *Metrics) RecordHoursDebited(hours float64) {
	if m == nil {
		return
	}
	m.hoursDebited.Add(hours)
}
