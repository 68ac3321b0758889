package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "examportal"

// Metrics holds the application collectors on a private registry.
type Metrics struct {
	registry          *prometheus.Registry
	GateDecisions     *prometheus.CounterVec
	HallTicketLookups *prometheus.CounterVec
	RateLimited       *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		GateDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gate_decisions_total",
			Help:      "Authorization gate outcomes by gate and decision.",
		}, []string{"gate", "decision"}),
		HallTicketLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hallticket_lookups_total",
			Help:      "Hall ticket lookups by result.",
		}, []string{"result"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_requests_total",
			Help:      "Requests rejected by the rate limiter, by scope.",
		}, []string{"scope"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.GateDecisions,
		m.HallTicketLookups,
		m.RateLimited,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveGate(gate, decision string) {
	if m == nil {
		return
	}
	m.GateDecisions.WithLabelValues(gate, decision).Inc()
}

func (m *Metrics) ObserveHallTicket(result string) {
	if m == nil {
		return
	}
	m.HallTicketLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRateLimited(scope string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(scope).Inc()
}
