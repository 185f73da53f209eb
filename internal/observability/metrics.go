package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeRejected = "rejected"
	OutcomeIgnored  = "ignored"
	OutcomeDropped  = "dropped"
)

// Metrics holds the service collectors on a private registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	webhookRequests  *prometheus.CounterVec
	commandRuns      *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
}

func NewMetrics(namespace string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		webhookRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_requests_total",
			Help:      "Inbound Slack webhook requests by event type and outcome.",
		}, []string{"type", "outcome"}),
		commandRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "standings_runs_total",
			Help:      "Standings command executions by outcome.",
		}, []string{"outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Latency of outbound FPL and Slack calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"upstream", "endpoint", "outcome"}),
	}
	registry.MustRegister(m.webhookRequests, m.commandRuns, m.upstreamDuration)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveWebhook(eventType, outcome string) {
	if m == nil {
		return
	}
	if eventType == "" {
		eventType = "none"
	}
	m.webhookRequests.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) ObserveStandingsRun(outcome string) {
	if m == nil {
		return
	}
	m.commandRuns.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpstream(upstream, endpoint string, startedAt time.Time, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.upstreamDuration.WithLabelValues(upstream, endpoint, outcome).Observe(time.Since(startedAt).Seconds())
}
