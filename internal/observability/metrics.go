// Package observability provides the gateway's structured logging and
// Prometheus metrics.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics behind the protected /metrics route.
type Metrics struct {
	registry *prometheus.Registry

	// Authentication metrics
	AuthAttemptsTotal *prometheus.CounterVec
	TokensIssuedTotal prometheus.Counter
	TokensActive      prometheus.Gauge
	TokenLookupsTotal *prometheus.CounterVec

	// Static admin credential metrics
	AdminRejectsTotal prometheus.Counter
}

// Auth attempt outcomes used as the "outcome" label value.
const (
	OutcomeIssued            = "issued"
	OutcomeMissingCredential = "missing_credential"
	OutcomeRejected          = "rejected"
)

// NewMetrics creates a Metrics instance with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		AuthAttemptsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_gateway_authenticate_attempts_total",
			Help: "Authenticate endpoint attempts by outcome",
		}, []string{"outcome"}),
		TokensIssuedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "auth_gateway_tokens_issued_total",
			Help: "Total number of bearer tokens issued",
		}),
		TokensActive: factory.NewGauge(prometheus.GaugeOpts{
			Name: "auth_gateway_tokens_active",
			Help: "Number of live tokens in the in-memory store",
		}),
		TokenLookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "auth_gateway_token_lookups_total",
			Help: "Token store lookups by result",
		}, []string{"result"}),
		AdminRejectsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "auth_gateway_admin_rejects_total",
			Help: "Requests rejected by the static admin credential check",
		}),
	}
}

// Handler returns the Prometheus exposition handler for this registry.
// Access control is applied by the route wiring, not here.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordAuthAttempt increments the authenticate attempt counter.
func (m *Metrics) RecordAuthAttempt(outcome string) {
	m.AuthAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordTokenIssued increments the issued counter and the active gauge.
func (m *Metrics) RecordTokenIssued() {
	m.TokensIssuedTotal.Inc()
	m.TokensActive.Inc()
}

// RecordTokenLookup increments the lookup counter.
func (m *Metrics) RecordTokenLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.TokenLookupsTotal.WithLabelValues(result).Inc()
}
