// metrics.go - Prometheus metrics for the admission daemon.

package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"admission/internal/validator"
)

// Metrics collects admission counters and latencies.
type Metrics struct {
	registry *prometheus.Registry

	accepted      prometheus.Counter
	rejected      *prometheus.CounterVec
	rateLimited   prometheus.Counter
	checkDuration prometheus.Histogram
}

// NewMetrics creates and registers the daemon's metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		accepted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admission_transactions_accepted_total",
			Help: "Transactions that passed all admission checks.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "admission_transactions_rejected_total",
			Help: "Transactions rejected, by failure kind.",
		}, []string{"kind"}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "admission_requests_rate_limited_total",
			Help: "Admission requests dropped by the rate limiter.",
		}),
		checkDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "admission_check_duration_seconds",
			Help:    "Wall-clock duration of a full admission decision.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	registry.MustRegister(m.accepted, m.rejected, m.rateLimited, m.checkDuration)
	return m
}

// ObserveDecision records the outcome and duration of one admission decision.
func (m *Metrics) ObserveDecision(err error, elapsed time.Duration) {
	m.checkDuration.Observe(elapsed.Seconds())
	if err == nil {
		m.accepted.Inc()
		return
	}
	m.rejected.WithLabelValues(validator.KindOf(err).String()).Inc()
}

// ObserveRateLimited records a dropped request.
func (m *Metrics) ObserveRateLimited() {
	m.rateLimited.Inc()
}

// Handler exposes the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
