// Package metrics exports executor outcomes in Prometheus format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"NewsSnap/internal/ports"
)

// Recorder counts attempts and requests and tracks request latency.
type Recorder struct {
	registry *prometheus.Registry

	attempts *prometheus.CounterVec
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

var _ ports.Metrics = (*Recorder)(nil)

// NewRecorder registers the collectors on a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{registry: prometheus.NewRegistry()}

	r.attempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newssnap",
			Subsystem: "api",
			Name:      "attempts_total",
			Help:      "API attempts by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)
	r.requests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newssnap",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Resilient requests by operation and final outcome",
		},
		[]string{"operation", "outcome"},
	)
	r.latency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newssnap",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Resilient request duration including retries",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"operation", "outcome"},
	)

	r.registry.MustRegister(r.attempts, r.requests, r.latency)
	return r
}

// ObserveAttempt counts one attempt outcome.
func (r *Recorder) ObserveAttempt(operation, outcome string) {
	r.attempts.WithLabelValues(operation, outcome).Inc()
}

// ObserveRequest counts a finished request and records its duration.
func (r *Recorder) ObserveRequest(operation, outcome string, elapsed time.Duration) {
	r.requests.WithLabelValues(operation, outcome).Inc()
	r.latency.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry over HTTP.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
