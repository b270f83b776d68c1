package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "expect"

// PrometheusMetrics implements Recorder with client_golang
// collectors registered on their own registry.
type PrometheusMetrics struct {
	registry    *prometheus.Registry
	polls       *prometheus.CounterVec
	attempts    *prometheus.HistogramVec
	duration    *prometheus.HistogramVec
	probeErrors *prometheus.CounterVec
	active      prometheus.Gauge
}

// NewPrometheusMetrics creates the collectors and registers them
// on a fresh registry.
func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		polls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "polls_total",
			Help:      "Finished polls by matcher and terminal state.",
		}, []string{"matcher", "state"}),
		attempts: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_attempts",
			Help:      "Probe invocations per poll.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}, []string{"matcher"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "poll_duration_seconds",
			Help:      "Wall-clock time from first attempt to outcome.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"matcher", "state"}),
		probeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "probe_errors_total",
			Help:      "Probe invocations that returned an error.",
		}, []string{"matcher"}),
		active: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_polls",
			Help:      "Polls currently in progress.",
		}),
	}
	m.registry.MustRegister(
		m.polls, m.attempts, m.duration, m.probeErrors, m.active,
	)
	return m
}

func (m *PrometheusMetrics) RecordPoll(
	matcher, state string, attempts int, elapsed time.Duration,
) {
	m.polls.WithLabelValues(matcher, state).Inc()
	m.attempts.WithLabelValues(matcher).Observe(float64(attempts))
	m.duration.WithLabelValues(matcher, state).Observe(elapsed.Seconds())
}

func (m *PrometheusMetrics) RecordProbeError(matcher string) {
	m.probeErrors.WithLabelValues(matcher).Inc()
}

func (m *PrometheusMetrics) AddActivePolls(delta int) {
	m.active.Add(float64(delta))
}

// Registry returns the registry holding the collectors.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus exposition
// format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
