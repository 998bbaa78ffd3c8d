package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// WithMetrics registers the transport's request counter and latency
// histogram with reg. Status is the HTTP status code or "error" when no
// response was received.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *Client) {
		c.metrics = newMetrics(reg)
	}
}

func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)

	return &metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qiwi_http_requests_total",
			Help: "Total HTTP requests sent to the QIWI API",
		}, []string{"method", "status"}),
		latency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qiwi_http_request_duration_seconds",
			Help:    "QIWI API request latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"method"}),
	}
}

func (m *metrics) observe(method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(method, status).Inc()
	m.latency.WithLabelValues(method).Observe(elapsed.Seconds())
}
