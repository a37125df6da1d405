package observability

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics exposed by the local server.
type Collector struct {
	registry *prometheus.Registry

	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
	Views    *prometheus.CounterVec
}

// NewCollector creates a collector with its own registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Total number of CV requests by status code",
		},
		[]string{"status"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Help:      "CV request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	views := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cv_views_total",
			Help:      "Total number of counted CV views",
		},
		[]string{"cv_id"},
	)

	registry.MustRegister(requests, duration, views)

	return &Collector{
		registry: registry,
		Requests: requests,
		Duration: duration,
		Views:    views,
	}
}

func (c *Collector) RecordRequest(_ context.Context, status int, duration time.Duration) {
	label := strconv.Itoa(status)
	c.Requests.WithLabelValues(label).Inc()
	c.Duration.WithLabelValues(label).Observe(duration.Seconds())
}

func (c *Collector) RecordView(_ context.Context, cvID string) {
	c.Views.WithLabelValues(cvID).Inc()
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
