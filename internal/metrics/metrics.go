// Package metrics exposes Prometheus instrumentation for the API and the
// loaded dataset.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPMetrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RecordsLoaded   prometheus.Gauge
}

func New() *HTTPMetrics {
	return &HTTPMetrics{
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "chargeback_api_requests_total",
				Help: "API requests by route and status code",
			},
			[]string{"route", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "chargeback_api_request_duration_seconds",
				Help:    "API request latency by route",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"route"},
		),
		RecordsLoaded: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "chargeback_records_loaded",
				Help: "Chargeback records in the current snapshot",
			},
		),
	}
}

// SetRecordsLoaded publishes the snapshot size after a load or swap.
func (m *HTTPMetrics) SetRecordsLoaded(n int) {
	m.RecordsLoaded.Set(float64(n))
}

// Middleware records per-request counters and latency.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the Prometheus exposition endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
