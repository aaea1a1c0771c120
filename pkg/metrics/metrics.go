package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Feed metrics
	FeedRefreshesTotal  *prometheus.CounterVec
	FeedRefreshDuration *prometheus.HistogramVec
	LeadsInStore        prometheus.Gauge

	// Sync metrics
	StatusUpdatesTotal *prometheus.CounterVec
}

// New creates a new Metrics instance with all metrics registered
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),

		FeedRefreshesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "feed_refreshes_total",
				Help: "Total number of feed refresh outcomes",
			},
			[]string{"feed", "status"}, // ok, stale, error
		),
		FeedRefreshDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "feed_refresh_duration_seconds",
				Help:    "Feed load duration in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"feed"},
		),
		LeadsInStore: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "leads_in_store",
			Help: "Number of leads currently held in the reconciled store",
		}),

		StatusUpdatesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "status_updates_total",
				Help: "Total number of lead status updates by persistence outcome",
			},
			[]string{"result"}, // synced, sync_failed
		),
	}
}

// Middleware creates an Echo middleware for Prometheus metrics
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			path := c.Path() // route pattern, not the raw path

			err := next(c)

			status := strconv.Itoa(c.Response().Status)
			m.HTTPRequestsTotal.WithLabelValues(req.Method, path, status).Inc()
			m.HTTPRequestDuration.WithLabelValues(req.Method, path, status).Observe(time.Since(start).Seconds())

			return err
		}
	}
}

// RecordFeedRefresh counts one feed refresh outcome
func (m *Metrics) RecordFeedRefresh(feed, status string) {
	m.FeedRefreshesTotal.WithLabelValues(feed, status).Inc()
}

// ObserveFeedDuration records how long a feed load took
func (m *Metrics) ObserveFeedDuration(feed string, seconds float64) {
	m.FeedRefreshDuration.WithLabelValues(feed).Observe(seconds)
}

// RecordStatusUpdate counts a status update by persistence outcome
func (m *Metrics) RecordStatusUpdate(success bool) {
	result := "sync_failed"
	if success {
		result = "synced"
	}
	m.StatusUpdatesTotal.WithLabelValues(result).Inc()
}

// SetLeadsInStore updates the store size gauge
func (m *Metrics) SetLeadsInStore(count float64) {
	m.LeadsInStore.Set(count)
}
