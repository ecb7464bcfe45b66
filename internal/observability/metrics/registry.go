// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds.
	// Buckets reach past the 15s fetch timeout since /api/news waits on origins.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// HTTPRateLimitedTotal counts requests rejected by the inbound throttle
	HTTPRateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of HTTP requests rejected by rate limiting",
		},
		[]string{"path"},
	)
)

// Aggregation metrics track the per-source pipelines
var (
	// SourceFetchDuration measures one source pipeline, fetch and parse included
	SourceFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_source_fetch_duration_seconds",
			Help:    "Time taken to retrieve and normalize one source",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"source_id", "strategy"},
	)

	// SourceArticlesTotal counts articles produced per source and strategy
	SourceArticlesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_source_articles_total",
			Help: "Total number of articles produced by a source",
		},
		[]string{"source_id", "strategy"},
	)

	// SourceErrorsTotal counts failed source pipelines by failure kind
	SourceErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_source_errors_total",
			Help: "Total number of failed source pipelines",
		},
		[]string{"source_id", "error_type"},
	)

	// AggregationsTotal counts aggregation runs by scope (all or single)
	AggregationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_aggregations_total",
			Help: "Total number of aggregation runs",
		},
		[]string{"scope"},
	)

	// AggregationDuration measures a whole aggregation run
	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "news_aggregation_duration_seconds",
			Help:    "Time taken to aggregate all requested sources",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

// RecordRateLimited records a request rejected with 429.
func RecordRateLimited(path string) {
	HTTPRateLimitedTotal.WithLabelValues(path).Inc()
}
