// Package metrics provides Prometheus metrics registry and recording utilities.
//
// All metrics are registered with the default registry through promauto and
// exposed on /metrics by both the API server and the probe worker:
//   - HTTP request metrics (count, duration, response size, in-flight, throttled)
//   - Per-source pipeline metrics (duration, articles, failures)
//   - Aggregation run metrics
//
// Example usage:
//
//	start := time.Now()
//	articles, err := pipeline(ctx, src)
//	if err != nil {
//	    metrics.RecordSourceFailure(src.ID, metrics.StrategyFeed, metrics.ErrorTypeFetch, time.Since(start))
//	    return
//	}
//	metrics.RecordSourceSuccess(src.ID, metrics.StrategyFeed, time.Since(start), len(articles))
package metrics
