package metrics

import "time"

// Strategy labels name how a source produced its articles.
const (
	StrategyFeed = "feed"
	StrategyPage = "page"
	StrategyNone = "none"
)

// Error type labels for SourceErrorsTotal.
const (
	ErrorTypeFetch = "fetch"
	ErrorTypeParse = "parse"
	ErrorTypeOther = "other"
)

// RecordSourceSuccess records a completed source pipeline.
// A strategy of StrategyNone means the source legitimately produced nothing.
func RecordSourceSuccess(sourceID, strategy string, duration time.Duration, articles int) {
	SourceFetchDuration.WithLabelValues(sourceID, strategy).Observe(duration.Seconds())
	if articles > 0 {
		SourceArticlesTotal.WithLabelValues(sourceID, strategy).Add(float64(articles))
	}
}

// RecordSourceFailure records a failed source pipeline.
func RecordSourceFailure(sourceID, strategy, errorType string, duration time.Duration) {
	SourceFetchDuration.WithLabelValues(sourceID, strategy).Observe(duration.Seconds())
	SourceErrorsTotal.WithLabelValues(sourceID, errorType).Inc()
}

// RecordAggregation records one aggregation run. scope is "all" when every
// registry source was requested and "single" otherwise.
func RecordAggregation(scope string, duration time.Duration) {
	AggregationsTotal.WithLabelValues(scope).Inc()
	AggregationDuration.Observe(duration.Seconds())
}
