// Package news implements the aggregation use case: it resolves the requested
// sources, runs one isolated pipeline per source and merges the results into
// a single recency-ordered envelope.
package news

import (
	"errors"

	"drupal-news/internal/domain/entity"
	"drupal-news/internal/observability/metrics"
)

// FallbackErrorMessage is reported for a failed source whose error has no text.
const FallbackErrorMessage = "Failed to parse source"

// errorMessage renders a per-source failure for the envelope's error map.
func errorMessage(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackErrorMessage
}

// errorType classifies a per-source failure for metrics.
func errorType(err error) string {
	var fe *entity.FetchError
	var pe *entity.ParseError
	switch {
	case errors.As(err, &fe):
		return metrics.ErrorTypeFetch
	case errors.As(err, &pe):
		return metrics.ErrorTypeParse
	default:
		return metrics.ErrorTypeOther
	}
}
