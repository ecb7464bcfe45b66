package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer used across the service.
const InstrumentationName = "drupal-news"

// GetTracer returns the service tracer from the current global provider.
// It is resolved on every call so a provider installed after package init
// (tests, main) is honored.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "news.Aggregate")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(InstrumentationName)
}
