package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"drupal-news/pkg/config"
)

// DefaultSampleRatio samples every root span.
const DefaultSampleRatio = 1.0

// Setup installs an SDK tracer provider and the W3C trace context
// propagator as the process globals. Spans are sampled by TRACING_SAMPLE_RATIO
// for new traces and follow the parent's decision otherwise. Extra options,
// such as span processors, are appended.
//
// The returned function flushes and stops the provider.
func Setup(opts ...sdktrace.TracerProviderOption) func(context.Context) error {
	ratio := config.GetEnvFloat64("TRACING_SAMPLE_RATIO", DefaultSampleRatio)
	if ratio < 0 || ratio > 1 {
		ratio = DefaultSampleRatio
	}

	all := append([]sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}, opts...)
	tp := sdktrace.NewTracerProvider(all...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown
}
