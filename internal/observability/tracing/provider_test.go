package tracing_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"drupal-news/internal/observability/tracing"
)

func TestSetup_InstallsSampledProvider(t *testing.T) {
	prev := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		otel.SetTextMapPropagator(prevProp)
	})

	exp := tracetest.NewInMemoryExporter()
	shutdown := tracing.Setup(sdktrace.WithSyncer(exp))

	rec := httptest.NewRecorder()
	tracing.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/news", nil))

	assert.NotEmpty(t, rec.Header().Get(tracing.TraceIDHeader))
	require.NoError(t, shutdown(context.Background()))
	require.Len(t, exp.GetSpans(), 1)
	assert.Equal(t, "GET /api/news", exp.GetSpans()[0].Name)
}

func TestSetup_RatioZeroSamplesNothing(t *testing.T) {
	prev := otel.GetTracerProvider()
	prevProp := otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		otel.SetTextMapPropagator(prevProp)
	})
	t.Setenv("TRACING_SAMPLE_RATIO", "0")

	exp := tracetest.NewInMemoryExporter()
	shutdown := tracing.Setup(sdktrace.WithSyncer(exp))
	defer func() { _ = shutdown(context.Background()) }()

	_, span := tracing.GetTracer().Start(context.Background(), "unsampled")
	span.End()

	assert.Empty(t, exp.GetSpans())
}
