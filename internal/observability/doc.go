// Package observability groups the logging, metrics and tracing packages.
//
// Subpackages:
//   - logging: slog logger construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP traffic and source pipelines
//   - tracing: OpenTelemetry spans for requests, sources and fetches
package observability
