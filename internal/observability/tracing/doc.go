// Package tracing wires OpenTelemetry spans into the news service.
//
// The service never configures an exporter itself; whatever TracerProvider
// is installed globally (none by default, an in-memory one in tests) receives
// the spans. Inbound requests get a server span from Middleware, each
// aggregated source gets an internal span and each outbound fetch a client
// span.
package tracing
