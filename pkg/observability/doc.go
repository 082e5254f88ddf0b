// Package observability provides structured logging, Prometheus metrics,
// health checks and OpenTelemetry tracing for the quick-search service.
package observability
