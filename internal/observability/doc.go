// Package observability provides the observability infrastructure for the
// summarization service: structured logging, Prometheus metrics, and
// OpenTelemetry tracing.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus recorders for the summarization pipeline
//   - tracing: OpenTelemetry tracing integration for HTTP and pipeline stages
package observability
