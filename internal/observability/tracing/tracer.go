package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the doc-digest application.
var tracer = otel.Tracer("doc-digest")

// GetTracer returns the global tracer for creating spans.
// Pipeline stages use this tracer to create one span per stage.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "summary.chunking")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
