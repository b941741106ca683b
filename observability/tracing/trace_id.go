package tracing

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// ManualTraceIDPrefix marks trace ids generated without an active span.
const ManualTraceIDPrefix = "man-"

// TraceIDFromContext returns the trace id of the span in ctx.
// Without a valid span it returns a fresh "man-<uuid>" id so logs can still be correlated.
func TraceIDFromContext(ctx context.Context) string {
	traceID := trace.SpanFromContext(ctx).SpanContext().TraceID()
	if traceID.IsValid() {
		return traceID.String()
	}

	return ManualTraceIDPrefix + uuid.NewString()
}
