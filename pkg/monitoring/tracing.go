package monitoring

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"sigs.k8s.io/controller-runtime/pkg/log"
)

// tracerName is the instrumentation scope name registered with OTel.
const tracerName = "podtopology"

// Tracer is the package-level OTel tracer for the engine.
// It returns a noop tracer when no TracerProvider is registered,
// making instrumentation zero-cost in the default configuration.
var Tracer = otel.Tracer(tracerName)

// StartResolveSpan starts a new span for a topology resolution of one Pod.
// Callers must call span.End() when the operation completes.
func StartResolveSpan(ctx context.Context, pod, namespace string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, "Topology.Resolve",
		trace.WithAttributes(
			attribute.String("podtopology.pod", pod),
			attribute.String("k8s.namespace", namespace),
		),
	)
}

// StartChildSpan starts a child span under the current trace context.
// Use this for sub-operations of a resolution (e.g., the version lookup).
func StartChildSpan(ctx context.Context, spanName string) (context.Context, trace.Span) {
	return Tracer.Start(ctx, spanName)
}

// RecordSpanError records an error on a span and sets the span status to Error.
// If err is nil, this is a no-op.
func RecordSpanError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// EnrichLoggerWithTrace returns a context whose logger carries the trace and
// span IDs of the active span. ctx is returned unchanged without a valid span.
func EnrichLoggerWithTrace(ctx context.Context) context.Context {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ctx
	}
	logger := log.FromContext(ctx).WithValues(
		"trace_id", sc.TraceID().String(),
		"span_id", sc.SpanID().String(),
	)
	return log.IntoContext(ctx, logger)
}
