package monitoring

import (
	"context"
	"errors"
	"testing"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTestTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	// Point the package-level Tracer at our test provider.
	Tracer = tp.Tracer(tracerName)
	return exporter
}

func TestStartResolveSpan(t *testing.T) {
	exporter := newTestTracer(t)

	ctx, span := StartResolveSpan(context.Background(), "encoder", "default")
	span.End()

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}

	s := spans[0]
	if s.Name != "Topology.Resolve" {
		t.Errorf("span name = %q, want %q", s.Name, "Topology.Resolve")
	}

	wantAttrs := map[string]string{
		"podtopology.pod": "encoder",
		"k8s.namespace":   "default",
	}
	for key, want := range wantAttrs {
		found := false
		for _, attr := range s.Attributes {
			if string(attr.Key) == key {
				found = true
				if attr.Value.AsString() != want {
					t.Errorf("attribute %q = %q, want %q", key, attr.Value.AsString(), want)
				}
			}
		}
		if !found {
			t.Errorf("attribute %q not found on span", key)
		}
	}

	if ctx == context.Background() {
		t.Error("expected context to carry span")
	}
}

func TestStartChildSpan(t *testing.T) {
	exporter := newTestTracer(t)

	ctx, parent := StartResolveSpan(context.Background(), "encoder", "default")
	_, child := StartChildSpan(ctx, "Version.Lookup")
	child.End()
	parent.End()

	spans := exporter.GetSpans()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	childSpan, parentSpan := spans[0], spans[1]
	if childSpan.Parent.SpanID() != parentSpan.SpanContext.SpanID() {
		t.Errorf(
			"child parent span ID = %s, want %s",
			childSpan.Parent.SpanID(),
			parentSpan.SpanContext.SpanID(),
		)
	}
}

func TestRecordSpanError(t *testing.T) {
	exporter := newTestTracer(t)

	t.Run("records error on span", func(t *testing.T) {
		exporter.Reset()
		_, span := StartResolveSpan(context.Background(), "p", "ns")
		RecordSpanError(span, errors.New("something failed"))
		span.End()

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		if spans[0].Status.Code != codes.Error {
			t.Errorf("span status = %v, want Error", spans[0].Status.Code)
		}
		if spans[0].Status.Description != "something failed" {
			t.Errorf("span status description = %q, want %q", spans[0].Status.Description, "something failed")
		}
	})

	t.Run("nil error is no-op", func(t *testing.T) {
		exporter.Reset()
		_, span := StartResolveSpan(context.Background(), "p", "ns")
		RecordSpanError(span, nil)
		span.End()

		spans := exporter.GetSpans()
		if len(spans) != 1 {
			t.Fatalf("expected 1 span, got %d", len(spans))
		}
		if spans[0].Status.Code == codes.Error {
			t.Error("nil error should not set error status")
		}
	})
}

func TestEnrichLoggerWithTrace(t *testing.T) {
	newTestTracer(t)

	t.Run("adds trace_id and span_id to logger", func(t *testing.T) {
		ctx, span := Tracer.Start(context.Background(), "test-op")
		defer span.End()

		ctx = logr.NewContext(ctx, logr.Discard())
		if enriched := EnrichLoggerWithTrace(ctx); enriched == ctx {
			t.Error("expected enriched context to differ from original")
		}
	})

	t.Run("noop for invalid span context", func(t *testing.T) {
		ctx := logr.NewContext(context.Background(), logr.Discard())
		if result := EnrichLoggerWithTrace(ctx); result != ctx {
			t.Error("expected unchanged context for invalid span")
		}
	})
}
