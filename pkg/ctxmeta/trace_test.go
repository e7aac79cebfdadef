package ctxmeta_test

import (
	"context"
	"testing"

	"github.com/Gunvolt24/pricecache/pkg/ctxmeta"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestTraceAndSpanIDs_FromActiveSpan(t *testing.T) {
	// Локальный TracerProvider — без глобальной настройки.
	tp := sdktrace.NewTracerProvider()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	ctx, span := tp.Tracer("test").Start(context.Background(), "price.fetch")
	defer span.End()

	traceID, ok := ctxmeta.TraceIDFromContext(ctx)
	if !ok || traceID != span.SpanContext().TraceID().String() {
		t.Fatalf("traceID=%q ok=%v, want %s", traceID, ok, span.SpanContext().TraceID())
	}
	spanID, ok := ctxmeta.SpanIDFromContext(ctx)
	if !ok || spanID != span.SpanContext().SpanID().String() {
		t.Fatalf("spanID=%q ok=%v, want %s", spanID, ok, span.SpanContext().SpanID())
	}
}

func TestTraceAndSpanIDs_NoSpan(t *testing.T) {
	if id, ok := ctxmeta.TraceIDFromContext(context.Background()); ok || id != "" {
		t.Fatalf("TraceIDFromContext(background) => %q,%v; want \"\", false", id, ok)
	}
	//nolint:staticcheck // nil-контекст допустим для логгера
	if id, ok := ctxmeta.SpanIDFromContext(nil); ok || id != "" {
		t.Fatalf("SpanIDFromContext(nil) => %q,%v; want \"\", false", id, ok)
	}
}
