// Package trace owns the process tracer. With tracing on, spans are printed
// to stdout as JSON; with it off every span is a no-op.
package trace

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "stock-backend"

var (
	provider *sdktrace.TracerProvider
	// nil while tracing is off
	tracer trace.Tracer
)

// Init installs the stdout exporter as the global provider when on is true.
// Init(false) turns spans back into no-ops.
func Init(on bool) error {
	if !on {
		tracer = nil
		return nil
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("stdout span exporter: %w", err)
	}
	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(semconv.ServiceName(serviceName))),
	)
	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(serviceName)
	return nil
}

// Shutdown flushes buffered spans.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	return provider.Shutdown(ctx)
}

// StartSpan opens a child of the span in ctx. With tracing off it returns
// ctx and its current (possibly no-op) span unchanged.
func StartSpan(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	if tracer == nil {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, opts...)
}

// Enabled reports whether spans are recorded.
func Enabled() bool {
	return tracer != nil
}

// TraceIDs returns the ids of the recording span in ctx.
func TraceIDs(ctx context.Context) (traceID, spanID string, ok bool) {
	if tracer == nil {
		return "", "", false
	}
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return "", "", false
	}
	return sc.TraceID().String(), sc.SpanID().String(), true
}
