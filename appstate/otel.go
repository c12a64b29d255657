package appstate

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// startDispatchSpan creates a span for one dispatch call.
// Uses the global tracer initialized by github.com/lanternworks/lantern-common/telemetry.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startDispatchSpan(ctx context.Context, machine, entry, label string, depth int) (context.Context, trace.Span) {
	tracer := otel.Tracer("appstate")
	ctx, span := tracer.Start(ctx, "appstate."+entry)
	span.SetAttributes(
		attribute.String("machine", machine),
		attribute.String("state", label),
		attribute.Int("stack_depth", depth),
	)

	return ctx, span
}

// startLifecycleSpan creates a child span for one lifecycle notification.
// The caller is responsible for calling span.End().
//
//nolint:spancheck // Span lifecycle managed by caller (factory pattern)
func startLifecycleSpan(ctx context.Context, machine, hook, label string) (context.Context, trace.Span) {
	tracer := otel.Tracer("appstate")
	ctx, span := tracer.Start(ctx, "appstate."+hook)
	span.SetAttributes(
		attribute.String("machine", machine),
		attribute.String("state", label),
	)

	return ctx, span
}

// endSpan records the outcome on a span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "completed")
	}

	span.End()
}
