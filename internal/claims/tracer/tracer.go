// Package tracer wraps OpenTelemetry span creation for the adjudication
// path. The global provider defaults to a no-op, so instrumentation costs
// nothing until an exporter is installed.
package tracer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "vitaran/internal/claims"

// Tracer creates adjudication spans.
type Tracer struct {
	tracer trace.Tracer
}

// New returns a Tracer backed by the global provider.
func New() *Tracer {
	return &Tracer{tracer: otel.Tracer(instrumentationName)}
}

// StartClaim opens a span for one claim evaluation.
func (t *Tracer) StartClaim(ctx context.Context, citizenID, scheme string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "claims.adjudicate",
		trace.WithAttributes(
			attribute.String("claim.citizen_id", citizenID),
			attribute.String("claim.scheme", scheme),
		),
	)
}

// EndApproved closes the span for an approved claim.
func EndApproved(span trace.Span, amount int64) {
	span.SetAttributes(
		attribute.String("claim.outcome", "approved"),
		attribute.Int64("claim.amount", amount),
	)
	span.End()
}

// EndDenied closes the span for a denied claim. Denials are successful
// evaluations, so the span status stays OK.
func EndDenied(span trace.Span, gate string) {
	span.SetAttributes(
		attribute.String("claim.outcome", "denied"),
		attribute.String("claim.gate", gate),
	)
	span.End()
}

// EndError closes the span for a hard failure.
func EndError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.End()
}
