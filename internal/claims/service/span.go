package service

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"vitaran/internal/claims/tracer"
)

// spanCloser narrows span handling to the three adjudication outcomes so the
// gate logic stays free of tracing plumbing. fail returns its argument to
// keep error paths one-liners.
type spanCloser interface {
	approved(amount int64)
	denied(gate string)
	fail(err error) error
}

type noop struct{}

func (noop) approved(int64)       {}
func (noop) denied(string)        {}
func (noop) fail(err error) error { return err }

var noopSpan spanCloser = noop{}

type otelCloser struct {
	span trace.Span
}

func (c otelCloser) approved(amount int64) {
	tracer.EndApproved(c.span, amount)
}

func (c otelCloser) denied(gate string) {
	tracer.EndDenied(c.span, gate)
}

func (c otelCloser) fail(err error) error {
	tracer.EndError(c.span, err)
	return err
}

func (s *Service) startSpan(ctx context.Context, citizenID, scheme string) (context.Context, spanCloser) {
	ctx, span := s.tracer.StartClaim(ctx, citizenID, scheme)
	return ctx, otelCloser{span: span}
}
