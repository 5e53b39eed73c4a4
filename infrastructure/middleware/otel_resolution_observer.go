package middleware

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/debnet/condorcet/internal/domain"
)

var _ ResolutionObserver = (*OTelResolutionObserver)(nil)

// ResolutionObserver provides observability hooks around one resolution
// run. Implementations can add tracing, metrics, and logging without
// coupling observability concerns to the pure engine.
type ResolutionObserver interface {
	// Begin is called before resolution starts and may derive a new
	// context (e.g. carrying a span).
	Begin(ctx context.Context, resolver string, candidates, winners, ballots int) context.Context

	// End is called after resolution with the outcome and timing.
	End(ctx context.Context, result *domain.Result, elapsed time.Duration, err error)
}

// OTelResolutionObserver implements ResolutionObserver using
// OpenTelemetry tracing. It creates a span per resolution, records the
// input dimensions as attributes, and flags ties, rejected inputs, and
// intractable committee searches as events.
type OTelResolutionObserver struct {
	tracer trace.Tracer
}

// NewOTelResolutionObserver creates a new OpenTelemetry resolution
// observer.
func NewOTelResolutionObserver() *OTelResolutionObserver {
	return &OTelResolutionObserver{tracer: otel.Tracer("condorcet-resolver")}
}

// Begin implements the ResolutionObserver interface. It starts a span
// and records the input dimensions.
func (o *OTelResolutionObserver) Begin(
	ctx context.Context, resolver string, candidates, winners, ballots int,
) context.Context {
	ctx, span := o.tracer.Start(ctx, "Resolver.Resolve")
	span.SetAttributes(
		attribute.String("poll.resolver", resolver),
		attribute.Int("poll.candidates", candidates),
		attribute.Int("poll.winners", winners),
		attribute.Int("poll.ballots", ballots),
	)
	return ctx
}

// End implements the ResolutionObserver interface. It finalizes the
// span, recording the winner set or the failure class.
func (o *OTelResolutionObserver) End(
	ctx context.Context, result *domain.Result, elapsed time.Duration, err error,
) {
	span := trace.SpanFromContext(ctx)
	defer span.End()

	span.SetAttributes(attribute.Int64("poll.elapsed_ms", elapsed.Milliseconds()))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		switch {
		case errors.Is(err, domain.ErrIntractableInput):
			span.AddEvent("resolution.intractable")
		case errors.Is(err, domain.ErrInvalidBallot):
			span.AddEvent("resolution.invalid_ballot")
		case errors.Is(err, domain.ErrUnresolvedTie):
			span.AddEvent("resolution.unresolved_tie")
		}
		return
	}

	winners := make([]string, len(result.Winners))
	for i, w := range result.Winners {
		winners[i] = string(w)
	}
	span.SetAttributes(
		attribute.StringSlice("poll.winner_set", winners),
		attribute.Int("poll.tied_sets", len(result.Tied)),
	)
	if result.IsTied() {
		span.AddEvent("resolution.tie", trace.WithAttributes(
			attribute.Int("tied_sets", len(result.Tied)),
		))
	}
	span.SetStatus(codes.Ok, "")
}
