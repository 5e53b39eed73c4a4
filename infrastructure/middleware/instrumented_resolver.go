package middleware

import (
	"context"
	"time"

	"github.com/debnet/condorcet/internal/domain"
	"github.com/debnet/condorcet/internal/ports"
)

var _ ports.Resolver = (*InstrumentedResolver)(nil)

// InstrumentedResolver decorates a ports.Resolver with metrics and an
// optional resolution observer. The wrapped resolver stays pure; all
// side effects live here.
type InstrumentedResolver struct {
	next     ports.Resolver
	metrics  ports.MetricsCollector
	observer ResolutionObserver
}

// NewInstrumentedResolver wraps the given resolver. metrics and
// observer may each be nil to disable that concern.
func NewInstrumentedResolver(
	next ports.Resolver,
	metrics ports.MetricsCollector,
	observer ResolutionObserver,
) *InstrumentedResolver {
	return &InstrumentedResolver{next: next, metrics: metrics, observer: observer}
}

// Name returns the wrapped resolver's name.
func (ir *InstrumentedResolver) Name() string { return ir.next.Name() }

// Validate delegates to the wrapped resolver.
func (ir *InstrumentedResolver) Validate() error { return ir.next.Validate() }

// Resolve delegates to the wrapped resolver, recording latency, input
// dimensions, and outcome around the call.
func (ir *InstrumentedResolver) Resolve(
	ctx context.Context,
	ballots []domain.Ballot,
	candidates []domain.CandidateIndex,
	winners int,
) (*domain.Result, error) {
	if ir.observer != nil {
		ctx = ir.observer.Begin(ctx, ir.next.Name(), len(candidates), winners, len(ballots))
	}

	start := time.Now()
	result, err := ir.next.Resolve(ctx, ballots, candidates, winners)
	elapsed := time.Since(start)

	if ir.observer != nil {
		ir.observer.End(ctx, result, elapsed, err)
	}
	if ir.metrics != nil {
		labels := map[string]string{
			"resolver": ir.next.Name(),
			"mode":     resolutionMode(winners),
			"status":   resolutionStatus(result, err),
		}
		ir.metrics.RecordLatency("resolve", elapsed, labels)
		ir.metrics.RecordCounter("poll_resolutions_total", 1, labels)
		ir.metrics.RecordGauge("candidates", float64(len(candidates)), labels)
		ir.metrics.RecordGauge("winners", float64(winners), labels)
		ir.metrics.RecordHistogram("poll_resolution_ballots", float64(len(ballots)), labels)
	}
	return result, err
}

func resolutionMode(winners int) string {
	if winners == 1 {
		return "single"
	}
	return "committee"
}

func resolutionStatus(result *domain.Result, err error) string {
	switch {
	case err != nil:
		return "error"
	case result != nil && result.IsTied():
		return "tied"
	default:
		return "ok"
	}
}
