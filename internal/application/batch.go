package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/debnet/condorcet/infrastructure/schulze"
	"github.com/debnet/condorcet/internal/domain"
	"github.com/debnet/condorcet/internal/ports"
)

// DefaultBatchConcurrency bounds how many elections a batch run
// resolves in parallel when no explicit limit is given.
const DefaultBatchConcurrency = 4

// ResolverFactory builds a resolver for one election. Batch runs use it
// so each election gets a resolver configured from its own file
// settings rather than sharing a single configuration.
type ResolverFactory func(name string, cfg schulze.Config) (ports.Resolver, error)

// NewSchulzeResolver is the default ResolverFactory, producing a plain
// engine resolver without instrumentation.
func NewSchulzeResolver(name string, cfg schulze.Config) (ports.Resolver, error) {
	return schulze.NewResolver(name, cfg)
}

// BatchResolver resolves independent elections concurrently with a
// bounded worker count. Elections do not share state, so the only
// coordination needed is the concurrency limit and fail-fast
// cancellation.
type BatchResolver struct {
	factory     ResolverFactory
	concurrency int
}

// NewBatchResolver returns a batch resolver using the given factory and
// concurrency limit. A nil factory selects NewSchulzeResolver; a limit
// below one selects DefaultBatchConcurrency.
func NewBatchResolver(factory ResolverFactory, concurrency int) *BatchResolver {
	if factory == nil {
		factory = NewSchulzeResolver
	}
	if concurrency < 1 {
		concurrency = DefaultBatchConcurrency
	}
	return &BatchResolver{factory: factory, concurrency: concurrency}
}

// ResolveAll resolves every election and returns results in input
// order. The first failing election cancels the remaining work and its
// error, wrapped with the election name, is returned.
func (b *BatchResolver) ResolveAll(ctx context.Context, elections []*Election) ([]*domain.Result, error) {
	results := make([]*domain.Result, len(elections))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, election := range elections {
		i, election := i, election
		g.Go(func() error {
			resolver, err := b.factory(election.Name, election.ResolverConfig)
			if err != nil {
				return fmt.Errorf("election %q: build resolver: %w", election.Name, err)
			}
			result, err := resolver.Resolve(ctx, election.Ballots, election.Candidates, election.Winners)
			if err != nil {
				return fmt.Errorf("election %q: %w", election.Name, err)
			}
			results[i] = result
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
