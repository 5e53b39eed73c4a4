// Package ports defines the interfaces that form the contract between
// the domain/application layers and the infrastructure layer.
// These interfaces enable dependency inversion and make the system testable.
package ports

import (
	"context"

	"github.com/debnet/condorcet/internal/domain"
)

// Resolver turns a frozen ballot set into a winner set. Implementations
// must be pure over their inputs: no I/O, no retained state, identical
// results for identical inputs. A Resolver is safe to invoke
// concurrently for different polls.
type Resolver interface {
	// Name returns a unique identifier for this resolver.
	// The name is used for logging, metrics, and debugging.
	Name() string

	// Resolve computes the winner set for one closed poll.
	// The ballots must be frozen before the call; the resolver performs
	// no locking of its own because it owns no shared resource.
	//
	// candidates must be non-empty and winners must lie in
	// [1, len(candidates)]. Every ballot must rank exactly the candidate
	// set once each; resolvers reject malformed ballots rather than
	// repair them.
	//
	// The context is consulted during long committee enumerations; a
	// cancelled context aborts the run with ctx.Err().
	Resolve(
		ctx context.Context,
		ballots []domain.Ballot,
		candidates []domain.CandidateIndex,
		winners int,
	) (*domain.Result, error)

	// Validate checks if the resolver is properly configured and ready
	// for execution. Return nil if validation passes, or an error
	// describing what is invalid.
	Validate() error
}
