package schulze

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/debnet/condorcet/internal/domain"
	"github.com/debnet/condorcet/internal/ports"
)

var _ ports.Resolver = (*Resolver)(nil)

// TieBreak represents the policy applied when more than one winner set
// dominates equally. The method alone cannot resolve such ties; the
// full tied set is always surfaced on the result regardless of policy.
type TieBreak string

// Supported tie-break policies.
const (
	// TieBreakLexicographic selects the lexicographically least winner
	// set (by sorted candidate-index tuple).
	TieBreakLexicographic TieBreak = "lexicographic"
	// TieBreakSurface leaves the winner set empty on a tie, deferring
	// the choice to the caller.
	TieBreakSurface TieBreak = "surface"
	// TieBreakError fails the resolution when a tie occurs.
	TieBreakError TieBreak = "error"
)

// ErrEmptyResolverName is returned when the resolver name is empty.
var ErrEmptyResolverName = errors.New("resolver name cannot be empty")

// DefaultCommitteeCeiling bounds C(n, k) in multi-winner mode. The
// committee stage materializes two M x M matrices and runs a cubic
// closure, so the ceiling also bounds memory; 2000 covers tens of
// candidates with small committee sizes (C(20,3), C(16,4), C(12,6)).
const DefaultCommitteeCeiling int64 = 2000

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Config defines the configuration parameters for a Resolver.
// All fields are validated during resolver creation.
type Config struct {
	// TieBreak defines how to handle equally dominant winner sets.
	// Options: "lexicographic" (pick the least tuple), "surface" (leave
	// the choice to the caller), "error" (fail on ties).
	TieBreak TieBreak `yaml:"tie_break" json:"tie_break" validate:"required,oneof=lexicographic surface error"`

	// CommitteeCeiling caps the number of size-k committees multi-winner
	// mode may enumerate before rejecting the input as intractable.
	CommitteeCeiling int64 `yaml:"committee_ceiling" json:"committee_ceiling" validate:"min=1,max=100000000"`
}

// DefaultConfig returns a Config with deterministic defaults.
func DefaultConfig() Config {
	return Config{
		TieBreak:         TieBreakLexicographic,
		CommitteeCeiling: DefaultCommitteeCeiling,
	}
}

// Resolver implements the ports.Resolver interface using the Schulze
// method for a single winner and Schulze STV for committees. It is
// stateless and safe for concurrent use across different polls.
type Resolver struct {
	// name is the unique identifier for this resolver instance.
	name string
	// config contains the validated configuration parameters.
	config Config
}

// NewResolver creates a Resolver with the specified configuration.
// Returns an error if configuration validation fails.
func NewResolver(name string, config Config) (*Resolver, error) {
	if name == "" {
		return nil, ErrEmptyResolverName
	}
	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &Resolver{name: name, config: config}, nil
}

// Name returns the unique identifier for this resolver instance.
func (r *Resolver) Name() string { return r.name }

// Validate checks if the resolver is properly configured.
func (r *Resolver) Validate() error {
	if err := validate.Struct(r.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// Resolve computes the winner set for one closed poll. The mode is
// selected purely on the winner count: 1 runs the Schulze method, more
// runs the committee search. The result always carries the
// candidate-level preference and strength matrices as audit artifacts,
// the total ballot count, and the full set of equally dominant winner
// sets.
func (r *Resolver) Resolve(
	ctx context.Context,
	ballots []domain.Ballot,
	candidates []domain.CandidateIndex,
	winners int,
) (*domain.Result, error) {
	if len(candidates) == 0 {
		return nil, domain.ErrEmptyInput
	}
	seen := make(map[domain.CandidateIndex]struct{}, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c]; dup {
			return nil, fmt.Errorf("duplicate candidate index %q", c)
		}
		seen[c] = struct{}{}
	}
	if winners < 1 || winners > len(candidates) {
		return nil, fmt.Errorf("%w: %d winners for %d candidates",
			domain.ErrInvalidWinnerCount, winners, len(candidates))
	}

	sorted := domain.SortIndices(candidates)
	if err := ValidateBallots(ballots, sorted); err != nil {
		return nil, err
	}

	weighted := AggregateBallots(ballots)
	d := BuildPreferences(weighted, sorted)

	// Candidate-level strengths are computed in every mode; they are the
	// audit artifact the winner derivation is checked against.
	p, tied := resolveSingle(d)

	switch {
	case winners == 1:
		// resolveSingle already produced the tied winner singletons.
	case winners == len(sorted):
		// The full candidate set is the only committee of this size.
		tied = []domain.Committee{domain.NewCommittee(sorted...)}
	default:
		var err error
		tied, err = resolveCommittees(ctx, weighted, sorted, winners, r.config.CommitteeCeiling)
		if err != nil {
			return nil, err
		}
	}

	selected, err := r.applyTieBreak(tied)
	if err != nil {
		return nil, err
	}

	return &domain.Result{
		ID:                uuid.NewString(),
		Winners:           selected,
		Tied:              tied,
		Preferences:       d,
		Strengths:         p,
		BallotCount:       int64(len(ballots)),
		DistinctOrderings: len(weighted),
		ComputedAt:        time.Now().UTC(),
	}, nil
}

// applyTieBreak turns the tied winner sets into the selected winner set
// according to the configured policy. The tied sets arrive in
// lexicographic order, so the first entry is the lexicographic pick.
func (r *Resolver) applyTieBreak(tied []domain.Committee) ([]domain.CandidateIndex, error) {
	if len(tied) == 0 {
		// dominantRows always returns at least one row.
		return nil, errors.New("internal: no dominant winner set")
	}
	if len(tied) == 1 {
		return []domain.CandidateIndex(tied[0]), nil
	}

	switch r.config.TieBreak {
	case TieBreakLexicographic:
		return []domain.CandidateIndex(tied[0]), nil
	case TieBreakSurface:
		return nil, nil
	case TieBreakError:
		return nil, fmt.Errorf("%w: %d winner sets dominate equally",
			domain.ErrUnresolvedTie, len(tied))
	default:
		return nil, fmt.Errorf("unknown tie break policy: %s", r.config.TieBreak)
	}
}
