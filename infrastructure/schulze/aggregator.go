// Package schulze implements the Condorcet/Schulze social-choice
// resolution engine: the pairwise preference tally, the strongest-path
// closure, and both the single-winner method and the multi-winner
// committee (Schulze STV) generalization.
//
// The engine is synchronous and side-effect-free over its inputs. It is
// decomposed into three layered stages with no cyclic dependencies:
// ballot aggregation, pairwise matrix construction, and strength
// resolution.
package schulze

import (
	"sort"

	"github.com/debnet/condorcet/internal/domain"
)

// AggregateBallots collapses raw ballots with identical orderings into
// weighted ballots, since resolution only depends on distinct orderings
// and their counts. Two ballots aggregate together iff their rank-group
// sequences are structurally identical (same groups, same order, same
// tie-groupings). Empty input yields an empty output.
//
// The result is ordered by canonical ballot key so that downstream
// stages see a deterministic sequence.
func AggregateBallots(ballots []domain.Ballot) []domain.WeightedBallot {
	if len(ballots) == 0 {
		return nil
	}

	groups := make(map[string]*domain.WeightedBallot, len(ballots))
	for _, b := range ballots {
		key := b.Key()
		if g, ok := groups[key]; ok {
			g.Weight++
			continue
		}
		groups[key] = &domain.WeightedBallot{Ranks: b.Ranks, Weight: 1}
	}

	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]domain.WeightedBallot, 0, len(groups))
	for _, key := range keys {
		out = append(out, *groups[key])
	}
	return out
}
