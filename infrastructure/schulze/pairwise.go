package schulze

import (
	"github.com/debnet/condorcet/internal/domain"
)

// ValidateBallots rejects any ballot that does not rank exactly the
// given candidate set once each. Validation is primarily the caller's
// responsibility, but the engine re-checks so that a bypassed caller
// can never produce a silently wrong matrix.
//
// candidates must already be deduplicated; it is the fixed candidate
// set of the poll.
func ValidateBallots(ballots []domain.Ballot, candidates []domain.CandidateIndex) error {
	known := make(map[domain.CandidateIndex]struct{}, len(candidates))
	for _, c := range candidates {
		known[c] = struct{}{}
	}

	for i, b := range ballots {
		seen := make(map[domain.CandidateIndex]struct{}, len(candidates))
		for _, group := range b.Ranks {
			if len(group) == 0 {
				return domain.NewInvalidBallotError(i, "empty rank group")
			}
			for _, c := range group {
				if _, ok := known[c]; !ok {
					return domain.NewInvalidBallotError(i, "unknown candidate %q", c)
				}
				if _, dup := seen[c]; dup {
					return domain.NewInvalidBallotError(i, "candidate %q appears more than once", c)
				}
				seen[c] = struct{}{}
			}
		}
		if len(seen) != len(candidates) {
			return domain.NewInvalidBallotError(i,
				"ballot ranks %d of %d candidates", len(seen), len(candidates))
		}
	}
	return nil
}

// BuildPreferences constructs the complete pairwise preference matrix d
// from weighted ballots: d[a][b] is the total ballot weight strictly
// preferring a over b. Every candidate pair is present, zero where no
// evidence exists. Candidates tied within a rank group contribute
// nothing between themselves.
//
// candidates defines the matrix row/column order and is used as given.
func BuildPreferences(weighted []domain.WeightedBallot, candidates []domain.CandidateIndex) *domain.Matrix {
	d := domain.NewMatrix(candidates)
	for _, w := range weighted {
		for gi, group := range w.Ranks {
			for _, preferred := range group {
				for _, later := range w.Ranks[gi+1:] {
					for _, other := range later {
						d.Add(preferred, other, w.Weight)
					}
				}
			}
		}
	}
	return d
}
