package domain

import (
	"time"
)

// Result is the final outcome of one resolution run: the winner set,
// the full set of equally dominant alternatives, and the audit
// matrices the winners were derived from. A Result is constructed once
// when a poll is closed and never mutated afterward; persistence, if
// any, is the caller's concern.
type Result struct {
	// ID uniquely identifies this resolution run (a UUID).
	ID string `json:"id"`

	// Winners holds the selected candidate indices, sorted. Its length
	// equals the requested winner count except under the surface
	// tie-break policy, where it is empty whenever Tied has more than
	// one entry.
	Winners []CandidateIndex `json:"winners"`

	// Tied lists every equally dominant winner set, in lexicographic
	// order. A single entry means the outcome was unambiguous; more
	// than one is a genuine tie in the method, not an engine fault.
	// In single-winner mode each entry has length one.
	Tied []Committee `json:"tied"`

	// Preferences is the candidate-level pairwise matrix d.
	Preferences *Matrix `json:"preferences"`

	// Strengths is the candidate-level strongest-path matrix p.
	Strengths *Matrix `json:"strengths"`

	// BallotCount is the total number of ballots tallied.
	BallotCount int64 `json:"ballot_count"`

	// DistinctOrderings counts the weighted ballots after aggregation.
	DistinctOrderings int `json:"distinct_orderings"`

	// ComputedAt records when this resolution completed.
	ComputedAt time.Time `json:"computed_at"`
}

// IsTied reports whether more than one winner set dominated equally.
func (r *Result) IsTied() bool { return len(r.Tied) > 1 }
