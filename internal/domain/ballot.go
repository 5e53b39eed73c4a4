// Package domain contains pure, dependency-free domain models and types
// for the resolution engine.
package domain

import (
	"sort"
	"strings"
)

// CandidateIndex is the opaque, totally-ordered label identifying a
// candidate within one poll. Indices are assigned before voting opens
// and never reassigned while votes exist; the engine treats them as
// plain strings ordered lexicographically.
type CandidateIndex string

// RankGroup is a non-empty set of candidate indices tied at one
// preference level within a ballot.
type RankGroup []CandidateIndex

// Ballot is one voter's ranked ordering over the full candidate set,
// expressed as a sequence of rank groups from most to least preferred.
// A valid ballot mentions every candidate of its poll exactly once
// across all groups. Ballots are immutable once cast.
type Ballot struct {
	// Ranks holds the rank groups in preference order.
	// Ranks[0] is the most preferred group.
	Ranks []RankGroup `json:"ranks" yaml:"ranks"`
}

// NewBallot builds a Ballot from rank groups.
func NewBallot(ranks ...RankGroup) Ballot {
	return Ballot{Ranks: ranks}
}

// Key returns a canonical representation of the ballot's ordering.
// Two ballots have equal keys iff their rank-group sequences are
// structurally identical; membership order within a tie group does not
// matter, so groups are sorted before encoding.
//
// The encoding joins tied candidates with "=" and rank groups with ">"
// (e.g. "A>B=C>D").
func (b Ballot) Key() string {
	var sb strings.Builder
	for i, group := range b.Ranks {
		if i > 0 {
			sb.WriteByte('>')
		}
		members := make([]string, len(group))
		for j, c := range group {
			members[j] = string(c)
		}
		sort.Strings(members)
		sb.WriteString(strings.Join(members, "="))
	}
	return sb.String()
}

// Candidates returns every candidate index mentioned by the ballot, in
// ballot order. Duplicates are preserved so that validation can detect
// them.
func (b Ballot) Candidates() []CandidateIndex {
	var out []CandidateIndex
	for _, group := range b.Ranks {
		out = append(out, group...)
	}
	return out
}

// WeightedBallot is an (ordering, count) pair produced by grouping
// identical orderings together. It is a derived, ephemeral structure
// rebuilt on every resolution run.
type WeightedBallot struct {
	// Ranks is the shared ordering of every ballot in the group.
	Ranks []RankGroup `json:"ranks"`

	// Weight is the number of ballots carrying this ordering, always >= 1.
	Weight int64 `json:"weight"`
}

// Positions maps each candidate on the ballot to the index of its rank
// group. Lower values mean higher preference. Candidates sharing a rank
// group map to the same value.
func (w WeightedBallot) Positions() map[CandidateIndex]int {
	pos := make(map[CandidateIndex]int)
	for i, group := range w.Ranks {
		for _, c := range group {
			pos[c] = i
		}
	}
	return pos
}

// Committee is an unordered set of candidate indices of fixed size,
// compared against other committees in multi-winner resolution.
// Committees are kept sorted for deterministic ordering and encoding.
type Committee []CandidateIndex

// NewCommittee returns a sorted copy of the given members.
func NewCommittee(members ...CandidateIndex) Committee {
	c := make(Committee, len(members))
	copy(c, members)
	sort.Slice(c, func(i, j int) bool { return c[i] < c[j] })
	return c
}

// Key encodes the committee as a deterministic string ("A+C+E").
func (c Committee) Key() string {
	parts := make([]string, len(c))
	for i, m := range c {
		parts[i] = string(m)
	}
	return strings.Join(parts, "+")
}

// Contains reports whether the committee includes the given candidate.
func (c Committee) Contains(idx CandidateIndex) bool {
	for _, m := range c {
		if m == idx {
			return true
		}
	}
	return false
}

// SortIndices returns a lexicographically sorted copy of the given
// candidate indices. Resolution uses this ordering everywhere a
// deterministic candidate order is needed.
func SortIndices(indices []CandidateIndex) []CandidateIndex {
	out := make([]CandidateIndex, len(indices))
	copy(out, indices)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
