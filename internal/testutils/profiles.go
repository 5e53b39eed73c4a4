// Package testutils provides shared ballot fixtures and builders for
// engine tests.
package testutils

import (
	"fmt"
	"strings"

	"github.com/debnet/condorcet/internal/domain"
)

// MustBallot parses the compact ballot notation used by tests:
// rank groups separated by ">", tied candidates joined by "=",
// e.g. "A>B=C>D". It panics on malformed notation; fixtures are
// compile-time constants.
func MustBallot(notation string) domain.Ballot {
	if strings.TrimSpace(notation) == "" {
		panic("testutils: empty ballot notation")
	}
	var ranks []domain.RankGroup
	for _, groupSpec := range strings.Split(notation, ">") {
		var group domain.RankGroup
		for _, member := range strings.Split(groupSpec, "=") {
			member = strings.TrimSpace(member)
			if member == "" {
				panic(fmt.Sprintf("testutils: malformed ballot notation %q", notation))
			}
			group = append(group, domain.CandidateIndex(member))
		}
		ranks = append(ranks, group)
	}
	return domain.NewBallot(ranks...)
}

// Ballots returns count copies of the ballot described by notation.
func Ballots(count int, notation string) []domain.Ballot {
	ballot := MustBallot(notation)
	out := make([]domain.Ballot, count)
	for i := range out {
		out[i] = ballot
	}
	return out
}

// Profile expands (count, notation) pairs into a flat ballot list.
// Pairs are given as alternating int and string arguments:
// Profile(5, "A>B>C", 3, "B>C>A").
func Profile(pairs ...any) []domain.Ballot {
	if len(pairs)%2 != 0 {
		panic("testutils: Profile takes (count, notation) pairs")
	}
	var out []domain.Ballot
	for i := 0; i < len(pairs); i += 2 {
		count, ok := pairs[i].(int)
		if !ok {
			panic("testutils: Profile count must be an int")
		}
		notation, ok := pairs[i+1].(string)
		if !ok {
			panic("testutils: Profile notation must be a string")
		}
		out = append(out, Ballots(count, notation)...)
	}
	return out
}

// FiveCandidates is the candidate set of the reference profile.
var FiveCandidates = []domain.CandidateIndex{"A", "B", "C", "D", "E"}

// ReferenceProfile is the canonical published 45-voter Schulze election
// over five candidates (eight distinct orderings). Its pairwise matrix,
// strongest paths, and unique winner E are independently documented,
// which makes it the anchor fixture for the single-winner method.
func ReferenceProfile() []domain.Ballot {
	return Profile(
		5, "A>C>B>E>D",
		5, "A>D>E>C>B",
		8, "B>E>D>A>C",
		3, "C>A>B>E>D",
		7, "C>A>E>B>D",
		2, "C>B>A>D>E",
		7, "D>C>E>B>A",
		8, "E>B>A>D>C",
	)
}

// Indices builds a candidate set of the given size using uppercase
// letters starting at A. Sizes beyond 26 are not needed by tests.
func Indices(n int) []domain.CandidateIndex {
	if n > 26 {
		panic("testutils: Indices supports at most 26 candidates")
	}
	out := make([]domain.CandidateIndex, n)
	for i := range out {
		out[i] = domain.CandidateIndex(rune('A' + i))
	}
	return out
}
