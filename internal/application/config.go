// Package application loads election definitions and coordinates
// resolution runs. It is the caller-side layer around the pure engine:
// input normalization, pre-completion policy, and batch orchestration
// live here, never inside the resolver.
package application

// ElectionConfig defines the complete YAML specification of one
// election to resolve: the candidate set, the required winner count,
// resolver settings, and the weighted ballots in grouping notation.
// It is the file-level entry point consumed by the loader.
type ElectionConfig struct {
	// Name is the human-readable identifier of the poll.
	Name string `yaml:"name" validate:"required,min=1,max=255"`

	// Candidates declares the fixed candidate set of the poll. Indices
	// must be unique after normalization.
	Candidates []CandidateConfig `yaml:"candidates" validate:"required,min=1,dive"`

	// Winners is the required winner count; 1 selects the single-winner
	// Schulze method, anything above runs the committee search.
	Winners int `yaml:"winners" validate:"min=1"`

	// TieBreak selects the tie-break policy; empty means lexicographic.
	TieBreak string `yaml:"tie_break" validate:"omitempty,oneof=lexicographic surface error"`

	// CommitteeCeiling overrides the committee enumeration ceiling;
	// zero keeps the engine default.
	CommitteeCeiling int64 `yaml:"committee_ceiling" validate:"omitempty,min=1"`

	// CompletePartial appends all unranked candidates as a final tied
	// rank group before resolution. Without it, partial ballots are
	// rejected by the engine.
	CompletePartial bool `yaml:"complete_partial"`

	// Ballots lists the cast orderings with their counts.
	Ballots []BallotConfig `yaml:"ballots" validate:"dive"`
}

// CandidateConfig declares one candidate of the poll.
type CandidateConfig struct {
	// Index is the candidate's opaque voting index (alphanumeric,
	// uppercased by the loader).
	Index string `yaml:"index" validate:"required,min=1,max=16"`

	// Label is an optional display name shown alongside the index.
	Label string `yaml:"label" validate:"max=255"`
}

// BallotConfig is one weighted ordering in grouping notation: each
// entry of Ranking is a rank group, candidates within a group are tied.
type BallotConfig struct {
	// Count is the number of voters who cast this ordering.
	Count int64 `yaml:"count" validate:"min=1"`

	// Ranking holds the rank groups from most to least preferred,
	// e.g. [[A], [B, C], [D]].
	Ranking [][]string `yaml:"ranking" validate:"required,min=1"`
}
