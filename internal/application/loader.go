package application

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/debnet/condorcet/infrastructure/schulze"
	"github.com/debnet/condorcet/internal/domain"
)

var validate = validator.New()

// Election is a fully normalized, resolution-ready poll produced by the
// loader: candidate indices are NFC-normalized and uppercased, weighted
// orderings are expanded into individual ballots, and the resolver
// configuration is assembled from the file's overrides.
type Election struct {
	// Name is the poll's identifier from the config file.
	Name string

	// Candidates is the normalized candidate set in declaration order.
	Candidates []domain.CandidateIndex

	// Labels maps each candidate index to its display label. Candidates
	// without an explicit label map to their own index.
	Labels map[domain.CandidateIndex]string

	// Winners is the required winner count.
	Winners int

	// Ballots holds every cast ballot, with weighted orderings expanded.
	Ballots []domain.Ballot

	// ResolverConfig carries the tie-break and ceiling settings for the
	// resolver that will run this election.
	ResolverConfig schulze.Config
}

// LoadElection reads and parses an election definition from a YAML file.
func LoadElection(path string) (*Election, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read election file %q: %w", path, err)
	}

	election, err := ParseElection(data)
	if err != nil {
		return nil, fmt.Errorf("parse election file %q: %w", path, err)
	}
	return election, nil
}

// ParseElection parses an election definition from YAML bytes. Decoding
// is strict: unknown fields fail the load rather than being ignored.
// Candidate indices are normalized to NFC form and uppercased, so "é"
// and "é" (combining accent) collide as intended and ballots may use
// either case. Unknown indices in ballots fail with a nearest-match
// suggestion when one is close enough.
func ParseElection(data []byte) (*Election, error) {
	var cfg ElectionConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Strict mode - fail on unknown fields.
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode election config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid election config: %w", err)
	}

	candidates := make([]domain.CandidateIndex, 0, len(cfg.Candidates))
	labels := make(map[domain.CandidateIndex]string, len(cfg.Candidates))
	for i, cand := range cfg.Candidates {
		index := normalizeIndex(cand.Index)
		if index == "" {
			return nil, fmt.Errorf("candidate %d: empty index after normalization", i)
		}
		if _, ok := labels[index]; ok {
			return nil, fmt.Errorf("candidate %d: duplicate index %q", i, index)
		}
		label := cand.Label
		if label == "" {
			label = string(index)
		}
		candidates = append(candidates, index)
		labels[index] = label
	}

	ballots := make([]domain.Ballot, 0, len(cfg.Ballots))
	for i, bc := range cfg.Ballots {
		ballot, err := buildBallot(bc, candidates, labels, cfg.CompletePartial)
		if err != nil {
			return nil, fmt.Errorf("ballot %d: %w", i, err)
		}
		for n := int64(0); n < bc.Count; n++ {
			ballots = append(ballots, ballot)
		}
	}

	resolverCfg := schulze.DefaultConfig()
	if cfg.TieBreak != "" {
		resolverCfg.TieBreak = schulze.TieBreak(cfg.TieBreak)
	}
	if cfg.CommitteeCeiling > 0 {
		resolverCfg.CommitteeCeiling = cfg.CommitteeCeiling
	}

	return &Election{
		Name:           cfg.Name,
		Candidates:     candidates,
		Labels:         labels,
		Winners:        cfg.Winners,
		Ballots:        ballots,
		ResolverConfig: resolverCfg,
	}, nil
}

// buildBallot converts one ballot config into a domain ballot, checking
// every referenced index against the candidate set and optionally
// appending the unranked remainder as a final tied group.
func buildBallot(
	bc BallotConfig,
	candidates []domain.CandidateIndex,
	labels map[domain.CandidateIndex]string,
	completePartial bool,
) (domain.Ballot, error) {
	seen := make(map[domain.CandidateIndex]bool, len(candidates))
	ranks := make([]domain.RankGroup, 0, len(bc.Ranking)+1)
	for gi, group := range bc.Ranking {
		if len(group) == 0 {
			return domain.Ballot{}, fmt.Errorf("rank group %d is empty", gi)
		}
		rank := make(domain.RankGroup, 0, len(group))
		for _, raw := range group {
			index := normalizeIndex(raw)
			if _, ok := labels[index]; !ok {
				return domain.Ballot{}, unknownIndexError(index, candidates)
			}
			if seen[index] {
				return domain.Ballot{}, fmt.Errorf("candidate %q ranked more than once", index)
			}
			seen[index] = true
			rank = append(rank, index)
		}
		ranks = append(ranks, rank)
	}

	if completePartial && len(seen) < len(candidates) {
		rest := make(domain.RankGroup, 0, len(candidates)-len(seen))
		for _, c := range candidates {
			if !seen[c] {
				rest = append(rest, c)
			}
		}
		ranks = append(ranks, rest)
	}

	return domain.Ballot{Ranks: ranks}, nil
}

// normalizeIndex canonicalizes a raw candidate index: NFC Unicode
// normalization, surrounding whitespace stripped, then uppercased.
func normalizeIndex(raw string) domain.CandidateIndex {
	s := norm.NFC.String(strings.TrimSpace(raw))
	return domain.CandidateIndex(strings.ToUpper(s))
}

// unknownIndexError builds the error for an index that matches no
// declared candidate, suggesting the nearest declared index when it is
// within a small edit distance.
func unknownIndexError(index domain.CandidateIndex, candidates []domain.CandidateIndex) error {
	best := domain.CandidateIndex("")
	bestDist := -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(string(index), string(c))
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	if bestDist >= 0 && bestDist <= 2 {
		return fmt.Errorf("unknown candidate index %q (did you mean %q?)", index, best)
	}
	return fmt.Errorf("unknown candidate index %q", index)
}
