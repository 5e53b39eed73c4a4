package application

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debnet/condorcet/infrastructure/schulze"
	"github.com/debnet/condorcet/internal/domain"
)

const basicElectionYAML = `
name: board-seat
candidates:
  - index: A
    label: Alice
  - index: B
    label: Bob
  - index: C
winners: 1
ballots:
  - count: 2
    ranking: [[A], [B], [C]]
  - count: 1
    ranking: [[B], [A, C]]
`

func TestParseElection(t *testing.T) {
	election, err := ParseElection([]byte(basicElectionYAML))
	require.NoError(t, err)

	assert.Equal(t, "board-seat", election.Name)
	assert.Equal(t,
		[]domain.CandidateIndex{"A", "B", "C"},
		election.Candidates)
	assert.Equal(t, "Alice", election.Labels["A"])
	assert.Equal(t, "C", election.Labels["C"],
		"unlabeled candidates fall back to their index")
	assert.Equal(t, 1, election.Winners)

	require.Len(t, election.Ballots, 3, "counts expand into individual ballots")
	assert.Equal(t, "A>B>C", election.Ballots[0].Key())
	assert.Equal(t, "A>B>C", election.Ballots[1].Key())
	assert.Equal(t, "B>A=C", election.Ballots[2].Key())

	assert.Equal(t, schulze.TieBreakLexicographic, election.ResolverConfig.TieBreak)
	assert.Equal(t, schulze.DefaultCommitteeCeiling, election.ResolverConfig.CommitteeCeiling)
}

func TestParseElectionResolverOverrides(t *testing.T) {
	yaml := `
name: override
candidates:
  - index: A
  - index: B
winners: 1
tie_break: surface
committee_ceiling: 500
ballots:
  - count: 1
    ranking: [[A], [B]]
`
	election, err := ParseElection([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, schulze.TieBreakSurface, election.ResolverConfig.TieBreak)
	assert.Equal(t, int64(500), election.ResolverConfig.CommitteeCeiling)
}

func TestParseElectionNormalizesIndices(t *testing.T) {
	yaml := `
name: normalized
candidates:
  - index: "a"
  - index: " b "
winners: 1
ballots:
  - count: 1
    ranking: [["B"], ["a"]]
`
	election, err := ParseElection([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, []domain.CandidateIndex{"A", "B"}, election.Candidates)
	require.Len(t, election.Ballots, 1)
	assert.Equal(t, "B>A", election.Ballots[0].Key())
}

func TestParseElectionCompletePartial(t *testing.T) {
	yaml := `
name: partial
candidates:
  - index: A
  - index: B
  - index: C
  - index: D
winners: 1
complete_partial: true
ballots:
  - count: 1
    ranking: [[B]]
`
	election, err := ParseElection([]byte(yaml))
	require.NoError(t, err)

	require.Len(t, election.Ballots, 1)
	assert.Equal(t, "B>A=C=D", election.Ballots[0].Key(),
		"unranked candidates join a final tied group")
}

func TestParseElectionErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown field rejected",
			yaml: `
name: strict
candidats:
  - index: A
winners: 1
`,
			wantErr: "decode election config",
		},
		{
			name: "missing name",
			yaml: `
candidates:
  - index: A
winners: 1
`,
			wantErr: "invalid election config",
		},
		{
			name: "invalid tie break",
			yaml: `
name: bad-tie
candidates:
  - index: A
winners: 1
tie_break: coinflip
`,
			wantErr: "invalid election config",
		},
		{
			name: "duplicate candidate after normalization",
			yaml: `
name: dup
candidates:
  - index: A
  - index: a
winners: 1
`,
			wantErr: `duplicate index "A"`,
		},
		{
			name: "unknown ballot index with suggestion",
			yaml: `
name: typo
candidates:
  - index: ALPHA
  - index: BETA
winners: 1
ballots:
  - count: 1
    ranking: [[ALPHA], [BETTA]]
`,
			wantErr: `unknown candidate index "BETTA" (did you mean "BETA"?)`,
		},
		{
			name: "unknown ballot index without close match",
			yaml: `
name: stranger
candidates:
  - index: ALPHA
  - index: BETA
winners: 1
ballots:
  - count: 1
    ranking: [[ZZZZZZ]]
`,
			wantErr: `unknown candidate index "ZZZZZZ"`,
		},
		{
			name: "candidate ranked twice",
			yaml: `
name: twice
candidates:
  - index: A
  - index: B
winners: 1
ballots:
  - count: 1
    ranking: [[A], [B, A]]
`,
			wantErr: `candidate "A" ranked more than once`,
		},
		{
			name: "empty rank group",
			yaml: `
name: hollow
candidates:
  - index: A
winners: 1
ballots:
  - count: 1
    ranking: [[A], []]
`,
			wantErr: "rank group 1 is empty",
		},
		{
			name: "zero ballot count",
			yaml: `
name: zero
candidates:
  - index: A
winners: 1
ballots:
  - count: 0
    ranking: [[A]]
`,
			wantErr: "invalid election config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseElection([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadElection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "election.yaml")
	require.NoError(t, os.WriteFile(path, []byte(basicElectionYAML), 0o600))

	election, err := LoadElection(path)
	require.NoError(t, err)
	assert.Equal(t, "board-seat", election.Name)
	assert.Len(t, election.Ballots, 3)
}

func TestLoadElectionMissingFile(t *testing.T) {
	_, err := LoadElection(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read election file")
}
