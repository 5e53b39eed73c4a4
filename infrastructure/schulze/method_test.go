package schulze

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debnet/condorcet/internal/domain"
	"github.com/debnet/condorcet/internal/testutils"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver("test", DefaultConfig())
	require.NoError(t, err)
	return r
}

func TestResolve_ReferenceProfile(t *testing.T) {
	r := newTestResolver(t)

	result, err := r.Resolve(context.Background(), testutils.ReferenceProfile(), testutils.FiveCandidates, 1)
	require.NoError(t, err)

	assert.Equal(t, []domain.CandidateIndex{"E"}, result.Winners)
	require.Len(t, result.Tied, 1)
	assert.Equal(t, domain.Committee{"E"}, result.Tied[0])
	assert.Equal(t, int64(45), result.BallotCount)
	assert.Equal(t, 8, result.DistinctOrderings)

	// Documented pairwise tallies of the reference profile.
	d := result.Preferences
	assert.Equal(t, int64(20), d.At("A", "B"))
	assert.Equal(t, int64(25), d.At("B", "A"))
	assert.Equal(t, int64(26), d.At("A", "C"))
	assert.Equal(t, int64(30), d.At("A", "D"))
	assert.Equal(t, int64(22), d.At("A", "E"))
	assert.Equal(t, int64(33), d.At("B", "D"))
	assert.Equal(t, int64(29), d.At("C", "B"))
	assert.Equal(t, int64(24), d.At("C", "E"))
	assert.Equal(t, int64(28), d.At("D", "C"))
	assert.Equal(t, int64(31), d.At("E", "D"))
	assert.Equal(t, int64(27), d.At("E", "B"))
	assert.Equal(t, int64(23), d.At("E", "A"))

	// Documented strongest paths: E's beat-paths dominate every other
	// candidate.
	p := result.Strengths
	assert.Equal(t, int64(25), p.At("E", "A")) // E>B>A
	assert.Equal(t, int64(24), p.At("A", "E")) // A>D>C>E
	assert.Equal(t, int64(28), p.At("E", "B")) // E>D>C>B
	assert.Equal(t, int64(28), p.At("E", "C")) // E>D>C
	assert.Equal(t, int64(31), p.At("E", "D")) // direct
}

func TestResolve_CondorcetConsistency(t *testing.T) {
	// A beats everyone head-to-head, so A must be the unique winner.
	r := newTestResolver(t)
	ballots := testutils.Profile(
		3, "A>B>C",
		2, "B>C>A",
	)

	result, err := r.Resolve(context.Background(), ballots, testutils.Indices(3), 1)
	require.NoError(t, err)

	d := result.Preferences
	for _, other := range []domain.CandidateIndex{"B", "C"} {
		require.Greater(t, d.At("A", other), d.At(other, "A"))
	}
	assert.Equal(t, []domain.CandidateIndex{"A"}, result.Winners)
	assert.Len(t, result.Tied, 1)
}

func TestResolve_Monotonicity(t *testing.T) {
	// Raising the winner on one ballot, without touching the other
	// candidates' relative order, must not cost the winner the election.
	r := newTestResolver(t)
	candidates := testutils.Indices(3)

	before := testutils.Profile(3, "A>B>C", 2, "B>C>A")
	after := testutils.Profile(3, "A>B>C", 1, "B>C>A", 1, "B>A>C")

	first, err := r.Resolve(context.Background(), before, candidates, 1)
	require.NoError(t, err)
	require.Equal(t, []domain.CandidateIndex{"A"}, first.Winners)

	second, err := r.Resolve(context.Background(), after, candidates, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.CandidateIndex{"A"}, second.Winners)
}

func TestResolve_IndependenceOfClones(t *testing.T) {
	// Cloning the non-winning B into B and X (adjacent on every ballot)
	// must not change the winner.
	r := newTestResolver(t)

	base, err := r.Resolve(context.Background(),
		testutils.Profile(3, "A>B>C", 2, "B>C>A"),
		testutils.Indices(3), 1)
	require.NoError(t, err)
	require.Equal(t, []domain.CandidateIndex{"A"}, base.Winners)

	cloned, err := r.Resolve(context.Background(),
		testutils.Profile(3, "A>B>X>C", 2, "B>X>C>A"),
		[]domain.CandidateIndex{"A", "B", "C", "X"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.CandidateIndex{"A"}, cloned.Winners)
}

func TestResolve_Idempotence(t *testing.T) {
	r := newTestResolver(t)
	ballots := testutils.ReferenceProfile()

	first, err := r.Resolve(context.Background(), ballots, testutils.FiveCandidates, 1)
	require.NoError(t, err)
	second, err := r.Resolve(context.Background(), ballots, testutils.FiveCandidates, 1)
	require.NoError(t, err)

	assert.True(t, first.Preferences.Equal(second.Preferences))
	assert.True(t, first.Strengths.Equal(second.Strengths))
	assert.Equal(t, first.Winners, second.Winners)
	assert.Equal(t, first.Tied, second.Tied)
	assert.Equal(t, first.BallotCount, second.BallotCount)
	// Only the audit identity differs between runs.
	assert.NotEqual(t, first.ID, second.ID)
}

func TestResolve_SingleBallotBoundary(t *testing.T) {
	// With one ballot, p must equal d wherever d[a][b] > d[b][a] and be
	// zero elsewhere; the closure adds no indirect strength.
	r := newTestResolver(t)
	candidates := testutils.Indices(4)

	result, err := r.Resolve(context.Background(),
		testutils.Ballots(1, "B>D>A>C"), candidates, 1)
	require.NoError(t, err)

	d, p := result.Preferences, result.Strengths
	for _, a := range candidates {
		for _, b := range candidates {
			if a == b {
				continue
			}
			expected := int64(0)
			if d.At(a, b) > d.At(b, a) {
				expected = d.At(a, b)
			}
			assert.Equal(t, expected, p.At(a, b), "p[%s][%s]", a, b)
		}
	}
	assert.Equal(t, []domain.CandidateIndex{"B"}, result.Winners)
}

func TestResolve_SingleCandidate(t *testing.T) {
	r := newTestResolver(t)

	result, err := r.Resolve(context.Background(),
		testutils.Ballots(2, "A"), []domain.CandidateIndex{"A"}, 1)
	require.NoError(t, err)
	assert.Equal(t, []domain.CandidateIndex{"A"}, result.Winners)
	assert.Equal(t, []domain.Committee{{"A"}}, result.Tied)
}

func TestResolve_NoBallots(t *testing.T) {
	// Every d entry is zero, every candidate ties; the lexicographic
	// policy picks the least index while surfacing the full tie.
	r := newTestResolver(t)
	candidates := testutils.Indices(3)

	result, err := r.Resolve(context.Background(), nil, candidates, 1)
	require.NoError(t, err)

	assert.Equal(t, []domain.CandidateIndex{"A"}, result.Winners)
	assert.Equal(t, []domain.Committee{{"A"}, {"B"}, {"C"}}, result.Tied)
	assert.True(t, result.IsTied())
	assert.Equal(t, int64(0), result.BallotCount)
}

func TestResolve_TieBreakPolicies(t *testing.T) {
	// One ballot each way is an exact tie between A and B.
	ballots := testutils.Profile(1, "A>B", 1, "B>A")
	candidates := testutils.Indices(2)

	t.Run("lexicographic picks the least index", func(t *testing.T) {
		r := newTestResolver(t)
		result, err := r.Resolve(context.Background(), ballots, candidates, 1)
		require.NoError(t, err)
		assert.Equal(t, []domain.CandidateIndex{"A"}, result.Winners)
		assert.Equal(t, []domain.Committee{{"A"}, {"B"}}, result.Tied)
	})

	t.Run("surface leaves the choice to the caller", func(t *testing.T) {
		r, err := NewResolver("test", Config{
			TieBreak:         TieBreakSurface,
			CommitteeCeiling: DefaultCommitteeCeiling,
		})
		require.NoError(t, err)

		result, err := r.Resolve(context.Background(), ballots, candidates, 1)
		require.NoError(t, err)
		assert.Empty(t, result.Winners)
		assert.Len(t, result.Tied, 2)
	})

	t.Run("error fails on genuine ties", func(t *testing.T) {
		r, err := NewResolver("test", Config{
			TieBreak:         TieBreakError,
			CommitteeCeiling: DefaultCommitteeCeiling,
		})
		require.NoError(t, err)

		_, err = r.Resolve(context.Background(), ballots, candidates, 1)
		assert.ErrorIs(t, err, domain.ErrUnresolvedTie)
	})

	t.Run("surface still names the single winner when unambiguous", func(t *testing.T) {
		r, err := NewResolver("test", Config{
			TieBreak:         TieBreakSurface,
			CommitteeCeiling: DefaultCommitteeCeiling,
		})
		require.NoError(t, err)

		result, err := r.Resolve(context.Background(),
			testutils.Profile(2, "A>B", 1, "B>A"), candidates, 1)
		require.NoError(t, err)
		assert.Equal(t, []domain.CandidateIndex{"A"}, result.Winners)
	})
}
