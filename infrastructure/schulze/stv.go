package schulze

import (
	"context"

	"github.com/debnet/condorcet/internal/domain"
)

// binomialWithin computes C(n, k) while guarding against the
// combinatorial explosion the committee search is exposed to. It
// returns the count and true when C(n, k) <= ceiling; otherwise it
// stops early and returns the first partial value found to exceed the
// ceiling and false. The early stop also prevents int64 overflow for
// large n.
func binomialWithin(n, k int, ceiling int64) (int64, bool) {
	if k < 0 || k > n {
		return 0, true
	}
	if k > n-k {
		k = n - k
	}
	count := int64(1)
	for i := 1; i <= k; i++ {
		count = count * int64(n-k+i) / int64(i)
		if count > ceiling {
			return count, false
		}
	}
	return count, true
}

// combinations enumerates every k-subset of {0, ..., n-1} in
// lexicographic order. The committee tie-break relies on this order:
// with sorted candidates, the first enumerated committee is the
// lexicographically least tuple.
func combinations(n, k int) [][]int {
	if k < 0 || k > n {
		return nil
	}
	var out [][]int
	current := make([]int, k)
	for i := range current {
		current[i] = i
	}
	for {
		committee := make([]int, k)
		copy(committee, current)
		out = append(out, committee)

		// Advance the rightmost member that can still move.
		i := k - 1
		for i >= 0 && current[i] == n-k+i {
			i--
		}
		if i < 0 {
			return out
		}
		current[i]++
		for j := i + 1; j < k; j++ {
			current[j] = current[j-1] + 1
		}
	}
}

// resolveCommittees runs the multi-winner Schulze STV search: it lifts
// the pairwise comparison from candidates to size-k committees, applies
// the same widest-path closure over the committee space, and returns
// every dominant committee in lexicographic order.
//
// Committee d[A][B] is the total ballot weight whose best-available
// candidate from A\B is ranked strictly ahead of the best-available
// candidate from B\A. Restricting the comparison to the symmetric
// difference is the overlap adjustment: shared members can never be
// double-counted, and every entry stays integral. Equal best ranks
// contribute to neither side. With k == 1 this degenerates exactly to
// the candidate-level pairwise matrix.
//
// The context is checked once per outer iteration of the quadratic and
// cubic loops so oversized runs can be aborted.
func resolveCommittees(
	ctx context.Context,
	weighted []domain.WeightedBallot,
	candidates []domain.CandidateIndex,
	k int,
	ceiling int64,
) ([]domain.Committee, error) {
	n := len(candidates)
	count, ok := binomialWithin(n, k, ceiling)
	if !ok {
		return nil, &domain.IntractableInputError{
			Candidates: n, Winners: k, Committees: count, Ceiling: ceiling,
		}
	}

	committees := combinations(n, k)
	m := len(committees)

	// Rank of each candidate position on each weighted ballot.
	ranks := make([][]int, len(weighted))
	position := make(map[domain.CandidateIndex]int, n)
	for i, c := range candidates {
		position[c] = i
	}
	for wi, w := range weighted {
		r := make([]int, n)
		for idx, rank := range w.Positions() {
			r[position[idx]] = rank
		}
		ranks[wi] = r
	}

	member := make([][]bool, m)
	for i, committee := range committees {
		member[i] = make([]bool, n)
		for _, c := range committee {
			member[i][c] = true
		}
	}

	d := make([][]int64, m)
	for i := range d {
		d[i] = make([]int64, m)
	}
	for i := 0; i < m; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for j := 0; j < m; j++ {
			if i == j {
				continue
			}
			for wi, w := range weighted {
				bestI, okI := bestOutsideRank(committees[i], member[j], ranks[wi])
				bestJ, okJ := bestOutsideRank(committees[j], member[i], ranks[wi])
				if okI && okJ && bestI < bestJ {
					d[i][j] += w.Weight
				}
			}
		}
	}

	p := strongestPathsCtx(ctx, d)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var tied []domain.Committee
	for _, row := range dominantRows(p) {
		committee := make(domain.Committee, k)
		for i, c := range committees[row] {
			committee[i] = candidates[c]
		}
		tied = append(tied, committee)
	}
	return tied, nil
}

// bestOutsideRank returns the best (lowest) ballot rank among the
// committee members not belonging to the other committee. ok is false
// when the symmetric difference is empty, which only happens when both
// committees are identical.
func bestOutsideRank(committee []int, inOther []bool, ranks []int) (int, bool) {
	best, found := 0, false
	for _, c := range committee {
		if inOther[c] {
			continue
		}
		if !found || ranks[c] < best {
			best = ranks[c]
			found = true
		}
	}
	return best, found
}

// strongestPathsCtx is the widest-path closure with a cancellation
// check per intermediate node; committee matrices can be large enough
// for the cubic loop to take real time.
func strongestPathsCtx(ctx context.Context, d [][]int64) [][]int64 {
	n := len(d)
	p := make([][]int64, n)
	for a := range p {
		p[a] = make([]int64, n)
		for b := range p[a] {
			if a != b && d[a][b] > d[b][a] {
				p[a][b] = d[a][b]
			}
		}
	}

	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			return p
		}
		for a := 0; a < n; a++ {
			if a == i {
				continue
			}
			via := p[a][i]
			if via == 0 {
				continue
			}
			for b := 0; b < n; b++ {
				if b == a || b == i {
					continue
				}
				bottleneck := min64(via, p[i][b])
				if bottleneck > p[a][b] {
					p[a][b] = bottleneck
				}
			}
		}
	}
	return p
}
