package schulze

// strongestPaths computes the widest-bottleneck path matrix p from a
// pairwise matrix d, both given as row-major int64 grids over the same
// ordering. An edge a->b exists with strength d[a][b] iff
// d[a][b] > d[b][a]; the Floyd-Warshall style closure then maximizes
// the minimum edge along each path.
//
// The input is not modified.
func strongestPaths(d [][]int64) [][]int64 {
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

// dominantRows returns the indices of every row a whose path strength
// is at least reciprocated against all others: p[a][b] >= p[b][a] for
// every b. More than one dominant row means a genuine tie in the
// method. On an all-zero matrix every row is dominant.
func dominantRows(p [][]int64) []int {
	var out []int
	for a := range p {
		dominant := true
		for b := range p {
			if a != b && p[a][b] < p[b][a] {
				dominant = false
				break
			}
		}
		if dominant {
			out = append(out, a)
		}
	}
	return out
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
