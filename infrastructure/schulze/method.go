package schulze

import (
	"github.com/debnet/condorcet/internal/domain"
)

// resolveSingle runs the single-winner Schulze method over the pairwise
// matrix d. It returns the strongest-path matrix p and the full set of
// Schulze winners as singleton committees, in lexicographic order (the
// candidate order of d is already sorted).
//
// Multiple winners can only occur on an exact strength tie across the
// whole comparison, a genuine tie in the method. With no ballots cast
// every entry of d is zero and every candidate ties as winner.
func resolveSingle(d *domain.Matrix) (*domain.Matrix, []domain.Committee) {
	p := domain.NewMatrix(d.Indices)
	p.Cells = strongestPaths(d.Cells)

	rows := dominantRows(p.Cells)
	tied := make([]domain.Committee, 0, len(rows))
	for _, a := range rows {
		tied = append(tied, domain.Committee{d.Indices[a]})
	}
	return p, tied
}
