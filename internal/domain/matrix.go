package domain

// Matrix is a square integer matrix over a fixed, ordered candidate set.
// It backs both the pairwise preference matrix d and the strongest-path
// matrix p. Cells are int64 because ballot weights are exact counts;
// floating point would open the door to tie-detection false negatives.
//
// The diagonal is unused and always zero.
type Matrix struct {
	// Indices is the candidate set in the matrix's row/column order.
	Indices []CandidateIndex `json:"indices"`

	// Cells holds the row-major matrix values.
	Cells [][]int64 `json:"cells"`

	pos map[CandidateIndex]int
}

// NewMatrix allocates a zero matrix over the given candidate order.
// The slice is used as-is; callers pass an already-sorted copy.
func NewMatrix(indices []CandidateIndex) *Matrix {
	n := len(indices)
	cells := make([][]int64, n)
	for i := range cells {
		cells[i] = make([]int64, n)
	}
	pos := make(map[CandidateIndex]int, n)
	for i, idx := range indices {
		pos[idx] = i
	}
	return &Matrix{Indices: indices, Cells: cells, pos: pos}
}

// Size returns the number of candidates the matrix covers.
func (m *Matrix) Size() int { return len(m.Indices) }

// At returns the cell for the (row, column) candidate pair.
// Unknown indices read as zero.
func (m *Matrix) At(a, b CandidateIndex) int64 {
	i, ok := m.position(a)
	if !ok {
		return 0
	}
	j, ok := m.position(b)
	if !ok {
		return 0
	}
	return m.Cells[i][j]
}

// Add accumulates weight into the (row, column) cell.
// Unknown indices are ignored; validation happens before tallying.
func (m *Matrix) Add(a, b CandidateIndex, weight int64) {
	i, ok := m.position(a)
	if !ok {
		return
	}
	j, ok := m.position(b)
	if !ok {
		return
	}
	m.Cells[i][j] += weight
}

// Clone returns a deep copy sharing no cell storage with the receiver.
func (m *Matrix) Clone() *Matrix {
	out := NewMatrix(m.Indices)
	for i := range m.Cells {
		copy(out.Cells[i], m.Cells[i])
	}
	return out
}

// Equal reports whether both matrices cover the same candidate order with
// identical cells.
func (m *Matrix) Equal(other *Matrix) bool {
	if other == nil || len(m.Indices) != len(other.Indices) {
		return false
	}
	for i, idx := range m.Indices {
		if other.Indices[i] != idx {
			return false
		}
	}
	for i := range m.Cells {
		for j := range m.Cells[i] {
			if m.Cells[i][j] != other.Cells[i][j] {
				return false
			}
		}
	}
	return true
}

func (m *Matrix) position(idx CandidateIndex) (int, bool) {
	if m.pos == nil {
		// Rebuilt lazily after JSON round-trips, which skip private fields.
		m.pos = make(map[CandidateIndex]int, len(m.Indices))
		for i, c := range m.Indices {
			m.pos[c] = i
		}
	}
	i, ok := m.pos[idx]
	return i, ok
}
