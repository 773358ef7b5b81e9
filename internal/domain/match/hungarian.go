package match

import (
	"fmt"
	"math"
	"sort"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// Pair is one matched (requirement, candidate) cell of an assignment.
type Pair struct {
	Row   int     // requirement item index
	Col   int     // candidate item index
	Score float64 // similarity at (Row, Col)
}

// Assignment is a maximum-similarity one-to-one matching over a Matrix.
// Pairs are ordered by requirement index; Mean is the arithmetic mean of the
// matched similarities (0 when no pairs).
type Assignment struct {
	Pairs []Pair
	Mean  float64
}

// Solve computes the optimal assignment over the similarity matrix,
// maximizing total matched similarity. It runs the Kuhn–Munkres algorithm in
// its O(n³) potentials-and-augmenting-paths form on the negated matrix, with
// the rectangular extension: exactly min(rows, cols) pairs are produced and
// no row or column index repeats. The result is deterministic for identical
// input.
func Solve(m Matrix) (Assignment, error) {
	if m.IsEmpty() {
		return Assignment{Pairs: []Pair{}}, nil
	}

	for i := 0; i < m.Rows(); i++ {
		for j := 0; j < m.Cols(); j++ {
			if math.IsNaN(m.At(i, j)) || math.IsInf(m.At(i, j), 0) {
				return Assignment{}, fmt.Errorf(
					"non-finite similarity at (%d,%d): %w", i, j, domain.ErrComputation,
				)
			}
		}
	}

	// The algorithm needs rows <= cols; transpose when the requirement side
	// is the larger one and swap indices back afterwards.
	transposed := m.Rows() > m.Cols()
	n, c := m.Rows(), m.Cols()
	if transposed {
		n, c = c, n
	}

	cost := func(i, j int) float64 {
		if transposed {
			return -m.At(j, i)
		}
		return -m.At(i, j)
	}

	rowOf, err := solveRectangular(n, c, cost)
	if err != nil {
		return Assignment{}, err
	}

	pairs := make([]Pair, 0, n)
	seenRow := make([]bool, n)
	for j, i := range rowOf {
		if i < 0 {
			continue
		}
		if seenRow[i] {
			return Assignment{}, fmt.Errorf("row %d matched twice: %w", i, domain.ErrComputation)
		}
		seenRow[i] = true

		row, col := i, j
		if transposed {
			row, col = j, i
		}
		pairs = append(pairs, Pair{Row: row, Col: col, Score: m.At(row, col)})
	}
	if len(pairs) != n {
		return Assignment{}, fmt.Errorf(
			"expected %d pairs, solver produced %d: %w", n, len(pairs), domain.ErrComputation,
		)
	}

	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Row < pairs[b].Row })

	var total float64
	for _, p := range pairs {
		total += p.Score
	}

	return Assignment{Pairs: pairs, Mean: total / float64(len(pairs))}, nil
}

// solveRectangular runs the potentials form of Kuhn–Munkres for n rows and
// c columns, n <= c, minimizing total cost. It returns rowOf: for each column
// the matched row index, or -1 when the column stays unmatched.
func solveRectangular(n, c int, cost func(i, j int) float64) ([]int, error) {
	const unmatched = -1

	u := make([]float64, n+1)   // row potentials
	v := make([]float64, c+1)   // column potentials
	p := make([]int, c+1)       // p[j]: row (1-based) matched to column j, 0 = free
	way := make([]int, c+1)     // predecessor column on the augmenting path
	minv := make([]float64, c+1)
	used := make([]bool, c+1)

	for i := 1; i <= n; i++ {
		p[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = math.Inf(1)
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := p[j0]
			delta := math.Inf(1)
			j1 := 0

			for j := 1; j <= c; j++ {
				if used[j] {
					continue
				}
				cur := cost(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if math.IsInf(delta, 1) {
				return nil, fmt.Errorf("augmenting path stalled at row %d: %w", i0-1, domain.ErrComputation)
			}

			for j := 0; j <= c; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}

			j0 = j1
			if p[j0] == 0 {
				break
			}
		}

		// Unwind the augmenting path.
		for j0 != 0 {
			j1 := way[j0]
			p[j0] = p[j1]
			j0 = j1
		}
	}

	rowOf := make([]int, c)
	for j := 1; j <= c; j++ {
		if p[j] == 0 {
			rowOf[j-1] = unmatched
			continue
		}
		rowOf[j-1] = p[j] - 1
	}
	return rowOf, nil
}
