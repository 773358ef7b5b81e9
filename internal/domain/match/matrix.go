// Package match contains the pure matching math: cosine similarity matrices,
// the optimal assignment solver, and weight normalization. Everything here is
// deterministic and free of I/O.
package match

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/matchdex/internal/domain"
)

// Matrix is a requirement-by-candidate similarity matrix.
// Rows follow requirement item order, columns candidate item order.
// Cells are cosine similarities clipped to [0,1].
type Matrix struct {
	rows  int
	cols  int
	cells [][]float64
}

// BuildMatrix computes the pairwise similarity matrix between two ordered
// vector lists. Zero-length inputs yield a matrix with zero rows or columns;
// a valid "no comparable items" result, not an error.
func BuildMatrix(reqVectors, candVectors [][]float32) (Matrix, error) {
	dim := 0
	for _, v := range reqVectors {
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return Matrix{}, fmt.Errorf(
				"requirement vector length %d, expected %d: %w",
				len(v), dim, domain.ErrDimensionMismatch,
			)
		}
	}
	for _, v := range candVectors {
		if dim == 0 {
			dim = len(v)
		}
		if len(v) != dim {
			return Matrix{}, fmt.Errorf(
				"candidate vector length %d, expected %d: %w",
				len(v), dim, domain.ErrDimensionMismatch,
			)
		}
	}

	cells := make([][]float64, len(reqVectors))
	for i, rv := range reqVectors {
		cells[i] = make([]float64, len(candVectors))
		for j, cv := range candVectors {
			cells[i][j] = ClippedCosine(rv, cv)
		}
	}

	return Matrix{rows: len(reqVectors), cols: len(candVectors), cells: cells}, nil
}

// NewMatrix creates a matrix from raw cells (tests and diagnostics).
// Rows must be equal length; ragged input panics by way of later indexing,
// so callers construct rectangular data.
func NewMatrix(cells [][]float64) Matrix {
	cols := 0
	if len(cells) > 0 {
		cols = len(cells[0])
	}
	return Matrix{rows: len(cells), cols: cols, cells: cells}
}

// Rows returns the number of requirement items.
func (m Matrix) Rows() int { return m.rows }

// Cols returns the number of candidate items.
func (m Matrix) Cols() int { return m.cols }

// At returns the similarity at (row, col).
func (m Matrix) At(row, col int) float64 { return m.cells[row][col] }

// IsEmpty reports whether the matrix has no comparable pairs.
func (m Matrix) IsEmpty() bool { return m.rows == 0 || m.cols == 0 }

// Cosine returns the cosine similarity between two vectors in [-1,1].
// Zero-norm or empty vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// ClippedCosine is Cosine clipped to [0,1]. Negative similarity carries no
// penalty semantics here: "opposite meaning" counts the same as "unrelated".
func ClippedCosine(a, b []float32) float64 {
	sim := Cosine(a, b)
	if sim < 0 {
		return 0
	}
	if sim > 1 {
		return 1 // numerical noise can push slightly above 1
	}
	return sim
}
