// SPDX-License-Identifier: MIT

package polyfit

import (
	"fmt"
	"math"
)

// relativeRankTol marks a diagonal of R as zero relative to the largest one.
const relativeRankTol = 1e-12

// LeastSquares returns the x minimising ||a·x − b|| for an m×n matrix with
// m ≥ n and full column rank. a and b are not modified.
//
// Householder reflections reduce a to upper-triangular R while being applied
// to b, then R·x = Qᵀb is solved by back substitution.
//
// Complexity: O(m·n²) time, O(m·n) memory.
func LeastSquares(a *Dense, b []float64) ([]float64, error) {
	// Stage 1: validate shapes
	m, n := a.Rows(), a.Cols()
	if len(b) != m {
		return nil, fmt.Errorf("LeastSquares: rhs length %d for %d rows: %w", len(b), m, ErrInvalidDimensions)
	}
	if m < n {
		return nil, fmt.Errorf("LeastSquares: %dx%d underdetermined: %w", m, n, ErrTooFewPoints)
	}

	// Stage 2: working copies
	r := a.Clone()
	qtb := make([]float64, m)
	copy(qtb, b)
	v := make([]float64, m)

	// Stage 3: Householder reflections, column by column
	var maxDiag float64
	for k := 0; k < n; k++ {
		var norm float64
		for i := k; i < m; i++ {
			norm += r.at(i, k) * r.at(i, k)
		}
		norm = math.Sqrt(norm)
		if norm == 0 || math.IsNaN(norm) {
			return nil, fmt.Errorf("LeastSquares: column %d: %w", k, ErrSingular)
		}
		alpha := -math.Copysign(norm, r.at(k, k))

		for i := k; i < m; i++ {
			v[i] = r.at(i, k)
		}
		v[k] -= alpha
		var beta float64
		for i := k; i < m; i++ {
			beta += v[i] * v[i]
		}
		tau := 2 / beta

		for j := k; j < n; j++ {
			var sum float64
			for i := k; i < m; i++ {
				sum += v[i] * r.at(i, j)
			}
			for i := k; i < m; i++ {
				r.set(i, j, r.at(i, j)-tau*v[i]*sum)
			}
		}
		var sum float64
		for i := k; i < m; i++ {
			sum += v[i] * qtb[i]
		}
		for i := k; i < m; i++ {
			qtb[i] -= tau * v[i] * sum
		}
		maxDiag = math.Max(maxDiag, math.Abs(r.at(k, k)))
	}

	// Stage 4: back substitution on the leading n×n block
	x := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		d := r.at(i, i)
		if math.Abs(d) <= relativeRankTol*maxDiag {
			return nil, fmt.Errorf("LeastSquares: rank deficient at %d: %w", i, ErrSingular)
		}
		s := qtb[i]
		for j := i + 1; j < n; j++ {
			s -= r.at(i, j) * x[j]
		}
		x[i] = s / d
	}
	return x, nil
}
