// SPDX-License-Identifier: MIT

package polyfit

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix of float64 values.
type Dense struct {
	r, c int       // rows, columns
	data []float64 // len == r*c
}

func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// NewDense returns a zero rows×cols matrix.
// Complexity: O(rows*cols) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("NewDense(%d,%d): %w", rows, cols, ErrInvalidDimensions)
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) index(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrIndexOutOfBounds)
	}
	return row*m.c + col, nil
}

// At returns the element at (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	i, err := m.index("At", row, col)
	if err != nil {
		return 0, err
	}
	return m.data[i], nil
}

// Set stores v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	i, err := m.index("Set", row, col)
	if err != nil {
		return err
	}
	m.data[i] = v
	return nil
}

// at and set skip bounds checks for the solver's inner loops.
func (m *Dense) at(row, col int) float64     { return m.data[row*m.c+col] }
func (m *Dense) set(row, col int, v float64) { m.data[row*m.c+col] = v }

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	d := make([]float64, len(m.data))
	copy(d, m.data)
	return &Dense{r: m.r, c: m.c, data: d}
}

// String implements fmt.Stringer.
func (m *Dense) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteByte('[')
		for j := 0; j < m.c; j++ {
			if j > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%g", m.at(i, j))
		}
		b.WriteString("]\n")
	}
	return b.String()
}
