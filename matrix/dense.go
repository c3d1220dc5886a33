package matrix

import (
	"fmt"
	"strings"
)

// Dense is a row-major matrix. Element (i, j) lives at data[i*cols+j].
type Dense struct {
	r, c int
	data []float64
}

// NewDense returns a zeroed rows×cols matrix.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) (*Dense, error) {
	m, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, fmt.Errorf("Dense(%d,%d): %w", row, col, ErrOutOfRange)
	}
	return row*m.c + col, nil
}

// At returns element (row, col).
func (m *Dense) At(row, col int) (float64, error) {
	i, err := m.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return m.data[i], nil
}

// Set stores v at (row, col).
func (m *Dense) Set(row, col int, v float64) error {
	i, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[i] = v
	return nil
}

// Add adds v to element (row, col).
func (m *Dense) Add(row, col int, v float64) error {
	i, err := m.indexOf(row, col)
	if err != nil {
		return err
	}
	m.data[i] += v
	return nil
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Dense{r: m.r, c: m.c, data: data}
}

// String renders one bracketed row per line.
func (m *Dense) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "%g", m.data[i*m.c+j])
		}
		sb.WriteString("]\n")
	}
	return sb.String()
}
