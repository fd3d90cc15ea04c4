package matrix

import (
	"fmt"

	"gsakit/internal/errors"
)

// Memory is an in-memory sampling-matrix source, used for generated
// samples that never touch disk and as a test double for the store.
type Memory struct {
	data [][]float64 // row-major
	cols int
}

// NewMemory wraps a row-major matrix. All rows must have equal width.
func NewMemory(x [][]float64) (*Memory, error) {
	if len(x) == 0 || len(x[0]) == 0 {
		return nil, errors.InvalidInput("cannot wrap an empty matrix")
	}
	cols := len(x[0])
	for i, row := range x {
		if len(row) != cols {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d has %d columns, want %d", i, len(row), cols))
		}
	}
	return &Memory{data: x, cols: cols}, nil
}

// Rows reports the number of matrix rows.
func (m *Memory) Rows() int { return len(m.data) }

// Cols reports the number of matrix columns.
func (m *Memory) Cols() int { return m.cols }

// ReadColumns returns one slice per column in [start, end), restricted to
// the requested rows (nil = all rows, in order).
func (m *Memory) ReadColumns(start, end int, rows []int) ([][]float64, error) {
	if start < 0 || end > m.cols || start > end {
		return nil, errors.InvalidInput(fmt.Sprintf("column range [%d,%d) outside matrix with %d columns", start, end, m.cols))
	}
	if rows == nil {
		rows = make([]int, len(m.data))
		for i := range rows {
			rows[i] = i
		}
	}

	width := end - start
	out := make([][]float64, width)
	for j := range out {
		out[j] = make([]float64, len(rows))
	}
	for i, row := range rows {
		if row < 0 || row >= len(m.data) {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d outside matrix with %d rows", row, len(m.data)))
		}
		for j := 0; j < width; j++ {
			out[j][i] = m.data[row][start+j]
		}
	}
	return out, nil
}

// Vector is an in-memory output-vector source.
type Vector []float64

// Values returns the vector itself; it is never mutated by the engine.
func (v Vector) Values() ([]float64, error) {
	return []float64(v), nil
}

// VectorFile reads the output vector from an on-disk rows-by-1 store.
type VectorFile struct {
	Path string
}

// Values loads the vector from disk.
func (v VectorFile) Values() ([]float64, error) {
	return ReadVector(v.Path)
}
