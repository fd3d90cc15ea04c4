// Package matrix provides sampling-matrix storage: an on-disk binary store
// with partial reads for the parallel driver, an in-memory source for
// generated samples, and an excelize-backed spreadsheet bridge.
package matrix

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"gsakit/internal/errors"
)

// On-disk layout: magic, uint64 rows, uint64 cols, then row-major
// little-endian float64 data. The fixed header makes column-range reads a
// pure offset computation, which is what lets ReadColumns touch only the
// requested rows.
var storeMagic = [4]byte{'G', 'S', 'A', 'M'}

const headerSize = 4 + 8 + 8

// Store is a read handle on an on-disk sampling matrix. It is safe for
// concurrent ReadColumns calls: every call opens its own file descriptor.
type Store struct {
	path string
	rows int
	cols int
}

// WriteMatrix persists a row-major matrix to path.
func WriteMatrix(path string, x [][]float64) error {
	if len(x) == 0 || len(x[0]) == 0 {
		return errors.InvalidInput("cannot write an empty matrix")
	}
	cols := len(x[0])

	f, err := os.Create(path)
	if err != nil {
		return errors.StorageError("failed to create matrix file", err)
	}
	defer f.Close()

	header := make([]byte, headerSize)
	copy(header, storeMagic[:])
	binary.LittleEndian.PutUint64(header[4:], uint64(len(x)))
	binary.LittleEndian.PutUint64(header[12:], uint64(cols))
	if _, err := f.Write(header); err != nil {
		return errors.StorageError("failed to write matrix header", err)
	}

	buf := make([]byte, cols*8)
	for i, row := range x {
		if len(row) != cols {
			return errors.InvalidInput(fmt.Sprintf("row %d has %d columns, want %d", i, len(row), cols))
		}
		for j, v := range row {
			binary.LittleEndian.PutUint64(buf[j*8:], math.Float64bits(v))
		}
		if _, err := f.Write(buf); err != nil {
			return errors.StorageError("failed to write matrix row", err)
		}
	}
	return nil
}

// WriteVector persists a vector as a rows-by-1 matrix.
func WriteVector(path string, y []float64) error {
	x := make([][]float64, len(y))
	for i, v := range y {
		x[i] = []float64{v}
	}
	return WriteMatrix(path, x)
}

// ReadVector loads a rows-by-1 matrix back into a flat vector.
func ReadVector(path string) ([]float64, error) {
	store, err := Open(path)
	if err != nil {
		return nil, err
	}
	cols, err := store.ReadColumns(0, 1, nil)
	if err != nil {
		return nil, err
	}
	return cols[0], nil
}

// Open validates the header at path and returns a read handle.
func Open(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.StorageError("failed to open matrix file", err)
	}
	defer f.Close()

	header := make([]byte, headerSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, errors.StorageError("failed to read matrix header", err)
	}
	if [4]byte(header[:4]) != storeMagic {
		return nil, errors.InvalidInput(fmt.Sprintf("%s is not a matrix store file", path))
	}

	return &Store{
		path: path,
		rows: int(binary.LittleEndian.Uint64(header[4:])),
		cols: int(binary.LittleEndian.Uint64(header[12:])),
	}, nil
}

// Rows reports the number of matrix rows.
func (s *Store) Rows() int { return s.rows }

// Cols reports the number of matrix columns.
func (s *Store) Cols() int { return s.cols }

// ReadColumns returns one slice per column in [start, end), restricted to
// the requested rows (nil = all rows, in order). Only the bytes covering
// the requested row/column spans are read from disk.
func (s *Store) ReadColumns(start, end int, rows []int) ([][]float64, error) {
	if start < 0 || end > s.cols || start > end {
		return nil, errors.InvalidInput(fmt.Sprintf("column range [%d,%d) outside matrix with %d columns", start, end, s.cols))
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.StorageError("failed to open matrix file", err)
	}
	defer f.Close()

	if rows == nil {
		rows = make([]int, s.rows)
		for i := range rows {
			rows[i] = i
		}
	}

	width := end - start
	out := make([][]float64, width)
	for j := range out {
		out[j] = make([]float64, len(rows))
	}

	buf := make([]byte, width*8)
	for i, row := range rows {
		if row < 0 || row >= s.rows {
			return nil, errors.InvalidInput(fmt.Sprintf("row %d outside matrix with %d rows", row, s.rows))
		}
		offset := int64(headerSize) + int64(row*s.cols+start)*8
		if _, err := f.ReadAt(buf, offset); err != nil {
			return nil, errors.StorageError("failed to read matrix rows", err)
		}
		for j := 0; j < width; j++ {
			out[j][i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[j*8:]))
		}
	}
	return out, nil
}
