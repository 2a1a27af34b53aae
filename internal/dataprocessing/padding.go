package dataprocessing

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrShapeMismatch indicates that tables within one group do not share the
// same shape and cannot be stacked
var ErrShapeMismatch = errors.New("tables have mismatched shapes")

// PadRows returns a table with exactly target rows. Shorter tables are
// extended with trailing all-zero rows; the original data occupies the
// prefix. Tables with target or more rows are returned unchanged, so no
// truncation ever occurs.
func PadRows(m *mat.Dense, target int) *mat.Dense {
	rows, cols := m.Dims()
	if rows >= target {
		return m
	}

	padded := mat.NewDense(target, cols, nil)
	padded.Copy(m)
	return padded
}

// Block is a stacked trials x timepoints x channels array, stored flat in
// row-major (C) order so it can be serialized directly.
type Block struct {
	data   []float64
	trials int
	rows   int
	cols   int
}

// NewBlock wraps flat row-major data in a Block. The data length must equal
// trials*rows*cols.
func NewBlock(data []float64, trials, rows, cols int) (*Block, error) {
	if trials < 0 || rows < 0 || cols < 0 || len(data) != trials*rows*cols {
		return nil, fmt.Errorf("data length %d does not match shape (%d, %d, %d)", len(data), trials, rows, cols)
	}
	return &Block{data: data, trials: trials, rows: rows, cols: cols}, nil
}

// Dims returns the block shape as (trials, rows, cols)
func (b *Block) Dims() (trials, rows, cols int) {
	return b.trials, b.rows, b.cols
}

// At returns the value at trial t, timepoint r, channel c
func (b *Block) At(t, r, c int) float64 {
	if t < 0 || t >= b.trials || r < 0 || r >= b.rows || c < 0 || c >= b.cols {
		panic("block index out of range")
	}
	return b.data[(t*b.rows+r)*b.cols+c]
}

// Trial returns the 2D slice for one trial. The returned matrix shares the
// block's backing storage.
func (b *Block) Trial(t int) *mat.Dense {
	if t < 0 || t >= b.trials {
		panic("trial index out of range")
	}
	size := b.rows * b.cols
	return mat.NewDense(b.rows, b.cols, b.data[t*size:(t+1)*size])
}

// RawData returns the flat row-major backing slice
func (b *Block) RawData() []float64 {
	return b.data
}

// Stack assembles same-shaped 2D tables into one 3D block with trial as the
// leading axis, preserving input order. An empty input yields (nil, nil):
// the caller skips the group rather than producing a degenerate array. A
// shape mismatch between tables yields ErrShapeMismatch.
func Stack(tables []*mat.Dense) (*Block, error) {
	if len(tables) == 0 {
		return nil, nil
	}

	rows, cols := tables[0].Dims()
	data := make([]float64, len(tables)*rows*cols)

	for i, table := range tables {
		r, c := table.Dims()
		if r != rows || c != cols {
			return nil, fmt.Errorf("table %d is %dx%d, want %dx%d: %w", i, r, c, rows, cols, ErrShapeMismatch)
		}
		base := i * rows * cols
		for ri := 0; ri < rows; ri++ {
			for ci := 0; ci < cols; ci++ {
				data[base+ri*cols+ci] = table.At(ri, ci)
			}
		}
	}

	return &Block{data: data, trials: len(tables), rows: rows, cols: cols}, nil
}
