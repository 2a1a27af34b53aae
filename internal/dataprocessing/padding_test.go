package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// matEqual reports exact element-wise equality of two matrices
func matEqual(a, b *mat.Dense) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for r := 0; r < ar; r++ {
		for c := 0; c < ac; c++ {
			if a.At(r, c) != b.At(r, c) {
				return false
			}
		}
	}
	return true
}

func sequentialDense(rows, cols int, start float64) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = start + float64(i)
	}
	return mat.NewDense(rows, cols, data)
}

func TestPadRowsExtendsWithZeros(t *testing.T) {
	table := sequentialDense(2, 3, 1) // [[1 2 3] [4 5 6]]

	padded := PadRows(table, 5)

	rows, cols := padded.Dims()
	require.Equal(t, 5, rows)
	require.Equal(t, 3, cols)

	// Original data occupies the prefix
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			assert.Equal(t, table.At(r, c), padded.At(r, c))
		}
	}
	// Tail rows are exactly zero
	for r := 2; r < 5; r++ {
		for c := 0; c < 3; c++ {
			assert.Zero(t, padded.At(r, c))
		}
	}
}

func TestPadRowsTargetEqualsRows(t *testing.T) {
	table := sequentialDense(3, 2, 0)
	padded := PadRows(table, 3)
	assert.Same(t, table, padded)
}

func TestPadRowsNeverTruncates(t *testing.T) {
	table := sequentialDense(4, 2, 0)
	padded := PadRows(table, 2)

	assert.Same(t, table, padded, "longer tables pass through unchanged")
	rows, _ := padded.Dims()
	assert.Equal(t, 4, rows)
}

func TestPadRowsDoesNotMutateInput(t *testing.T) {
	table := sequentialDense(2, 2, 1)
	original := mat.DenseCopyOf(table)

	_ = PadRows(table, 10)

	assert.True(t, matEqual(original, table))
}

func TestStack(t *testing.T) {
	tables := []*mat.Dense{
		sequentialDense(2, 3, 0),
		sequentialDense(2, 3, 100),
		sequentialDense(2, 3, 200),
	}

	block, err := Stack(tables)
	require.NoError(t, err)
	require.NotNil(t, block)

	trials, rows, cols := block.Dims()
	assert.Equal(t, 3, trials)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)

	// block[i] equals input table i exactly
	for i, table := range tables {
		assert.True(t, matEqual(table, block.Trial(i)), "trial %d should round-trip", i)
	}
	assert.Equal(t, 100.0, block.At(1, 0, 0))
	assert.Equal(t, 205.0, block.At(2, 1, 2))
}

func TestStackEmptyInput(t *testing.T) {
	block, err := Stack(nil)
	assert.NoError(t, err)
	assert.Nil(t, block, "empty group yields no block, not a degenerate array")
}

func TestStackShapeMismatch(t *testing.T) {
	tables := []*mat.Dense{
		sequentialDense(2, 3, 0),
		sequentialDense(2, 4, 0),
	}

	_, err := Stack(tables)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestStackPreservesInputOrder(t *testing.T) {
	first := mat.NewDense(1, 1, []float64{1})
	second := mat.NewDense(1, 1, []float64{2})

	block, err := Stack([]*mat.Dense{first, second})
	require.NoError(t, err)

	assert.Equal(t, 1.0, block.At(0, 0, 0))
	assert.Equal(t, 2.0, block.At(1, 0, 0))
}

func TestNewBlock(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6}

	block, err := NewBlock(data, 1, 2, 3)
	require.NoError(t, err)

	trials, rows, cols := block.Dims()
	assert.Equal(t, 1, trials)
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.Equal(t, data, block.RawData())

	_, err = NewBlock(data, 2, 2, 3)
	assert.Error(t, err, "length mismatch should be rejected")
}

func TestPadThenStackEndToEnd(t *testing.T) {
	// Three trials of 2, 4 and 3 rows, padded to the group max of 4
	tables := []*mat.Dense{
		sequentialDense(2, 2, 1),
		sequentialDense(4, 2, 10),
		sequentialDense(3, 2, 20),
	}

	var padded []*mat.Dense
	for _, table := range tables {
		padded = append(padded, PadRows(table, 4))
	}

	block, err := Stack(padded)
	require.NoError(t, err)

	trials, rows, cols := block.Dims()
	assert.Equal(t, 3, trials)
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)

	// Trial 0 rows 2..3 are padding
	for r := 2; r < 4; r++ {
		for c := 0; c < 2; c++ {
			assert.Zero(t, block.At(0, r, c))
		}
	}
	// Trial 1 was already at max and is untouched
	assert.True(t, matEqual(tables[1], block.Trial(1)))
}
