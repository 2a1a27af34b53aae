package exporter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eegprep/internal/dataprocessing"
)

func testBlock(t *testing.T, trials, rows, cols int) *dataprocessing.Block {
	t.Helper()
	data := make([]float64, trials*rows*cols)
	for i := range data {
		data[i] = float64(i) * 0.25
	}
	block, err := dataprocessing.NewBlock(data, trials, rows, cols)
	require.NoError(t, err)
	return block
}

func TestWriteBlockRoundTrip(t *testing.T) {
	outDir := t.TempDir()
	writer := NewWriter(outDir)
	block := testBlock(t, 3, 80, 4)

	path, err := writer.WriteBlock("array_3D_raw_low.npy", block)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "array_3D_raw_low.npy"), path)

	got, err := ReadBlock(path)
	require.NoError(t, err)

	trials, rows, cols := got.Dims()
	assert.Equal(t, 3, trials)
	assert.Equal(t, 80, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, block.RawData(), got.RawData())
}

func TestWriteBlockHeaderFormat(t *testing.T) {
	writer := NewWriter(t.TempDir())
	block := testBlock(t, 2, 5, 3)

	path, err := writer.WriteBlock("header_check.npy", block)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Magic and version 1.0
	require.Greater(t, len(raw), 10)
	assert.Equal(t, []byte{0x93, 'N', 'U', 'M', 'P', 'Y', 1, 0}, raw[:8])

	headerLen := int(raw[8]) | int(raw[9])<<8
	header := string(raw[10 : 10+headerLen])
	assert.Contains(t, header, "'descr': '<f8'")
	assert.Contains(t, header, "'fortran_order': False")
	assert.Contains(t, header, "'shape': (2, 5, 3)")
	assert.Equal(t, byte('\n'), header[len(header)-1])

	// Data section starts on a 64-byte boundary
	assert.Zero(t, (10+headerLen)%64)

	// Preamble plus exactly trials*rows*cols float64 values
	assert.Equal(t, 10+headerLen+2*5*3*8, len(raw))
}

func TestWriteBlockIsIdempotent(t *testing.T) {
	writer := NewWriter(t.TempDir())
	block := testBlock(t, 2, 4, 2)

	path, err := writer.WriteBlock("repeat.npy", block)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = writer.WriteBlock("repeat.npy", block)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second, "re-running on unchanged input must be byte-identical")
}

func TestWriteBlockCreatesOutputDirectory(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "not", "yet", "there")
	writer := NewWriter(outDir)

	path, err := writer.WriteBlock("deep.npy", testBlock(t, 1, 2, 2))
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestReadBlockRejectsGarbage(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		content []byte
	}{
		{"empty file", nil},
		{"bad magic", []byte("NOTNUMPYDATA")},
		{"truncated after magic", []byte{0x93, 'N', 'U', 'M', 'P', 'Y'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, "garbage.npy")
			require.NoError(t, os.WriteFile(path, tt.content, 0644))

			_, err := ReadBlock(path)
			assert.Error(t, err)
		})
	}
}

func TestReadBlockMissingFile(t *testing.T) {
	_, err := ReadBlock(filepath.Join(t.TempDir(), "absent.npy"))
	assert.Error(t, err)
}
