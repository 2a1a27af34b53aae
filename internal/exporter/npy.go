package exporter

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"

	"eegprep/internal/dataprocessing"
)

// npyMagic is the NumPy file format magic string, followed by version 1.0
var npyMagic = []byte{0x93, 'N', 'U', 'M', 'P', 'Y'}

// headerAlign is the alignment the NumPy format prescribes for the start of
// the data section
const headerAlign = 64

// Writer persists dataset blocks as NumPy .npy artifacts in an output
// directory
type Writer struct {
	outputDir string
}

// NewWriter creates a new artifact writer rooted at outputDir
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: outputDir}
}

// WriteBlock writes a 3D block to <outputDir>/<name> in NumPy format 1.0
// (little-endian float64, C order). Existing artifacts are overwritten, so a
// re-run on unchanged input produces byte-identical files. It returns the
// full path of the written artifact.
func (w *Writer) WriteBlock(name string, block *dataprocessing.Block) (string, error) {
	fullPath := w.resolvePath(name)

	trials, rows, cols := block.Dims()
	slog.Info("writing dataset block",
		slog.String("path", fullPath),
		slog.Int("trials", trials),
		slog.Int("timepoints", rows),
		slog.Int("channels", cols))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create artifact: %w", err)
	}
	defer file.Close()

	buf := bufio.NewWriter(file)
	if err := writeNPY(buf, block); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", fullPath, err)
	}
	if err := buf.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush %s: %w", fullPath, err)
	}

	return fullPath, nil
}

// resolvePath joins name with the output directory unless it is absolute
func (w *Writer) resolvePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(w.outputDir, name)
}

// writeNPY serializes a block in NumPy format 1.0. The header is a Python
// dict literal padded with spaces so the data section starts on a 64-byte
// boundary, per the format specification.
func writeNPY(w io.Writer, block *dataprocessing.Block) error {
	trials, rows, cols := block.Dims()
	header := fmt.Sprintf("{'descr': '<f8', 'fortran_order': False, 'shape': (%d, %d, %d), }", trials, rows, cols)

	// magic(6) + version(2) + header length(2) + header + '\n'
	preamble := len(npyMagic) + 2 + 2
	total := preamble + len(header) + 1
	if pad := total % headerAlign; pad != 0 {
		header += string(bytes.Repeat([]byte{' '}, headerAlign-pad))
	}
	header += "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	return binary.Write(w, binary.LittleEndian, block.RawData())
}

// shapePattern extracts a rank-3 shape tuple from an npy header dict
var shapePattern = regexp.MustCompile(`'shape':\s*\((\d+),\s*(\d+),\s*(\d+)\)`)

// ReadBlock reads a 3D float64 .npy artifact back into a Block. It is the
// inverse of WriteBlock and exists so downstream Go consumers (and tests)
// can load artifacts without NumPy.
func ReadBlock(path string) (*dataprocessing.Block, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open artifact: %w", err)
	}
	defer file.Close()

	r := bufio.NewReader(file)

	magic := make([]byte, len(npyMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if !bytes.Equal(magic, npyMagic) {
		return nil, fmt.Errorf("not an npy file: bad magic %q", magic)
	}

	version := make([]byte, 2)
	if _, err := io.ReadFull(r, version); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}
	if version[0] != 1 {
		return nil, fmt.Errorf("unsupported npy version %d.%d", version[0], version[1])
	}

	var headerLen uint16
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("failed to read header length: %w", err)
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header := string(headerBytes)

	if !bytes.Contains(headerBytes, []byte("'descr': '<f8'")) {
		return nil, fmt.Errorf("unsupported dtype in header %q", header)
	}
	if bytes.Contains(headerBytes, []byte("'fortran_order': True")) {
		return nil, fmt.Errorf("fortran-ordered arrays are not supported")
	}

	m := shapePattern.FindStringSubmatch(header)
	if m == nil {
		return nil, fmt.Errorf("header %q has no rank-3 shape", header)
	}
	trials, _ := strconv.Atoi(m[1])
	rows, _ := strconv.Atoi(m[2])
	cols, _ := strconv.Atoi(m[3])

	data := make([]float64, trials*rows*cols)
	if err := binary.Read(r, binary.LittleEndian, data); err != nil {
		return nil, fmt.Errorf("failed to read data section: %w", err)
	}

	return dataprocessing.NewBlock(data, trials, rows, cols)
}
