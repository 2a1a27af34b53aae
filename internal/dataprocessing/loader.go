package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrNoHeader indicates a trial file without a header row
	ErrNoHeader = errors.New("trial file has no header row")
	// ErrNoDataRows indicates a trial file with a header but no timepoints
	ErrNoDataRows = errors.New("trial file has no data rows")
	// ErrNoChannels indicates a trial file with no channel columns left
	// after index-column stripping
	ErrNoChannels = errors.New("trial file has no channel columns")
)

// LoadTrialFile reads a single trial recording into a timepoints x channels
// matrix. The first row is treated as a header. A leading column whose header
// is empty or "Unnamed: 0" is a serialized row counter left behind by the
// recording export and is dropped before conversion.
//
// Any read or parse failure is returned as an error; callers treat a failed
// file as "skip this trial" and continue.
func LoadTrialFile(path string) (*mat.Dense, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readWorkbookRows(path)
	default:
		rows, err = readCSVRows(path)
	}
	if err != nil {
		return nil, err
	}
	return tableToMatrix(rows)
}

// readCSVRows reads all records of a CSV file, header included
func readCSVRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trial file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	return rows, nil
}

// readWorkbookRows reads all rows of the first sheet of an XLSX workbook
func readWorkbookRows(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// tableToMatrix converts header-plus-rows string records into a numeric
// matrix, stripping the index column if present
func tableToMatrix(rows [][]string) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	header := rows[0]
	startCol := 0
	if len(header) > 0 && isIndexColumn(header[0]) {
		startCol = 1
	}

	numCols := len(header) - startCol
	if numCols <= 0 {
		return nil, ErrNoChannels
	}

	dataRows := rows[1:]
	if len(dataRows) == 0 {
		return nil, ErrNoDataRows
	}

	m := mat.NewDense(len(dataRows), numCols, nil)
	for i, row := range dataRows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i+1, len(row), len(header))
		}
		for j := 0; j < numCols; j++ {
			cell := strings.TrimSpace(row[startCol+j])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column %d: invalid numeric value %q: %w", i+1, startCol+j, cell, err)
			}
			m.Set(i, j, v)
		}
	}

	return m, nil
}

// isIndexColumn reports whether a first-column header identifies a serialized
// row counter rather than a channel
func isIndexColumn(header string) bool {
	trimmed := strings.TrimSpace(header)
	return trimmed == "" || trimmed == "Unnamed: 0"
}
