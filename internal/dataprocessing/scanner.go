package dataprocessing

import (
	"context"
	"log/slog"
	"path/filepath"

	"eegprep/internal/files"
	"eegprep/internal/infrastructure"
)

// Scanner determines the maximum trial length within a group directory
type Scanner struct {
	discovery *files.Discovery
}

// NewScanner creates a new length scanner using the given discovery instance
func NewScanner(discovery *files.Discovery) *Scanner {
	return &Scanner{discovery: discovery}
}

// MaxTrialLength returns the maximum row count among the valid trial files in
// dir and the number of files that loaded successfully. Files that fail to
// load are logged and contribute nothing to the maximum. A directory with no
// valid files yields (0, 0, nil).
func (s *Scanner) MaxTrialLength(ctx context.Context, dir string) (maxRows, validFiles int, err error) {
	logger := infrastructure.WithComponent(infrastructure.LoggerWithContext(ctx), "scanner")

	trialFiles, err := s.discovery.FindTrialFiles(dir)
	if err != nil {
		return 0, 0, err
	}

	logger.Info("scanning for max sequence length",
		slog.String("dir", filepath.Base(dir)),
		slog.Int("file_count", len(trialFiles)))

	for _, file := range trialFiles {
		table, err := LoadTrialFile(file.Path)
		if err != nil {
			logger.Warn("skipping unreadable trial file",
				slog.String("file", file.Name),
				slog.String("error", err.Error()))
			continue
		}

		rows, _ := table.Dims()
		if rows > maxRows {
			maxRows = rows
		}
		validFiles++

		logger.Debug("scanned trial file",
			slog.String("file", file.Name),
			slog.Int("rows", rows),
			slog.Int("max_so_far", maxRows))
	}

	return maxRows, validFiles, nil
}
