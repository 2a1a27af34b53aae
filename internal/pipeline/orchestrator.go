package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"eegprep/internal/config"
	"eegprep/internal/dataprocessing"
	"eegprep/internal/exporter"
	"eegprep/internal/files"
	"eegprep/internal/infrastructure"
)

// SkipReason explains why a group produced no artifact
type SkipReason int

const (
	// SkipNone marks a group that was processed and persisted
	SkipNone SkipReason = iota
	// SkipNotFound marks a group whose source directory does not exist
	SkipNotFound
	// SkipEmpty marks a group whose directory yielded no valid trial tables
	SkipEmpty
	// SkipShapeMismatch marks a group whose trials disagree on channel count
	SkipShapeMismatch
	// SkipWriteFailed marks a group whose artifact could not be persisted
	SkipWriteFailed
)

// String returns the skip reason label used in logs and summaries
func (r SkipReason) String() string {
	switch r {
	case SkipNone:
		return "processed"
	case SkipNotFound:
		return "directory not found"
	case SkipEmpty:
		return "no valid trials"
	case SkipShapeMismatch:
		return "channel count mismatch"
	case SkipWriteFailed:
		return "write failed"
	default:
		return "unknown"
	}
}

// GroupResult records the outcome of one group
type GroupResult struct {
	Group      Group
	Skip       SkipReason
	Trials     int
	Timepoints int
	Channels   int
	OutputPath string
}

// Processed reports whether the group produced an artifact
func (r GroupResult) Processed() bool {
	return r.Skip == SkipNone
}

// Summary aggregates the outcomes of a full pipeline run
type Summary struct {
	Results   []GroupResult
	Processed int
	Skipped   map[SkipReason]int
}

// Orchestrator drives the full preprocessing run over the static group
// catalog: scan each group's directory for the maximum trial length, pad and
// stack its trials, and persist the resulting 3D block.
type Orchestrator struct {
	cfg       *config.Config
	discovery *files.Discovery
	scanner   *dataprocessing.Scanner
	writer    *exporter.Writer
}

// New creates an orchestrator for the given configuration
func New(cfg *config.Config) *Orchestrator {
	discovery := files.NewDiscovery("")
	return &Orchestrator{
		cfg:       cfg,
		discovery: discovery,
		scanner:   dataprocessing.NewScanner(discovery),
		writer:    exporter.NewWriter(cfg.Paths.OutputDir),
	}
}

// Run processes every group in catalog order, strictly one at a time. No
// group failure aborts the run: each failure mode is logged, recorded as a
// skip reason, and processing moves to the next group. The returned summary
// covers all 18 groups.
func (o *Orchestrator) Run(ctx context.Context) (*Summary, error) {
	logger := infrastructure.WithComponent(infrastructure.LoggerWithContext(ctx), "orchestrator")

	if err := o.cfg.EnsureOutputDir(); err != nil {
		return nil, err
	}

	summary := &Summary{Skipped: make(map[SkipReason]int)}

	catalog := Catalog()
	logger.Info("starting FatigueSet preprocessing",
		slog.String("data_dir", o.cfg.Paths.DataDir),
		slog.String("output_dir", o.cfg.Paths.OutputDir),
		slog.Int("group_count", len(catalog)))

	for _, group := range catalog {
		result := o.processGroup(ctx, group)
		summary.Results = append(summary.Results, result)
		if result.Processed() {
			summary.Processed++
		} else {
			summary.Skipped[result.Skip]++
		}
	}

	logger.Info("preprocessing complete",
		slog.Int("groups_processed", summary.Processed),
		slog.Int("groups_skipped", len(catalog)-summary.Processed))
	for reason, count := range summary.Skipped {
		logger.Info("skip summary",
			slog.String("reason", reason.String()),
			slog.Int("count", count))
	}

	return summary, nil
}

// processGroup runs the two-phase scan-then-stack transform for one group.
// The directory is read twice: once to find the padding target and once to
// load and pad each trial. This trades I/O volume for not holding every
// parsed table in memory during the scan.
func (o *Orchestrator) processGroup(ctx context.Context, group Group) GroupResult {
	logger := infrastructure.WithComponent(infrastructure.LoggerWithContext(ctx), "orchestrator").
		With(slog.String("group", group.String()))
	result := GroupResult{Group: group}

	dir := o.cfg.GroupDir(group.Band, group.Intensity)
	if !o.discovery.DirExists(dir) {
		logger.Warn("source directory not found, skipping group", slog.String("dir", dir))
		result.Skip = SkipNotFound
		return result
	}

	maxRows, validFiles, err := o.scanner.MaxTrialLength(ctx, dir)
	if err != nil {
		logger.Warn("failed to scan group directory, skipping group",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		result.Skip = SkipNotFound
		return result
	}
	if validFiles == 0 || maxRows == 0 {
		logger.Warn("no valid trial files in group directory, skipping group", slog.String("dir", dir))
		result.Skip = SkipEmpty
		return result
	}
	logger.Info("max sequence length found",
		slog.Int("timepoints", maxRows),
		slog.Int("trial_count", validFiles))

	trialFiles, err := o.discovery.FindTrialFiles(dir)
	if err != nil {
		logger.Warn("failed to re-read group directory, skipping group",
			slog.String("dir", dir),
			slog.String("error", err.Error()))
		result.Skip = SkipNotFound
		return result
	}

	var padded []*mat.Dense
	for _, file := range trialFiles {
		table, err := dataprocessing.LoadTrialFile(file.Path)
		if err != nil {
			logger.Warn("skipping unreadable trial file",
				slog.String("file", file.Name),
				slog.String("error", err.Error()))
			continue
		}
		padded = append(padded, dataprocessing.PadRows(table, maxRows))
	}

	block, err := dataprocessing.Stack(padded)
	if err != nil {
		if errors.Is(err, dataprocessing.ErrShapeMismatch) {
			logger.Warn("trials disagree on shape, skipping group", slog.String("error", err.Error()))
			result.Skip = SkipShapeMismatch
			return result
		}
		logger.Warn("failed to stack trials, skipping group", slog.String("error", err.Error()))
		result.Skip = SkipShapeMismatch
		return result
	}
	if block == nil {
		logger.Warn("no trial tables survived loading, skipping group")
		result.Skip = SkipEmpty
		return result
	}

	path, err := o.writer.WriteBlock(group.OutputName(), block)
	if err != nil {
		logger.Error("failed to persist dataset block", slog.String("error", err.Error()))
		result.Skip = SkipWriteFailed
		return result
	}

	result.Trials, result.Timepoints, result.Channels = block.Dims()
	result.OutputPath = path
	logger.Info("group processed",
		slog.String("output", path),
		slog.Int("trials", result.Trials),
		slog.Int("timepoints", result.Timepoints),
		slog.Int("channels", result.Channels))

	return result
}
