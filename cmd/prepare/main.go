package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"eegprep/internal/config"
	"eegprep/internal/infrastructure"
	"eegprep/internal/pipeline"
)

func main() {
	configFile := flag.String("config", "", "path to config.yaml (optional; defaults and environment are used otherwise)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	ctx := infrastructure.ContextWithTraceID(context.Background())

	summary, err := run(ctx, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "preprocessing run failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("Processed %d of %d groups\n", summary.Processed, len(summary.Results))
	for reason, count := range summary.Skipped {
		fmt.Printf("Skipped (%s): %d\n", reason, count)
	}
}

// run executes one full preprocessing pass. Split from main so tests can
// drive it with their own configuration and context.
func run(ctx context.Context, cfg *config.Config) (*pipeline.Summary, error) {
	return pipeline.New(cfg).Run(ctx)
}
