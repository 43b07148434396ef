package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/alexwday/aegis-calendar-events-refresh/internal/config"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/csvio"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/database"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/mapper"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/pipeline"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/registry"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/timezone"
	"github.com/alexwday/aegis-calendar-events-refresh/internal/version"
)

func main() {
	configPath := flag.String("config", "configs/refresh.yaml", "path to config file")
	dryRun := flag.Bool("dry-run", false, "validate and connect but do not modify the database")
	skipUpload := flag.Bool("skip-upload", false, "skip the database upload stage entirely")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	logger.Info("starting calendar events refresh",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Resolve the configured collaborators: registry, mapping, timezone.
	// Any failure here is fatal before a single record is touched.
	reg, err := registry.LoadFile(cfg.Registry.Path)
	if err != nil {
		logger.Error("failed to load institution registry", "error", err)
		os.Exit(1)
	}
	logger.Info("institution registry loaded",
		"path", cfg.Registry.Path,
		"institutions", reg.Len(),
	)

	mapping := mapper.Default()
	if cfg.Mapping.Path != "" {
		mapping, err = mapper.LoadFile(cfg.Mapping.Path)
		if err != nil {
			logger.Error("failed to load field mapping", "error", err)
			os.Exit(1)
		}
	}

	tz, err := timezone.New(cfg.Timezone.Zone)
	if err != nil {
		logger.Error("failed to resolve timezone", "error", err)
		os.Exit(1)
	}

	// Read the raw batch
	raws, err := csvio.ReadRaw(cfg.Source.Path)
	if err != nil {
		logger.Error("failed to read raw events", "error", err)
		os.Exit(1)
	}
	logger.Info("raw events loaded",
		"path", cfg.Source.Path,
		"count", len(raws),
		"timezone", cfg.Timezone.Zone,
	)

	// Run the transform
	p := pipeline.New(mapping, reg, tz, cfg.Policy, logger)
	events, summary, err := p.Run(raws)
	if err != nil {
		logger.Error("pipeline failed", "stage", p.Stage().String(), "error", err)
		os.Exit(1)
	}

	if len(summary.SkippedExamples) > 0 {
		logger.Warn("skipped records",
			"count", summary.Skipped,
			"examples", summary.SkippedExamples,
		)
	}
	if len(summary.UnmatchedTickers) > 0 {
		logger.Warn("unmatched tickers",
			"count", summary.Unmatched,
			"tickers", summary.UnmatchedTickers,
		)
	}

	// Write the canonical batch
	if err := csvio.WriteCanonical(cfg.Output.Path, events); err != nil {
		logger.Error("failed to write canonical events", "error", err)
		os.Exit(1)
	}
	logger.Info("canonical events written",
		"path", cfg.Output.Path,
		"count", len(events),
	)

	if *skipUpload || !cfg.Upload.Enabled {
		logger.Info("upload skipped")
		return
	}

	// Upload stage
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger.Info("connecting to database",
		"host", cfg.Database.Host,
		"port", cfg.Database.Port,
		"database", cfg.Database.Name,
		"table", cfg.Database.Table,
	)
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	uploader, err := database.NewUploader(pool, cfg.Database.Table, logger)
	if err != nil {
		logger.Error("failed to create uploader", "error", err)
		os.Exit(1)
	}

	if *dryRun {
		if err := uploader.DryRun(ctx, events); err != nil {
			logger.Error("dry run failed", "error", err)
			os.Exit(1)
		}
		return
	}

	deleted, inserted, err := uploader.Refresh(ctx, events)
	if err != nil {
		logger.Error("upload failed", "error", err)
		os.Exit(1)
	}

	logger.Info("refresh complete",
		"run_id", summary.RunID,
		"deleted", deleted,
		"inserted", inserted,
	)
}
