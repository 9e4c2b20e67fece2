// Command seed loads a YAML fixture of articles, links, and references.
// Each record is inserted on its own; rejected records are reported and
// skipped.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"wiki-content/internal/config"
	"wiki-content/internal/fixture"
	"wiki-content/internal/infrastructure/database"
	"wiki-content/internal/logger"
	"wiki-content/internal/metrics"
)

func main() {
	path := flag.String("file", "", "path to the YAML fixture (required)")
	quiet := flag.Bool("quiet", false, "do not print stored entities")
	flag.Parse()

	if *path == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Configure(cfg.LogLevel)

	f, err := os.Open(*path)
	if err != nil {
		logger.Fatal("Failed to open fixture",
			slog.String("path", *path),
			slog.String("error", err.Error()))
	}
	defer f.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DatabaseURL())
	if err != nil {
		logger.Fatal("Failed to connect to database",
			slog.String("error", err.Error()))
	}
	defer db.Close()

	if err := database.HealthCheck(ctx, db); err != nil {
		logger.Fatal("Database health check failed",
			slog.String("error", err.Error()))
	}

	if err := metrics.RegisterDBStats(db, cfg.DBName); err != nil {
		logger.Warn("Failed to register database metrics",
			slog.String("error", err.Error()))
	}

	loader := fixture.NewLoader(os.Stdout)
	if *quiet {
		loader = fixture.NewLoader(nil)
	}

	result, loadErr := loader.Load(ctx, db, f)
	if result != nil {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			logger.Error("Failed to encode load result",
				slog.String("error", err.Error()))
		}
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("Failed to write metrics textfile",
				slog.String("path", cfg.MetricsTextfile),
				slog.String("error", err.Error()))
		}
	}

	if loadErr != nil {
		logger.ErrorContext(ctx, "Fixture load aborted",
			slog.String("error", loadErr.Error()))
		db.Close()
		os.Exit(1)
	}
	if result.FailureCount > 0 {
		db.Close()
		os.Exit(1)
	}
}
