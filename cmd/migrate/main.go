// Command migrate applies or rolls back the schema in MIGRATIONS_DIR.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"wiki-content/internal/config"
	"wiki-content/internal/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [up|down|version]\n", os.Args[0])
		flag.PrintDefaults()
	}
	steps := flag.Int("steps", 0, "number of migrations to apply; 0 applies all")
	flag.Parse()

	direction := "up"
	if flag.NArg() > 0 {
		direction = flag.Arg(0)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.Configure(cfg.LogLevel)

	dir, err := filepath.Abs(cfg.MigrationsDir)
	if err != nil {
		logger.Fatal("Invalid migrations directory",
			slog.String("dir", cfg.MigrationsDir),
			slog.String("error", err.Error()))
	}

	m, err := migrate.New("file://"+filepath.ToSlash(dir), cfg.DatabaseURL())
	if err != nil {
		logger.Fatal("Failed to create migrate instance",
			slog.String("error", err.Error()))
	}
	defer m.Close()
	m.Log = migrateLog{}

	switch direction {
	case "up":
		if *steps > 0 {
			err = m.Steps(*steps)
		} else {
			err = m.Up()
		}
	case "down":
		if *steps > 0 {
			err = m.Steps(-*steps)
		} else {
			err = m.Down()
		}
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Migration failed",
			slog.String("direction", direction),
			slog.String("error", err.Error()))
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		logger.Fatal("Failed to read schema version",
			slog.String("error", err.Error()))
	}
	logger.Info("Schema migrated",
		slog.String("direction", direction),
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty))
}
