package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"wiki-content/internal/logger"
)

// migrateLog routes golang-migrate progress messages to the debug level.
type migrateLog struct{}

func (migrateLog) Printf(format string, v ...interface{}) {
	logger.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (migrateLog) Verbose() bool {
	return logger.GetLogger().Enabled(context.Background(), slog.LevelDebug)
}
