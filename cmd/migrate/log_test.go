package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"wiki-content/internal/logger"
)

func TestMigrateLog(t *testing.T) {
	previous := logger.GetLogger()
	t.Cleanup(func() { logger.SetLogger(previous) })

	t.Run("debug level", func(t *testing.T) {
		var buf bytes.Buffer
		logger.SetLogger(logger.New(&buf, "debug"))

		var l migrateLog
		assert.True(t, l.Verbose())

		l.Printf("Finished 1/u create_content_tables (read 1ms, ran 2ms)\n")
		assert.Contains(t, buf.String(), `"level":"DEBUG"`)
		assert.Contains(t, buf.String(), "create_content_tables")
	})

	t.Run("info level", func(t *testing.T) {
		var buf bytes.Buffer
		logger.SetLogger(logger.New(&buf, "info"))

		var l migrateLog
		assert.False(t, l.Verbose())

		l.Printf("Start buffering %d/u %s", 1, "create_content_tables")
		assert.Empty(t, buf.String())
	})
}
