// Package metrics provides Prometheus metrics for the persistence layer.
// Metrics are organized by concern: store operations, validation, and fixture loads.
// The driver commands are short-lived, so the registry is written to a
// node-exporter textfile instead of being served.
package metrics

import (
	"database/sql"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"wiki-content/internal/domain"
)

const (
	namespace = "wiki_content"
)

// Operation results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// unknownEntity replaces entity labels outside domain.ValidEntities.
const unknownEntity = "unknown"

var (
	// Store metrics - one observation per issued statement
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operations_total",
			Help:      "Total number of store operations by entity, operation, and result",
		},
		[]string{"entity", "operation", "result"},
	)

	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "operation_duration_seconds",
			Help:      "Store operation duration in seconds",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"entity", "operation"},
	)

	StoreRowsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "store",
			Name:      "rows_returned",
			Help:      "Rows returned by lookups",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 100},
		},
		[]string{"entity", "operation"},
	)

	// Validation metrics - entities rejected before any statement is issued
	ValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "validation",
			Name:      "failures_total",
			Help:      "Total number of rejected entities by entity and error kind",
		},
		[]string{"entity", "kind"},
	)

	// Fixture metrics - records processed by the seed command
	FixtureRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "fixture",
			Name:      "records_total",
			Help:      "Total number of fixture records by entity and result",
		},
		[]string{"entity", "result"},
	)
)

// ObserveOperation records one completed store operation timed by timer.
func ObserveOperation(entity, operation, result string, timer *Timer) {
	entity = entityLabel(entity)
	StoreOperationsTotal.WithLabelValues(entity, operation, result).Inc()
	timer.ObserveDuration(StoreOperationDuration.WithLabelValues(entity, operation))
}

// ObserveRows records how many rows a lookup returned.
func ObserveRows(entity, operation string, rows int) {
	StoreRowsReturned.WithLabelValues(entityLabel(entity), operation).Observe(float64(rows))
}

// ObserveValidationFailure records an entity rejected before reaching the database.
func ObserveValidationFailure(entity, kind string) {
	ValidationFailuresTotal.WithLabelValues(entityLabel(entity), kind).Inc()
}

// ObserveFixtureRecord records one fixture record outcome.
func ObserveFixtureRecord(entity, result string) {
	FixtureRecordsTotal.WithLabelValues(entityLabel(entity), result).Inc()
}

// entityLabel keeps label cardinality bounded to the known entities.
func entityLabel(entity string) string {
	if !domain.IsValidEntity(entity) {
		return unknownEntity
	}
	return entity
}

// RegisterDBStats exposes database/sql connection statistics for db.
// Registering the same name twice is not an error.
func RegisterDBStats(db *sql.DB, dbName string) error {
	err := prometheus.Register(collectors.NewDBStatsCollector(db, dbName))
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		return nil
	}
	return err
}

// WriteTextfile writes the default registry to path in textfile-collector format.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}

// Timer is a helper for measuring operation duration
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer starting now
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Seconds returns the elapsed time since the timer was created.
func (t *Timer) Seconds() float64 {
	return time.Since(t.start).Seconds()
}

// ObserveDuration records the elapsed time since the timer was created
func (t *Timer) ObserveDuration(observer prometheus.Observer) {
	observer.Observe(t.Seconds())
}
