package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"reflect"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"wiki-content/internal/domain"
	"wiki-content/internal/logger"
	"wiki-content/internal/metrics"
	"wiki-content/internal/validator"
)

// SQLSTATE codes given their own messages.
const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

var (
	entityValidator = validator.NewValidator()
	likeEscaper     = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
)

// statement is one fixed parameterized template.
type statement struct {
	entity    string
	operation string
	query     string
}

// exec issues a statement that returns no rows.
func (s statement) exec(ctx context.Context, db DBTX, args ...any) (err error) {
	defer s.observe(ctx, metrics.NewTimer(), &err)

	stmt, err := s.prepare(ctx, db)
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	if _, err := stmt.ExecContext(ctx, args...); err != nil {
		return executionError(err)
	}
	return nil
}

// queryID issues an INSERT ... RETURNING and scans the generated key.
func (s statement) queryID(ctx context.Context, db DBTX, args ...any) (id int64, err error) {
	defer s.observe(ctx, metrics.NewTimer(), &err)

	stmt, err := s.prepare(ctx, db)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()

	if err := stmt.QueryRowContext(ctx, args...).Scan(&id); err != nil {
		return 0, executionError(err)
	}
	return id, nil
}

func (s statement) prepare(ctx context.Context, db DBTX) (*sql.Stmt, error) {
	stmt, err := db.PrepareContext(ctx, s.query)
	if err != nil {
		return nil, domain.Persistence("unable to prepare statement", err)
	}
	return stmt, nil
}

func (s statement) observe(ctx context.Context, timer *metrics.Timer, err *error) {
	result := metrics.ResultSuccess
	log := logger.WithEntity(s.entity, s.operation)
	if *err != nil {
		result = metrics.ResultError
		log.ErrorContext(ctx, "store operation failed", slog.String("error", (*err).Error()))
	} else {
		log.DebugContext(ctx, "store operation finished")
	}
	metrics.ObserveOperation(s.entity, s.operation, result, timer)
}

// queryAll issues a SELECT and maps every row through scan.
// The statement and its rows are closed before returning.
func queryAll[T any](ctx context.Context, db DBTX, s statement, scan func(*sql.Rows) (*T, error), args ...any) (items []*T, err error) {
	defer s.observe(ctx, metrics.NewTimer(), &err)

	stmt, err := s.prepare(ctx, db)
	if err != nil {
		return nil, err
	}
	defer func() { _ = stmt.Close() }()

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, executionError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Persistence("unable to get result set", err)
	}

	metrics.ObserveRows(s.entity, s.operation, len(items))
	return items, nil
}

// first returns the only item of a primary-key lookup, or nil.
func first[T any](items []*T) *T {
	if len(items) == 0 {
		return nil
	}
	return items[0]
}

func executionError(err error) error {
	msg := "unable to execute statement"
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolation:
			msg = "referenced row does not exist"
		case uniqueViolation:
			msg = "row already exists"
		}
	}
	return domain.Persistence(msg, err)
}

// checkHandle rejects nil handles, including typed nils such as (*sql.DB)(nil).
func checkHandle(db DBTX) error {
	if db == nil {
		return domain.Persistence("input is not a database connection", nil)
	}
	if v := reflect.ValueOf(db); v.Kind() == reflect.Pointer && v.IsNil() {
		return domain.Persistence("input is not a database connection", nil)
	}
	return nil
}

func missingEntity(entity string) error {
	return domain.InvalidArgument(entity + " is nil")
}

func invalidEntity(entity string, err error) error {
	metrics.ObserveValidationFailure(entity, domain.KindInvalidArgument.String())
	return &domain.Error{Kind: domain.KindInvalidArgument, Message: "invalid " + entity, Err: err}
}

// containsPattern sanitizes a search value into a LIKE pattern matching it
// anywhere. Wildcards in the value match literally.
func containsPattern(field, raw string) (string, error) {
	v := domain.SanitizeText(raw)
	if v == "" {
		return "", domain.InvalidArgument(field + " search value is empty or insecure")
	}
	return "%" + likeEscaper.Replace(v) + "%", nil
}

func requireID(field string, id int64) error {
	if id <= 0 {
		return domain.OutOfRange("the " + field + " is not positive")
	}
	return nil
}
