package repository

import (
	"context"
	"database/sql"
)

// DBTX is the caller-owned database handle every operation borrows.
// *sql.DB, *sql.Conn and *sql.Tx all satisfy it.
type DBTX interface {
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Result holds the entities a find-by-field lookup matched.
// Lookups return a nil *Result when no row matched.
type Result[T any] struct {
	items []*T
}

func newResult[T any](items []*T) *Result[T] {
	if len(items) == 0 {
		return nil
	}
	return &Result[T]{items: items}
}

// Len returns the number of matched entities. It is safe on a nil Result.
func (r *Result[T]) Len() int {
	if r == nil {
		return 0
	}
	return len(r.items)
}

// Single returns the entity when exactly one row matched.
func (r *Result[T]) Single() (*T, bool) {
	if r.Len() != 1 {
		return nil, false
	}
	return r.items[0], true
}

// All returns every matched entity in identity order.
func (r *Result[T]) All() []*T {
	if r == nil {
		return nil
	}
	out := make([]*T, len(r.items))
	copy(out, r.items)
	return out
}
