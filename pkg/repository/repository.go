// Package repository holds the generic query helpers the domain
// repositories build on: typed scanning, transactions and paged reads.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/registrar/pkg/pagination"
	"github.com/JaimeStill/registrar/pkg/query"
)

// Querier is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Executor is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type Executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Scanner is the common surface of *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

type ScanFunc[T any] func(Scanner) (T, error)

// snapshot keeps a page consistent with its total count.
var snapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// WithTx runs fn in a read-write transaction, committing when fn succeeds.
func WithTx[T any](ctx context.Context, db *sql.DB, fn func(*sql.Tx) (T, error)) (T, error) {
	return inTx(ctx, db, nil, fn)
}

func inTx[T any](ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(*sql.Tx) (T, error)) (result T, err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return result, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if result, err = fn(tx); err != nil {
		var zero T
		return zero, err
	}
	return result, tx.Commit()
}

func QueryOne[T any](ctx context.Context, q Querier, stmt string, args []any, scan ScanFunc[T]) (T, error) {
	return scan(q.QueryRowContext(ctx, stmt, args...))
}

// QueryMany returns an empty, non-nil slice when no rows match.
func QueryMany[T any](ctx context.Context, q Querier, stmt string, args []any, scan ScanFunc[T]) ([]T, error) {
	rows, err := q.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []T{}
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// QueryPage counts the rows matching qb and reads the requested page inside
// one read-only snapshot. page must already be normalized.
func QueryPage[T any](
	ctx context.Context,
	db *sql.DB,
	qb *query.Builder,
	page pagination.PageRequest,
	scan ScanFunc[T],
) (*pagination.PageResult[T], error) {
	return inTx(ctx, db, snapshot, func(tx *sql.Tx) (*pagination.PageResult[T], error) {
		countSQL, countArgs := qb.BuildCount()

		var total int
		if err := tx.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
			return nil, fmt.Errorf("count: %w", err)
		}

		pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
		data, err := QueryMany(ctx, tx, pageSQL, pageArgs, scan)
		if err != nil {
			return nil, fmt.Errorf("page: %w", err)
		}

		result := pagination.NewPageResult(data, total, page.Page, page.PageSize)
		return &result, nil
	})
}

// ExecExpectOne reports sql.ErrNoRows when stmt affects no rows.
func ExecExpectOne(ctx context.Context, e Executor, stmt string, args ...any) error {
	res, err := e.ExecContext(ctx, stmt, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
