package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const codeUniqueViolation = "23505"

// MapError converts sql.ErrNoRows to notFound and unique violations to
// duplicate. Any other error, nil included, passes through.
func MapError(err, notFound, duplicate error) error {
	var pgErr *pgconn.PgError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return notFound
	case errors.As(err, &pgErr) && pgErr.Code == codeUniqueViolation:
		return duplicate
	default:
		return err
	}
}
