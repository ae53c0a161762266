package repository_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/registrar/pkg/repository"
)

var (
	errNoSession  = errors.New("session not found")
	errDuplicated = errors.New("session already exists")
)

func TestMapError(t *testing.T) {
	fkViolation := &pgconn.PgError{Code: "23503"}
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNoSession},
		{"wrapped no rows", fmt.Errorf("scan session: %w", sql.ErrNoRows), errNoSession},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicated},
		{"other pg error", fkViolation, fkViolation},
		{"unrelated", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repository.MapError(tt.in, errNoSession, errDuplicated)
			if got != tt.want {
				t.Errorf("MapError = %v, want %v", got, tt.want)
			}
		})
	}
}
