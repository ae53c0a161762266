package sessions

import (
	"errors"
	"net/http"
)

// Domain errors for session operations.
var (
	ErrNotFound  = errors.New("session not found")
	ErrDuplicate = errors.New("session already exists")
	ErrEmptyPlan = errors.New("session plan has no recommendations")
)

// MapHTTPStatus maps session domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrEmptyPlan) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
