package courses

import (
	"errors"
	"net/http"
)

// Domain errors for catalog operations.
var (
	ErrNotFound           = errors.New("course not found")
	ErrCatalogUnavailable = errors.New("course catalog unavailable")
	ErrInvalidID          = errors.New("invalid course id")
)

// MapHTTPStatus maps catalog domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidID) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrCatalogUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
