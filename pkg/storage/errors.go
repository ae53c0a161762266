package storage

import "errors"

var (
	ErrNotFound = errors.New("blob not found")
	ErrEmptyKey = errors.New("storage key must not be empty")
	// ErrInvalidKey rejects keys containing a ".." segment.
	ErrInvalidKey = errors.New("storage key contains invalid path segment")
	// ErrDisabled means neither a connection string nor a service URL is set.
	ErrDisabled = errors.New("storage not configured")
)
