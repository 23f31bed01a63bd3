package domain

import "errors"

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRequest signals malformed search parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrCatalogUnavailable signals that no catalog snapshot is loaded.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)
