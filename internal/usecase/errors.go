package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrNoData means there was nothing to aggregate: no documents, or none readable.
	ErrNoData = errors.New("no match data")
)
