package repository

import "errors"

var (
	// ErrNotFound is returned when no document matches the query.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateKey is returned on unique-index violations.
	ErrDuplicateKey = errors.New("repository: duplicate key")
)
