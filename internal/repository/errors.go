package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity or key doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrQuotaExceeded is returned when a write would exceed the storage capacity
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)
