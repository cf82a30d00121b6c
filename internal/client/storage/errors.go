package storage

import "errors"

// Common client storage errors
var (
	// ErrAuthNotFound indicates that no authentication data exists
	ErrAuthNotFound = errors.New("authentication data not found")

	// ErrVersionNotFound indicates that entity version was not found
	ErrVersionNotFound = errors.New("version not found")

	// ErrClockNotFound indicates that the store clock was never initialized
	ErrClockNotFound = errors.New("store clock not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
