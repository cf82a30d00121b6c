package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrStaleKnowledge последняя ревизия журнала не предшествует знаниям устройства,
	// устройство должно сначала получить недостающие ревизии
	ErrStaleKnowledge = errors.New("device knowledge is stale")
)
