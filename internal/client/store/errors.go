package store

import "errors"

// Ошибки локального хранилища
var (
	// ErrEntityNotFound запись с таким типом и id неизвестна
	ErrEntityNotFound = errors.New("entity not found")

	// ErrDuplicateID один и тот же id встречается дважды в одном вызове
	ErrDuplicateID = errors.New("duplicate entity id in batch")

	// ErrAlreadyExists запись с таким id или UUID версии уже есть в хранилище
	ErrAlreadyExists = errors.New("entity already exists")

	// ErrEntityDeleted запись удалена и больше не может изменяться
	ErrEntityDeleted = errors.New("entity is deleted")

	// ErrInvalidResolution разрешение конфликта не входит в набор конфликтующих версий
	ErrInvalidResolution = errors.New("conflict resolution is not one of the conflicting versions")
)
