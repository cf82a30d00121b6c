package sync

import "errors"

var (
	// ErrRemoteSynchronizationFailed цикл синхронизации не удался, незафиксированные изменения отброшены
	ErrRemoteSynchronizationFailed = errors.New("remote synchronization failed")

	// ErrStaleKnowledge удаленная сторона уже знает больше, чем базовый вектор устройства.
	// Требуется повторный pull перед push.
	ErrStaleKnowledge = errors.New("stale knowledge: remote has newer revisions")

	// ErrSynchronizationInProgress синхронизация этого хранилища уже выполняется
	ErrSynchronizationInProgress = errors.New("synchronization already in progress")
)
