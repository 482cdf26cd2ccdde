package storage

import "errors"

// Common client storage errors
var (
	// ErrNotFound indicates that entity was not found
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateSyncID indicates that an entity with the same syncId already exists
	ErrDuplicateSyncID = errors.New("entity with this syncId already exists")

	// ErrMissingSyncID indicates an attempt to store an entity without syncId
	ErrMissingSyncID = errors.New("entity has no syncId")

	// ErrSessionNotFound indicates that no session is stored
	ErrSessionNotFound = errors.New("session not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
