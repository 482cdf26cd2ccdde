package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that user with this username already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTokenNotFound indicates that refresh token was not found
	ErrTokenNotFound = errors.New("refresh token not found")

	// ErrSessionNotFound indicates that session token is unknown or revoked
	ErrSessionNotFound = errors.New("session not found")

	// ErrDocumentNotFound indicates that document does not exist
	ErrDocumentNotFound = errors.New("document not found")
)
