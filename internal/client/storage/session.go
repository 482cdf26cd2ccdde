package storage

import (
	"context"

	"github.com/iudanet/chatsync/internal/models"
)

// SessionStorage persists remote store credentials
type SessionStorage interface {
	// SaveSession stores the session, replacing the previous one
	SaveSession(ctx context.Context, session *models.Session) error

	// GetSession returns stored session, ErrSessionNotFound if absent
	GetSession(ctx context.Context) (*models.Session, error)

	// DeleteSession removes stored session, no error if absent
	DeleteSession(ctx context.Context) error
}
