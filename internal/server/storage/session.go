package storage

import (
	"context"
	"time"

	"github.com/iudanet/chatsync/internal/models"
)

// SessionStorage хранит непрозрачные сессии клиентов
type SessionStorage interface {
	// CreateSession сохраняет новую сессию
	CreateSession(ctx context.Context, session *models.AccountSession) error

	// GetSession возвращает сессию по токену, ErrSessionNotFound если ее нет
	GetSession(ctx context.Context, token string) (*models.AccountSession, error)

	// DeleteSession удаляет сессию, ErrSessionNotFound если ее нет
	DeleteSession(ctx context.Context, token string) error

	// DeleteExpiredSessions удаляет сессии, истекшие до now
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}
