package session

import (
	"context"
	"errors"
	"time"

	"github.com/iudanet/chatsync/internal/models"
)

//go:generate moq -out interface_mock.go . TokenRefresher SessionChecker Revoker

// ErrAuthRequired возвращается, когда для доступа к удаленному хранилищу
// нужен повторный вход пользователя.
var ErrAuthRequired = errors.New("authentication required")

// ExpirySkew токен считается истекшим за минуту до заявленного срока.
const ExpirySkew = 60 * time.Second

// SessionTokenHeader заголовок для непрозрачного токена сессии сервера
const SessionTokenHeader = "X-Session-Token"

// TokenSet пара токенов, полученная при входе или обновлении
type TokenSet struct {
	ExpiresAt    time.Time
	AccessToken  string
	RefreshToken string
}

// BackendStatus ответ сервера о состоянии сессии
type BackendStatus struct {
	Email         string
	Authenticated bool
}

// TokenRefresher обменивает refresh token на новую пару
type TokenRefresher interface {
	Refresh(ctx context.Context, refreshToken string) (*TokenSet, error)
}

// SessionChecker проверяет непрозрачную сессию на сервере
type SessionChecker interface {
	SessionStatus(ctx context.Context, sessionToken string) (*BackendStatus, error)
}

// Revoker отзывает учетные данные на сервере при выходе
type Revoker interface {
	Revoke(ctx context.Context, cred Credential) error
}

// StatusUpdater часть хранилища статуса, которую меняет менеджер сессии
type StatusUpdater interface {
	Update(ctx context.Context, patch models.StatusPatch) (models.SyncStatus, error)
}

// Credential действующие учетные данные для одного запроса
type Credential struct {
	ExpiresAt time.Time
	Kind      models.SessionKind
	Token     string
}

// HeaderName имя HTTP заголовка для учетных данных
func (c Credential) HeaderName() string {
	if c.Kind == models.SessionBackend {
		return SessionTokenHeader
	}
	return "Authorization"
}

// HeaderValue значение HTTP заголовка для учетных данных
func (c Credential) HeaderValue() string {
	if c.Kind == models.SessionBackend {
		return c.Token
	}
	return "Bearer " + c.Token
}
