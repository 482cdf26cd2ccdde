package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/chatsync/internal/server/handlers"
	"github.com/iudanet/chatsync/internal/server/storage"
)

// Authenticator проверяет учетные данные запроса.
// Принимается либо "Authorization: Bearer <jwt>", либо непрозрачный X-Session-Token.
type Authenticator struct {
	logger    *slog.Logger
	sessions  storage.SessionStorage
	now       func() time.Time
	jwtConfig handlers.JWTConfig
}

// NewAuthenticator создает Authenticator. sessions может быть nil, тогда X-Session-Token не принимается.
func NewAuthenticator(logger *slog.Logger, jwtConfig handlers.JWTConfig, sessions storage.SessionStorage) *Authenticator {
	return &Authenticator{
		logger:    logger,
		sessions:  sessions,
		now:       time.Now,
		jwtConfig: jwtConfig,
	}
}

// Middleware возвращает http middleware, кладущий пользователя в контекст
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, status, msg := a.authenticate(r)
		if status != http.StatusOK {
			writeError(w, msg, status)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (context.Context, int, string) {
	ctx := r.Context()

	if token := r.Header.Get(handlers.SessionTokenHeader); token != "" {
		return a.authenticateSession(ctx, token)
	}

	if r.Header.Get("Authorization") == "" {
		a.logger.DebugContext(ctx, "missing credentials", slog.String("path", r.URL.Path))
		return ctx, http.StatusUnauthorized, "missing token"
	}

	token, ok := handlers.BearerToken(r)
	if !ok {
		a.logger.WarnContext(ctx, "invalid Authorization header format")
		return ctx, http.StatusUnauthorized, "invalid token format"
	}

	claims, err := handlers.ValidateAccessToken(a.jwtConfig, token)
	if err != nil {
		a.logger.WarnContext(ctx, "invalid access token", slog.Any("error", err))
		return ctx, http.StatusUnauthorized, "invalid token"
	}

	a.logger.DebugContext(ctx, "user authenticated", slog.String("user_id", claims.UserID))
	return handlers.WithUser(ctx, claims.UserID, claims.Username), http.StatusOK, ""
}

func (a *Authenticator) authenticateSession(ctx context.Context, token string) (context.Context, int, string) {
	if a.sessions == nil {
		return ctx, http.StatusUnauthorized, "session tokens are not accepted"
	}

	session, err := a.sessions.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, storage.ErrSessionNotFound) {
			a.logger.WarnContext(ctx, "unknown session token")
			return ctx, http.StatusUnauthorized, "invalid session"
		}
		a.logger.ErrorContext(ctx, "failed to load session", slog.Any("error", err))
		return ctx, http.StatusInternalServerError, "internal server error"
	}

	if !a.now().Before(session.ExpiresAt) {
		a.logger.WarnContext(ctx, "session expired", slog.String("user_id", session.UserID))
		return ctx, http.StatusUnauthorized, "session expired"
	}

	ctx = handlers.WithUser(ctx, session.UserID, "")
	ctx = context.WithValue(ctx, handlers.SessionTokenKey, token)
	return ctx, http.StatusOK, ""
}
