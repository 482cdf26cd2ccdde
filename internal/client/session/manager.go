package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

// Options необязательные зависимости менеджера
type Options struct {
	Refresher TokenRefresher
	Checker   SessionChecker
	Revoker   Revoker
	Now       func() time.Time
}

// Manager владеет учетными данными удаленного хранилища. Создается явно
// и передается потребителям, глобального состояния нет.
type Manager struct {
	store          storage.SessionStorage
	status         StatusUpdater
	refresher      TokenRefresher
	checker        SessionChecker
	revoker        Revoker
	now            func() time.Time
	logger         *slog.Logger
	cached         *models.Session
	onAuthRequired []func()
	onSignOut      []func()
	mu             sync.Mutex
}

// NewManager создает менеджер сессии
func NewManager(store storage.SessionStorage, status StatusUpdater, logger *slog.Logger, opts Options) *Manager {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Manager{
		store:     store,
		status:    status,
		refresher: opts.Refresher,
		checker:   opts.Checker,
		revoker:   opts.Revoker,
		now:       now,
		logger:    logger,
	}
}

// OnAuthRequired регистрирует колбэк, вызываемый когда сессия стала недействительной.
// Колбэки выполняются под мьютексом менеджера и не должны вызывать его методы.
func (m *Manager) OnAuthRequired(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onAuthRequired = append(m.onAuthRequired, fn)
}

// OnSignOut регистрирует колбэк выхода, например для сброса кэшей хранилища
func (m *Manager) OnSignOut(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onSignOut = append(m.onSignOut, fn)
}

// EstablishOAuth сохраняет пару токенов после успешного входа
func (m *Manager) EstablishOAuth(ctx context.Context, tokens *TokenSet, email string) error {
	if tokens == nil || tokens.AccessToken == "" {
		return errors.New("empty access token")
	}
	return m.establish(ctx, &models.Session{
		Kind:         models.SessionOAuth,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresAt:    tokens.ExpiresAt,
		Email:        email,
	})
}

// CompleteBackendAuth проверяет токен сессии на сервере и сохраняет его
func (m *Manager) CompleteBackendAuth(ctx context.Context, sessionToken string) error {
	if m.checker == nil {
		return errors.New("backend session checker is not configured")
	}
	st, err := m.checker.SessionStatus(ctx, sessionToken)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if !st.Authenticated {
		return ErrAuthRequired
	}
	return m.establish(ctx, &models.Session{
		Kind:        models.SessionBackend,
		AccessToken: sessionToken,
		Email:       st.Email,
	})
}

func (m *Manager) establish(ctx context.Context, session *models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.SaveSession(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	m.cached = session

	if _, err := m.status.Update(ctx, models.StatusPatch{
		Authenticated: models.Ptr(true),
		Email:         models.Ptr(session.Email),
		Error:         models.Ptr(""),
	}); err != nil {
		return err
	}

	m.logger.Info("Session established", "kind", session.Kind, "email", session.Email)
	return nil
}

// GetValidCredential возвращает действующие учетные данные, при необходимости
// обновляя токен. Если обновить не удалось, сессия удаляется и возвращается
// ErrAuthRequired.
func (m *Manager) GetValidCredential(ctx context.Context) (Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.load(ctx)
	if err != nil {
		return Credential{}, err
	}

	if session.Kind == models.SessionBackend {
		return Credential{Kind: models.SessionBackend, Token: session.AccessToken}, nil
	}

	if session.ExpiresAt.IsZero() || session.ExpiresAt.Add(-ExpirySkew).After(m.now()) {
		return credentialFrom(session), nil
	}

	// Токен истек или скоро истечет
	if m.refresher == nil || session.RefreshToken == "" {
		m.logger.Warn("Access token expired and cannot be refreshed")
		return Credential{}, m.invalidateLocked(ctx, "access token expired")
	}

	tokens, err := m.refresher.Refresh(ctx, session.RefreshToken)
	if err != nil {
		m.logger.Warn("Token refresh failed", "error", err)
		return Credential{}, m.invalidateLocked(ctx, "token refresh failed")
	}

	refreshed := *session
	refreshed.AccessToken = tokens.AccessToken
	refreshed.ExpiresAt = tokens.ExpiresAt
	if tokens.RefreshToken != "" {
		refreshed.RefreshToken = tokens.RefreshToken
	}
	if err := m.store.SaveSession(ctx, &refreshed); err != nil {
		return Credential{}, fmt.Errorf("failed to save refreshed session: %w", err)
	}
	m.cached = &refreshed

	m.logger.Debug("Access token refreshed", "expires_at", refreshed.ExpiresAt)
	return credentialFrom(&refreshed), nil
}

// Validate проверяет сессию на сервере. Для OAuth проверяется только срок токена.
func (m *Manager) Validate(ctx context.Context) (bool, error) {
	cred, err := m.GetValidCredential(ctx)
	if errors.Is(err, ErrAuthRequired) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if cred.Kind != models.SessionBackend || m.checker == nil {
		return true, nil
	}

	st, err := m.checker.SessionStatus(ctx, cred.Token)
	if err != nil {
		return false, fmt.Errorf("failed to check session: %w", err)
	}
	if !st.Authenticated {
		return false, m.Invalidate(ctx, "session rejected by server")
	}
	return true, nil
}

// IsAuthenticated сообщает, есть ли сохраненная сессия
func (m *Manager) IsAuthenticated(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, err := m.load(ctx)
	if errors.Is(err, ErrAuthRequired) {
		return false, nil
	}
	return err == nil, err
}

// Email возвращает адрес пользователя текущей сессии
func (m *Manager) Email(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.load(ctx)
	if err != nil {
		return "", err
	}
	return session.Email, nil
}

// Invalidate удаляет сессию после отказа сервера (401) и помечает
// пользователя как неаутентифицированного. Всегда возвращает ErrAuthRequired.
func (m *Manager) Invalidate(ctx context.Context, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.invalidateLocked(ctx, reason)
}

func (m *Manager) invalidateLocked(ctx context.Context, reason string) error {
	m.cached = nil
	if err := m.store.DeleteSession(ctx); err != nil {
		m.logger.Error("Failed to delete session", "error", err)
	}

	if _, err := m.status.Update(ctx, models.StatusPatch{
		Authenticated: models.Ptr(false),
		Error:         models.Ptr("Authentication required: " + reason),
	}); err != nil {
		m.logger.Error("Failed to update sync status", "error", err)
	}

	m.logger.Info("Session invalidated", "reason", reason)
	for _, fn := range m.onAuthRequired {
		fn()
	}
	return ErrAuthRequired
}

// SignOut отзывает учетные данные на сервере (ошибки игнорируются),
// удаляет локальную сессию и выключает синхронизацию.
func (m *Manager) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, err := m.load(ctx)
	if err != nil && !errors.Is(err, ErrAuthRequired) {
		return err
	}

	if session != nil && m.revoker != nil {
		if err := m.revoker.Revoke(ctx, credentialFrom(session)); err != nil {
			// Выходим локально даже если сервер недоступен
			m.logger.Warn("Failed to revoke session on server", "error", err)
		}
	}

	m.cached = nil
	if err := m.store.DeleteSession(ctx); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	if _, err := m.status.Update(ctx, models.StatusPatch{
		Authenticated: models.Ptr(false),
		Enabled:       models.Ptr(false),
		Email:         models.Ptr(""),
		Error:         models.Ptr(""),
	}); err != nil {
		return err
	}

	for _, fn := range m.onSignOut {
		fn()
	}

	m.logger.Info("Signed out")
	return nil
}

// load возвращает сессию из кэша или хранилища. Вызывается под мьютексом.
func (m *Manager) load(ctx context.Context) (*models.Session, error) {
	if m.cached != nil {
		return m.cached, nil
	}

	session, err := m.store.GetSession(ctx)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return nil, ErrAuthRequired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	m.cached = session
	return session, nil
}

func credentialFrom(session *models.Session) Credential {
	return Credential{
		Kind:      session.Kind,
		Token:     session.AccessToken,
		ExpiresAt: session.ExpiresAt,
	}
}
