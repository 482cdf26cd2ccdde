package httpstore

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/pkg/api"
)

var (
	_ session.TokenRefresher = (*Client)(nil)
	_ session.SessionChecker = (*Client)(nil)
	_ session.Revoker        = (*Client)(nil)
)

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/health", nil, &resp, nil, false); err != nil {
		return nil, fmt.Errorf("health request failed: %w", err)
	}
	return &resp, nil
}

// Register регистрирует нового пользователя
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.RegisterResponse, error) {
	var resp api.RegisterResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", req, &resp, nil, false); err != nil {
		return nil, fmt.Errorf("register request failed: %w", err)
	}
	return &resp, nil
}

// Login выполняет аутентификацию и возвращает пару токенов и email
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*session.TokenSet, string, error) {
	var resp api.TokenResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", req, &resp, nil, false); err != nil {
		return nil, "", fmt.Errorf("login request failed: %w", err)
	}
	return tokenSetFrom(resp), resp.Email, nil
}

// Refresh обменивает refresh token на новую пару (ротация на сервере)
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*session.TokenSet, error) {
	var resp api.TokenResponse
	headers := map[string]string{"Authorization": "Bearer " + refreshToken}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/refresh", nil, &resp, headers, false); err != nil {
		return nil, fmt.Errorf("refresh request failed: %w", err)
	}
	return tokenSetFrom(resp), nil
}

// CreateSession выпускает непрозрачный токен сессии для текущего пользователя
func (c *Client) CreateSession(ctx context.Context) (*api.SessionResponse, error) {
	var resp api.SessionResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/session", nil, &resp, nil, true); err != nil {
		return nil, fmt.Errorf("session request failed: %w", err)
	}
	return &resp, nil
}

// SessionStatus проверяет непрозрачный токен сессии
func (c *Client) SessionStatus(ctx context.Context, sessionToken string) (*session.BackendStatus, error) {
	var resp api.AuthStatusResponse
	headers := map[string]string{session.SessionTokenHeader: sessionToken}
	err := c.doJSON(ctx, http.MethodGet, "/api/v1/auth/status", nil, &resp, headers, false)
	if IsStatus(err, http.StatusUnauthorized) {
		return &session.BackendStatus{Authenticated: false}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("status request failed: %w", err)
	}
	return &session.BackendStatus{Authenticated: resp.Authenticated, Email: resp.Email}, nil
}

// Revoke завершает сессию на сервере
func (c *Client) Revoke(ctx context.Context, cred session.Credential) error {
	path := "/api/v1/auth/logout"
	if cred.Kind == models.SessionBackend {
		path = "/api/v1/auth/signout"
	}

	headers := map[string]string{cred.HeaderName(): cred.HeaderValue()}
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil, headers, false); err != nil {
		return fmt.Errorf("revoke request failed: %w", err)
	}
	return nil
}

func tokenSetFrom(resp api.TokenResponse) *session.TokenSet {
	ts := &session.TokenSet{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
	}
	if resp.ExpiresIn > 0 {
		ts.ExpiresAt = time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	}
	return ts
}
