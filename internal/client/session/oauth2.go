package session

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
)

// OAuth2Refresher обновляет токены через стандартный OAuth2 token endpoint
type OAuth2Refresher struct {
	config *oauth2.Config
}

// NewOAuth2Refresher создает refresher для заданной конфигурации клиента
func NewOAuth2Refresher(config *oauth2.Config) *OAuth2Refresher {
	return &OAuth2Refresher{config: config}
}

// Refresh обменивает refresh token на новую пару
func (r *OAuth2Refresher) Refresh(ctx context.Context, refreshToken string) (*TokenSet, error) {
	// Токен без access token считается недействительным, поэтому
	// TokenSource сразу идет за новым
	tok, err := r.config.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken}).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh oauth2 token: %w", err)
	}
	return tokenSetFrom(tok), nil
}

// AuthCodeURL возвращает адрес страницы согласия для offline доступа
func (r *OAuth2Refresher) AuthCodeURL(state string) string {
	return r.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange обменивает код авторизации на пару токенов
func (r *OAuth2Refresher) Exchange(ctx context.Context, code string) (*TokenSet, error) {
	tok, err := r.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return tokenSetFrom(tok), nil
}

func tokenSetFrom(tok *oauth2.Token) *TokenSet {
	return &TokenSet{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
}

// TokenSource адаптирует менеджер к oauth2.TokenSource, чтобы HTTP клиенты
// Google API получали токен через общий механизм обновления.
func (m *Manager) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &managerTokenSource{ctx: ctx, manager: m}
}

type managerTokenSource struct {
	ctx     context.Context
	manager *Manager
}

func (s *managerTokenSource) Token() (*oauth2.Token, error) {
	cred, err := s.manager.GetValidCredential(s.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: cred.Token,
		TokenType:   "Bearer",
		Expiry:      cred.ExpiresAt,
	}, nil
}
