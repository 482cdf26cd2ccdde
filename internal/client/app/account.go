package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/chatsync/internal/client/cli"
	"github.com/iudanet/chatsync/internal/client/remote/drive"
	"github.com/iudanet/chatsync/internal/client/remote/httpstore"
	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/pkg/api"
)

// tableWaitTimeout ожидание создания таблицы DynamoDB при первом входе
const tableWaitTimeout = 2 * time.Minute

var (
	_ cli.PasswordAccount = (*serverAccount)(nil)
	_ cli.CodeAccount     = (*driveAccount)(nil)
	_ cli.StaticAccount   = (*staticAccount)(nil)
)

// serverAccount вход на сервер документов
type serverAccount struct {
	client  *httpstore.Client
	manager *session.Manager
	logger  *slog.Logger
}

func (a *serverAccount) Register(ctx context.Context, username, password, email string) error {
	resp, err := a.client.Register(ctx, api.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	})
	if err != nil {
		return err
	}
	a.logger.Info("User registered", "user_id", resp.UserID)
	return nil
}

func (a *serverAccount) Login(ctx context.Context, username, password string) (string, error) {
	tokens, email, err := a.client.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		return "", err
	}
	if err := a.manager.EstablishOAuth(ctx, tokens, email); err != nil {
		return "", err
	}
	return email, nil
}

// StartSession меняет пару токенов на сессию сервера. Пару не отзываем:
// logout на сервере удаляет refresh токены всех устройств пользователя.
func (a *serverAccount) StartSession(ctx context.Context) (string, error) {
	resp, err := a.client.CreateSession(ctx)
	if err != nil {
		return "", err
	}
	if err := a.manager.CompleteBackendAuth(ctx, resp.SessionToken); err != nil {
		return "", err
	}
	return a.manager.Email(ctx)
}

func (a *serverAccount) Validate(ctx context.Context) (bool, error) {
	return a.manager.Validate(ctx)
}

func (a *serverAccount) SignOut(ctx context.Context) error {
	return a.manager.SignOut(ctx)
}

// driveAccount вход в Google Drive через страницу согласия
type driveAccount struct {
	oauth   *session.OAuth2Refresher
	manager *session.Manager
	store   *drive.Store
	logger  *slog.Logger
}

func (a *driveAccount) AuthCodeURL(state string) string {
	return a.oauth.AuthCodeURL(state)
}

// LoginWithCode сохраняет токены, затем спрашивает email у Drive
func (a *driveAccount) LoginWithCode(ctx context.Context, code string) (string, error) {
	tokens, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return "", err
	}
	if err := a.manager.EstablishOAuth(ctx, tokens, ""); err != nil {
		return "", err
	}

	email, err := a.store.AccountEmail(ctx)
	if err != nil {
		a.logger.Warn("Failed to read account email", "error", err)
		return "", nil
	}
	if err := a.manager.EstablishOAuth(ctx, tokens, email); err != nil {
		return "", err
	}
	return email, nil
}

func (a *driveAccount) Validate(ctx context.Context) (bool, error) {
	return a.manager.Validate(ctx)
}

func (a *driveAccount) SignOut(ctx context.Context) error {
	return a.manager.SignOut(ctx)
}

// staticAccount хранилища с ключами из конфигурации
type staticAccount struct {
	gate     *session.StaticGate
	prepare  func(ctx context.Context) error
	identity string
}

func (a *staticAccount) SignIn(ctx context.Context) (string, error) {
	if a.prepare != nil {
		if err := a.prepare(ctx); err != nil {
			return "", fmt.Errorf("failed to prepare storage: %w", err)
		}
	}
	if err := a.gate.SignIn(ctx); err != nil {
		return "", err
	}
	return a.identity, nil
}

// Validate учетные данные проверяются только первым запросом к хранилищу
func (a *staticAccount) Validate(ctx context.Context) (bool, error) {
	return a.gate.IsAuthenticated(ctx)
}

func (a *staticAccount) SignOut(ctx context.Context) error {
	return a.gate.SignOut(ctx)
}
