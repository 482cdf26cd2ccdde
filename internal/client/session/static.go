package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/chatsync/internal/models"
)

// StaticGate аутентификация хранилищ с постоянными учетными данными из
// конфигурации (S3, DynamoDB). Вход только помечает статус, выход снимает
// отметку и выключает синхронизацию. Отказ хранилища снимает отметку до
// следующего входа.
type StaticGate struct {
	status   StatusUpdater
	current  func() models.SyncStatus
	logger   *slog.Logger
	identity string
}

// NewStaticGate создает gate. identity показывается вместо email, например
// имя бакета или аккаунта.
func NewStaticGate(status StatusUpdater, current func() models.SyncStatus, identity string, logger *slog.Logger) *StaticGate {
	return &StaticGate{status: status, current: current, identity: identity, logger: logger}
}

// SignIn отмечает пользователя как аутентифицированного
func (g *StaticGate) SignIn(ctx context.Context) error {
	if _, err := g.status.Update(ctx, models.StatusPatch{
		Authenticated: models.Ptr(true),
		Email:         models.Ptr(g.identity),
		Error:         models.Ptr(""),
	}); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	g.logger.Info("Static credentials accepted", "identity", g.identity)
	return nil
}

// IsAuthenticated отражает последнюю отметку в статусе
func (g *StaticGate) IsAuthenticated(ctx context.Context) (bool, error) {
	return g.current().Authenticated, nil
}

// Invalidate снимает отметку после отказа хранилища
func (g *StaticGate) Invalidate(ctx context.Context, reason string) error {
	if _, err := g.status.Update(ctx, models.StatusPatch{
		Authenticated: models.Ptr(false),
		Error:         models.Ptr("Authentication required: " + reason),
	}); err != nil {
		g.logger.Error("Failed to update sync status", "error", err)
	}
	g.logger.Info("Static credentials rejected", "reason", reason)
	return ErrAuthRequired
}

// SignOut снимает отметку и выключает синхронизацию
func (g *StaticGate) SignOut(ctx context.Context) error {
	_, err := g.status.Update(ctx, models.StatusPatch{
		Authenticated: models.Ptr(false),
		Enabled:       models.Ptr(false),
		Email:         models.Ptr(""),
		Error:         models.Ptr(""),
	})
	return err
}
