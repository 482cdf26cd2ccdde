// Package cli команды клиента chatsync поверх cobra.
package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/iudanet/chatsync/internal/client/data"
	"github.com/iudanet/chatsync/internal/client/iocli"
	"github.com/iudanet/chatsync/internal/client/sync"
	"github.com/iudanet/chatsync/internal/models"
)

//go:generate moq -out account_mock.go . Account PasswordAccount CodeAccount StaticAccount

// StatusReader текущее состояние синхронизации
type StatusReader interface {
	Get() models.SyncStatus
}

// Account проверка и завершение сессии выбранного хранилища
type Account interface {
	// Validate проверяет сессию на стороне хранилища
	Validate(ctx context.Context) (bool, error)
	SignOut(ctx context.Context) error
}

// PasswordAccount вход по логину и паролю на сервер документов
type PasswordAccount interface {
	Register(ctx context.Context, username, password, email string) error
	Login(ctx context.Context, username, password string) (string, error)
	// StartSession меняет пару токенов на непрозрачную сессию сервера
	StartSession(ctx context.Context) (string, error)
}

// CodeAccount вход через страницу согласия OAuth
type CodeAccount interface {
	AuthCodeURL(state string) string
	LoginWithCode(ctx context.Context, code string) (string, error)
}

// StaticAccount постоянные учетные данные из конфигурации
type StaticAccount interface {
	SignIn(ctx context.Context) (string, error)
}

// Cli выполняет команды пользователя
type Cli struct {
	io      iocli.IO
	data    data.Service
	sync    sync.Service
	status  StatusReader
	account Account
	backend string
}

// New создает Cli. account должен реализовать хотя бы один способ входа.
func New(io iocli.IO, dataSvc data.Service, syncSvc sync.Service, status StatusReader, account Account, backend string) *Cli {
	return &Cli{
		io:      io,
		data:    dataSvc,
		sync:    syncSvc,
		status:  status,
		account: account,
		backend: backend,
	}
}

// render выводит результат шаблона
func (c *Cli) render(tmpl *template.Template, v any) error {
	if err := tmpl.Execute(c.io, v); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	return nil
}

// confirm задает вопрос да/нет, по умолчанию нет
func (c *Cli) confirm(prompt string) (bool, error) {
	answer, err := c.io.ReadInput(prompt + " [y/N]: ")
	if err != nil {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func parseID(arg string) (uint64, error) {
	id, err := strconv.ParseUint(arg, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q: expected a positive number", arg)
	}
	return id, nil
}
