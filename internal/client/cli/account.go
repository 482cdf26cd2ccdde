package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/validation"
)

// Способы входа
const (
	LoginServer  = "server"  // логин и пароль, пара JWT
	LoginSession = "session" // логин и пароль, затем непрозрачная сессия сервера
	LoginDrive   = "drive"   // OAuth Google Drive
	LoginStatic  = "static"  // ключи S3/DynamoDB из конфигурации
)

// ErrLoginUnsupported способ входа не подходит выбранному хранилищу
var ErrLoginUnsupported = errors.New("login method is not supported by this backend")

// defaultLoginMethod выбирает способ входа по возможностям хранилища
func (c *Cli) defaultLoginMethod() string {
	switch c.account.(type) {
	case PasswordAccount:
		return LoginServer
	case CodeAccount:
		return LoginDrive
	default:
		return LoginStatic
	}
}

func (c *Cli) runRegister(ctx context.Context) error {
	pa, ok := c.account.(PasswordAccount)
	if !ok {
		return fmt.Errorf("register: %w (%s)", ErrLoginUnsupported, c.backend)
	}

	c.io.Println("=== Registration ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return fmt.Errorf("failed to read username: %w", err)
	}
	if err := validation.ValidateUsername(username); err != nil {
		return fmt.Errorf("invalid username: %w", err)
	}

	email, err := c.io.ReadInput("Email: ")
	if err != nil {
		return fmt.Errorf("failed to read email: %w", err)
	}
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if err := validation.ValidatePassword(password); err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	confirm, err := c.io.ReadPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}
	if confirm != password {
		return errors.New("passwords do not match")
	}

	if err := pa.Register(ctx, username, password, email); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}

	c.io.Println()
	c.io.Printf("✓ User %s registered\n", username)
	c.io.Println("Run 'chatsync login' to sign in.")
	return nil
}

func (c *Cli) runLogin(ctx context.Context, method string) error {
	if method == "" {
		method = c.defaultLoginMethod()
	}

	var (
		email string
		err   error
	)
	switch method {
	case LoginServer, LoginSession:
		email, err = c.loginPassword(ctx, method == LoginSession)
	case LoginDrive:
		email, err = c.loginCode(ctx)
	case LoginStatic:
		sa, ok := c.account.(StaticAccount)
		if !ok {
			return fmt.Errorf("%s: %w (%s)", method, ErrLoginUnsupported, c.backend)
		}
		email, err = sa.SignIn(ctx)
	default:
		return fmt.Errorf("unknown login method %q: use server, session or drive", method)
	}
	if err != nil {
		return err
	}

	c.io.Println()
	c.io.Printf("✓ Signed in as %s\n", email)
	return c.offerRestore(ctx)
}

func (c *Cli) loginPassword(ctx context.Context, opaque bool) (string, error) {
	pa, ok := c.account.(PasswordAccount)
	if !ok {
		return "", fmt.Errorf("password login: %w (%s)", ErrLoginUnsupported, c.backend)
	}

	c.io.Println("=== Login ===")
	c.io.Println()

	username, err := c.io.ReadInput("Username: ")
	if err != nil {
		return "", fmt.Errorf("failed to read username: %w", err)
	}
	password, err := c.io.ReadPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if username == "" || password == "" {
		return "", errors.New("username and password are required")
	}

	email, err := pa.Login(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	if !opaque {
		return email, nil
	}

	email, err = pa.StartSession(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start session: %w", err)
	}
	return email, nil
}

func (c *Cli) loginCode(ctx context.Context) (string, error) {
	ca, ok := c.account.(CodeAccount)
	if !ok {
		return "", fmt.Errorf("oauth login: %w (%s)", ErrLoginUnsupported, c.backend)
	}

	c.io.Println("Open this page in a browser and allow access:")
	c.io.Println()
	c.io.Println(ca.AuthCodeURL(uuid.NewString()))
	c.io.Println()

	code, err := c.io.ReadInput("Authorization code: ")
	if err != nil {
		return "", fmt.Errorf("failed to read code: %w", err)
	}
	if code == "" {
		return "", errors.New("authorization code is required")
	}

	email, err := ca.LoginWithCode(ctx, code)
	if err != nil {
		return "", fmt.Errorf("login failed: %w", err)
	}
	return email, nil
}

// offerRestore после входа предлагает забрать данные из облака
func (c *Cli) offerRestore(ctx context.Context) error {
	has, err := c.sync.HasCloudData(ctx)
	if err != nil {
		c.io.Printf("Warning: could not check remote data: %v\n", err)
		return nil
	}
	if !has {
		c.io.Println("Run 'chatsync enable' to turn on synchronization.")
		return nil
	}

	ok, err := c.confirm("Remote store already has chats or presets. Restore them now?")
	if err != nil {
		return err
	}
	if !ok {
		c.io.Println("Skipped. Run 'chatsync restore' later or 'chatsync enable' to merge on next sync.")
		return nil
	}
	return c.runRestore(ctx)
}

func (c *Cli) runLogout(ctx context.Context) error {
	if err := c.account.SignOut(ctx); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	c.io.Println("✓ Signed out. Synchronization is disabled, local data is kept.")
	return nil
}

type statusView struct {
	Status  models.SyncStatus
	Backend string
	Chats   int
	Presets int
}

func (c *Cli) runStatus(ctx context.Context, check bool) error {
	if check {
		if _, err := c.account.Validate(ctx); err != nil && !errors.Is(err, session.ErrAuthRequired) {
			c.io.Printf("Warning: could not validate session: %v\n", err)
		}
	}

	chats, err := c.data.ListChats(ctx)
	if err != nil {
		return fmt.Errorf("failed to list chats: %w", err)
	}
	presets, err := c.data.ListPresets(ctx)
	if err != nil {
		return fmt.Errorf("failed to list presets: %w", err)
	}

	return c.render(statusTemplate, statusView{
		Status:  c.status.Get(),
		Backend: c.backend,
		Chats:   len(chats),
		Presets: len(presets),
	})
}
