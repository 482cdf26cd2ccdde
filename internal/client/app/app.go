// Package app собирает клиент из конфигурации: локальную базу, статус,
// сессию выбранного хранилища и сервисы синхронизации.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/iudanet/chatsync/internal/client/cli"
	"github.com/iudanet/chatsync/internal/client/data"
	"github.com/iudanet/chatsync/internal/client/deletions"
	"github.com/iudanet/chatsync/internal/client/iocli"
	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/remote/drive"
	"github.com/iudanet/chatsync/internal/client/remote/dynamostore"
	"github.com/iudanet/chatsync/internal/client/remote/httpstore"
	"github.com/iudanet/chatsync/internal/client/remote/s3store"
	"github.com/iudanet/chatsync/internal/client/remote/sealed"
	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/internal/client/status"
	"github.com/iudanet/chatsync/internal/client/storage/boltdb"
	"github.com/iudanet/chatsync/internal/client/sync"
	"github.com/iudanet/chatsync/internal/config"
	"github.com/iudanet/chatsync/internal/crdt"
)

// FlushTimeout сколько Close ждет последний раунд автосинхронизации
const FlushTimeout = 30 * time.Second

// ErrUnknownBackend в конфигурации указано неизвестное хранилище
var ErrUnknownBackend = errors.New("unknown backend")

// Options необязательные параметры сборки
type Options struct {
	// HTTPClient для AWS SDK, по умолчанию клиент SDK
	HTTPClient *http.Client
}

// App собранный клиент. Закрывается через Close.
type App struct {
	db      *boltdb.Storage
	status  *status.Store
	data    data.Service
	sync    sync.Service
	auto    *sync.AutoSyncer
	account cli.Account
	logger  *slog.Logger
	backend config.Backend
}

// backend удаленное хранилище вместе с его аутентификацией
type backend struct {
	remote  remote.DocumentStore
	auth    sync.Authenticator
	account cli.Account
}

// Open открывает локальную базу и собирает сервисы для cfg.Backend
func Open(ctx context.Context, cfg *config.ClientConfig, logger *slog.Logger, opts Options) (*App, error) {
	db, err := boltdb.New(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	a, err := build(ctx, cfg, db, logger, opts)
	if err != nil {
		if cerr := db.Close(); cerr != nil {
			logger.Error("failed to close database", "error", cerr)
		}
		return nil, err
	}
	return a, nil
}

func build(ctx context.Context, cfg *config.ClientConfig, db *boltdb.Storage, logger *slog.Logger, opts Options) (*App, error) {
	st, err := status.Open(ctx, db, logger)
	if err != nil {
		return nil, err
	}

	b, err := openBackend(ctx, cfg, db, st, logger, opts)
	if err != nil {
		return nil, err
	}

	var store remote.DocumentStore = sealed.NewGuard(b.remote)
	if cfg.Encryption.Passphrase != "" {
		if store, err = sealed.New(b.remote, cfg.Encryption.Passphrase, logger); err != nil {
			return nil, err
		}
	}

	clock := crdt.NewClock()
	syncSvc := sync.NewService(sync.Deps{
		Chats:     db.Chats(),
		Presets:   db.Presets(),
		Deletions: deletions.NewTracker(db, logger),
		Status:    st,
		Remote:    store,
		Auth:      b.auth,
		Clock:     clock,
		Logger:    logger,
	})

	a := &App{
		db:      db,
		status:  st,
		sync:    syncSvc,
		account: b.account,
		logger:  logger,
		backend: cfg.Backend,
	}

	var notifier data.Notifier
	if cfg.AutoSync {
		a.auto = sync.NewAutoSyncer(syncSvc, st, logger, cfg.Debounce)
		a.auto.Start(ctx)
		notifier = a.auto
	}
	a.data = data.NewService(db.Chats(), db.Presets(), clock, notifier, logger)

	logger.Debug("Client opened", "backend", cfg.Backend, "db", cfg.DBPath, "auto_sync", cfg.AutoSync,
		"encrypted", cfg.Encryption.Passphrase != "")
	return a, nil
}

func openBackend(
	ctx context.Context,
	cfg *config.ClientConfig,
	db *boltdb.Storage,
	st *status.Store,
	logger *slog.Logger,
	opts Options,
) (*backend, error) {
	switch cfg.Backend {
	case config.BackendServer:
		client := httpstore.NewClient(cfg.Server)
		mgr := session.NewManager(db, st, logger, session.Options{
			Refresher: client,
			Checker:   client,
			Revoker:   client,
		})
		client.SetCredentials(mgr)
		return &backend{
			remote:  client,
			auth:    mgr,
			account: &serverAccount{client: client, manager: mgr, logger: logger},
		}, nil

	case config.BackendDrive:
		oauthCfg := &oauth2.Config{
			ClientID:     cfg.Drive.ClientID,
			ClientSecret: cfg.Drive.ClientSecret,
			RedirectURL:  cfg.Drive.RedirectURL,
			Scopes:       drive.Scopes,
			Endpoint:     endpoints.Google,
		}
		oauth := session.NewOAuth2Refresher(oauthCfg)
		mgr := session.NewManager(db, st, logger, session.Options{Refresher: oauth})
		store, err := drive.New(ctx, mgr.TokenSource(ctx), cfg.Drive.Folder, logger)
		if err != nil {
			return nil, err
		}
		mgr.OnSignOut(store.ResetFolderCache)
		return &backend{
			remote:  store,
			auth:    mgr,
			account: &driveAccount{oauth: oauth, manager: mgr, store: store, logger: logger},
		}, nil

	case config.BackendS3:
		store, err := s3store.New(ctx, cfg.S3, opts.HTTPClient, logger)
		if err != nil {
			return nil, err
		}
		identity := "s3://" + cfg.S3.Bucket
		if cfg.S3.Prefix != "" {
			identity += "/" + cfg.S3.Prefix
		}
		gate := session.NewStaticGate(st, st.Get, identity, logger)
		return &backend{
			remote:  store,
			auth:    gate,
			account: &staticAccount{gate: gate, identity: identity},
		}, nil

	case config.BackendDynamoDB:
		store, err := dynamostore.New(ctx, cfg.DynamoDB, opts.HTTPClient, logger)
		if err != nil {
			return nil, err
		}
		identity := "dynamodb://" + cfg.DynamoDB.Table + "/" + cfg.DynamoDB.Account
		gate := session.NewStaticGate(st, st.Get, identity, logger)
		return &backend{
			remote: store,
			auth:   gate,
			account: &staticAccount{
				gate:     gate,
				identity: identity,
				prepare:  func(ctx context.Context) error { return store.EnsureTable(ctx, tableWaitTimeout) },
			},
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// Cli создает обработчик команд поверх собранных сервисов
func (a *App) Cli(io iocli.IO) *cli.Cli {
	return cli.New(io, a.data, a.sync, a.status, a.account, string(a.backend))
}

// Close дожидается отложенной автосинхронизации и закрывает базу
func (a *App) Close() error {
	if a.auto != nil {
		ctx, cancel := context.WithTimeout(context.Background(), FlushTimeout)
		a.auto.Flush(ctx)
		cancel()
	}
	if err := a.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}
