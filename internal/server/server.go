// Package server собирает HTTP сервер документов: маршруты, middleware,
// периодическую очистку истекших токенов и корректное завершение.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/iudanet/chatsync/internal/config"
	"github.com/iudanet/chatsync/internal/server/handlers"
	"github.com/iudanet/chatsync/internal/server/middleware"
	"github.com/iudanet/chatsync/internal/server/storage"
)

// Store все хранилища, нужные серверу
type Store interface {
	storage.UserStorage
	storage.TokenStorage
	storage.SessionStorage
	storage.DocumentStorage
	handlers.Pinger
	Cleanup(ctx context.Context, now time.Time) error
}

// Server HTTP сервер документов
type Server struct {
	cfg     *config.ServerConfig
	store   Store
	logger  *slog.Logger
	limiter *middleware.RateLimiter
	handler http.Handler
}

// New создает сервер и регистрирует маршруты
func New(cfg *config.ServerConfig, store Store, logger *slog.Logger, version string) *Server {
	s := &Server{
		cfg:     cfg,
		store:   store,
		logger:  logger,
		limiter: middleware.NewRateLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow),
	}
	s.handler = s.routes(version)
	return s
}

// Handler возвращает корневой http.Handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) jwtConfig() handlers.JWTConfig {
	return handlers.JWTConfig{
		Secret:          []byte(s.cfg.JWTSecret),
		Issuer:          s.cfg.JWTIssuer,
		AccessTokenTTL:  s.cfg.AccessTokenTTL,
		RefreshTokenTTL: s.cfg.RefreshTokenTTL,
		SessionTTL:      s.cfg.SessionTTL,
	}
}

func (s *Server) routes(version string) http.Handler {
	jwtCfg := s.jwtConfig()

	health := handlers.NewHealthHandler(s.logger, s.store, version)
	auth := handlers.NewAuthHandler(s.logger, s.store, s.store, s.store, jwtCfg)
	docs := handlers.NewDocumentHandler(s.logger, s.store, s.cfg.MaxDocumentSize)

	authn := middleware.NewAuthenticator(s.logger, jwtCfg, s.store)
	limited := middleware.RateLimitMiddleware(s.limiter, s.logger)
	protected := func(h http.HandlerFunc) http.Handler { return authn.Middleware(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/health", health.Health)

	// публичные эндпоинты с подбором пароля ограничены по частоте
	mux.Handle("POST /api/v1/auth/register", limited(http.HandlerFunc(auth.Register)))
	mux.Handle("POST /api/v1/auth/login", limited(http.HandlerFunc(auth.Login)))
	mux.Handle("POST /api/v1/auth/refresh", limited(http.HandlerFunc(auth.Refresh)))
	mux.HandleFunc("POST /api/v1/auth/logout", auth.Logout)
	mux.HandleFunc("POST /api/v1/auth/signout", auth.SignOut)
	mux.Handle("POST /api/v1/auth/session", protected(auth.CreateSession))
	mux.Handle("GET /api/v1/auth/status", protected(auth.Status))

	mux.Handle("GET /api/v1/documents", protected(docs.List))
	mux.Handle("DELETE /api/v1/documents", protected(docs.DeleteAll))
	mux.Handle("GET /api/v1/documents/{name}", protected(docs.Get))
	mux.Handle("PUT /api/v1/documents/{name}", protected(docs.Put))
	mux.Handle("DELETE /api/v1/documents/{name}", protected(docs.Delete))

	var h http.Handler = mux
	h = middleware.LoggingMiddleware(s.logger, "/api/v1/health")(h)
	h = middleware.RecoveryMiddleware(s.logger)(h)
	return h
}

// Run слушает адрес из конфигурации до отмены ctx
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Address, err)
	}
	return s.Serve(ctx, ln)
}

// Serve обслуживает соединения ln до отмены ctx, затем дожидается активных
// запросов не дольше ShutdownTimeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.limiter.Stop()

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	cleanupCtx, stopCleanup := context.WithCancel(ctx)
	defer stopCleanup()
	cleanupDone := make(chan struct{})
	go func() {
		defer close(cleanupDone)
		s.cleanupLoop(cleanupCtx)
	}()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server started", slog.String("address", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		stopCleanup()
		<-cleanupDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.ShutdownTimeout)
	defer cancel()

	err := srv.Shutdown(shutdownCtx)
	stopCleanup()
	<-cleanupDone
	if err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// cleanupLoop периодически удаляет истекшие refresh токены и сессии
func (s *Server) cleanupLoop(ctx context.Context) {
	if s.cfg.CleanupInterval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(s.cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if err := s.store.Cleanup(ctx, now); err != nil {
				s.logger.Warn("cleanup failed", slog.Any("error", err))
			}
		}
	}
}
