package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/chatsync/internal/server/storage/sqlite"
	"github.com/iudanet/chatsync/pkg/api"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

var testJWT = JWTConfig{
	Secret:          []byte("handlers-test-secret"),
	Issuer:          "chatsync-test",
	AccessTokenTTL:  15 * time.Minute,
	RefreshTokenTTL: 24 * time.Hour,
	SessionTTL:      time.Hour,
}

func newTestStorage(t *testing.T) *sqlite.Storage {
	t.Helper()
	s, err := sqlite.New(context.Background(), ":memory:", testLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestAuthHandler(t *testing.T) (*AuthHandler, *sqlite.Storage) {
	t.Helper()
	s := newTestStorage(t)
	return NewAuthHandler(testLogger, s, s, s, testJWT).WithBcryptCost(bcrypt.MinCost), s
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// registerAndLogin регистрирует пользователя и возвращает выданные токены
func registerAndLogin(t *testing.T, h *AuthHandler, username string) api.TokenResponse {
	t.Helper()

	w := httptest.NewRecorder()
	h.Register(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/register", api.RegisterRequest{
		Username: username,
		Password: "correct-horse",
		Email:    username + "@example.com",
	}))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.Login(w, jsonRequest(t, http.MethodPost, "/api/v1/auth/login", api.LoginRequest{
		Username: username,
		Password: "correct-horse",
	}))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody[api.TokenResponse](t, w)
}

// asUser кладет пользователя в контекст запроса, как это делает middleware
func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(WithUser(r.Context(), userID, ""))
}
