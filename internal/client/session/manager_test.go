package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/status"
	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/client/storage/boltdb"
	"github.com/iudanet/chatsync/internal/models"
)

var testNow = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db      *boltdb.Storage
	status  *status.Store
	manager *Manager
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := status.Open(ctx, db, logger)
	require.NoError(t, err)

	if opts.Now == nil {
		opts.Now = func() time.Time { return testNow }
	}

	return &testEnv{
		db:      db,
		status:  st,
		manager: NewManager(db, st, logger, opts),
	}
}

func TestManager_NoSession(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	_, err := env.manager.GetValidCredential(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)

	ok, err := env.manager.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_OAuthValidToken(t *testing.T) {
	refresher := &TokenRefresherMock{}
	env := newTestEnv(t, Options{Refresher: refresher})
	ctx := context.Background()

	err := env.manager.EstablishOAuth(ctx, &TokenSet{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    testNow.Add(time.Hour),
	}, "user@example.com")
	require.NoError(t, err)

	cred, err := env.manager.GetValidCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", cred.Token)
	assert.Equal(t, "Authorization", cred.HeaderName())
	assert.Equal(t, "Bearer access-1", cred.HeaderValue())
	assert.Empty(t, refresher.RefreshCalls())

	st := env.status.Get()
	assert.True(t, st.Authenticated)
	assert.Equal(t, "user@example.com", st.Email)
}

func TestManager_RefreshWithinSkew(t *testing.T) {
	tests := []struct {
		name          string
		expiresIn     time.Duration
		expectRefresh bool
	}{
		{name: "far from expiry", expiresIn: 10 * time.Minute, expectRefresh: false},
		{name: "inside skew window", expiresIn: 30 * time.Second, expectRefresh: true},
		{name: "exactly at skew", expiresIn: ExpirySkew, expectRefresh: true},
		{name: "already expired", expiresIn: -time.Hour, expectRefresh: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			refresher := &TokenRefresherMock{
				RefreshFunc: func(ctx context.Context, refreshToken string) (*TokenSet, error) {
					assert.Equal(t, "refresh-1", refreshToken)
					return &TokenSet{AccessToken: "access-2", ExpiresAt: testNow.Add(time.Hour)}, nil
				},
			}
			env := newTestEnv(t, Options{Refresher: refresher})
			ctx := context.Background()

			require.NoError(t, env.manager.EstablishOAuth(ctx, &TokenSet{
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
				ExpiresAt:    testNow.Add(tt.expiresIn),
			}, ""))

			cred, err := env.manager.GetValidCredential(ctx)
			require.NoError(t, err)

			if !tt.expectRefresh {
				assert.Equal(t, "access-1", cred.Token)
				assert.Empty(t, refresher.RefreshCalls())
				return
			}

			assert.Equal(t, "access-2", cred.Token)
			assert.Len(t, refresher.RefreshCalls(), 1)

			// Refresh token сохраняется, если сервер не выдал новый
			stored, err := env.db.GetSession(ctx)
			require.NoError(t, err)
			assert.Equal(t, "access-2", stored.AccessToken)
			assert.Equal(t, "refresh-1", stored.RefreshToken)
		})
	}
}

func TestManager_RefreshFailureClearsSession(t *testing.T) {
	refresher := &TokenRefresherMock{
		RefreshFunc: func(ctx context.Context, refreshToken string) (*TokenSet, error) {
			return nil, errors.New("invalid_grant")
		},
	}
	env := newTestEnv(t, Options{Refresher: refresher})
	ctx := context.Background()

	authRequired := 0
	env.manager.OnAuthRequired(func() { authRequired++ })

	require.NoError(t, env.manager.EstablishOAuth(ctx, &TokenSet{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    testNow.Add(-time.Minute),
	}, "user@example.com"))

	_, err := env.manager.GetValidCredential(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, 1, authRequired)

	_, err = env.db.GetSession(ctx)
	assert.ErrorIs(t, err, storage.ErrSessionNotFound)
	assert.False(t, env.status.Get().Authenticated)
}

func TestManager_BackendSession(t *testing.T) {
	checker := &SessionCheckerMock{
		SessionStatusFunc: func(ctx context.Context, sessionToken string) (*BackendStatus, error) {
			if sessionToken == "good" {
				return &BackendStatus{Authenticated: true, Email: "b@example.com"}, nil
			}
			return &BackendStatus{Authenticated: false}, nil
		},
	}
	env := newTestEnv(t, Options{Checker: checker})
	ctx := context.Background()

	assert.ErrorIs(t, env.manager.CompleteBackendAuth(ctx, "bad"), ErrAuthRequired)

	require.NoError(t, env.manager.CompleteBackendAuth(ctx, "good"))

	cred, err := env.manager.GetValidCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SessionBackend, cred.Kind)
	assert.Equal(t, SessionTokenHeader, cred.HeaderName())
	assert.Equal(t, "good", cred.HeaderValue())

	email, err := env.manager.Email(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b@example.com", email)

	valid, err := env.manager.Validate(ctx)
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestManager_InvalidateOnUnauthorized(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	require.NoError(t, env.manager.EstablishOAuth(ctx, &TokenSet{AccessToken: "a"}, "u@example.com"))

	err := env.manager.Invalidate(ctx, "remote returned 401")
	assert.ErrorIs(t, err, ErrAuthRequired)

	st := env.status.Get()
	assert.False(t, st.Authenticated)
	assert.Contains(t, st.Error, "remote returned 401")

	_, err = env.manager.GetValidCredential(ctx)
	assert.ErrorIs(t, err, ErrAuthRequired)
}

func TestManager_SignOut(t *testing.T) {
	revoker := &RevokerMock{
		RevokeFunc: func(ctx context.Context, cred Credential) error {
			return errors.New("server unreachable")
		},
	}
	env := newTestEnv(t, Options{Revoker: revoker})
	ctx := context.Background()

	signedOut := false
	env.manager.OnSignOut(func() { signedOut = true })

	require.NoError(t, env.manager.EstablishOAuth(ctx, &TokenSet{AccessToken: "a"}, "u@example.com"))
	_, err := env.status.Update(ctx, models.StatusPatch{Enabled: models.Ptr(true)})
	require.NoError(t, err)

	// Ошибка отзыва на сервере не мешает локальному выходу
	require.NoError(t, env.manager.SignOut(ctx))
	assert.True(t, signedOut)
	require.Len(t, revoker.RevokeCalls(), 1)
	assert.Equal(t, "a", revoker.RevokeCalls()[0].Cred.Token)

	st := env.status.Get()
	assert.False(t, st.Authenticated)
	assert.False(t, st.Enabled)
	assert.Empty(t, st.Email)

	ok, err := env.manager.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_SessionSurvivesRestart(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	require.NoError(t, env.manager.EstablishOAuth(ctx, &TokenSet{
		AccessToken: "persisted",
		ExpiresAt:   testNow.Add(time.Hour),
	}, "u@example.com"))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	restarted := NewManager(env.db, env.status, logger, Options{Now: func() time.Time { return testNow }})

	cred, err := restarted.GetValidCredential(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", cred.Token)
}

func TestManager_TokenSource(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()

	_, err := env.manager.TokenSource(ctx).Token()
	assert.ErrorIs(t, err, ErrAuthRequired)

	expires := testNow.Add(time.Hour)
	require.NoError(t, env.manager.EstablishOAuth(ctx, &TokenSet{AccessToken: "tok", ExpiresAt: expires}, ""))

	tok, err := env.manager.TokenSource(ctx).Token()
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
	assert.Equal(t, "Bearer", tok.TokenType)
	assert.Equal(t, expires, tok.Expiry)
}
