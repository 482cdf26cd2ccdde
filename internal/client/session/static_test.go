package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/models"
)

func TestStaticGate_Lifecycle(t *testing.T) {
	env := newTestEnv(t, Options{})
	ctx := context.Background()
	gate := NewStaticGate(env.status, env.status.Get, "s3://chats", slog.New(slog.NewTextHandler(io.Discard, nil)))

	ok, err := gate.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, gate.SignIn(ctx))
	ok, err = gate.IsAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "s3://chats", env.status.Get().Email)

	_, err = env.status.Update(ctx, models.StatusPatch{Enabled: models.Ptr(true)})
	require.NoError(t, err)

	err = gate.Invalidate(ctx, "access denied")
	assert.ErrorIs(t, err, ErrAuthRequired)
	st := env.status.Get()
	assert.False(t, st.Authenticated)
	assert.True(t, st.Enabled, "rejection keeps sync enabled until the user signs in again")
	assert.Contains(t, st.Error, "access denied")

	require.NoError(t, gate.SignIn(ctx))
	require.NoError(t, gate.SignOut(ctx))
	st = env.status.Get()
	assert.False(t, st.Authenticated)
	assert.False(t, st.Enabled)
	assert.Empty(t, st.Email)
}
