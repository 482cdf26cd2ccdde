package status

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/storage/boltdb"
	"github.com/iudanet/chatsync/internal/models"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestStore(t *testing.T) (*Store, *boltdb.Storage) {
	t.Helper()

	db, err := boltdb.New(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store, err := Open(context.Background(), db, discardLogger)
	require.NoError(t, err)
	return store, db
}

// failingStorage отказывает при сохранении
type failingStorage struct{}

func (failingStorage) SaveStatus(context.Context, models.SyncStatus) error {
	return errors.New("disk full")
}

func (failingStorage) LoadStatus(context.Context) (models.SyncStatus, error) {
	return models.SyncStatus{}, nil
}

func TestStore_UpdatePersists(t *testing.T) {
	ctx := context.Background()
	store, db := newTestStore(t)

	got, err := store.Update(ctx, models.StatusPatch{
		Enabled:       models.Ptr(true),
		Authenticated: models.Ptr(true),
		Email:         models.Ptr("me@example.com"),
	})
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, got, store.Get())

	persisted, err := db.LoadStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, got, persisted)

	// Частичное обновление не трогает остальные поля
	got, err = store.Update(ctx, models.StatusPatch{Error: models.Ptr("boom")})
	require.NoError(t, err)
	assert.True(t, got.Enabled)
	assert.Equal(t, "me@example.com", got.Email)
	assert.Equal(t, "boom", got.Error)
}

func TestStore_BeginSyncIsExclusive(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.BeginSync(ctx))
	assert.True(t, store.Get().SyncInProgress)
	assert.ErrorIs(t, store.BeginSync(ctx), ErrSyncInProgress)

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.EndSync(ctx, models.StatusPatch{LastSync: &now, Error: models.Ptr("")}))

	state := store.Get()
	assert.False(t, state.SyncInProgress)
	assert.Equal(t, now, state.LastSync)

	assert.NoError(t, store.BeginSync(ctx))
}

func TestStore_ConcurrentBeginSync(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		entered int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.BeginSync(ctx) == nil {
				mu.Lock()
				entered++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, entered)
}

func TestOpen_ResetsStaleInProgress(t *testing.T) {
	ctx := context.Background()
	db, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, db.SaveStatus(ctx, models.SyncStatus{Enabled: true, SyncInProgress: true}))

	store, err := Open(ctx, db, discardLogger)
	require.NoError(t, err)
	assert.False(t, store.Get().SyncInProgress)
	assert.True(t, store.Get().Enabled)

	persisted, err := db.LoadStatus(ctx)
	require.NoError(t, err)
	assert.False(t, persisted.SyncInProgress)
}

func TestStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	ch, cancel := store.Subscribe()

	_, err := store.Update(ctx, models.StatusPatch{Enabled: models.Ptr(true)})
	require.NoError(t, err)
	_, err = store.Update(ctx, models.StatusPatch{Email: models.Ptr("x@y.z")})
	require.NoError(t, err)

	// Промежуточное состояние вытеснено, приходит последнее
	latest := <-ch
	assert.True(t, latest.Enabled)
	assert.Equal(t, "x@y.z", latest.Email)

	cancel()
	_, open := <-ch
	assert.False(t, open)

	// Повторная отписка безопасна
	cancel()
}

func TestStore_SaveFailure(t *testing.T) {
	ctx := context.Background()
	store, err := Open(ctx, failingStorage{}, discardLogger)
	require.NoError(t, err)

	_, err = store.Update(ctx, models.StatusPatch{Enabled: models.Ptr(true)})
	assert.Error(t, err)
	assert.False(t, store.Get().Enabled)

	assert.Error(t, store.BeginSync(ctx))
	assert.False(t, store.Get().SyncInProgress)
}
