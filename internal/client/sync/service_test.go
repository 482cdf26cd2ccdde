package sync

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/deletions"
	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/remote/memstore"
	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/internal/client/status"
	"github.com/iudanet/chatsync/internal/client/storage/boltdb"
	"github.com/iudanet/chatsync/internal/crdt"
	"github.com/iudanet/chatsync/internal/models"
)

var (
	discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))
	baseTime      = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
)

// fakeAuth ведет себя как менеджер сессии: Invalidate сбрасывает флаг и статус
type fakeAuth struct {
	status        *status.Store
	reasons       []string
	authenticated bool
	mu            sync.Mutex
}

func (f *fakeAuth) IsAuthenticated(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.authenticated, nil
}

func (f *fakeAuth) Invalidate(ctx context.Context, reason string) error {
	f.mu.Lock()
	f.authenticated = false
	f.reasons = append(f.reasons, reason)
	f.mu.Unlock()

	_, _ = f.status.Update(ctx, models.StatusPatch{
		Authenticated: models.Ptr(false),
		Error:         models.Ptr("Authentication required: " + reason),
	})
	return session.ErrAuthRequired
}

type testEnv struct {
	db      *boltdb.Storage
	status  *status.Store
	tracker *deletions.Tracker
	remote  *memstore.Store
	auth    *fakeAuth
	clock   *crdt.Clock
	svc     Service
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvWithRemote(t, nil)
}

// newTestEnvWithRemote собирает сервис поверх bbolt; если store == nil, используется memstore
func newTestEnvWithRemote(t *testing.T, store remote.DocumentStore) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := boltdb.New(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	st, err := status.Open(ctx, db, discardLogger)
	require.NoError(t, err)
	_, err = st.Update(ctx, models.StatusPatch{
		Enabled:       models.Ptr(true),
		Authenticated: models.Ptr(true),
	})
	require.NoError(t, err)

	env := &testEnv{
		db:     db,
		status: st,
		remote: memstore.New(),
		auth:   &fakeAuth{status: st, authenticated: true},
		clock:  crdt.NewClockWithSource(func() time.Time { return baseTime.Add(time.Hour) }),
	}
	if store == nil {
		store = env.remote
	}
	env.tracker = deletions.NewTracker(db, discardLogger)
	env.svc = NewService(Deps{
		Chats:     db.Chats(),
		Presets:   db.Presets(),
		Deletions: env.tracker,
		Status:    st,
		Remote:    store,
		Auth:      env.auth,
		Clock:     env.clock,
		Logger:    discardLogger,
	})
	return env
}

// hookedStore memstore, который перед очередным скачиванием один раз
// вызывает hook. Так имитируются действия пользователя во время раунда.
type hookedStore struct {
	*memstore.Store
	hook func()
	mu   sync.Mutex
}

func (h *hookedStore) beforeNextDownload(fn func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hook = fn
}

func (h *hookedStore) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	h.mu.Lock()
	hook := h.hook
	h.hook = nil
	h.mu.Unlock()

	if hook != nil {
		hook()
	}
	return h.Store.Download(ctx, handle)
}

func newHookedEnv(t *testing.T) (*testEnv, *hookedStore) {
	t.Helper()
	hooked := &hookedStore{Store: memstore.New()}
	env := newTestEnvWithRemote(t, hooked)
	env.remote = hooked.Store
	return env, hooked
}

func chatAt(syncID, name string, offset time.Duration) *models.Chat {
	return &models.Chat{
		SyncID:    syncID,
		Name:      name,
		Title:     name,
		Source:    models.SourceChatGPT,
		Messages:  []models.Message{{Role: "user", Content: "hi " + name}},
		CreatedAt: baseTime,
		UpdatedAt: baseTime.Add(offset),
	}
}

func presetAt(syncID, name string, offset time.Duration) *models.Preset {
	return &models.Preset{
		SyncID:    syncID,
		Name:      name,
		Settings:  json.RawMessage(`{"theme":"dark"}`),
		CreatedAt: baseTime,
		UpdatedAt: baseTime.Add(offset),
	}
}

func (e *testEnv) insertChat(t *testing.T, chat *models.Chat) {
	t.Helper()
	_, err := e.db.Chats().InsertWithSyncID(context.Background(), chat)
	require.NoError(t, err)
}

func (e *testEnv) putRemote(t *testing.T, name string, doc any) {
	t.Helper()
	content, err := json.Marshal(doc)
	require.NoError(t, err)
	e.remote.Put(name, content)
}

func (e *testEnv) remoteChats(t *testing.T) models.ChatsDocument {
	t.Helper()
	content, ok := e.remote.Get(models.DocumentChats)
	require.True(t, ok, "chats.json not uploaded")
	var doc models.ChatsDocument
	require.NoError(t, json.Unmarshal(content, &doc))
	return doc
}

func (e *testEnv) remoteDeletions(t *testing.T) models.DeletionsDocument {
	t.Helper()
	content, ok := e.remote.Get(models.DocumentDeletions)
	require.True(t, ok, "deletions.json not uploaded")
	var doc models.DeletionsDocument
	require.NoError(t, json.Unmarshal(content, &doc))
	return doc
}

func chatNames(chats []*models.Chat) []string {
	out := make([]string, 0, len(chats))
	for _, c := range chats {
		out = append(out, c.Name)
	}
	return out
}

func TestSyncAll_UploadsToEmptyRemote(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.insertChat(t, chatAt("c1", "First", 0))
	_, err := env.db.Presets().InsertWithSyncID(ctx, presetAt("p1", "Default", 0))
	require.NoError(t, err)

	result, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UploadedChats)
	assert.Equal(t, 1, result.UploadedPresets)
	assert.Zero(t, result.UploadedTombstones)
	assert.Equal(t, ApplyStats{}, result.Chats)

	assert.ElementsMatch(t, []string{
		models.DocumentChats,
		models.DocumentPresets,
		models.DocumentDeletions,
	}, env.remote.Names())

	doc := env.remoteChats(t)
	assert.Equal(t, models.EntityDocumentVersion, doc.Version)
	assert.Equal(t, []string{"First"}, chatNames(doc.Chats))
	assert.False(t, doc.LastModified.IsZero())

	deletionsDoc := env.remoteDeletions(t)
	assert.Equal(t, models.DeletionDocumentVersion, deletionsDoc.Version)
	assert.NotNil(t, deletionsDoc.Deletions)

	st := env.status.Get()
	assert.False(t, st.SyncInProgress)
	assert.Empty(t, st.Error)
	assert.Equal(t, env.clock.Now(), st.LastSync)
}

func TestSyncAll_PullsNewerRemoteVersions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.insertChat(t, chatAt("c1", "Local old", 0))
	env.insertChat(t, chatAt("c2", "Local newer", 10*time.Minute))
	env.putRemote(t, models.DocumentChats, models.ChatsDocument{
		Version: models.EntityDocumentVersion,
		Chats: []*models.Chat{
			chatAt("c1", "Remote newer", 5*time.Minute),
			chatAt("c2", "Remote old", time.Minute),
			chatAt("c3", "Remote only", 0),
		},
	})

	result, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, ApplyStats{Inserted: 1, Updated: 1}, result.Chats)

	local, err := env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Remote newer", "Local newer", "Remote only"}, chatNames(local))

	// Обе стороны сходятся к одному набору
	assert.ElementsMatch(t, chatNames(local), chatNames(env.remoteChats(t).Chats))
}

func TestSyncAll_TieKeepsLocal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.insertChat(t, chatAt("c1", "Local", time.Minute))
	env.putRemote(t, models.DocumentChats, models.ChatsDocument{
		Chats: []*models.Chat{chatAt("c1", "Remote", time.Minute)},
	})

	result, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Chats.Updated)

	chat, err := env.db.Chats().GetBySyncID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Local", chat.Name)
	assert.Equal(t, []string{"Local"}, chatNames(env.remoteChats(t).Chats))
}

func TestSyncAll_LocalDeletionPropagates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	chat := chatAt("c1", "Doomed", 0)
	env.insertChat(t, chat)
	env.insertChat(t, chatAt("c2", "Survivor", 0))
	_, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)

	_, err = env.db.Chats().DeleteWithTombstone(ctx, chat.LocalID, env.clock.Tick())
	require.NoError(t, err)

	result, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.UploadedTombstones)

	assert.Equal(t, []string{"Survivor"}, chatNames(env.remoteChats(t).Chats))
	deletionsDoc := env.remoteDeletions(t)
	require.Len(t, deletionsDoc.Deletions, 1)
	assert.Equal(t, models.TombstoneKey{Type: models.EntityChat, SyncID: "c1"}, deletionsDoc.Deletions[0].Key())

	pending, err := env.tracker.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSyncAll_RemoteTombstoneDeletesLocal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.insertChat(t, chatAt("c1", "Deleted elsewhere", 0))
	env.insertChat(t, chatAt("c2", "Edited after delete", 10*time.Minute))
	env.putRemote(t, models.DocumentDeletions, models.DeletionsDocument{
		Version: models.DeletionDocumentVersion,
		Deletions: []models.Tombstone{
			{Type: models.EntityChat, SyncID: "c1", DeletedAt: baseTime.Add(5 * time.Minute)},
			{Type: models.EntityChat, SyncID: "c2", DeletedAt: baseTime.Add(5 * time.Minute)},
		},
	})

	result, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Chats.Deleted)

	local, err := env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Edited after delete"}, chatNames(local))

	// Удаление, пришедшее с сервера, не попадает в локальную очередь
	pending, err := env.tracker.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
	assert.Len(t, env.remoteDeletions(t).Deletions, 2)
}

func TestSyncAll_PrunesExpiredTombstones(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	now := env.clock.Now()
	env.putRemote(t, models.DocumentDeletions, models.DeletionsDocument{
		Deletions: []models.Tombstone{
			{Type: models.EntityPreset, SyncID: "old", DeletedAt: now.Add(-crdt.TombstoneRetention)},
			{Type: models.EntityPreset, SyncID: "fresh", DeletedAt: now.Add(-time.Hour)},
		},
	})

	_, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)

	deletionsDoc := env.remoteDeletions(t)
	require.Len(t, deletionsDoc.Deletions, 1)
	assert.Equal(t, "fresh", deletionsDoc.Deletions[0].SyncID)
}

func TestSyncAll_CorruptDocumentAbortsBeforeWrites(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	chat := chatAt("c1", "Local", 0)
	env.insertChat(t, chat)
	_, err := env.db.Chats().DeleteWithTombstone(ctx, chat.LocalID, env.clock.Tick())
	require.NoError(t, err)
	env.remote.Put(models.DocumentChats, []byte("{not json"))

	_, err = env.svc.SyncAll(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCorruptDocument)

	content, ok := env.remote.Get(models.DocumentChats)
	require.True(t, ok)
	assert.Equal(t, "{not json", string(content))
	assert.Equal(t, []string{models.DocumentChats}, env.remote.Names())

	pending, err := env.tracker.Drain(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	st := env.status.Get()
	assert.False(t, st.SyncInProgress)
	assert.Contains(t, st.Error, "corrupt remote document")
	assert.True(t, st.LastSync.IsZero())
}

func TestSyncAll_UnauthorizedInvalidatesSession(t *testing.T) {
	ctx := context.Background()
	mock := &remote.DocumentStoreMock{
		FindFunc: func(ctx context.Context, name string) (*remote.Handle, error) {
			return nil, remote.ErrUnauthorized
		},
	}
	env := newTestEnvWithRemote(t, mock)

	_, err := env.svc.SyncAll(ctx)
	require.Error(t, err)
	assert.True(t, remote.IsAuthError(err))

	assert.Len(t, env.auth.reasons, 1)
	st := env.status.Get()
	assert.False(t, st.Authenticated)
	assert.False(t, st.SyncInProgress)
	assert.Contains(t, st.Error, "Authentication required")
}

func TestSyncAll_RequiresAuthentication(t *testing.T) {
	ctx := context.Background()
	// Мок без функций паникует при любом обращении к хранилищу
	env := newTestEnvWithRemote(t, &remote.DocumentStoreMock{})
	env.auth.authenticated = false

	_, err := env.svc.SyncAll(ctx)
	assert.ErrorIs(t, err, session.ErrAuthRequired)
	assert.False(t, env.status.Get().Authenticated)
	assert.False(t, env.status.Get().SyncInProgress)
}

func TestSyncAll_Disabled(t *testing.T) {
	ctx := context.Background()
	env := newTestEnvWithRemote(t, &remote.DocumentStoreMock{})
	require.NoError(t, env.svc.Disable(ctx))

	_, err := env.svc.SyncAll(ctx)
	assert.ErrorIs(t, err, ErrSyncDisabled)
	assert.Empty(t, env.status.Get().Error)
}

func TestSyncAll_AlreadyInProgress(t *testing.T) {
	ctx := context.Background()
	env := newTestEnvWithRemote(t, &remote.DocumentStoreMock{})
	require.NoError(t, env.status.BeginSync(ctx))

	_, err := env.svc.SyncAll(ctx)
	assert.ErrorIs(t, err, ErrSyncInProgress)
	assert.True(t, env.status.Get().SyncInProgress)
}

func TestSyncAll_UploadFailureKeepsPendingDeletions(t *testing.T) {
	ctx := context.Background()
	backing := memstore.New()
	mock := &remote.DocumentStoreMock{
		FindFunc:     backing.Find,
		DownloadFunc: backing.Download,
		DeleteFunc:   backing.Delete,
		UploadFunc: func(ctx context.Context, name string, content []byte, existing *remote.Handle) (*remote.Handle, error) {
			if name == models.DocumentDeletions {
				return nil, errors.New("quota exceeded")
			}
			return backing.Upload(ctx, name, content, existing)
		},
	}
	env := newTestEnvWithRemote(t, mock)

	chat := chatAt("c1", "Doomed", 0)
	env.insertChat(t, chat)
	_, err := env.db.Chats().DeleteWithTombstone(ctx, chat.LocalID, env.clock.Tick())
	require.NoError(t, err)

	_, err = env.svc.SyncAll(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	pending, err := env.tracker.Drain(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Contains(t, env.status.Get().Error, "quota exceeded")
}

func TestSyncAll_DeletionDuringRoundIsNotLost(t *testing.T) {
	ctx := context.Background()
	env, hooked := newHookedEnv(t)

	env.insertChat(t, chatAt("c1", "Keep", 0))
	doomed := chatAt("c2", "Deleted mid-round", 0)
	env.insertChat(t, doomed)
	_, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)

	var tombstone models.Tombstone
	hooked.beforeNextDownload(func() {
		var err error
		tombstone, err = env.db.Chats().DeleteWithTombstone(ctx, doomed.LocalID, env.clock.Tick())
		assert.NoError(t, err)
	})
	_, err = env.svc.SyncAll(ctx)
	require.NoError(t, err)

	// Удаление не попало в раунд и осталось в очереди
	pending, err := env.tracker.Drain(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Tombstone{tombstone}, pending)

	local, err := env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keep"}, chatNames(local))

	// Следующий раунд доносит удаление, чат не возвращается
	_, err = env.svc.SyncAll(ctx)
	require.NoError(t, err)

	local, err = env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Keep"}, chatNames(local))
	assert.Equal(t, []string{"Keep"}, chatNames(env.remoteChats(t).Chats))

	deletionsDoc := env.remoteDeletions(t)
	require.Len(t, deletionsDoc.Deletions, 1)
	assert.Equal(t, "c2", deletionsDoc.Deletions[0].SyncID)

	pending, err = env.tracker.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSyncAll_EditDuringRoundIsKept(t *testing.T) {
	ctx := context.Background()
	env, hooked := newHookedEnv(t)

	chat := chatAt("c1", "Local", 0)
	env.insertChat(t, chat)
	env.putRemote(t, models.DocumentChats, models.ChatsDocument{
		Chats: []*models.Chat{chatAt("c1", "Remote", 5*time.Minute)},
	})

	hooked.beforeNextDownload(func() {
		edited := chatAt("c1", "Edited mid-round", 10*time.Minute)
		edited.LocalID = chat.LocalID
		assert.NoError(t, env.db.Chats().Update(ctx, edited))
	})
	result, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Chats.Updated)

	got, err := env.db.Chats().GetBySyncID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "Edited mid-round", got.Name)
	assert.Equal(t, []string{"Edited mid-round"}, chatNames(env.remoteChats(t).Chats))
}

func TestSyncAll_EditDuringRoundSurvivesRemoteDeletion(t *testing.T) {
	ctx := context.Background()
	env, hooked := newHookedEnv(t)

	chat := chatAt("c1", "Local", 0)
	env.insertChat(t, chat)
	env.putRemote(t, models.DocumentDeletions, models.DeletionsDocument{
		Deletions: []models.Tombstone{
			{Type: models.EntityChat, SyncID: "c1", DeletedAt: baseTime.Add(5 * time.Minute)},
		},
	})

	hooked.beforeNextDownload(func() {
		edited := chatAt("c1", "Edited mid-round", 10*time.Minute)
		edited.LocalID = chat.LocalID
		assert.NoError(t, env.db.Chats().Update(ctx, edited))
	})
	result, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	assert.Zero(t, result.Chats.Deleted)

	local, err := env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Edited mid-round"}, chatNames(local))
	assert.Equal(t, []string{"Edited mid-round"}, chatNames(env.remoteChats(t).Chats))
}

func TestSyncAll_ConvergesAcrossDevices(t *testing.T) {
	ctx := context.Background()
	shared := memstore.New()
	a := newTestEnvWithRemote(t, shared)
	b := newTestEnvWithRemote(t, shared)

	a.insertChat(t, chatAt("c1", "From A", 0))
	b.insertChat(t, chatAt("c2", "From B", 0))

	_, err := a.svc.SyncAll(ctx)
	require.NoError(t, err)
	_, err = b.svc.SyncAll(ctx)
	require.NoError(t, err)
	_, err = a.svc.SyncAll(ctx)
	require.NoError(t, err)

	chatsA, err := a.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	chatsB, err := b.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"From A", "From B"}, chatNames(chatsA))
	assert.ElementsMatch(t, chatNames(chatsA), chatNames(chatsB))
}

func TestRestoreFromCloud(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.insertChat(t, chatAt("c1", "Local newer", 10*time.Minute))
	env.putRemote(t, models.DocumentChats, models.ChatsDocument{
		Chats: []*models.Chat{
			chatAt("c1", "Remote older", 0),
			chatAt("c2", "Remote only", 0),
			chatAt("c3", "Deleted", 0),
		},
	})
	env.putRemote(t, models.DocumentPresets, models.PresetsDocument{
		Presets: []*models.Preset{presetAt("p1", "Preset", 0)},
	})
	env.putRemote(t, models.DocumentDeletions, models.DeletionsDocument{
		Deletions: []models.Tombstone{
			{Type: models.EntityChat, SyncID: "c3", DeletedAt: baseTime.Add(time.Minute)},
		},
	})

	result, err := env.svc.RestoreFromCloud(ctx)
	require.NoError(t, err)
	assert.True(t, result.HasData)
	assert.ElementsMatch(t, []string{"Remote older", "Remote only"}, chatNames(result.Chats))
	assert.Len(t, result.Presets, 1)
	assert.Equal(t, 1, result.Applied.Chats.Inserted)
	assert.Equal(t, 1, result.Applied.Presets.Inserted)

	local, err := env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Local newer", "Remote only"}, chatNames(local))

	// Restore ничего не выгружает
	assert.Len(t, env.remoteChats(t).Chats, 3)
	assert.Equal(t, env.clock.Now(), env.status.Get().LastSync)
}

func TestRestoreFromCloud_EmptyRemoteKeepsLastSync(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	result, err := env.svc.RestoreFromCloud(ctx)
	require.NoError(t, err)
	assert.False(t, result.HasData)
	assert.Empty(t, result.Chats)

	st := env.status.Get()
	assert.True(t, st.LastSync.IsZero())
	assert.False(t, st.SyncInProgress)
}

func TestRestoreFromCloud_RespectsPendingDeletions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	chat := chatAt("c1", "Deleted here", 0)
	env.insertChat(t, chat)
	_, err := env.db.Chats().DeleteWithTombstone(ctx, chat.LocalID, env.clock.Tick())
	require.NoError(t, err)
	env.putRemote(t, models.DocumentChats, models.ChatsDocument{
		Chats: []*models.Chat{chatAt("c1", "Deleted here", 0)},
	})

	_, err = env.svc.RestoreFromCloud(ctx)
	require.NoError(t, err)

	local, err := env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, local)
}

func TestHasCloudData(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	has, err := env.svc.HasCloudData(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	// Только записи об удалении не считаются данными
	env.putRemote(t, models.DocumentDeletions, models.DeletionsDocument{
		Deletions: []models.Tombstone{{Type: models.EntityChat, SyncID: "x", DeletedAt: baseTime}},
	})
	has, err = env.svc.HasCloudData(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	env.putRemote(t, models.DocumentPresets, models.PresetsDocument{
		Presets: []*models.Preset{presetAt("p1", "Preset", 0)},
	})
	has, err = env.svc.HasCloudData(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}

func TestHasCloudData_RequiresAuthentication(t *testing.T) {
	env := newTestEnvWithRemote(t, &remote.DocumentStoreMock{})
	env.auth.authenticated = false

	_, err := env.svc.HasCloudData(context.Background())
	assert.ErrorIs(t, err, session.ErrAuthRequired)
}

func TestDeleteAllData(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	env.insertChat(t, chatAt("c1", "Keep locally", 0))
	_, err := env.svc.SyncAll(ctx)
	require.NoError(t, err)
	require.Len(t, env.remote.Names(), 3)

	chat := chatAt("c2", "Pending", 0)
	env.insertChat(t, chat)
	_, err = env.db.Chats().DeleteWithTombstone(ctx, chat.LocalID, env.clock.Tick())
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteAllData(ctx))
	assert.Empty(t, env.remote.Names())

	pending, err := env.tracker.Drain(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	local, err := env.db.Chats().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, local, 1)

	st := env.status.Get()
	assert.True(t, st.LastSync.IsZero())
	assert.False(t, st.SyncInProgress)
}

func TestDeleteAllData_EmptyRemote(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.svc.DeleteAllData(context.Background()))
}

func TestEnableDisable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	require.NoError(t, env.svc.Disable(ctx))
	assert.False(t, env.status.Get().Enabled)

	require.NoError(t, env.svc.Enable(ctx))
	assert.True(t, env.status.Get().Enabled)

	require.NoError(t, env.svc.Disable(ctx))
	env.auth.authenticated = false
	err := env.svc.Enable(ctx)
	assert.ErrorIs(t, err, session.ErrAuthRequired)
	assert.False(t, env.status.Get().Enabled)
}
