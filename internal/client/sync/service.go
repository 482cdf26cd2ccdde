package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/internal/client/status"
	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/crdt"
	"github.com/iudanet/chatsync/internal/models"
)

//go:generate moq -out service_mock.go . Service

var (
	// ErrSyncDisabled синхронизация выключена пользователем
	ErrSyncDisabled = errors.New("sync is disabled")

	// ErrCorruptDocument удаленный документ не разбирается как JSON
	ErrCorruptDocument = errors.New("corrupt remote document")

	// ErrSyncInProgress раунд синхронизации уже выполняется
	ErrSyncInProgress = status.ErrSyncInProgress
)

// Service определяет интерфейс синхронизации
type Service interface {
	// SyncAll выполняет полный двусторонний раунд синхронизации
	SyncAll(ctx context.Context) (*Result, error)

	// RestoreFromCloud скачивает удаленное состояние и переносит его в локальное хранилище без выгрузки
	RestoreFromCloud(ctx context.Context) (*RestoreResult, error)

	// HasCloudData сообщает, есть ли в удаленном хранилище чаты или пресеты
	HasCloudData(ctx context.Context) (bool, error)

	// DeleteAllData удаляет все документы из удаленного хранилища
	DeleteAllData(ctx context.Context) error

	// Enable включает синхронизацию, требует аутентификации
	Enable(ctx context.Context) error

	// Disable выключает синхронизацию
	Disable(ctx context.Context) error
}

// Authenticator часть менеджера сессии, нужная синхронизации
type Authenticator interface {
	IsAuthenticated(ctx context.Context) (bool, error)
	Invalidate(ctx context.Context, reason string) error
}

// DeletionQueue очередь записей об удалении. Clear убирает только
// переданные записи, прочитанные ранее через Drain.
type DeletionQueue interface {
	Drain(ctx context.Context) ([]models.Tombstone, error)
	Clear(ctx context.Context, drained []models.Tombstone) error
}

// StatusStore хранилище статуса синхронизации
type StatusStore interface {
	Get() models.SyncStatus
	Update(ctx context.Context, patch models.StatusPatch) (models.SyncStatus, error)
	BeginSync(ctx context.Context) error
	EndSync(ctx context.Context, patch models.StatusPatch) error
}

// Deps зависимости сервиса
type Deps struct {
	Chats     storage.Collection[*models.Chat]
	Presets   storage.Collection[*models.Preset]
	Deletions DeletionQueue
	Status    StatusStore
	Remote    remote.DocumentStore
	Auth      Authenticator
	Clock     *crdt.Clock
	Logger    *slog.Logger
}

// service реализует Service
type service struct {
	chats     storage.Collection[*models.Chat]
	presets   storage.Collection[*models.Preset]
	deletions DeletionQueue
	status    StatusStore
	remote    remote.DocumentStore
	auth      Authenticator
	clock     *crdt.Clock
	logger    *slog.Logger
}

// NewService creates a new sync service
func NewService(deps Deps) Service {
	clock := deps.Clock
	if clock == nil {
		clock = crdt.NewClock()
	}
	return &service{
		chats:     deps.Chats,
		presets:   deps.Presets,
		deletions: deps.Deletions,
		status:    deps.Status,
		remote:    deps.Remote,
		auth:      deps.Auth,
		clock:     clock,
		logger:    deps.Logger,
	}
}

// ApplyStats изменения локальной коллекции
type ApplyStats struct {
	Inserted int // новые syncId
	Updated  int // замененные более новой версией
	Deleted  int // отсутствующие в согласованном наборе
}

// Result contains sync operation results
type Result struct {
	Chats              ApplyStats
	Presets            ApplyStats
	UploadedChats      int
	UploadedPresets    int
	UploadedTombstones int
}

// RestoreResult результат восстановления из облака
type RestoreResult struct {
	Chats   []*models.Chat
	Presets []*models.Preset
	Applied Result
	HasData bool
}

// SyncAll performs full synchronization:
// 1. Скачивает chats.json, presets.json и deletions.json
// 2. Согласует их с локальным состоянием и очередью удалений
// 3. Переносит результат в локальное хранилище
// 4. Выгружает результат и очищает очередь удалений
func (s *service) SyncAll(ctx context.Context) (*Result, error) {
	if err := s.status.BeginSync(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Starting synchronization")
	result, err := s.syncAll(ctx)
	s.finish(ctx, err, err == nil)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Synchronization completed",
		"chats_inserted", result.Chats.Inserted,
		"chats_updated", result.Chats.Updated,
		"chats_deleted", result.Chats.Deleted,
		"presets_inserted", result.Presets.Inserted,
		"presets_updated", result.Presets.Updated,
		"presets_deleted", result.Presets.Deleted,
		"tombstones", result.UploadedTombstones)
	return result, nil
}

func (s *service) syncAll(ctx context.Context) (*Result, error) {
	if err := s.requireReady(ctx, true); err != nil {
		return nil, err
	}

	localChats, err := s.chats.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local chats: %w", err)
	}
	localPresets, err := s.presets.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local presets: %w", err)
	}
	pending, err := s.deletions.Drain(ctx)
	if err != nil {
		return nil, err
	}

	// Ошибка скачивания или разбора прерывает раунд до любых записей
	rs, err := s.fetchRemote(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Remote state downloaded",
		"chats", len(rs.chats),
		"presets", len(rs.presets),
		"tombstones", len(rs.tombstones),
		"pending_deletions", len(pending))

	merged := crdt.Reconcile(crdt.ReconcileInput{
		LocalChats:       localChats,
		RemoteChats:      rs.chats,
		LocalPresets:     localPresets,
		RemotePresets:    rs.presets,
		LocalTombstones:  pending,
		RemoteTombstones: rs.tombstones,
	}, s.clock.Now())

	// Правки, сделанные во время раунда, не перезаписываются и уходят
	// в выгрузку вместо согласованной версии
	result := &Result{}
	if merged.Chats, result.Chats, err = applyCollection(ctx, s.chats, localChats, merged.Chats, true); err != nil {
		return nil, fmt.Errorf("failed to apply chats: %w", err)
	}
	if merged.Presets, result.Presets, err = applyCollection(ctx, s.presets, localPresets, merged.Presets, true); err != nil {
		return nil, fmt.Errorf("failed to apply presets: %w", err)
	}

	if err := s.upload(ctx, rs.handles, merged); err != nil {
		return nil, err
	}
	result.UploadedChats = len(merged.Chats)
	result.UploadedPresets = len(merged.Presets)
	result.UploadedTombstones = len(merged.Tombstones)

	// Очередь очищается только после успешной выгрузки deletions.json.
	// Удаления, сделанные после Drain, ждут следующего раунда.
	if err := s.deletions.Clear(ctx, pending); err != nil {
		return nil, err
	}

	return result, nil
}

// RestoreFromCloud скачивает удаленное состояние. Локальные данные не удаляются:
// удаленные версии применяются по тем же правилам LWW, что и при синхронизации.
// lastSync выставляется только если в облаке что-то нашлось.
func (s *service) RestoreFromCloud(ctx context.Context) (*RestoreResult, error) {
	if err := s.status.BeginSync(ctx); err != nil {
		return nil, err
	}

	result, err := s.restore(ctx)
	s.finish(ctx, err, err == nil && result.HasData)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Restore completed",
		"has_data", result.HasData,
		"chats", len(result.Chats),
		"presets", len(result.Presets))
	return result, nil
}

func (s *service) restore(ctx context.Context) (*RestoreResult, error) {
	if err := s.requireReady(ctx, false); err != nil {
		return nil, err
	}

	rs, err := s.fetchRemote(ctx)
	if err != nil {
		return nil, err
	}

	// Локально удаленное не должно вернуться из облака
	pending, err := s.deletions.Drain(ctx)
	if err != nil {
		return nil, err
	}

	merged := crdt.Reconcile(crdt.ReconcileInput{
		RemoteChats:      rs.chats,
		RemotePresets:    rs.presets,
		LocalTombstones:  pending,
		RemoteTombstones: rs.tombstones,
	}, s.clock.Now())

	result := &RestoreResult{
		Chats:   merged.Chats,
		Presets: merged.Presets,
		HasData: len(merged.Chats) > 0 || len(merged.Presets) > 0,
	}
	if !result.HasData {
		return result, nil
	}

	localChats, err := s.chats.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local chats: %w", err)
	}
	localPresets, err := s.presets.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read local presets: %w", err)
	}

	_, result.Applied.Chats, err = applyCollection(ctx, s.chats, localChats, crdt.MergeEntities(localChats, merged.Chats), false)
	if err != nil {
		return nil, fmt.Errorf("failed to apply chats: %w", err)
	}
	_, result.Applied.Presets, err = applyCollection(ctx, s.presets, localPresets, crdt.MergeEntities(localPresets, merged.Presets), false)
	if err != nil {
		return nil, fmt.Errorf("failed to apply presets: %w", err)
	}

	return result, nil
}

// HasCloudData проверяет наличие чатов или пресетов в удаленном хранилище
func (s *service) HasCloudData(ctx context.Context) (bool, error) {
	if err := s.requireReady(ctx, false); err != nil {
		return false, err
	}

	rs, err := s.fetchRemote(ctx)
	if err != nil {
		if remote.IsAuthError(err) {
			_ = s.auth.Invalidate(ctx, "remote store rejected credentials")
		}
		return false, err
	}
	return len(rs.chats) > 0 || len(rs.presets) > 0, nil
}

// DeleteAllData удаляет chats.json, presets.json и deletions.json и очищает
// локальную очередь удалений. Локальные данные не трогаются.
func (s *service) DeleteAllData(ctx context.Context) error {
	if err := s.status.BeginSync(ctx); err != nil {
		return err
	}

	err := s.deleteAll(ctx)
	if err == nil {
		err = s.status.EndSync(ctx, models.StatusPatch{
			LastSync: &time.Time{},
			Error:    models.Ptr(""),
		})
		s.logger.Info("Remote data deleted")
		return err
	}

	s.finish(ctx, err, false)
	return err
}

func (s *service) deleteAll(ctx context.Context) error {
	if err := s.requireReady(ctx, false); err != nil {
		return err
	}

	for _, name := range documentNames {
		handle, err := s.remote.Find(ctx, name)
		if err != nil {
			return fmt.Errorf("failed to find %s: %w", name, err)
		}
		if handle == nil {
			continue
		}
		if err := s.remote.Delete(ctx, handle); err != nil && !remote.IsNotFound(err) {
			return fmt.Errorf("failed to delete %s: %w", name, err)
		}
	}

	pending, err := s.deletions.Drain(ctx)
	if err != nil {
		return err
	}
	return s.deletions.Clear(ctx, pending)
}

// Enable включает синхронизацию
func (s *service) Enable(ctx context.Context) error {
	ok, err := s.auth.IsAuthenticated(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return session.ErrAuthRequired
	}

	_, err = s.status.Update(ctx, models.StatusPatch{Enabled: models.Ptr(true)})
	return err
}

// Disable выключает синхронизацию. Локальные данные и сессия сохраняются.
func (s *service) Disable(ctx context.Context) error {
	_, err := s.status.Update(ctx, models.StatusPatch{Enabled: models.Ptr(false)})
	return err
}

// requireReady проверяет аутентификацию и, если нужно, включенность синхронизации
func (s *service) requireReady(ctx context.Context, requireEnabled bool) error {
	if requireEnabled && !s.status.Get().Enabled {
		return ErrSyncDisabled
	}

	ok, err := s.auth.IsAuthenticated(ctx)
	if err != nil {
		return fmt.Errorf("failed to check authentication: %w", err)
	}
	if !ok {
		return session.ErrAuthRequired
	}
	return nil
}

// finish снимает флаг syncInProgress и записывает итог раунда в статус.
// Ошибка аутентификации переводит статус в authenticated=false.
func (s *service) finish(ctx context.Context, err error, setLastSync bool) {
	patch := models.StatusPatch{}

	switch {
	case err == nil:
		patch.Error = models.Ptr("")
		if setLastSync {
			now := s.clock.Now()
			patch.LastSync = &now
		}
	case remote.IsAuthError(err):
		s.logger.Warn("Remote store rejected credentials", "error", err)
		// Invalidate сам выставляет authenticated=false и текст ошибки
		_ = s.auth.Invalidate(ctx, "remote store rejected credentials")
	case errors.Is(err, session.ErrAuthRequired):
		s.logger.Warn("Sync requires authentication")
		patch.Authenticated = models.Ptr(false)
		patch.Error = models.Ptr(err.Error())
	case errors.Is(err, ErrSyncDisabled):
		// Не ошибка раунда, статус не меняем
	default:
		s.logger.Error("Synchronization failed", "error", err)
		patch.Error = models.Ptr(err.Error())
	}

	if endErr := s.status.EndSync(ctx, patch); endErr != nil {
		s.logger.Error("Failed to update sync status", "error", endErr)
	}
}
