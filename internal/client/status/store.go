// Package status хранит наблюдаемое состояние синхронизации.
package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

// ErrSyncInProgress возвращается при попытке начать второй раунд синхронизации
var ErrSyncInProgress = errors.New("sync already in progress")

// Store единственный источник правды о статусе синхронизации. Все изменения
// проходят под одним мьютексом, сохраняются и рассылаются подписчикам.
type Store struct {
	storage storage.StatusStorage
	logger  *slog.Logger
	subs    map[int]chan models.SyncStatus
	state   models.SyncStatus
	nextSub int
	mu      sync.Mutex
}

// Open загружает сохраненный статус. Флаг syncInProgress, оставшийся после
// аварийного завершения, сбрасывается: раунд не мог пережить процесс.
func Open(ctx context.Context, st storage.StatusStorage, logger *slog.Logger) (*Store, error) {
	state, err := st.LoadStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load sync status: %w", err)
	}

	s := &Store{
		storage: st,
		logger:  logger,
		subs:    make(map[int]chan models.SyncStatus),
		state:   state,
	}

	if state.SyncInProgress {
		logger.Warn("Resetting stale sync-in-progress flag")
		state.SyncInProgress = false
		if err := st.SaveStatus(ctx, state); err != nil {
			return nil, fmt.Errorf("failed to reset sync status: %w", err)
		}
		s.state = state
	}

	return s, nil
}

// Get возвращает копию текущего статуса
func (s *Store) Get() models.SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update применяет частичное обновление
func (s *Store) Update(ctx context.Context, patch models.StatusPatch) (models.SyncStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, s.state.Apply(patch)); err != nil {
		return s.state, err
	}
	return s.state, nil
}

// BeginSync атомарно проверяет и выставляет syncInProgress.
// Возвращает ErrSyncInProgress если раунд уже идет.
func (s *Store) BeginSync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.SyncInProgress {
		return ErrSyncInProgress
	}

	next := s.state
	next.SyncInProgress = true
	return s.commit(ctx, next)
}

// EndSync снимает syncInProgress и применяет итог раунда
func (s *Store) EndSync(ctx context.Context, patch models.StatusPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Apply(patch)
	next.SyncInProgress = false
	if err := s.commit(ctx, next); err != nil {
		// В памяти флаг снимается в любом случае
		s.state = next
		s.publish()
		return err
	}
	return nil
}

// Subscribe возвращает канал с новыми состояниями и функцию отписки.
// Медленный подписчик пропускает промежуточные состояния, но всегда
// получает последнее.
func (s *Store) Subscribe() (<-chan models.SyncStatus, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	ch := make(chan models.SyncStatus, 1)
	s.subs[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

// commit сохраняет состояние и уведомляет подписчиков. Вызывается под мьютексом.
func (s *Store) commit(ctx context.Context, next models.SyncStatus) error {
	if err := s.storage.SaveStatus(ctx, next); err != nil {
		return fmt.Errorf("failed to save sync status: %w", err)
	}
	s.state = next
	s.publish()
	return nil
}

func (s *Store) publish() {
	for _, ch := range s.subs {
		select {
		case ch <- s.state:
		default:
			// Вытесняем устаревшее значение
			select {
			case <-ch:
			default:
			}
			ch <- s.state
		}
	}
}
