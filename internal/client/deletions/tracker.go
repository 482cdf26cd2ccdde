// Package deletions ведет очередь записей об удалении, которые еще не
// отправлены в удаленное хранилище.
package deletions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

// Tracker читает и подтверждает очередь удалений. Записи в очередь попадают
// только через Collection.DeleteWithTombstone, в одной транзакции с
// удалением сущности, так что удаление без tombstone невозможно. Очередь
// копится и без входа в аккаунт: такие удаления уйдут при первой синхронизации.
type Tracker struct {
	store  storage.DeletionStorage
	logger *slog.Logger
}

// NewTracker создает трекер удалений
func NewTracker(store storage.DeletionStorage, logger *slog.Logger) *Tracker {
	return &Tracker{
		store:  store,
		logger: logger,
	}
}

// Drain возвращает накопленные tombstone без очистки очереди.
// Очередь очищается только после успешной загрузки через Clear.
func (t *Tracker) Drain(ctx context.Context) ([]models.Tombstone, error) {
	pending, err := t.store.PendingDeletions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read pending deletions: %w", err)
	}
	return pending, nil
}

// Clear убирает из очереди ровно drained. Удаления, сделанные после Drain,
// остаются до следующего раунда.
func (t *Tracker) Clear(ctx context.Context, drained []models.Tombstone) error {
	if err := t.store.RemoveDeletions(ctx, drained); err != nil {
		return fmt.Errorf("failed to clear pending deletions: %w", err)
	}
	t.logger.Debug("Pending deletions confirmed", "count", len(drained))
	return nil
}
