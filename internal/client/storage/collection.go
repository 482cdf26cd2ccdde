package storage

import (
	"context"
	"time"

	"github.com/iudanet/chatsync/internal/models"
)

// Collection defines the local store contract for one entity collection
// (chats or presets). Local ids are assigned by the store and never leave
// the device.
type Collection[T models.Entity] interface {
	// ListAll returns every stored entity
	ListAll(ctx context.Context) ([]T, error)

	// GetByID returns entity by local id, ErrNotFound if absent
	GetByID(ctx context.Context, id uint64) (T, error)

	// GetBySyncID returns entity by syncId, ErrNotFound if absent
	GetBySyncID(ctx context.Context, syncID string) (T, error)

	// InsertWithSyncID stores a new entity keeping its syncId and assigns a local id.
	// Returns ErrDuplicateSyncID if the syncId is already present.
	InsertWithSyncID(ctx context.Context, entity T) (uint64, error)

	// Update replaces the entity stored under entity.GetLocalID()
	Update(ctx context.Context, entity T) error

	// ReplaceIfStale replaces the entity stored under entity.GetLocalID() unless
	// the stored updatedAt is after entity's. Reports whether it wrote.
	// Used when applying remote state so a concurrent local edit is kept.
	ReplaceIfStale(ctx context.Context, entity T) (bool, error)

	// DeleteIfStale removes the entity without a tombstone unless it was
	// updated after seen. Reports whether it removed.
	DeleteIfStale(ctx context.Context, id uint64, seen time.Time) (bool, error)

	// DeleteWithTombstone removes the entity and appends a tombstone to the
	// pending deletion queue in the same transaction.
	DeleteWithTombstone(ctx context.Context, id uint64, deletedAt time.Time) (models.Tombstone, error)

	// ExistsByName reports whether another entity (local id != excludeID) has this name
	ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error)
}
