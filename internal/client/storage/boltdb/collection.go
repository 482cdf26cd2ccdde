package boltdb

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

// collection хранит сущности одного типа: основной bucket (localId -> JSON)
// и индекс (syncId -> localId).
type collection[T models.Entity] struct {
	store       *Storage
	newEntity   func() T
	kind        models.EntityType
	bucket      []byte
	indexBucket []byte
}

var _ storage.Collection[*models.Chat] = (*collection[*models.Chat])(nil)

// ListAll returns every stored entity ordered by local id
func (c *collection[T]) ListAll(ctx context.Context) ([]T, error) {
	var result []T

	err := c.store.view(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(c.bucket)
		if bucket == nil {
			return fmt.Errorf("%s bucket not found", c.bucket)
		}

		return bucket.ForEach(func(k, v []byte) error {
			entity, err := c.decode(k, v)
			if err != nil {
				return err
			}
			result = append(result, entity)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetByID returns entity by local id
func (c *collection[T]) GetByID(ctx context.Context, id uint64) (T, error) {
	var entity T

	err := c.store.view(func(tx *bbolt.Tx) error {
		var err error
		entity, err = c.get(tx, id)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return entity, nil
}

// GetBySyncID returns entity by syncId
func (c *collection[T]) GetBySyncID(ctx context.Context, syncID string) (T, error) {
	var entity T

	err := c.store.view(func(tx *bbolt.Tx) error {
		raw := tx.Bucket(c.indexBucket).Get([]byte(syncID))
		if raw == nil {
			return storage.ErrNotFound
		}
		var err error
		entity, err = c.get(tx, btoi(raw))
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}

	return entity, nil
}

// InsertWithSyncID stores a new entity and assigns its local id
func (c *collection[T]) InsertWithSyncID(ctx context.Context, entity T) (uint64, error) {
	if entity.GetSyncID() == "" {
		return 0, storage.ErrMissingSyncID
	}

	var id uint64
	err := c.store.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(c.bucket)
		index := tx.Bucket(c.indexBucket)

		if index.Get([]byte(entity.GetSyncID())) != nil {
			return storage.ErrDuplicateSyncID
		}

		next, err := bucket.NextSequence()
		if err != nil {
			return fmt.Errorf("failed to allocate id: %w", err)
		}

		entity.SetLocalID(next)
		if err := c.put(tx, entity); err != nil {
			return err
		}
		id = next
		return nil
	})
	if err != nil {
		entity.SetLocalID(0)
		return 0, err
	}

	return id, nil
}

// Update replaces stored entity. syncId may not change, indexes are kept consistent anyway.
func (c *collection[T]) Update(ctx context.Context, entity T) error {
	return c.store.update(func(tx *bbolt.Tx) error {
		existing, err := c.get(tx, entity.GetLocalID())
		if err != nil {
			return err
		}
		return c.replace(tx, existing, entity)
	})
}

// ReplaceIfStale replaces stored entity unless the stored version is newer.
// Чтение и запись в одной транзакции.
func (c *collection[T]) ReplaceIfStale(ctx context.Context, entity T) (bool, error) {
	written := false

	err := c.store.update(func(tx *bbolt.Tx) error {
		existing, err := c.get(tx, entity.GetLocalID())
		if err != nil {
			return err
		}
		if existing.GetUpdatedAt().After(entity.GetUpdatedAt()) {
			return nil
		}
		if err := c.replace(tx, existing, entity); err != nil {
			return err
		}
		written = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return written, nil
}

// DeleteIfStale removes entity without a tombstone unless it changed after seen
func (c *collection[T]) DeleteIfStale(ctx context.Context, id uint64, seen time.Time) (bool, error) {
	removed := false

	err := c.store.update(func(tx *bbolt.Tx) error {
		existing, err := c.get(tx, id)
		if err != nil {
			return err
		}
		if existing.GetUpdatedAt().After(seen) {
			return nil
		}
		if _, err := c.remove(tx, id); err != nil {
			return err
		}
		removed = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return removed, nil
}

// DeleteWithTombstone removes entity and enqueues its tombstone atomically
func (c *collection[T]) DeleteWithTombstone(ctx context.Context, id uint64, deletedAt time.Time) (models.Tombstone, error) {
	var tombstone models.Tombstone

	err := c.store.update(func(tx *bbolt.Tx) error {
		removed, err := c.remove(tx, id)
		if err != nil {
			return err
		}

		tombstone = models.Tombstone{
			Type:      c.kind,
			SyncID:    removed.GetSyncID(),
			DeletedAt: deletedAt,
		}
		return appendDeletion(tx, tombstone)
	})
	if err != nil {
		return models.Tombstone{}, err
	}

	return tombstone, nil
}

// ExistsByName reports whether another entity has the given name
func (c *collection[T]) ExistsByName(ctx context.Context, name string, excludeID uint64) (bool, error) {
	found := false

	err := c.store.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(c.bucket).ForEach(func(k, v []byte) error {
			if btoi(k) == excludeID {
				return nil
			}
			entity, err := c.decode(k, v)
			if err != nil {
				return err
			}
			if entity.GetName() == name {
				found = true
			}
			return nil
		})
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

func (c *collection[T]) get(tx *bbolt.Tx, id uint64) (T, error) {
	var zero T

	key := itob(id)
	data := tx.Bucket(c.bucket).Get(key)
	if data == nil {
		return zero, storage.ErrNotFound
	}

	return c.decode(key, data)
}

func (c *collection[T]) put(tx *bbolt.Tx, entity T) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", c.kind, err)
	}

	key := itob(entity.GetLocalID())
	if err := tx.Bucket(c.bucket).Put(key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.kind, err)
	}
	if err := tx.Bucket(c.indexBucket).Put([]byte(entity.GetSyncID()), key); err != nil {
		return fmt.Errorf("failed to update index: %w", err)
	}

	return nil
}

// replace пишет entity поверх existing, перенося индекс при смене syncId
func (c *collection[T]) replace(tx *bbolt.Tx, existing, entity T) error {
	if existing.GetSyncID() != entity.GetSyncID() {
		index := tx.Bucket(c.indexBucket)
		if entity.GetSyncID() == "" {
			return storage.ErrMissingSyncID
		}
		if index.Get([]byte(entity.GetSyncID())) != nil {
			return storage.ErrDuplicateSyncID
		}
		if err := index.Delete([]byte(existing.GetSyncID())); err != nil {
			return fmt.Errorf("failed to update index: %w", err)
		}
	}

	return c.put(tx, entity)
}

func (c *collection[T]) remove(tx *bbolt.Tx, id uint64) (T, error) {
	existing, err := c.get(tx, id)
	if err != nil {
		return existing, err
	}

	if err := tx.Bucket(c.bucket).Delete(itob(id)); err != nil {
		return existing, fmt.Errorf("failed to delete %s: %w", c.kind, err)
	}
	if err := tx.Bucket(c.indexBucket).Delete([]byte(existing.GetSyncID())); err != nil {
		return existing, fmt.Errorf("failed to update index: %w", err)
	}

	return existing, nil
}

func (c *collection[T]) decode(key, data []byte) (T, error) {
	entity := c.newEntity()
	if err := json.Unmarshal(data, entity); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to unmarshal %s: %w", c.kind, err)
	}
	entity.SetLocalID(btoi(key))
	return entity, nil
}

// itob кодирует id в big-endian, чтобы ForEach шел в порядке возрастания
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func btoi(b []byte) uint64 {
	if len(b) != 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}
