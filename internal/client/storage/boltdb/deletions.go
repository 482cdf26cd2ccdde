package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/chatsync/internal/models"
)

// PendingDeletions returns queued tombstones in insertion order
func (s *Storage) PendingDeletions(ctx context.Context) ([]models.Tombstone, error) {
	var result []models.Tombstone

	err := s.view(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketDeletions).ForEach(func(k, v []byte) error {
			var t models.Tombstone
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("failed to unmarshal tombstone: %w", err)
			}
			result = append(result, t)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RemoveDeletions deletes exactly the given tombstones from the queue
func (s *Storage) RemoveDeletions(ctx context.Context, tombstones []models.Tombstone) error {
	if len(tombstones) == 0 {
		return nil
	}

	type entry struct {
		key models.TombstoneKey
		at  int64
	}
	drop := make(map[entry]struct{}, len(tombstones))
	for _, t := range tombstones {
		drop[entry{key: t.Key(), at: t.DeletedAt.UnixNano()}] = struct{}{}
	}

	return s.update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketDeletions)

		// Удалять внутри ForEach нельзя, сначала собираем ключи
		var keys [][]byte
		err := bucket.ForEach(func(k, v []byte) error {
			var t models.Tombstone
			if err := json.Unmarshal(v, &t); err != nil {
				return fmt.Errorf("failed to unmarshal tombstone: %w", err)
			}
			if _, ok := drop[entry{key: t.Key(), at: t.DeletedAt.UnixNano()}]; ok {
				keys = append(keys, append([]byte(nil), k...))
			}
			return nil
		})
		if err != nil {
			return err
		}

		for _, k := range keys {
			if err := bucket.Delete(k); err != nil {
				return fmt.Errorf("failed to delete tombstone: %w", err)
			}
		}
		return nil
	})
}

// appendDeletion пишет tombstone в очередь внутри открытой транзакции.
// Используется коллекциями для атомарного удаления.
func appendDeletion(tx *bbolt.Tx, tombstone models.Tombstone) error {
	bucket := tx.Bucket(bucketDeletions)

	seq, err := bucket.NextSequence()
	if err != nil {
		return fmt.Errorf("failed to allocate deletion id: %w", err)
	}

	data, err := json.Marshal(tombstone)
	if err != nil {
		return fmt.Errorf("failed to marshal tombstone: %w", err)
	}

	if err := bucket.Put(itob(seq), data); err != nil {
		return fmt.Errorf("failed to save tombstone: %w", err)
	}
	return nil
}
