package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/chatsync/internal/models"
)

var currentKey = []byte("current")

// SaveStatus stores the sync status
func (s *Storage) SaveStatus(ctx context.Context, status models.SyncStatus) error {
	return s.update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(status)
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}

		if err := tx.Bucket(bucketStatus).Put(currentKey, data); err != nil {
			return fmt.Errorf("failed to save status: %w", err)
		}
		return nil
	})
}

// LoadStatus returns the stored sync status or zero value
func (s *Storage) LoadStatus(ctx context.Context) (models.SyncStatus, error) {
	var status models.SyncStatus

	err := s.view(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketStatus).Get(currentKey)
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &status); err != nil {
			return fmt.Errorf("failed to unmarshal status: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.SyncStatus{}, err
	}

	return status, nil
}
