package storage

import (
	"context"

	"github.com/iudanet/chatsync/internal/models"
)

// DeletionStorage durable queue of tombstones not yet uploaded. Entries are
// appended only by Collection.DeleteWithTombstone.
type DeletionStorage interface {
	// PendingDeletions returns queued tombstones without removing them
	PendingDeletions(ctx context.Context) ([]models.Tombstone, error)

	// RemoveDeletions removes the given tombstones, matched by type, syncId
	// and deletedAt. Entries appended after they were read stay queued.
	RemoveDeletions(ctx context.Context, tombstones []models.Tombstone) error
}
