package storage

import (
	"context"

	"github.com/iudanet/chatsync/internal/models"
)

// StatusStorage persists the sync status between runs
type StatusStorage interface {
	// SaveStatus stores status as-is
	SaveStatus(ctx context.Context, status models.SyncStatus) error

	// LoadStatus returns stored status, zero value if nothing was stored yet
	LoadStatus(ctx context.Context) (models.SyncStatus, error)
}
