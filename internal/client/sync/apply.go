package sync

import (
	"context"
	"errors"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

// applyCollection приводит локальную коллекцию к согласованному набору:
// новые syncId вставляются, более новые версии заменяют локальные. С deleteMissing
// локальные сущности, которых нет в наборе, удаляются без записи в очередь удалений.
//
// local снимок, по которому считался merged. Строка, измененная после снимка,
// не перезаписывается и не удаляется: возвращаемый набор для выгрузки
// содержит ее текущую версию.
func applyCollection[T models.Entity](
	ctx context.Context,
	coll storage.Collection[T],
	local []T,
	merged []T,
	deleteMissing bool,
) ([]T, ApplyStats, error) {
	var stats ApplyStats

	bySyncID := make(map[string]T, len(local))
	for _, e := range local {
		if e.GetSyncID() != "" {
			bySyncID[e.GetSyncID()] = e
		}
	}

	upload := make([]T, 0, len(merged))
	keep := make(map[string]struct{}, len(merged))
	for _, e := range merged {
		keep[e.GetSyncID()] = struct{}{}

		existing, ok := bySyncID[e.GetSyncID()]
		if !ok {
			if _, err := coll.InsertWithSyncID(ctx, e); err != nil {
				return nil, stats, err
			}
			stats.Inserted++
			upload = append(upload, e)
			continue
		}

		if existing.GetUpdatedAt().Equal(e.GetUpdatedAt()) {
			upload = append(upload, e)
			continue
		}
		e.SetLocalID(existing.GetLocalID())
		written, err := coll.ReplaceIfStale(ctx, e)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			// Удалена во время раунда, ее tombstone уйдет следующим раундом
			upload = append(upload, e)
			continue
		case err != nil:
			return nil, stats, err
		}
		if !written {
			current, err := coll.GetByID(ctx, e.GetLocalID())
			if err != nil {
				return nil, stats, err
			}
			upload = append(upload, current)
			continue
		}
		stats.Updated++
		upload = append(upload, e)
	}

	if !deleteMissing {
		return upload, stats, nil
	}

	for _, e := range local {
		if _, ok := keep[e.GetSyncID()]; ok {
			continue
		}
		removed, err := coll.DeleteIfStale(ctx, e.GetLocalID(), e.GetUpdatedAt())
		switch {
		case errors.Is(err, storage.ErrNotFound):
			continue
		case err != nil:
			return nil, stats, err
		}
		if !removed {
			// Правка новее удаления: сущность возвращается
			current, err := coll.GetByID(ctx, e.GetLocalID())
			if err != nil {
				return nil, stats, err
			}
			upload = append(upload, current)
			continue
		}
		stats.Deleted++
	}

	return upload, stats, nil
}
