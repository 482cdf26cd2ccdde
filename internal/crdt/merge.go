package crdt

import (
	"time"

	"github.com/iudanet/chatsync/internal/models"
)

// TombstoneRetention сколько хранятся записи об удалении. Устройство,
// не синхронизировавшееся дольше, может вернуть удаленную сущность.
const TombstoneRetention = 30 * 24 * time.Hour

// MergeEntities объединяет локальный и удаленный списки по syncId по правилу
// LWW (Last-Write-Wins):
// - сущность без syncId отбрасывается
// - сущность только с одной стороны сохраняется
// - с обеих сторон побеждает строго больший updatedAt, при равенстве локальная
//
// Порядок результата не определен.
func MergeEntities[T models.Entity](local, remote []T) []T {
	merged := make(map[string]T, len(local)+len(remote))

	for _, e := range local {
		if e.GetSyncID() == "" {
			continue
		}
		if existing, ok := merged[e.GetSyncID()]; ok && !e.GetUpdatedAt().After(existing.GetUpdatedAt()) {
			continue
		}
		merged[e.GetSyncID()] = e
	}

	for _, e := range remote {
		if e.GetSyncID() == "" {
			continue
		}
		existing, ok := merged[e.GetSyncID()]
		// Удаленная версия выигрывает только если она строго новее
		if ok && !e.GetUpdatedAt().After(existing.GetUpdatedAt()) {
			continue
		}
		merged[e.GetSyncID()] = e
	}

	result := make([]T, 0, len(merged))
	for _, e := range merged {
		result = append(result, e)
	}
	return result
}

// MergeTombstones объединяет записи об удалении по ключу (type, syncId).
// При конфликте сохраняется самый ранний deletedAt, и только после этого
// отбрасываются записи старше now - TombstoneRetention: истекшая ранняя
// запись не уступает место более поздней повторной.
func MergeTombstones(local, remote []models.Tombstone, now time.Time) []models.Tombstone {
	merged := make(map[models.TombstoneKey]models.Tombstone, len(local)+len(remote))
	order := make([]models.TombstoneKey, 0, len(local)+len(remote))

	add := func(t models.Tombstone) {
		if t.SyncID == "" {
			return
		}
		key := t.Key()
		existing, ok := merged[key]
		if !ok {
			order = append(order, key)
			merged[key] = t
			return
		}
		if t.DeletedAt.Before(existing.DeletedAt) {
			merged[key] = t
		}
	}

	for _, t := range local {
		add(t)
	}
	for _, t := range remote {
		add(t)
	}

	cutoff := now.Add(-TombstoneRetention)
	result := make([]models.Tombstone, 0, len(order))
	for _, key := range order {
		if t := merged[key]; t.DeletedAt.After(cutoff) {
			result = append(result, t)
		}
	}
	return result
}

// ApplyTombstones убирает сущности, для которых есть запись об удалении.
// Сущность измененная после удаления (updatedAt > deletedAt) сохраняется.
func ApplyTombstones[T models.Entity](entities []T, tombstones []models.Tombstone) []T {
	deleted := make(map[models.TombstoneKey]time.Time, len(tombstones))
	for _, t := range tombstones {
		key := t.Key()
		if existing, ok := deleted[key]; !ok || t.DeletedAt.Before(existing) {
			deleted[key] = t.DeletedAt
		}
	}

	result := make([]T, 0, len(entities))
	for _, e := range entities {
		deletedAt, ok := deleted[models.TombstoneKey{Type: e.Kind(), SyncID: e.GetSyncID()}]
		if ok && !e.GetUpdatedAt().After(deletedAt) {
			continue
		}
		result = append(result, e)
	}
	return result
}
