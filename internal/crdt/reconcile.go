package crdt

import (
	"time"

	"github.com/iudanet/chatsync/internal/models"
)

// ReconcileInput локальное и удаленное состояние одного раунда синхронизации.
type ReconcileInput struct {
	LocalChats       []*models.Chat
	RemoteChats      []*models.Chat
	LocalPresets     []*models.Preset
	RemotePresets    []*models.Preset
	LocalTombstones  []models.Tombstone
	RemoteTombstones []models.Tombstone
}

// ReconcileResult согласованное состояние, которое записывается в обе стороны.
type ReconcileResult struct {
	Chats      []*models.Chat
	Presets    []*models.Preset
	Tombstones []models.Tombstone
}

// Reconcile объединяет обе коллекции и применяет к ним общий набор
// записей об удалении. Функция чистая: входные срезы не меняются.
func Reconcile(in ReconcileInput, now time.Time) ReconcileResult {
	tombstones := MergeTombstones(in.LocalTombstones, in.RemoteTombstones, now)

	return ReconcileResult{
		Chats:      ApplyTombstones(MergeEntities(in.LocalChats, in.RemoteChats), tombstones),
		Presets:    ApplyTombstones(MergeEntities(in.LocalPresets, in.RemotePresets), tombstones),
		Tombstones: tombstones,
	}
}
