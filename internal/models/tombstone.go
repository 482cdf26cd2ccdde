package models

import "time"

// Tombstone запись об удалении сущности. Распространяется через документ
// удалений, чтобы другие устройства не вернули удаленную сущность обратно.
type Tombstone struct {
	DeletedAt time.Time  `json:"deletedAt"`
	Type      EntityType `json:"type"`
	SyncID    string     `json:"syncId"`
}

// TombstoneKey ключ идентичности tombstone: (type, syncId).
type TombstoneKey struct {
	Type   EntityType
	SyncID string
}

// Key возвращает ключ идентичности tombstone
func (t Tombstone) Key() TombstoneKey {
	return TombstoneKey{Type: t.Type, SyncID: t.SyncID}
}
