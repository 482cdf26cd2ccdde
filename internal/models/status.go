package models

import "time"

// SyncStatus наблюдаемое состояние синхронизации.
type SyncStatus struct {
	LastSync       time.Time `json:"lastSync,omitzero"`
	Error          string    `json:"error,omitempty"`
	Email          string    `json:"email,omitempty"`
	Enabled        bool      `json:"enabled"`
	Authenticated  bool      `json:"authenticated"`
	SyncInProgress bool      `json:"syncInProgress"`
}

// StatusPatch частичное обновление статуса: nil поля не меняются.
// SyncInProgress меняется только через BeginSync/FinishSync хранилища статуса.
type StatusPatch struct {
	Enabled       *bool
	Authenticated *bool
	LastSync      *time.Time
	Error         *string
	Email         *string
}

// Apply возвращает копию статуса с примененным патчем
func (s SyncStatus) Apply(p StatusPatch) SyncStatus {
	if p.Enabled != nil {
		s.Enabled = *p.Enabled
	}
	if p.Authenticated != nil {
		s.Authenticated = *p.Authenticated
	}
	if p.LastSync != nil {
		s.LastSync = *p.LastSync
	}
	if p.Error != nil {
		s.Error = *p.Error
	}
	if p.Email != nil {
		s.Email = *p.Email
	}
	return s
}

// Ptr возвращает указатель на значение, удобно для StatusPatch.
func Ptr[T any](v T) *T {
	return &v
}
