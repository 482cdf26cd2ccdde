package models

import "time"

// Имена документов в удаленном хранилище
const (
	DocumentChats     = "chats.json"
	DocumentPresets   = "presets.json"
	DocumentDeletions = "deletions.json"
)

// Версии форматов документов
const (
	EntityDocumentVersion   = "2.0"
	DeletionDocumentVersion = "1.0"
)

// ChatsDocument содержимое chats.json
type ChatsDocument struct {
	LastModified time.Time `json:"lastModified"`
	Version      string    `json:"version"`
	Chats        []*Chat   `json:"chats"`
}

// PresetsDocument содержимое presets.json
type PresetsDocument struct {
	LastModified time.Time `json:"lastModified"`
	Version      string    `json:"version"`
	Presets      []*Preset `json:"presets"`
}

// DeletionsDocument содержимое deletions.json
type DeletionsDocument struct {
	Version   string      `json:"version"`
	Deletions []Tombstone `json:"deletions"`
}
