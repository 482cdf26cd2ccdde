package models

import (
	"encoding/json"
	"time"
)

// EntityType тип синхронизируемой сущности. Значения совпадают с полем type
// в документе удалений.
type EntityType string

const (
	EntityChat   EntityType = "chat"
	EntityPreset EntityType = "preset"
)

// Valid сообщает, известен ли тип.
func (t EntityType) Valid() bool {
	return t == EntityChat || t == EntityPreset
}

// Entity общий контракт чатов и пресетов, которым пользуется движок слияния
// и локальное хранилище.
type Entity interface {
	Kind() EntityType
	GetSyncID() string
	GetLocalID() uint64
	SetLocalID(id uint64)
	GetName() string
	GetUpdatedAt() time.Time
}

// Chat сохраненный диалог.
type Chat struct {
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
	SyncID     string          `json:"syncId"`
	Name       string          `json:"name"`
	Title      string          `json:"title"`
	Source     string          `json:"source,omitempty"`
	PresetName string          `json:"presetName,omitempty"`
	Settings   json.RawMessage `json:"settings,omitempty"`
	Messages   []Message       `json:"messages"`
	LocalID    uint64          `json:"-"` // LocalID ключ в локальном хранилище, на другие устройства не передается
}

// Message одно сообщение диалога.
type Message struct {
	Role        string       `json:"role"`
	Content     string       `json:"content"`
	Images      []string     `json:"images,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
}

// Attachment вложение пользователя в сообщении.
type Attachment struct {
	Name    string `json:"name"`
	Preview string `json:"preview"`
	Type    string `json:"type"`
	URL     string `json:"url"`
}

// Источники чатов
const (
	SourceChatGPT  = "chatgpt"
	SourceClaude   = "claude"
	SourceGemini   = "gemini"
	SourceDeepSeek = "deepseek"
)

func (c *Chat) Kind() EntityType        { return EntityChat }
func (c *Chat) GetSyncID() string       { return c.SyncID }
func (c *Chat) GetLocalID() uint64      { return c.LocalID }
func (c *Chat) SetLocalID(id uint64)    { c.LocalID = id }
func (c *Chat) GetName() string         { return c.Name }
func (c *Chat) GetUpdatedAt() time.Time { return c.UpdatedAt }

// Clone создает глубокую копию чата
func (c *Chat) Clone() *Chat {
	out := *c
	out.Settings = cloneRaw(c.Settings)
	if c.Messages != nil {
		out.Messages = make([]Message, len(c.Messages))
		for i, m := range c.Messages {
			m.Images = append([]string(nil), m.Images...)
			m.Attachments = append([]Attachment(nil), m.Attachments...)
			out.Messages[i] = m
		}
	}
	return &out
}

// Preset именованный набор настроек экспорта.
type Preset struct {
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	SyncID    string          `json:"syncId"`
	Name      string          `json:"name"`
	Settings  json.RawMessage `json:"settings"`
	LocalID   uint64          `json:"-"`
}

func (p *Preset) Kind() EntityType        { return EntityPreset }
func (p *Preset) GetSyncID() string       { return p.SyncID }
func (p *Preset) GetLocalID() uint64      { return p.LocalID }
func (p *Preset) SetLocalID(id uint64)    { p.LocalID = id }
func (p *Preset) GetName() string         { return p.Name }
func (p *Preset) GetUpdatedAt() time.Time { return p.UpdatedAt }

// Clone создает глубокую копию пресета
func (p *Preset) Clone() *Preset {
	out := *p
	out.Settings = cloneRaw(p.Settings)
	return &out
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	out := make(json.RawMessage, len(raw))
	copy(out, raw)
	return out
}
