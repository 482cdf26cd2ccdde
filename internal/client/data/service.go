package data

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/crdt"
	"github.com/iudanet/chatsync/internal/models"
)

var (
	// ErrNameTaken имя уже занято другой сущностью той же коллекции
	ErrNameTaken = errors.New("name already exists")

	// ErrNotFound сущность не найдена
	ErrNotFound = storage.ErrNotFound
)

// Notifier получает сигнал о локальном изменении, например AutoSyncer
type Notifier interface {
	Trigger()
}

// Service локальные операции над чатами и пресетами. Каждая мутация
// ставит updatedAt по монотонным часам и сообщает Notifier.
type Service interface {
	CreateChat(ctx context.Context, chat *models.Chat) (*models.Chat, error)
	GetChat(ctx context.Context, id uint64) (*models.Chat, error)
	ListChats(ctx context.Context) ([]*models.Chat, error)
	UpdateChat(ctx context.Context, chat *models.Chat) error
	RenameChat(ctx context.Context, id uint64, name string) error
	DuplicateChat(ctx context.Context, id uint64, name string) (*models.Chat, error)
	DeleteChat(ctx context.Context, id uint64) error

	CreatePreset(ctx context.Context, preset *models.Preset) (*models.Preset, error)
	GetPreset(ctx context.Context, id uint64) (*models.Preset, error)
	ListPresets(ctx context.Context) ([]*models.Preset, error)
	UpdatePreset(ctx context.Context, preset *models.Preset) error
	RenamePreset(ctx context.Context, id uint64, name string) error
	DuplicatePreset(ctx context.Context, id uint64, name string) (*models.Preset, error)
	DeletePreset(ctx context.Context, id uint64) error
}

type service struct {
	chats    storage.Collection[*models.Chat]
	presets  storage.Collection[*models.Preset]
	clock    *crdt.Clock
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new data service. notifier может быть nil.
func NewService(
	chats storage.Collection[*models.Chat],
	presets storage.Collection[*models.Preset],
	clock *crdt.Clock,
	notifier Notifier,
	logger *slog.Logger,
) Service {
	return &service{
		chats:    chats,
		presets:  presets,
		clock:    clock,
		notifier: notifier,
		logger:   logger,
	}
}

// CreateChat сохраняет новый чат. syncId генерируется, если не задан.
func (s *service) CreateChat(ctx context.Context, chat *models.Chat) (*models.Chat, error) {
	if err := checkName(ctx, s.chats, chat.Name, 0); err != nil {
		return nil, err
	}

	if chat.SyncID == "" {
		chat.SyncID = uuid.NewString()
	}
	if chat.Title == "" {
		chat.Title = chat.Name
	}
	now := s.clock.Tick()
	if chat.CreatedAt.IsZero() {
		chat.CreatedAt = now
	}
	chat.UpdatedAt = now

	if _, err := s.chats.InsertWithSyncID(ctx, chat); err != nil {
		return nil, fmt.Errorf("failed to save chat: %w", err)
	}

	s.logger.Info("Chat created", "id", chat.LocalID, "sync_id", chat.SyncID)
	s.changed()
	return chat, nil
}

// GetChat retrieves a chat by local id
func (s *service) GetChat(ctx context.Context, id uint64) (*models.Chat, error) {
	return s.chats.GetByID(ctx, id)
}

// ListChats returns all chats
func (s *service) ListChats(ctx context.Context) ([]*models.Chat, error) {
	return s.chats.ListAll(ctx)
}

// UpdateChat заменяет содержимое чата. syncId и createdAt остаются прежними.
func (s *service) UpdateChat(ctx context.Context, chat *models.Chat) error {
	existing, err := s.chats.GetByID(ctx, chat.LocalID)
	if err != nil {
		return err
	}
	if err := checkName(ctx, s.chats, chat.Name, chat.LocalID); err != nil {
		return err
	}

	chat.SyncID = existing.SyncID
	chat.CreatedAt = existing.CreatedAt
	chat.UpdatedAt = s.clock.Tick()

	if err := s.chats.Update(ctx, chat); err != nil {
		return fmt.Errorf("failed to update chat: %w", err)
	}

	s.changed()
	return nil
}

// RenameChat меняет имя чата
func (s *service) RenameChat(ctx context.Context, id uint64, name string) error {
	chat, err := s.chats.GetByID(ctx, id)
	if err != nil {
		return err
	}
	chat.Name = name
	return s.UpdateChat(ctx, chat)
}

// DuplicateChat создает копию чата с новым syncId. Пустое name дает "<имя> (copy)".
func (s *service) DuplicateChat(ctx context.Context, id uint64, name string) (*models.Chat, error) {
	src, err := s.chats.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		if name, err = copyName(ctx, s.chats, src.Name); err != nil {
			return nil, err
		}
	}

	dup := src.Clone()
	dup.LocalID = 0
	dup.SyncID = ""
	dup.CreatedAt = time.Time{}
	dup.Name = name
	return s.CreateChat(ctx, dup)
}

// DeleteChat удаляет чат и ставит tombstone в очередь одной транзакцией
func (s *service) DeleteChat(ctx context.Context, id uint64) error {
	tombstone, err := s.chats.DeleteWithTombstone(ctx, id, s.clock.Tick())
	if err != nil {
		return err
	}

	s.logger.Info("Chat deleted", "id", id, "sync_id", tombstone.SyncID)
	s.changed()
	return nil
}

// CreatePreset сохраняет новый пресет
func (s *service) CreatePreset(ctx context.Context, preset *models.Preset) (*models.Preset, error) {
	if err := checkName(ctx, s.presets, preset.Name, 0); err != nil {
		return nil, err
	}

	if preset.SyncID == "" {
		preset.SyncID = uuid.NewString()
	}
	now := s.clock.Tick()
	if preset.CreatedAt.IsZero() {
		preset.CreatedAt = now
	}
	preset.UpdatedAt = now

	if _, err := s.presets.InsertWithSyncID(ctx, preset); err != nil {
		return nil, fmt.Errorf("failed to save preset: %w", err)
	}

	s.logger.Info("Preset created", "id", preset.LocalID, "sync_id", preset.SyncID)
	s.changed()
	return preset, nil
}

func (s *service) GetPreset(ctx context.Context, id uint64) (*models.Preset, error) {
	return s.presets.GetByID(ctx, id)
}

func (s *service) ListPresets(ctx context.Context) ([]*models.Preset, error) {
	return s.presets.ListAll(ctx)
}

// UpdatePreset заменяет настройки пресета
func (s *service) UpdatePreset(ctx context.Context, preset *models.Preset) error {
	existing, err := s.presets.GetByID(ctx, preset.LocalID)
	if err != nil {
		return err
	}
	if err := checkName(ctx, s.presets, preset.Name, preset.LocalID); err != nil {
		return err
	}

	preset.SyncID = existing.SyncID
	preset.CreatedAt = existing.CreatedAt
	preset.UpdatedAt = s.clock.Tick()

	if err := s.presets.Update(ctx, preset); err != nil {
		return fmt.Errorf("failed to update preset: %w", err)
	}

	s.changed()
	return nil
}

func (s *service) RenamePreset(ctx context.Context, id uint64, name string) error {
	preset, err := s.presets.GetByID(ctx, id)
	if err != nil {
		return err
	}
	preset.Name = name
	return s.UpdatePreset(ctx, preset)
}

func (s *service) DuplicatePreset(ctx context.Context, id uint64, name string) (*models.Preset, error) {
	src, err := s.presets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if name == "" {
		if name, err = copyName(ctx, s.presets, src.Name); err != nil {
			return nil, err
		}
	}

	dup := src.Clone()
	dup.LocalID = 0
	dup.SyncID = ""
	dup.CreatedAt = time.Time{}
	dup.Name = name
	return s.CreatePreset(ctx, dup)
}

func (s *service) DeletePreset(ctx context.Context, id uint64) error {
	tombstone, err := s.presets.DeleteWithTombstone(ctx, id, s.clock.Tick())
	if err != nil {
		return err
	}

	s.logger.Info("Preset deleted", "id", id, "sync_id", tombstone.SyncID)
	s.changed()
	return nil
}

func (s *service) changed() {
	if s.notifier != nil {
		s.notifier.Trigger()
	}
}
