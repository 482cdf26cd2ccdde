package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/iudanet/chatsync/internal/client/storage"
	"github.com/iudanet/chatsync/internal/models"
)

var (
	// BoltDB bucket names
	bucketChats        = []byte("chats")
	bucketChatsIndex   = []byte("chats_sync_index")
	bucketPresets      = []byte("presets")
	bucketPresetsIndex = []byte("presets_sync_index")
	bucketDeletions    = []byte("deletions")
	bucketStatus       = []byte("status")
	bucketSession      = []byte("session")

	allBuckets = [][]byte{
		bucketChats, bucketChatsIndex,
		bucketPresets, bucketPresetsIndex,
		bucketDeletions, bucketStatus, bucketSession,
	}
)

// Storage represents BoltDB storage implementation for client
type Storage struct {
	db      *bbolt.DB
	chats   *collection[*models.Chat]
	presets *collection[*models.Preset]
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем buckets
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	s.chats = &collection[*models.Chat]{
		store:       s,
		kind:        models.EntityChat,
		bucket:      bucketChats,
		indexBucket: bucketChatsIndex,
		newEntity:   func() *models.Chat { return &models.Chat{} },
	}
	s.presets = &collection[*models.Preset]{
		store:       s,
		kind:        models.EntityPreset,
		bucket:      bucketPresets,
		indexBucket: bucketPresetsIndex,
		newEntity:   func() *models.Preset { return &models.Preset{} },
	}

	return s, nil
}

// Chats returns the chat collection
func (s *Storage) Chats() storage.Collection[*models.Chat] {
	return s.chats
}

// Presets returns the preset collection
func (s *Storage) Presets() storage.Collection[*models.Preset] {
	return s.presets
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, name := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("failed to create %s bucket: %w", name, err)
			}
		}
		return nil
	})
}

func (s *Storage) update(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.Update(fn)
}

func (s *Storage) view(fn func(tx *bbolt.Tx) error) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}
	return s.db.View(fn)
}
