// Package memstore хранилище документов в памяти процесса.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/iudanet/chatsync/internal/client/remote"
)

type document struct {
	modifiedAt time.Time
	content    []byte
}

// Store потокобезопасное хранилище документов в памяти
type Store struct {
	docs map[string]document
	now  func() time.Time
	mu   sync.RWMutex
}

var _ remote.DocumentStore = (*Store)(nil)

// New создает пустое хранилище
func New() *Store {
	return &Store{
		docs: make(map[string]document),
		now:  time.Now,
	}
}

// Find returns handle or nil if document is absent
func (s *Store) Find(ctx context.Context, name string) (*remote.Handle, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[name]
	if !ok {
		return nil, nil
	}
	return &remote.Handle{ID: name, Name: name, ModifiedAt: doc.modifiedAt}, nil
}

// Upload stores a copy of content
func (s *Store) Upload(ctx context.Context, name string, content []byte, existing *remote.Handle) (*remote.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := document{
		content:    append([]byte(nil), content...),
		modifiedAt: s.now().UTC(),
	}
	s.docs[name] = doc
	return &remote.Handle{ID: name, Name: name, ModifiedAt: doc.modifiedAt}, nil
}

// Download returns a copy of stored content
func (s *Store) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[handle.ID]
	if !ok {
		return nil, remote.ErrNotFound
	}
	return append([]byte(nil), doc.content...), nil
}

// Delete removes the document
func (s *Store) Delete(ctx context.Context, handle *remote.Handle) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[handle.ID]; !ok {
		return remote.ErrNotFound
	}
	delete(s.docs, handle.ID)
	return nil
}

// Put записывает документ напрямую, минуя Upload
func (s *Store) Put(name string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[name] = document{content: append([]byte(nil), content...), modifiedAt: s.now().UTC()}
}

// Get возвращает содержимое документа напрямую
func (s *Store) Get(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), doc.content...), true
}

// Names возвращает имена всех документов
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.docs))
	for name := range s.docs {
		names = append(names, name)
	}
	return names
}
