// Package sealed шифрует документы перед отправкой в удаленное хранилище.
// Ключ получается из парольной фразы пользователя, хранилище видит только
// конверт с солью и шифртекстом.
package sealed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/crypto"
)

// Format метка конверта
const Format = "chatsync-sealed/1"

// ErrWrongPassphrase документ зашифрован другой парольной фразой или поврежден
var ErrWrongPassphrase = errors.New("cannot decrypt remote document: wrong passphrase or corrupted data")

type envelope struct {
	Format string `json:"format"`
	Salt   []byte `json:"salt"`
	Data   []byte `json:"data"`
}

// Store обертка над remote.DocumentStore. Find и Delete проходят насквозь,
// Upload шифрует, Download расшифровывает. Незашифрованные документы
// (созданные до включения шифрования) читаются как есть и при следующей
// загрузке перезаписываются зашифрованными.
type Store struct {
	inner      remote.DocumentStore
	logger     *slog.Logger
	keys       map[string][]byte
	passphrase string
	salt       []byte
	mu         sync.Mutex
}

var _ remote.DocumentStore = (*Store)(nil)

// New оборачивает inner
func New(inner remote.DocumentStore, passphrase string, logger *slog.Logger) (*Store, error) {
	if passphrase == "" {
		return nil, crypto.ErrEmptyPassphrase
	}
	return &Store{
		inner:      inner,
		passphrase: passphrase,
		logger:     logger,
		keys:       make(map[string][]byte),
	}, nil
}

// Find returns the inner handle
func (s *Store) Find(ctx context.Context, name string) (*remote.Handle, error) {
	return s.inner.Find(ctx, name)
}

// Delete removes the inner document
func (s *Store) Delete(ctx context.Context, handle *remote.Handle) error {
	return s.inner.Delete(ctx, handle)
}

// Upload шифрует content. Имя документа входит в associated data.
func (s *Store) Upload(ctx context.Context, name string, content []byte, existing *remote.Handle) (*remote.Handle, error) {
	salt, key, err := s.uploadKey()
	if err != nil {
		return nil, err
	}

	data, err := crypto.Seal(key, content, []byte(name))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt %s: %w", name, err)
	}

	body, err := json.Marshal(envelope{Format: Format, Salt: salt, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return s.inner.Upload(ctx, name, body, existing)
}

// Download расшифровывает документ
func (s *Store) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	raw, err := s.inner.Download(ctx, handle)
	if err != nil {
		return nil, err
	}

	if !IsSealed(raw) {
		s.logger.Debug("Remote document is not encrypted", "name", handle.Name)
		return raw, nil
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}

	key, err := s.keyFor(env.Salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.Open(key, env.Data, []byte(handle.Name))
	if err != nil {
		if errors.Is(err, crypto.ErrDecrypt) {
			return nil, fmt.Errorf("%s: %w", handle.Name, ErrWrongPassphrase)
		}
		return nil, err
	}

	s.adoptSalt(env.Salt)
	return plaintext, nil
}

// uploadKey возвращает соль этого хранилища и ключ для нее.
// Соль берется из первого прочитанного документа, иначе генерируется.
func (s *Store) uploadKey() ([]byte, []byte, error) {
	s.mu.Lock()
	if s.salt == nil {
		salt, err := crypto.GenerateSalt()
		if err != nil {
			s.mu.Unlock()
			return nil, nil, err
		}
		s.salt = salt
	}
	salt := s.salt
	s.mu.Unlock()

	key, err := s.keyFor(salt)
	if err != nil {
		return nil, nil, err
	}
	return salt, key, nil
}

func (s *Store) keyFor(salt []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key, ok := s.keys[string(salt)]; ok {
		return key, nil
	}
	key, err := crypto.DeriveKey(s.passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
	}
	s.keys[string(salt)] = key
	return key, nil
}

func (s *Store) adoptSalt(salt []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.salt == nil {
		s.salt = append([]byte(nil), salt...)
	}
}
