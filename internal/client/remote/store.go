// Package remote описывает удаленное хранилище именованных JSON документов,
// через которое устройства обмениваются состоянием.
package remote

import (
	"context"
	"errors"
	"time"
)

//go:generate moq -out store_mock.go . DocumentStore

var (
	// ErrUnauthorized хранилище отвергло учетные данные (HTTP 401 и аналоги)
	ErrUnauthorized = errors.New("remote store rejected credentials")

	// ErrNotFound документ по handle не найден
	ErrNotFound = errors.New("document not found")
)

// Handle ссылка на существующий документ
type Handle struct {
	ModifiedAt time.Time
	ID         string
	Name       string
}

// DocumentStore key-document хранилище. Найти документ по имени, загрузить
// (создать или заменить), скачать, удалить.
type DocumentStore interface {
	// Find возвращает handle документа или nil, nil если документа нет
	Find(ctx context.Context, name string) (*Handle, error)

	// Upload создает документ (existing == nil) или заменяет существующий
	Upload(ctx context.Context, name string, content []byte, existing *Handle) (*Handle, error)

	// Download возвращает содержимое документа
	Download(ctx context.Context, handle *Handle) ([]byte, error)

	// Delete удаляет документ
	Delete(ctx context.Context, handle *Handle) error
}

// IsAuthError сообщает, что ошибка требует повторного входа
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound сообщает, что документ отсутствует
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
