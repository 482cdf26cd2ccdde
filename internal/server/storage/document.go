package storage

import (
	"context"

	"github.com/iudanet/chatsync/internal/models"
)

// DocumentStorage хранит документы синхронизации по пользователям
type DocumentStorage interface {
	// PutDocument создает или заменяет документ
	PutDocument(ctx context.Context, doc *models.StoredDocument) error

	// GetDocument возвращает документ с содержимым
	// Returns ErrDocumentNotFound if document doesn't exist
	GetDocument(ctx context.Context, userID, name string) (*models.StoredDocument, error)

	// ListDocuments возвращает документы пользователя без содержимого, Content пустой
	ListDocuments(ctx context.Context, userID string) ([]*models.StoredDocument, error)

	// DeleteDocument удаляет документ
	// Returns ErrDocumentNotFound if document doesn't exist
	DeleteDocument(ctx context.Context, userID, name string) error

	// DeleteUserDocuments удаляет все документы пользователя
	DeleteUserDocuments(ctx context.Context, userID string) (int, error)
}
