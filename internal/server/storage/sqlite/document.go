package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/server/storage"
)

// PutDocument создает или заменяет документ
func (s *Storage) PutDocument(ctx context.Context, doc *models.StoredDocument) error {
	query := `
		INSERT INTO documents (user_id, name, content, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id, name) DO UPDATE SET
			content = excluded.content,
			updated_at = excluded.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		doc.UserID,
		doc.Name,
		doc.Content,
		doc.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return nil
}

// GetDocument возвращает документ с содержимым
func (s *Storage) GetDocument(ctx context.Context, userID, name string) (*models.StoredDocument, error) {
	query := `
		SELECT user_id, name, content, updated_at
		FROM documents
		WHERE user_id = ? AND name = ?
	`

	doc := &models.StoredDocument{}
	err := s.db.QueryRowContext(ctx, query, userID, name).Scan(
		&doc.UserID,
		&doc.Name,
		&doc.Content,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

// ListDocuments возвращает метаданные документов пользователя по имени
func (s *Storage) ListDocuments(ctx context.Context, userID string) ([]*models.StoredDocument, error) {
	query := `
		SELECT user_id, name, length(content), updated_at
		FROM documents
		WHERE user_id = ?
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	docs := make([]*models.StoredDocument, 0)
	for rows.Next() {
		doc := &models.StoredDocument{}
		var size int64
		if err := rows.Scan(&doc.UserID, &doc.Name, &size, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		doc.Size = size
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return docs, nil
}

// DeleteDocument удаляет документ
func (s *Storage) DeleteDocument(ctx context.Context, userID, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE user_id = ? AND name = ?`, userID, name)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}

	return expectAffected(result, storage.ErrDocumentNotFound)
}

// DeleteUserDocuments удаляет все документы пользователя
func (s *Storage) DeleteUserDocuments(ctx context.Context, userID string) (int, error) {
	return s.deleteCount(ctx, `DELETE FROM documents WHERE user_id = ?`, userID)
}
