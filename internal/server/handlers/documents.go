package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/internal/server/storage"
	"github.com/iudanet/chatsync/internal/validation"
	"github.com/iudanet/chatsync/pkg/api"
)

// DefaultMaxDocumentSize ограничение размера одного документа
const DefaultMaxDocumentSize int64 = 10 << 20

// DocumentHandler обрабатывает запросы к документам синхронизации.
// Все методы требуют AuthMiddleware.
type DocumentHandler struct {
	logger          *slog.Logger
	documentStorage storage.DocumentStorage
	maxSize         int64
}

// NewDocumentHandler создает handler документов
func NewDocumentHandler(logger *slog.Logger, documentStorage storage.DocumentStorage, maxSize int64) *DocumentHandler {
	if maxSize <= 0 {
		maxSize = DefaultMaxDocumentSize
	}
	return &DocumentHandler{
		logger:          logger,
		documentStorage: documentStorage,
		maxSize:         maxSize,
	}
}

// List обрабатывает GET /api/v1/documents
func (h *DocumentHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	docs, err := h.documentStorage.ListDocuments(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list documents", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := api.DocumentListResponse{Documents: make([]api.DocumentInfo, 0, len(docs))}
	for _, doc := range docs {
		resp.Documents = append(resp.Documents, documentInfo(doc))
	}
	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Get обрабатывает GET и HEAD /api/v1/documents/{name}
func (h *DocumentHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, name, ok := h.target(w, r)
	if !ok {
		return
	}

	doc, err := h.documentStorage.GetDocument(ctx, userID, name)
	if err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get document", slog.String("name", name), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Last-Modified", doc.UpdatedAt.UTC().Format(http.TimeFormat))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	if _, err := w.Write(doc.Content); err != nil {
		h.logger.WarnContext(ctx, "failed to write document", slog.String("name", name), slog.Any("error", err))
	}
}

// Put обрабатывает PUT /api/v1/documents/{name}
// Тело должно быть валидным JSON, документ заменяется целиком
func (h *DocumentHandler) Put(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, name, ok := h.target(w, r)
	if !ok {
		return
	}

	content, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxSize))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			sendError(h.logger, w, "document too large", http.StatusRequestEntityTooLarge)
			return
		}
		sendError(h.logger, w, "failed to read body", http.StatusBadRequest)
		return
	}

	if !json.Valid(content) {
		h.logger.WarnContext(ctx, "rejected non-JSON document", slog.String("name", name))
		sendError(h.logger, w, "document must be valid JSON", http.StatusBadRequest)
		return
	}

	doc := &models.StoredDocument{
		UserID:    userID,
		Name:      name,
		Content:   content,
		Size:      int64(len(content)),
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := h.documentStorage.PutDocument(ctx, doc); err != nil {
		h.logger.ErrorContext(ctx, "failed to store document", slog.String("name", name), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "document stored",
		slog.String("user_id", userID),
		slog.String("name", name),
		slog.Int64("size", doc.Size))

	sendJSON(h.logger, w, documentInfo(doc), http.StatusOK)
}

// Delete обрабатывает DELETE /api/v1/documents/{name}
func (h *DocumentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, name, ok := h.target(w, r)
	if !ok {
		return
	}

	if err := h.documentStorage.DeleteDocument(ctx, userID, name); err != nil {
		if errors.Is(err, storage.ErrDocumentNotFound) {
			sendError(h.logger, w, "document not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete document", slog.String("name", name), slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "document deleted", slog.String("user_id", userID), slog.String("name", name))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAll обрабатывает DELETE /api/v1/documents
func (h *DocumentHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	deleted, err := h.documentStorage.DeleteUserDocuments(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to delete documents", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "all documents deleted", slog.String("user_id", userID), slog.Int("count", deleted))
	w.WriteHeader(http.StatusNoContent)
}

// target достает пользователя и имя документа из запроса
func (h *DocumentHandler) target(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return "", "", false
	}

	name := r.PathValue("name")
	if err := validation.ValidateDocumentName(name); err != nil {
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return "", "", false
	}
	return userID, name, true
}

func documentInfo(doc *models.StoredDocument) api.DocumentInfo {
	return api.DocumentInfo{
		Name:      doc.Name,
		Size:      doc.Size,
		UpdatedAt: doc.UpdatedAt,
	}
}
