// Package drive хранилище документов в папке приложения Google Drive.
package drive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/iudanet/chatsync/internal/client/remote"
)

const (
	// DefaultFolderName папка приложения в корне Drive пользователя
	DefaultFolderName = "ExportMyChat_Data"

	folderMimeType = "application/vnd.google-apps.folder"
	jsonMimeType   = "application/json"
	fileFields     = "id, name, modifiedTime"
)

// Scopes OAuth2 права, нужные хранилищу
var Scopes = []string{drive.DriveFileScope, "email"}

// Store документы в одной папке Drive. ID папки кэшируется до выхода пользователя.
type Store struct {
	svc        *drive.Service
	logger     *slog.Logger
	folderName string
	folderID   string
	mu         sync.Mutex
}

var _ remote.DocumentStore = (*Store)(nil)

// New создает хранилище. Токены берутся из ts, обычно это session.Manager.TokenSource.
func New(ctx context.Context, ts oauth2.TokenSource, folderName string, logger *slog.Logger, opts ...option.ClientOption) (*Store, error) {
	opts = append([]option.ClientOption{option.WithTokenSource(ts)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return NewWithService(svc, folderName, logger), nil
}

// NewWithService создает хранилище поверх готового клиента Drive
func NewWithService(svc *drive.Service, folderName string, logger *slog.Logger) *Store {
	if folderName == "" {
		folderName = DefaultFolderName
	}
	return &Store{
		svc:        svc,
		folderName: folderName,
		logger:     logger,
	}
}

// ResetFolderCache забывает ID папки. Вызывается при выходе пользователя:
// другой аккаунт имеет другую папку.
func (s *Store) ResetFolderCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folderID = ""
}

// AccountEmail возвращает email владельца токена
func (s *Store) AccountEmail(ctx context.Context) (string, error) {
	about, err := s.svc.About.Get().Fields("user(emailAddress)").Context(ctx).Do()
	if err != nil {
		return "", mapError("get account", err)
	}
	if about.User == nil {
		return "", nil
	}
	return about.User.EmailAddress, nil
}

// Find returns handle of the named document in the app folder
func (s *Store) Find(ctx context.Context, name string) (*remote.Handle, error) {
	folderID, err := s.ensureFolder(ctx)
	if err != nil {
		return nil, err
	}

	q := fmt.Sprintf("name = '%s' and '%s' in parents and trashed = false", escape(name), escape(folderID))
	list, err := s.svc.Files.List().Q(q).Spaces("drive").Fields(googleapi.Field("files(" + fileFields + ")")).Context(ctx).Do()
	if err != nil {
		return nil, mapError("find "+name, err)
	}
	if len(list.Files) == 0 {
		return nil, nil
	}
	return handleFrom(list.Files[0]), nil
}

// Upload creates the document in the app folder or replaces its content
func (s *Store) Upload(ctx context.Context, name string, content []byte, existing *remote.Handle) (*remote.Handle, error) {
	media := bytes.NewReader(content)

	if existing != nil {
		file, err := s.svc.Files.Update(existing.ID, &drive.File{}).
			Media(media, googleapi.ContentType(jsonMimeType)).
			Fields(fileFields).
			Context(ctx).
			Do()
		if err != nil {
			return nil, mapError("update "+name, err)
		}
		return handleFrom(file), nil
	}

	folderID, err := s.ensureFolder(ctx)
	if err != nil {
		return nil, err
	}

	file, err := s.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: jsonMimeType,
		Parents:  []string{folderID},
	}).Media(media, googleapi.ContentType(jsonMimeType)).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return nil, mapError("create "+name, err)
	}

	s.logger.Debug("Drive file created", "name", name, "id", file.Id)
	return handleFrom(file), nil
}

// Download returns document content
func (s *Store) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	resp, err := s.svc.Files.Get(handle.ID).Context(ctx).Download()
	if err != nil {
		return nil, mapError("download "+handle.Name, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", handle.Name, err)
	}
	return content, nil
}

// Delete removes the document
func (s *Store) Delete(ctx context.Context, handle *remote.Handle) error {
	if err := s.svc.Files.Delete(handle.ID).Context(ctx).Do(); err != nil {
		return mapError("delete "+handle.Name, err)
	}
	return nil
}

// ensureFolder находит или создает папку приложения
func (s *Store) ensureFolder(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.folderID != "" {
		return s.folderID, nil
	}

	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escape(s.folderName), folderMimeType)
	list, err := s.svc.Files.List().Q(q).Spaces("drive").Fields("files(id)").Context(ctx).Do()
	if err != nil {
		return "", mapError("find folder", err)
	}

	if len(list.Files) > 0 {
		s.folderID = list.Files[0].Id
		return s.folderID, nil
	}

	folder, err := s.svc.Files.Create(&drive.File{
		Name:     s.folderName,
		MimeType: folderMimeType,
	}).Fields("id").Context(ctx).Do()
	if err != nil {
		return "", mapError("create folder", err)
	}

	s.logger.Info("Drive app folder created", "name", s.folderName, "id", folder.Id)
	s.folderID = folder.Id
	return s.folderID, nil
}

func handleFrom(f *drive.File) *remote.Handle {
	h := &remote.Handle{ID: f.Id, Name: f.Name}
	if f.ModifiedTime != "" {
		if t, err := time.Parse(time.RFC3339, f.ModifiedTime); err == nil {
			h.ModifiedAt = t
		}
	}
	return h
}

// mapError приводит 401 Drive к remote.ErrUnauthorized, 404 к remote.ErrNotFound
func mapError(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized:
			return fmt.Errorf("drive %s: %w: %s", op, remote.ErrUnauthorized, gerr.Message)
		case http.StatusNotFound:
			return fmt.Errorf("drive %s: %w", op, remote.ErrNotFound)
		}
	}
	return fmt.Errorf("drive %s: %w", op, err)
}

// escape экранирует строку для языка запросов Drive
func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}
