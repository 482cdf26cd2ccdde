package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/crdt"
	"github.com/iudanet/chatsync/internal/models"
)

// documentNames порядок выгрузки: deletions.json последним
var documentNames = []string{
	models.DocumentChats,
	models.DocumentPresets,
	models.DocumentDeletions,
}

// remoteState разобранное содержимое трех документов
type remoteState struct {
	handles    map[string]*remote.Handle
	chats      []*models.Chat
	presets    []*models.Preset
	tombstones []models.Tombstone
}

type fetched struct {
	handle  *remote.Handle
	content []byte
}

// fetchRemote скачивает документы параллельно. Отсутствующий документ считается пустым.
func (s *service) fetchRemote(ctx context.Context) (*remoteState, error) {
	results := make([]fetched, len(documentNames))

	g, gctx := errgroup.WithContext(ctx)
	for i, name := range documentNames {
		g.Go(func() error {
			handle, err := s.remote.Find(gctx, name)
			if err != nil {
				return fmt.Errorf("failed to find %s: %w", name, err)
			}
			if handle == nil {
				return nil
			}
			content, err := s.remote.Download(gctx, handle)
			if err != nil {
				if remote.IsNotFound(err) {
					return nil
				}
				return fmt.Errorf("failed to download %s: %w", name, err)
			}
			results[i] = fetched{handle: handle, content: content}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rs := &remoteState{handles: make(map[string]*remote.Handle, len(documentNames))}
	for i, name := range documentNames {
		if results[i].handle != nil {
			rs.handles[name] = results[i].handle
		}
	}

	var err error
	if rs.chats, err = decodeChats(results[0].content); err != nil {
		return nil, err
	}
	if rs.presets, err = decodePresets(results[1].content); err != nil {
		return nil, err
	}
	if rs.tombstones, err = decodeDeletions(results[2].content); err != nil {
		return nil, err
	}

	s.observe(rs)
	return rs, nil
}

// observe сдвигает часы за максимальную удаленную метку, чтобы следующая
// локальная правка была строго новее всего увиденного
func (s *service) observe(rs *remoteState) {
	for _, c := range rs.chats {
		s.clock.Observe(c.UpdatedAt)
	}
	for _, p := range rs.presets {
		s.clock.Observe(p.UpdatedAt)
	}
}

func decodeChats(content []byte) ([]*models.Chat, error) {
	if len(content) == 0 {
		return nil, nil
	}
	var doc models.ChatsDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, models.DocumentChats, err)
	}
	return compact(doc.Chats), nil
}

func decodePresets(content []byte) ([]*models.Preset, error) {
	if len(content) == 0 {
		return nil, nil
	}
	var doc models.PresetsDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, models.DocumentPresets, err)
	}
	return compact(doc.Presets), nil
}

func decodeDeletions(content []byte) ([]models.Tombstone, error) {
	if len(content) == 0 {
		return nil, nil
	}
	var doc models.DeletionsDocument
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, models.DocumentDeletions, err)
	}
	return doc.Deletions, nil
}

// compact убирает null-элементы массива
func compact[T any](in []*T) []*T {
	out := in[:0]
	for _, v := range in {
		if v != nil {
			out = append(out, v)
		}
	}
	return out
}

// upload выгружает согласованное состояние, перезаписывая найденные документы
func (s *service) upload(ctx context.Context, handles map[string]*remote.Handle, merged crdt.ReconcileResult) error {
	now := s.clock.Now()

	chats := append([]*models.Chat{}, merged.Chats...)
	sortEntities(chats)
	presets := append([]*models.Preset{}, merged.Presets...)
	sortEntities(presets)
	tombstones := append([]models.Tombstone{}, merged.Tombstones...)

	docs := map[string]any{
		models.DocumentChats: models.ChatsDocument{
			LastModified: now,
			Version:      models.EntityDocumentVersion,
			Chats:        chats,
		},
		models.DocumentPresets: models.PresetsDocument{
			LastModified: now,
			Version:      models.EntityDocumentVersion,
			Presets:      presets,
		},
		models.DocumentDeletions: models.DeletionsDocument{
			Version:   models.DeletionDocumentVersion,
			Deletions: tombstones,
		},
	}

	for _, name := range documentNames {
		content, err := json.MarshalIndent(docs[name], "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", name, err)
		}
		if _, err := s.remote.Upload(ctx, name, content, handles[name]); err != nil {
			return fmt.Errorf("failed to upload %s: %w", name, err)
		}
		s.logger.Debug("Document uploaded", "name", name, "size", len(content))
	}
	return nil
}

// sortEntities упорядочивает по updatedAt (новые первыми), затем по syncId
func sortEntities[T models.Entity](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, tj := items[i].GetUpdatedAt(), items[j].GetUpdatedAt()
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return items[i].GetSyncID() < items[j].GetSyncID()
	})
}
