package sealed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/remote/memstore"
	"github.com/iudanet/chatsync/internal/crypto"
)

const doc = `{"chats":[{"syncId":"a","title":"secret plans"}],"version":"2.0"}`

func newStore(t *testing.T, inner remote.DocumentStore, passphrase string) *Store {
	t.Helper()
	s, err := New(inner, passphrase, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func download(t *testing.T, s *Store, name string) ([]byte, error) {
	t.Helper()
	h, err := s.Find(context.Background(), name)
	require.NoError(t, err)
	require.NotNil(t, h)
	return s.Download(context.Background(), h)
}

func TestNew_EmptyPassphrase(t *testing.T) {
	_, err := New(memstore.New(), "", slog.Default())
	assert.ErrorIs(t, err, crypto.ErrEmptyPassphrase)
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()
	s := newStore(t, inner, "passphrase")

	_, err := s.Upload(ctx, "chats.json", []byte(doc), nil)
	require.NoError(t, err)

	stored, ok := inner.Get("chats.json")
	require.True(t, ok)
	assert.NotContains(t, string(stored), "secret plans")

	var env envelope
	require.NoError(t, json.Unmarshal(stored, &env))
	assert.Equal(t, Format, env.Format)
	assert.Len(t, env.Salt, crypto.SaltSize)

	got, err := download(t, s, "chats.json")
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(got))
}

func TestStore_OtherDeviceSamePassphrase(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()

	first := newStore(t, inner, "passphrase")
	_, err := first.Upload(ctx, "chats.json", []byte(doc), nil)
	require.NoError(t, err)

	second := newStore(t, inner, "passphrase")
	got, err := download(t, second, "chats.json")
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(got))

	// второе устройство подхватывает соль и пишет тем же ключом
	_, err = second.Upload(ctx, "presets.json", []byte(`{"presets":[]}`), nil)
	require.NoError(t, err)

	var a, b envelope
	raw, _ := inner.Get("chats.json")
	require.NoError(t, json.Unmarshal(raw, &a))
	raw, _ = inner.Get("presets.json")
	require.NoError(t, json.Unmarshal(raw, &b))
	assert.Equal(t, a.Salt, b.Salt)
}

func TestStore_WrongPassphrase(t *testing.T) {
	inner := memstore.New()
	_, err := newStore(t, inner, "right").Upload(context.Background(), "chats.json", []byte(doc), nil)
	require.NoError(t, err)

	_, err = download(t, newStore(t, inner, "wrong"), "chats.json")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestStore_SwappedDocumentRejected(t *testing.T) {
	inner := memstore.New()
	s := newStore(t, inner, "passphrase")
	_, err := s.Upload(context.Background(), "chats.json", []byte(doc), nil)
	require.NoError(t, err)

	raw, _ := inner.Get("chats.json")
	inner.Put("presets.json", raw)

	_, err = download(t, s, "presets.json")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestStore_PlaintextPassthrough(t *testing.T) {
	inner := memstore.New()
	inner.Put("chats.json", []byte(doc))

	got, err := download(t, newStore(t, inner, "passphrase"), "chats.json")
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(got))
}

func TestStore_DeletePassthrough(t *testing.T) {
	ctx := context.Background()
	inner := memstore.New()
	s := newStore(t, inner, "passphrase")

	h, err := s.Upload(ctx, "deletions.json", []byte(`{"deletions":[]}`), nil)
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, h))
	assert.Empty(t, inner.Names())
}
