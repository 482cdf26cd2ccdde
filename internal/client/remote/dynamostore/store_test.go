package dynamostore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/remote/awsutil"
)

// fakeDynamo эмуляция JSON протокола DynamoDB для нескольких операций
type fakeDynamo struct {
	items       map[string]map[string]any
	tableExists bool
	denied      bool
	mu          sync.Mutex
}

type request struct {
	Key       map[string]map[string]string `json:"Key"`
	Item      map[string]any               `json:"Item"`
	TableName string                       `json:"TableName"`
}

func itemKey(key map[string]map[string]string) string {
	return key["Account"]["S"] + "|" + key["Name"]["S"]
}

func (f *fakeDynamo) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w.Header().Set("Content-Type", "application/x-amz-json-1.0")

	if f.denied {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"__type":"com.amazon.coral.service#UnrecognizedClientException","message":"bad token"}`)
		return
	}

	target := strings.TrimPrefix(r.Header.Get("X-Amz-Target"), "DynamoDB_20120810.")
	var req request
	_ = json.NewDecoder(r.Body).Decode(&req)

	switch target {
	case "GetItem":
		it, ok := f.items[itemKey(req.Key)]
		if !ok {
			_, _ = io.WriteString(w, `{}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"Item": it})
	case "PutItem":
		key := map[string]map[string]string{
			"Account": {"S": req.Item["Account"].(map[string]any)["S"].(string)},
			"Name":    {"S": req.Item["Name"].(map[string]any)["S"].(string)},
		}
		f.items[itemKey(key)] = req.Item
		_, _ = io.WriteString(w, `{}`)
	case "DeleteItem":
		delete(f.items, itemKey(req.Key))
		_, _ = io.WriteString(w, `{}`)
	case "DescribeTable":
		if !f.tableExists {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"__type":"com.amazonaws.dynamodb.v20120810#ResourceNotFoundException","message":"Requested resource not found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"Table":{"TableName":"docs","TableStatus":"ACTIVE"}}`)
	case "CreateTable":
		f.tableExists = true
		_, _ = io.WriteString(w, `{"TableDescription":{"TableName":"docs","TableStatus":"CREATING"}}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
	}
}

func newTestStore(t *testing.T) (*Store, *fakeDynamo) {
	t.Helper()

	fake := &fakeDynamo{items: map[string]map[string]any{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := New(context.Background(), Config{
		Config: awsutil.Config{
			Region:    "us-east-1",
			Endpoint:  server.URL,
			AccessKey: "test",
			SecretKey: "test-secret",
		},
		Table:   "docs",
		Account: "me@example.com",
	}, server.Client(), logger)
	require.NoError(t, err)
	return store, fake
}

func TestStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store, fake := newTestStore(t)

	handle, err := store.Find(ctx, "deletions.json")
	require.NoError(t, err)
	assert.Nil(t, handle)

	uploaded, err := store.Upload(ctx, "deletions.json", []byte(`{"deletions":[]}`), nil)
	require.NoError(t, err)

	fake.mu.Lock()
	assert.Contains(t, fake.items, "me@example.com|deletions.json")
	fake.mu.Unlock()

	found, err := store.Find(ctx, "deletions.json")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uploaded.ModifiedAt, found.ModifiedAt)

	content, err := store.Download(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, `{"deletions":[]}`, string(content))

	require.NoError(t, store.Delete(ctx, found))
	_, err = store.Download(ctx, found)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestStore_TooLarge(t *testing.T) {
	store, _ := newTestStore(t)

	_, err := store.Upload(context.Background(), "chats.json", make([]byte, MaxDocumentSize+1), nil)
	assert.ErrorIs(t, err, ErrDocumentTooLarge)
}

func TestStore_Unauthorized(t *testing.T) {
	store, fake := newTestStore(t)
	fake.denied = true

	_, err := store.Find(context.Background(), "chats.json")
	assert.ErrorIs(t, err, remote.ErrUnauthorized)
}

func TestStore_EnsureTable(t *testing.T) {
	store, fake := newTestStore(t)

	require.NoError(t, store.EnsureTable(context.Background(), 30*time.Second))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.True(t, fake.tableExists)
}
