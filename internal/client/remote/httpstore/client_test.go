package httpstore

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/internal/models"
	"github.com/iudanet/chatsync/pkg/api"
)

// staticCreds отдает фиксированные учетные данные
type staticCreds struct {
	err  error
	cred session.Credential
}

func (s staticCreds) GetValidCredential(context.Context) (session.Credential, error) {
	return s.cred, s.err
}

func bearer(token string) staticCreds {
	return staticCreds{cred: session.Credential{Kind: models.SessionOAuth, Token: token}}
}

// TestNewClient проверяет создание нового клиента
func TestNewClient(t *testing.T) {
	baseURL := "http://localhost:8080"
	client := NewClient(baseURL)

	assert.NotNil(t, client)
	assert.Equal(t, baseURL, client.baseURL)
	assert.NotNil(t, client.httpClient)
	assert.Equal(t, 30*time.Second, client.httpClient.Timeout)
}

func TestClient_Register(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/auth/register", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req api.RegisterRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "testuser", req.Username)
		assert.Equal(t, "me@example.com", req.Email)

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(api.RegisterResponse{UserID: "user-123", Message: "ok"})
	}))
	defer server.Close()

	resp, err := NewClient(server.URL).Register(context.Background(), api.RegisterRequest{
		Username: "testuser",
		Password: "secret-password",
		Email:    "me@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-123", resp.UserID)
}

func TestClient_ErrorResponses(t *testing.T) {
	tests := []struct {
		name         string
		responseBody string
		wantMessage  string
		statusCode   int
		wantUnauth   bool
	}{
		{
			name:         "json error with message",
			statusCode:   http.StatusConflict,
			responseBody: `{"error":"conflict","message":"user already exists"}`,
			wantMessage:  "server error (409): user already exists",
		},
		{
			name:         "json error without message",
			statusCode:   http.StatusBadRequest,
			responseBody: `{"error":"bad request"}`,
			wantMessage:  "server error (400): bad request",
		},
		{
			name:         "plain text body",
			statusCode:   http.StatusInternalServerError,
			responseBody: "boom",
			wantMessage:  "server error (500): boom",
		},
		{
			name:         "unauthorized maps to sentinel",
			statusCode:   http.StatusUnauthorized,
			responseBody: `{"error":"unauthorized","message":"invalid credentials"}`,
			wantMessage:  "server error (401): invalid credentials",
			wantUnauth:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			_, _, err := NewClient(server.URL).Login(context.Background(), api.LoginRequest{Username: "u", Password: "p"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMessage)
			assert.Equal(t, tt.wantUnauth, remote.IsAuthError(err))
		})
	}
}

func TestClient_LoginAndRefresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/auth/login":
			_ = json.NewEncoder(w).Encode(api.TokenResponse{
				AccessToken:  "access",
				RefreshToken: "refresh",
				ExpiresIn:    900,
				Email:        "me@example.com",
			})
		case "/api/v1/auth/refresh":
			assert.Equal(t, "Bearer refresh", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(api.TokenResponse{
				AccessToken:  "access-2",
				RefreshToken: "refresh-2",
				ExpiresIn:    900,
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	tokens, email, err := client.Login(ctx, api.LoginRequest{Username: "u", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "access", tokens.AccessToken)
	assert.Equal(t, "me@example.com", email)
	assert.WithinDuration(t, time.Now().Add(900*time.Second), tokens.ExpiresAt, 5*time.Second)

	refreshed, err := client.Refresh(ctx, "refresh")
	require.NoError(t, err)
	assert.Equal(t, "access-2", refreshed.AccessToken)
	assert.Equal(t, "refresh-2", refreshed.RefreshToken)
}

func TestClient_SessionStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/status", r.URL.Path)
		if r.Header.Get(session.SessionTokenHeader) != "good" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(api.AuthStatusResponse{Authenticated: true, Email: "me@example.com"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	st, err := client.SessionStatus(ctx, "good")
	require.NoError(t, err)
	assert.True(t, st.Authenticated)
	assert.Equal(t, "me@example.com", st.Email)

	st, err = client.SessionStatus(ctx, "bad")
	require.NoError(t, err)
	assert.False(t, st.Authenticated)
}

func TestClient_Revoke(t *testing.T) {
	var gotPath, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotHeader = r.Header.Get(session.SessionTokenHeader) + r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	ctx := context.Background()

	require.NoError(t, client.Revoke(ctx, session.Credential{Kind: models.SessionBackend, Token: "sess"}))
	assert.Equal(t, "/api/v1/auth/signout", gotPath)
	assert.Equal(t, "sess", gotHeader)

	require.NoError(t, client.Revoke(ctx, session.Credential{Kind: models.SessionOAuth, Token: "jwt"}))
	assert.Equal(t, "/api/v1/auth/logout", gotPath)
	assert.Equal(t, "Bearer jwt", gotHeader)
}

// newDocumentServer эмулирует хранилище документов сервера
func newDocumentServer(t *testing.T, token string) (*httptest.Server, map[string][]byte) {
	t.Helper()
	docs := map[string][]byte{}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/documents/{name}", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+token {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		name := r.PathValue("name")
		switch r.Method {
		case http.MethodHead, http.MethodGet:
			content, ok := docs[name]
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Last-Modified", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Format(http.TimeFormat))
			_, _ = w.Write(content)
		case http.MethodPut:
			body, _ := io.ReadAll(r.Body)
			docs[name] = body
			_ = json.NewEncoder(w).Encode(api.DocumentInfo{Name: name, Size: int64(len(body)), UpdatedAt: time.Now().UTC()})
		case http.MethodDelete:
			if _, ok := docs[name]; !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			delete(docs, name)
			w.WriteHeader(http.StatusNoContent)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, docs
}

func TestClient_DocumentStore(t *testing.T) {
	server, docs := newDocumentServer(t, "tok")
	client := NewClient(server.URL)
	client.SetCredentials(bearer("tok"))
	ctx := context.Background()

	handle, err := client.Find(ctx, "chats.json")
	require.NoError(t, err)
	assert.Nil(t, handle)

	handle, err = client.Upload(ctx, "chats.json", []byte(`{"chats":[]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, "chats.json", handle.Name)
	assert.Equal(t, `{"chats":[]}`, string(docs["chats.json"]))

	found, err := client.Find(ctx, "chats.json")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), found.ModifiedAt)

	content, err := client.Download(ctx, found)
	require.NoError(t, err)
	assert.Equal(t, `{"chats":[]}`, string(content))

	require.NoError(t, client.Delete(ctx, found))
	assert.Empty(t, docs)

	err = client.Delete(ctx, found)
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestClient_DocumentStoreUnauthorized(t *testing.T) {
	server, _ := newDocumentServer(t, "tok")
	client := NewClient(server.URL)
	client.SetCredentials(bearer("stale"))

	_, err := client.Find(context.Background(), "chats.json")
	assert.ErrorIs(t, err, remote.ErrUnauthorized)
}

func TestClient_DocumentStoreWithoutSession(t *testing.T) {
	server, _ := newDocumentServer(t, "tok")
	client := NewClient(server.URL)

	_, err := client.Find(context.Background(), "chats.json")
	assert.ErrorIs(t, err, session.ErrAuthRequired)

	client.SetCredentials(staticCreds{err: session.ErrAuthRequired})
	_, err = client.Download(context.Background(), &remote.Handle{ID: "x", Name: "x"})
	assert.ErrorIs(t, err, session.ErrAuthRequired)
}
