package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/pkg/api"
)

var _ remote.DocumentStore = (*Client)(nil)

func documentPath(name string) string {
	return "/api/v1/documents/" + url.PathEscape(name)
}

// Find returns handle of the document or nil if it does not exist
func (c *Client) Find(ctx context.Context, name string) (*remote.Handle, error) {
	_, headers, err := c.do(ctx, request{
		method:     http.MethodHead,
		path:       documentPath(name),
		authorized: true,
	})
	if IsStatus(err, http.StatusNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s: %w", name, err)
	}

	handle := &remote.Handle{ID: name, Name: name}
	if lm := headers.Get("Last-Modified"); lm != "" {
		if t, err := http.ParseTime(lm); err == nil {
			handle.ModifiedAt = t
		}
	}
	return handle, nil
}

// Upload creates or replaces the document
func (c *Client) Upload(ctx context.Context, name string, content []byte, existing *remote.Handle) (*remote.Handle, error) {
	respBody, _, err := c.do(ctx, request{
		method:      http.MethodPut,
		path:        documentPath(name),
		body:        bytes.NewReader(content),
		contentType: "application/json",
		authorized:  true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s: %w", name, err)
	}

	handle := &remote.Handle{ID: name, Name: name, ModifiedAt: time.Now().UTC()}
	var info api.DocumentInfo
	if err := json.Unmarshal(respBody, &info); err == nil && !info.UpdatedAt.IsZero() {
		handle.ModifiedAt = info.UpdatedAt
	}
	return handle, nil
}

// Download returns raw document content
func (c *Client) Download(ctx context.Context, handle *remote.Handle) ([]byte, error) {
	body, _, err := c.do(ctx, request{
		method:     http.MethodGet,
		path:       documentPath(handle.ID),
		authorized: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", handle.Name, err)
	}
	return body, nil
}

// Delete removes the document
func (c *Client) Delete(ctx context.Context, handle *remote.Handle) error {
	_, _, err := c.do(ctx, request{
		method:     http.MethodDelete,
		path:       documentPath(handle.ID),
		authorized: true,
	})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", handle.Name, err)
	}
	return nil
}

// List returns metadata of every document of the account
func (c *Client) List(ctx context.Context) ([]api.DocumentInfo, error) {
	var resp api.DocumentListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/documents", nil, &resp, nil, true); err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return resp.Documents, nil
}

// DeleteAll removes every document of the account
func (c *Client) DeleteAll(ctx context.Context) error {
	if err := c.doJSON(ctx, http.MethodDelete, "/api/v1/documents", nil, nil, nil, true); err != nil {
		return fmt.Errorf("failed to delete documents: %w", err)
	}
	return nil
}
