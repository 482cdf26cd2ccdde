// Package httpstore клиент сервера документов chatsync: аутентификация и
// хранилище документов поверх REST API.
package httpstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/iudanet/chatsync/internal/client/remote"
	"github.com/iudanet/chatsync/internal/client/session"
	"github.com/iudanet/chatsync/pkg/api"
)

// CredentialProvider источник учетных данных для авторизованных запросов
type CredentialProvider interface {
	GetValidCredential(ctx context.Context) (session.Credential, error)
}

// StatusError ответ сервера с кодом не из 2xx
type StatusError struct {
	Message string
	Code    int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Code, e.Message)
}

// Unwrap позволяет проверять ошибку через errors.Is(err, remote.ErrUnauthorized)
func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized:
		return remote.ErrUnauthorized
	case http.StatusNotFound:
		return remote.ErrNotFound
	default:
		return nil
	}
}

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	creds      CredentialProvider
	baseURL    string
}

// NewClient создает новый API клиент
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки авторизации при редиректе
				for _, h := range []string{"Authorization", session.SessionTokenHeader} {
					if len(via) > 0 && via[0].Header.Get(h) != "" {
						req.Header.Set(h, via[0].Header.Get(h))
					}
				}
				return nil
			},
		},
	}
}

// SetCredentials задает источник учетных данных. Менеджер сессии сам
// использует клиент для обновления токенов, поэтому связывание двухшаговое.
func (c *Client) SetCredentials(p CredentialProvider) {
	c.creds = p
}

// request описывает один HTTP вызов
type request struct {
	body        io.Reader
	headers     map[string]string
	method      string
	path        string
	contentType string
	authorized  bool
}

// do выполняет запрос и возвращает тело успешного ответа
func (c *Client) do(ctx context.Context, r request) ([]byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	if r.authorized {
		if c.creds == nil {
			return nil, nil, session.ErrAuthRequired
		}
		cred, err := c.creds.GetValidCredential(ctx)
		if err != nil {
			return nil, nil, err
		}
		req.Header.Set(cred.HeaderName(), cred.HeaderValue())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &StatusError{Code: resp.StatusCode, Message: string(respBody)}
		var errResp api.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && (errResp.Message != "" || errResp.Error != "") {
			statusErr.Message = errResp.Message
			if statusErr.Message == "" {
				statusErr.Message = errResp.Error
			}
		}
		return nil, resp.Header, statusErr
	}

	return respBody, resp.Header, nil
}

// doJSON выполняет запрос с JSON телом и декодирует JSON ответ
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any, headers map[string]string, authorized bool) error {
	r := request{
		method:     method,
		path:       path,
		headers:    headers,
		authorized: authorized,
	}

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		r.body = bytes.NewReader(jsonData)
		r.contentType = "application/json"
	}

	respBody, _, err := c.do(ctx, r)
	if err != nil {
		return err
	}

	// Декодируем успешный ответ
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// IsStatus сообщает, что err ответ сервера с заданным кодом
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}
