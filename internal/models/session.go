package models

import "time"

// SessionKind способ аутентификации на удаленном хранилище.
type SessionKind string

const (
	// SessionOAuth пара access/refresh токенов с известным временем жизни.
	SessionOAuth SessionKind = "oauth"
	// SessionBackend непрозрачный токен сессии сервера документов.
	SessionBackend SessionKind = "backend"
)

// Session сохраненные учетные данные для удаленного хранилища.
type Session struct {
	ExpiresAt    time.Time   `json:"expires_at,omitzero"`
	Kind         SessionKind `json:"kind"`
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	Email        string      `json:"email,omitempty"`
}
