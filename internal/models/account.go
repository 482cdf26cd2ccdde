package models

import "time"

// User учетная запись на сервере документов
type User struct {
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // bcrypt
}

// RefreshToken долгоживущий токен для получения новой пары
type RefreshToken struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
}

// AccountSession непрозрачная серверная сессия, передается в X-Session-Token
type AccountSession struct {
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
}

// StoredDocument документ пользователя на сервере
type StoredDocument struct {
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Content   []byte    `json:"-"`
	Size      int64     `json:"size"` // заполняется при листинге без содержимого
}
