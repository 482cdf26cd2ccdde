package api

// RegisterRequest представляет запрос на регистрацию нового пользователя
type RegisterRequest struct {
	Username string `json:"username"` // username пользователя
	Password string `json:"password"` // пароль в открытом виде, передается только по TLS
	Email    string `json:"email"`    // email, показывается в статусе синхронизации
}

// RegisterResponse представляет ответ на успешную регистрацию
type RegisterResponse struct {
	UserID  string `json:"user_id"` // UUID пользователя
	Message string `json:"message"` // сообщение об успешной регистрации
}

// LoginRequest представляет запрос на аутентификацию
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse представляет ответ с токенами доступа
type TokenResponse struct {
	AccessToken  string `json:"access_token"`  // JWT access token
	RefreshToken string `json:"refresh_token"` // refresh token
	Email        string `json:"email,omitempty"`
	ExpiresIn    int64  `json:"expires_in"` // время жизни access token в секундах
}

// SessionResponse непрозрачный токен сессии для клиентов без OAuth
type SessionResponse struct {
	SessionToken string `json:"session_token"`
	Email        string `json:"email"`
	ExpiresIn    int64  `json:"expires_in"`
}

// AuthStatusResponse ответ /auth/status
type AuthStatusResponse struct {
	Email         string `json:"email,omitempty"`
	Authenticated bool   `json:"authenticated"`
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
