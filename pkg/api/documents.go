package api

import "time"

// DocumentInfo метаданные документа без содержимого
type DocumentInfo struct {
	UpdatedAt time.Time `json:"updated_at"`
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
}

// DocumentListResponse ответ GET /documents
type DocumentListResponse struct {
	Documents []DocumentInfo `json:"documents"`
}

// HealthResponse ответ GET /health
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
