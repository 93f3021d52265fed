package controllers

import (
	"dbconnectorapi/services/backend"
	"dbconnectorapi/services/dto"
	"dbconnectorapi/services/history"
	"dbconnectorapi/services/pool"
)

// Response models for Swagger documentation

// ErrorResponse represents the standard error body
type ErrorResponse struct {
	Error   string `json:"error" example:"connection_error"`
	Message string `json:"message" example:"ORA-01017: invalid username/password; logon denied"`
}

// TestFailureResponse represents a failed connection test
type TestFailureResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"missing_credential"`
	Message string `json:"message" example:"password is required"`
}

// BackendListResponse represents the backend catalogue
type BackendListResponse struct {
	Backends []backend.Template `json:"backends"`
	Count    int                `json:"count" example:"3"`
}

// BackendDetailResponse represents one backend template
type BackendDetailResponse struct {
	Backend      backend.Template     `json:"backend"`
	QuickQueries []backend.QuickQuery `json:"quick_queries"`
}

// ConnectionCreatedResponse represents a registered connection
type ConnectionCreatedResponse struct {
	Message    string       `json:"message" example:"Connection successful"`
	Connection pool.Summary `json:"connection"`
}

// ConnectionListResponse represents the connections of a session
type ConnectionListResponse struct {
	Connections []pool.Summary `json:"connections"`
	Count       int            `json:"count" example:"1"`
}

// SavedConnectionListResponse represents persisted connection metadata
type SavedConnectionListResponse struct {
	Connections []dto.SavedConnection `json:"connections"`
	Count       int                   `json:"count" example:"2"`
}

// QuickQueryListResponse represents the quick queries of a pool
type QuickQueryListResponse struct {
	PoolName     string               `json:"pool_name" example:"jde-dev"`
	QuickQueries []backend.QuickQuery `json:"quick_queries"`
}

// HistoryListResponse represents recent query attempts
type HistoryListResponse struct {
	History []history.View `json:"history"`
	Count   int            `json:"count" example:"10"`
}
