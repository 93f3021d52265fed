package dto

import "dbconnectorapi/models"

// QueryRequest carries an ad-hoc statement for a registered pool.
type QueryRequest struct {
	Query string `json:"query" validate:"required" example:"SELECT COUNT(*) as RECORD_COUNT FROM TESTDTA.F0101"`
}

// QueryOutcome is a fully materialized query result.
type QueryOutcome struct {
	PoolName   string   `json:"pool_name"`
	DBKind     string   `json:"db_kind"`
	Columns    []string `json:"columns"`
	Rows       [][]any  `json:"rows"`
	RowCount   int      `json:"row_count"`
	DurationMs int64    `json:"duration_ms"`
}

// TestResult reports a connection test without saving the connection.
type TestResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SavedConnection is persisted connection metadata as listed by the API.
type SavedConnection struct {
	models.ConnectionMetadata
	// Unsupported is set for rows saved with a backend kind this build no longer serves.
	Unsupported bool `json:"unsupported"`
}
