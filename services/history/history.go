// Package history records every query attempt made through the connector.
package history

import (
	"context"
	"time"
)

// Entry is one query attempt.
type Entry struct {
	PoolName     string    `json:"pool_name"`
	QueryText    string    `json:"query_text"`
	ExecutedAt   time.Time `json:"executed_at"`
	Success      bool      `json:"success"`
	RowCount     int       `json:"row_count"`
	ErrorMessage string    `json:"error_message,omitempty"`
}

// View is a stored entry with the kind and host of its pool when known.
type View struct {
	ID uint `json:"id"`
	Entry
	Kind string `json:"db_kind,omitempty"`
	Host string `json:"host,omitempty"`
}

// Log accepts entries after each query attempt.
type Log interface {
	Append(ctx context.Context, e Entry) error
}

// Reader lists stored entries, newest first. An empty pool lists every pool.
type Reader interface {
	Recent(ctx context.Context, pool string, limit int) ([]View, error)
}

// Store is a Log that can also be read back.
type Store interface {
	Log
	Reader
}
