package models

import "time"

// QueryHistory records one query attempt against a registered pool.
type QueryHistory struct {
	ID           uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	PoolName     string    `gorm:"column:pool_name;size:64;index;not null" json:"pool_name"`
	QueryText    string    `gorm:"column:query_text;type:text" json:"query_text"`
	ExecutedAt   time.Time `gorm:"column:executed_at;index" json:"executed_at"`
	Success      bool      `gorm:"column:success" json:"success"`
	ErrorMessage string    `gorm:"column:error_message;type:text" json:"error_message,omitempty"`
	RowCount     int       `gorm:"column:row_count" json:"row_count"`
}

// TableName specifies the static table name for GORM.
func (QueryHistory) TableName() string {
	return "query_history"
}

// QueryHistoryView is a history row joined with the metadata of its pool.
type QueryHistoryView struct {
	QueryHistory
	DBKind string `gorm:"column:db_kind" json:"db_kind"`
	Host   string `gorm:"column:host" json:"host"`
}
