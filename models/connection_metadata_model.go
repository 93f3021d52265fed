package models

import "time"

// Connection statuses stored with the metadata record.
const (
	ConnectionStatusActive = "active"
)

// ConnectionMetadata is the non-secret mirror of a registered connection.
// Passwords and security tokens never reach this table.
type ConnectionMetadata struct {
	PoolName   string     `gorm:"primaryKey;column:pool_name;size:64" json:"pool_name"`
	DBKind     string     `gorm:"column:db_kind;size:32;not null" json:"db_kind"` // JDE, SAP or Salesforce
	Host       string     `gorm:"column:host;size:255" json:"host"`               // empty for Salesforce
	Username   string     `gorm:"column:username;size:255" json:"username"`
	Status     string     `gorm:"column:status;size:16;default:active" json:"status"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	LastUsedAt *time.Time `gorm:"column:last_used_at" json:"last_used_at,omitempty"`
}

// TableName specifies the static table name for GORM.
func (ConnectionMetadata) TableName() string {
	return "connection_metadata"
}
