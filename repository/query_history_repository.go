package repository

import (
	"fmt"

	"dbconnectorapi/config"
	"dbconnectorapi/models"

	"gorm.io/gorm"
)

// QueryHistoryRepository provides data access for the query history log.
type QueryHistoryRepository interface {
	Create(tx *gorm.DB, entry *models.QueryHistory) error
	ListRecent(tx *gorm.DB, poolName string, limit int) ([]models.QueryHistoryView, error)
}

type queryHistoryRepository struct {
	db *gorm.DB
}

// NewQueryHistoryRepository creates a repository over the global metadata store.
func NewQueryHistoryRepository() QueryHistoryRepository {
	return NewQueryHistoryRepositoryWithDB(config.DB)
}

// NewQueryHistoryRepositoryWithDB creates a repository over the given handle.
func NewQueryHistoryRepositoryWithDB(db *gorm.DB) QueryHistoryRepository {
	return &queryHistoryRepository{db: db}
}

func (r *queryHistoryRepository) Create(tx *gorm.DB, entry *models.QueryHistory) error {
	db := pick(tx, r.db)
	if err := db.Create(entry).Error; err != nil {
		return fmt.Errorf("append query history for %s: %w", entry.PoolName, err)
	}
	return nil
}

// ListRecent returns the newest entries first, joined with the pool's kind and host.
// An empty poolName lists every pool.
func (r *queryHistoryRepository) ListRecent(tx *gorm.DB, poolName string, limit int) ([]models.QueryHistoryView, error) {
	db := pick(tx, r.db)

	query := db.Table(models.QueryHistory{}.TableName() + " AS h").
		Select("h.id, h.pool_name, h.query_text, h.executed_at, h.success, h.error_message, h.row_count, m.db_kind, m.host").
		Joins("LEFT JOIN " + models.ConnectionMetadata{}.TableName() + " AS m ON m.pool_name = h.pool_name")
	if poolName != "" {
		query = query.Where("h.pool_name = ?", poolName)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var views []models.QueryHistoryView
	if err := query.Order("h.executed_at DESC, h.id DESC").Scan(&views).Error; err != nil {
		return nil, err
	}
	return views, nil
}
