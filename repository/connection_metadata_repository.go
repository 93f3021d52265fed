package repository

import (
	"errors"
	"fmt"
	"time"

	"dbconnectorapi/config"
	"dbconnectorapi/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// ConnectionMetadataRepository provides data access for the non-secret connection mirror.
type ConnectionMetadataRepository interface {
	Upsert(tx *gorm.DB, meta *models.ConnectionMetadata) error
	GetByPoolName(tx *gorm.DB, poolName string) (*models.ConnectionMetadata, error)
	List(tx *gorm.DB) ([]models.ConnectionMetadata, error)
	TouchLastUsed(tx *gorm.DB, poolName string, at time.Time) error
}

type connectionMetadataRepository struct {
	db *gorm.DB
}

// NewConnectionMetadataRepository creates a repository over the global metadata store.
func NewConnectionMetadataRepository() ConnectionMetadataRepository {
	return NewConnectionMetadataRepositoryWithDB(config.DB)
}

// NewConnectionMetadataRepositoryWithDB creates a repository over the given handle.
func NewConnectionMetadataRepositoryWithDB(db *gorm.DB) ConnectionMetadataRepository {
	return &connectionMetadataRepository{db: db}
}

// Upsert inserts the record or, when the pool already exists, overwrites everything except
// created_at and last_used_at. TouchLastUsed owns last_used_at.
func (r *connectionMetadataRepository) Upsert(tx *gorm.DB, meta *models.ConnectionMetadata) error {
	db := pick(tx, r.db)
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "pool_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"db_kind", "host", "username", "status"}),
	}).Create(meta).Error
	if err != nil {
		return fmt.Errorf("upsert connection metadata %s: %w", meta.PoolName, err)
	}
	return nil
}

func (r *connectionMetadataRepository) GetByPoolName(tx *gorm.DB, poolName string) (*models.ConnectionMetadata, error) {
	db := pick(tx, r.db)

	var meta models.ConnectionMetadata
	if err := db.Where("pool_name = ?", poolName).First(&meta).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("connection metadata %s: %w", poolName, ErrNotFound)
		}
		return nil, err
	}
	return &meta, nil
}

func (r *connectionMetadataRepository) List(tx *gorm.DB) ([]models.ConnectionMetadata, error) {
	db := pick(tx, r.db)

	var metas []models.ConnectionMetadata
	if err := db.Order("created_at ASC, pool_name ASC").Find(&metas).Error; err != nil {
		return nil, err
	}
	return metas, nil
}

func (r *connectionMetadataRepository) TouchLastUsed(tx *gorm.DB, poolName string, at time.Time) error {
	db := pick(tx, r.db)

	res := db.Model(&models.ConnectionMetadata{}).
		Where("pool_name = ?", poolName).
		Update("last_used_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("connection metadata %s: %w", poolName, ErrNotFound)
	}
	return nil
}
