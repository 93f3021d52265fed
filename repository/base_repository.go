package repository

import (
	"dbconnectorapi/config"

	"gorm.io/gorm"
)

// BaseRepository provides transaction management capabilities for database operations.
type BaseRepository interface {
	Begin() *gorm.DB
}

type baseRepository struct {
	db *gorm.DB
}

// NewBaseRepository creates a new base repository instance with database connection.
func NewBaseRepository() BaseRepository {
	return &baseRepository{
		db: config.DB,
	}
}

func (r *baseRepository) Begin() *gorm.DB {
	return r.db.Begin()
}

// pick returns tx when the caller is inside a transaction, otherwise the repository handle.
func pick(tx, db *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return db
}
