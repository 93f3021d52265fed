package config

import (
	"fmt"

	"dbconnectorapi/models"
	"dbconnectorapi/pkg/logger"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// DB is the global GORM database instance for connection metadata and query history.
// It stays nil when the metadata store is disabled.
var DB *gorm.DB

// ConnectDB opens the metadata store with the configured MySQL credentials and migrates its tables.
func ConnectDB() error {
	logger.Infof("Connecting to metadata store %s@%s:%d/%s", Cfg.DBUser, Cfg.DBHost, Cfg.DBPort, Cfg.DBName)

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		Cfg.DBUser,
		Cfg.DBPass,
		Cfg.DBHost,
		Cfg.DBPort,
		Cfg.DBName,
	)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.Errorf("GORM connection failed: %v", err)
		return err
	}
	logger.Infof("GORM connected successfully to database %s", Cfg.DBName)

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db
	return nil
}

// Migrate creates or updates the metadata store tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.ConnectionMetadata{}, &models.QueryHistory{}); err != nil {
		logger.Errorf("Metadata store migration failed: %v", err)
		return fmt.Errorf("migrate metadata store: %w", err)
	}
	return nil
}
