package database

import (
	"fmt"
	"strings"

	"configurator/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MemoryURL selects the in-process store; no database is opened for it.
const MemoryURL = "memory://"

type Database struct {
	DB *gorm.DB
}

// IsMemory reports whether databaseURL asks for the in-process store.
func IsMemory(databaseURL string) bool {
	return databaseURL == "" || strings.HasPrefix(databaseURL, MemoryURL)
}

func New(databaseURL string, debug bool) (*Database, error) {
	var db *gorm.DB
	var err error

	logMode := logger.Warn
	if debug {
		logMode = logger.Info
	}
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	}

	if strings.HasPrefix(databaseURL, "sqlite://") {
		// SQLite for development and tests
		dbPath := strings.TrimPrefix(databaseURL, "sqlite://")
		db, err = gorm.Open(sqlite.Open(dbPath), gormConfig)
	} else {
		// PostgreSQL for production
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Sofa{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
