package database

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CatalogDSN is the default in-memory database for the seeded price catalog.
// The catalog holds no user data, so nothing needs to survive a restart.
const CatalogDSN = "file::memory:?cache=shared"

// NewCatalogDB opens the SQLite database backing the mock price catalog.
func NewCatalogDB(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = CatalogDSN
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	return db, nil
}
