package repositories

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DatabaseName is the default on-disk file of the store.
	DatabaseName = "inventory.db"
	// DatabaseVersion is the current schema version kept in PRAGMA user_version.
	DatabaseVersion = 1
)

const createProductsTable = `CREATE TABLE IF NOT EXISTS products (
	_id INTEGER PRIMARY KEY AUTOINCREMENT,
	picture TEXT NOT NULL,
	name TEXT NOT NULL,
	price FLOAT NOT NULL,
	quantity INTEGER DEFAULT 0,
	supplierName TEXT NOT NULL,
	supplierEmail TEXT NOT NULL)`

// OpenDatabase opens the SQLite database at path. Use ":memory:" for a
// private in-memory database.
//
// SQLite allows a single writer, so the pool is limited to one connection;
// this also keeps an in-memory database alive for the lifetime of the pool.
func OpenDatabase(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database %s: %w", path, err)
	}
	return db, nil
}

// OpenProductStore opens the database at path and makes sure the products
// table exists at the current schema version.
func OpenProductStore(path string) (*GORMProductRepository, error) {
	db, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	repo := NewGORMProductRepository(db)
	if err := repo.Open(); err != nil {
		repo.Close()
		return nil, err
	}
	return repo, nil
}

// schemaVersion reads PRAGMA user_version.
func schemaVersion(db *gorm.DB) (int, error) {
	var version int
	if err := db.Raw("PRAGMA user_version").Scan(&version).Error; err != nil {
		return 0, fmt.Errorf("get user_version: %w", err)
	}
	return version, nil
}

func setSchemaVersion(db *gorm.DB, version int) error {
	if err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version)).Error; err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}
	return nil
}
