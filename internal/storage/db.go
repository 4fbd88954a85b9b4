package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/graffic/quotie/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection
type DB struct {
	*gorm.DB
}

// New opens the key/value database configured for the app group and migrates it
func New(cfg *config.StorageConfig) (*DB, error) {
	return NewWithLogger(cfg, logger.Silent)
}

// NewWithLogger opens the database with a custom gorm logger level
func NewWithLogger(cfg *config.StorageConfig, logLevel logger.LogLevel) (*DB, error) {
	dialector, err := dialectorFor(cfg, false)
	if err != nil {
		return nil, err
	}

	db, err := open(dialector, logLevel)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// OpenReadOnly opens the database for a reader process. Nothing is migrated;
// a database that does not exist yet surfaces as read errors.
func OpenReadOnly(cfg *config.StorageConfig) (*DB, error) {
	dialector, err := dialectorFor(cfg, true)
	if err != nil {
		return nil, err
	}
	return open(dialector, logger.Silent)
}

func open(dialector gorm.Dialector, logLevel logger.LogLevel) (*DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &DB{db}, nil
}

func dialectorFor(cfg *config.StorageConfig, readOnly bool) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.Postgres.DSN()), nil
	case "sqlite", "":
		path := cfg.DefaultsPath()
		if readOnly {
			return sqlite.Open(fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(5000)", path)), nil
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage dir: %w", err)
		}
		return sqlite.Open(SQLiteDSN(path)), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// SQLiteDSN returns the writer DSN for a SQLite database file
func SQLiteDSN(path string) string {
	return fmt.Sprintf("%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
