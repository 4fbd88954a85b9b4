package storage

import (
	"fmt"
	"log/slog"
)

// Migrate creates or updates the tables owned by the storage layer plus any
// extra models supplied by the caller
func (db *DB) Migrate(extra ...interface{}) error {
	models := append([]interface{}{&Setting{}}, extra...)
	slog.Debug("running database migrations", "models", len(models))

	if err := db.DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
