package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/graffic/quotie/internal/config"
	"github.com/graffic/quotie/internal/storage"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// NewStorageConfig returns a SQLite storage configuration rooted in a
// per-test temporary directory
func NewStorageConfig(t *testing.T) *config.StorageConfig {
	t.Helper()
	return &config.StorageConfig{
		Dir:        t.TempDir(),
		QuotesFile: "quotes.json",
		Driver:     "sqlite",
		DefaultsDB: "defaults.db",
		ReloadFile: "widget.reload",
	}
}

// NewTestDB creates a migrated SQLite database in a temporary directory
func NewTestDB(t *testing.T, extra ...interface{}) *storage.DB {
	t.Helper()
	return NewTestDBAt(t, NewStorageConfig(t), extra...)
}

// NewTestDBAt opens a migrated database for cfg and closes it after the test
func NewTestDBAt(t *testing.T, cfg *config.StorageConfig, extra ...interface{}) *storage.DB {
	t.Helper()

	db, err := storage.New(cfg)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if len(extra) > 0 {
		if err := db.Migrate(extra...); err != nil {
			t.Fatalf("Failed to run migrations: %v", err)
		}
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewPostgresDB starts a throwaway PostgreSQL container and returns a
// migrated connection to it. Skipped with -short.
func NewPostgresDB(t *testing.T) *storage.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("quotie_test"),
		postgres.WithUsername("quotie_test"),
		postgres.WithPassword("quotie_test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Skipf("postgres container unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = ctr.Terminate(context.Background())
	})

	host, err := ctr.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := ctr.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	cfg := &config.StorageConfig{
		Driver: "postgres",
		Postgres: config.PostgresConfig{
			Host:     host,
			Port:     port.Int(),
			User:     "quotie_test",
			Password: "quotie_test",
			Database: "quotie_test",
			SSLMode:  "disable",
		},
	}
	return NewTestDBAt(t, cfg)
}

// WaitForCondition waits for a condition to be met or timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, interval time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(interval)
	}
	t.Fatal("Condition not met within timeout")
}

// FixedClock returns a clock that always reports at
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
