package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/pairdesk/internal/config"
)

// TestConfigEnv names the config file integration tests connect with.
const TestConfigEnv = "PAIRDESK_TEST_CONFIG"

// SetupTestDB connects to the database named by TestConfigEnv, skipping the
// test when it is unset.
func SetupTestDB(t *testing.T) *DB {
	t.Helper()
	path := os.Getenv(TestConfigEnv)
	if path == "" {
		t.Skipf("integration test - set %s to a config file", TestConfigEnv)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load test config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}

	t.Cleanup(db.Close)
	return db
}

// TruncateTestTables empties every table the service owns.
func TruncateTestTables(t *testing.T, db *DB) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.Exec(ctx, "TRUNCATE payments, subscriptions, backtests CASCADE"); err != nil {
		t.Fatalf("failed to truncate test tables: %v", err)
	}
}
