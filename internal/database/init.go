package database

import (
	"context"
	"fmt"

	"github.com/yourusername/pairdesk/internal/config"
)

// RequiredTables must exist before the service starts.
var RequiredTables = []string{"backtests", "subscriptions", "payments"}

// Initialize creates a database connection pool and verifies the schema is migrated
func Initialize(ctx context.Context, cfg *config.Config) (*DB, error) {
	db, err := NewDB(ctx, &cfg.Database)
	if err != nil {
		return nil, err
	}

	for _, table := range RequiredTables {
		var exists bool
		err := db.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL", "public."+table).Scan(&exists)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			db.Close()
			return nil, fmt.Errorf("table %s not found, apply migrations/001_init.sql first", table)
		}
	}

	return db, nil
}
