// Package repository implements PostgreSQL data access for pairdesk.
package repository

import (
	"fmt"

	"github.com/yourusername/pairdesk/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Backtest     BacktestRepository
	Subscription SubscriptionRepository
	Payment      PaymentRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Backtest:     NewPostgresBacktestRepository(db),
		Subscription: NewPostgresSubscriptionRepository(db),
		Payment:      NewPostgresPaymentRepository(db),
	}, nil
}
