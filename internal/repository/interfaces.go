package repository

import (
	"context"

	"github.com/yourusername/pairdesk/internal/models"
)

// BacktestRepository defines the interface for backtest record access
type BacktestRepository interface {
	// Upsert inserts record or replaces the one with the same symbol,
	// timeframe and version. It fills in ID and timestamps and reports
	// whether a new row was created.
	Upsert(ctx context.Context, record *models.BacktestRecord) (bool, error)
	GetByID(ctx context.Context, id string) (*models.BacktestRecord, error)
	List(ctx context.Context) ([]*models.BacktestRecord, error)
	Delete(ctx context.Context, id string) error
}

// SubscriptionRepository defines the interface for subscription access
type SubscriptionRepository interface {
	List(ctx context.Context) ([]*models.Subscription, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Subscription, error)
}

// PaymentRepository defines the interface for payment access
type PaymentRepository interface {
	List(ctx context.Context) ([]*models.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]*models.Payment, error)
}
