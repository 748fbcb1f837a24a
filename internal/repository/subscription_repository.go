package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pairdesk/internal/database"
	"github.com/yourusername/pairdesk/internal/models"
)

const subscriptionQuery = `
	SELECT s.id, s.user_id, u.email, u.name, s.pair_id, b.symbol, b.timeframe,
	       s.period, s.status, s.price, s.discount, s.expires_at, s.created_at, s.updated_at
	FROM subscriptions s
	JOIN users u ON u.id = s.user_id
	JOIN backtests b ON b.id = s.pair_id`

// PostgresSubscriptionRepository implements SubscriptionRepository for PostgreSQL
type PostgresSubscriptionRepository struct {
	db *database.DB
}

// NewPostgresSubscriptionRepository creates a new subscription repository
func NewPostgresSubscriptionRepository(db *database.DB) SubscriptionRepository {
	return &PostgresSubscriptionRepository{db: db}
}

// List retrieves every subscription with its user and pair
func (r *PostgresSubscriptionRepository) List(ctx context.Context) ([]*models.Subscription, error) {
	rows, err := r.db.Query(ctx, subscriptionQuery+` ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions: %w", err)
	}
	return collectSubscriptions(rows)
}

// ListByUser retrieves the subscriptions of one user
func (r *PostgresSubscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*models.Subscription, error) {
	rows, err := r.db.Query(ctx, subscriptionQuery+` WHERE s.user_id = $1 ORDER BY s.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions by user: %w", err)
	}
	return collectSubscriptions(rows)
}

func collectSubscriptions(rows pgx.Rows) ([]*models.Subscription, error) {
	defer rows.Close()

	var subs []*models.Subscription
	for rows.Next() {
		s := &models.Subscription{}
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.UserEmail, &s.UserName, &s.PairID, &s.PairSymbol, &s.PairTimeframe,
			&s.Period, &s.Status, &s.Price, &s.Discount, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}
