package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pairdesk/internal/database"
	"github.com/yourusername/pairdesk/internal/models"
)

const paymentQuery = `
	SELECT p.id, p.invoice_id, p.user_id, u.email, p.subscription_id, p.pair_symbol,
	       p.period, p.amount, p.currency, p.status, p.created_at, p.updated_at
	FROM payments p
	JOIN users u ON u.id = p.user_id`

// PostgresPaymentRepository implements PaymentRepository for PostgreSQL
type PostgresPaymentRepository struct {
	db *database.DB
}

// NewPostgresPaymentRepository creates a new payment repository
func NewPostgresPaymentRepository(db *database.DB) PaymentRepository {
	return &PostgresPaymentRepository{db: db}
}

// List retrieves every payment, newest first
func (r *PostgresPaymentRepository) List(ctx context.Context) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, paymentQuery+` ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	return collectPayments(rows)
}

// ListByUser retrieves the payments of one user
func (r *PostgresPaymentRepository) ListByUser(ctx context.Context, userID string) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, paymentQuery+` WHERE p.user_id = $1 ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments by user: %w", err)
	}
	return collectPayments(rows)
}

func collectPayments(rows pgx.Rows) ([]*models.Payment, error) {
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(
			&p.ID, &p.InvoiceID, &p.UserID, &p.UserEmail, &p.SubscriptionID, &p.PairSymbol,
			&p.Period, &p.Amount, &p.Currency, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}
