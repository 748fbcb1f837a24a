package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/yourusername/pairdesk/internal/database"
	"github.com/yourusername/pairdesk/internal/models"
)

const backtestColumns = `
	id, symbol, timeframe, version,
	performance::text, trades_analysis::text, risk_performance_ratios::text,
	properties::text, list_of_trades::text, pricing, created_at, updated_at`

// PostgresBacktestRepository implements BacktestRepository for PostgreSQL
type PostgresBacktestRepository struct {
	db *database.DB
}

// NewPostgresBacktestRepository creates a new backtest repository
func NewPostgresBacktestRepository(db *database.DB) BacktestRepository {
	return &PostgresBacktestRepository{db: db}
}

// Upsert inserts a record or replaces the sheets and pricing of the existing one
func (r *PostgresBacktestRepository) Upsert(ctx context.Context, record *models.BacktestRecord) (bool, error) {
	query := `
		INSERT INTO backtests (
			id, symbol, timeframe, version,
			performance, trades_analysis, risk_performance_ratios, properties, list_of_trades,
			pricing, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, now(), now())
		ON CONFLICT (symbol, timeframe, version) DO UPDATE SET
			performance = EXCLUDED.performance,
			trades_analysis = EXCLUDED.trades_analysis,
			risk_performance_ratios = EXCLUDED.risk_performance_ratios,
			properties = EXCLUDED.properties,
			list_of_trades = EXCLUDED.list_of_trades,
			pricing = EXCLUDED.pricing,
			updated_at = now()
		RETURNING id, created_at, updated_at, (xmax = 0) AS inserted
	`

	id := record.ID
	if id == "" {
		id = uuid.NewString()
	}

	var inserted bool
	err := r.db.QueryRow(ctx, query,
		id, record.Symbol, record.Timeframe, record.Version,
		record.Performance, record.TradesAnalysis, record.RiskPerformanceRatios,
		record.Properties, record.ListOfTrades, record.Pricing,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt, &inserted)
	if err != nil {
		return false, fmt.Errorf("failed to upsert backtest: %w", err)
	}
	return inserted, nil
}

// GetByID retrieves a backtest record by ID
func (r *PostgresBacktestRepository) GetByID(ctx context.Context, id string) (*models.BacktestRecord, error) {
	query := `SELECT ` + backtestColumns + ` FROM backtests WHERE id = $1`

	record, err := scanBacktest(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get backtest: %w", err)
	}
	return record, nil
}

// List retrieves every backtest record, newest first
func (r *PostgresBacktestRepository) List(ctx context.Context) ([]*models.BacktestRecord, error) {
	query := `SELECT ` + backtestColumns + ` FROM backtests ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtests: %w", err)
	}
	defer rows.Close()

	var records []*models.BacktestRecord
	for rows.Next() {
		record, err := scanBacktest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan backtest: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes a backtest record
func (r *PostgresBacktestRepository) Delete(ctx context.Context, id string) error {
	commandTag, err := r.db.Exec(ctx, `DELETE FROM backtests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete backtest: %w", err)
	}
	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func scanBacktest(row pgx.Row) (*models.BacktestRecord, error) {
	record := &models.BacktestRecord{}
	err := row.Scan(
		&record.ID, &record.Symbol, &record.Timeframe, &record.Version,
		&record.Performance, &record.TradesAnalysis, &record.RiskPerformanceRatios,
		&record.Properties, &record.ListOfTrades, &record.Pricing,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}
