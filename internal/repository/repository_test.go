package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pairdesk/internal/database"
	"github.com/yourusername/pairdesk/internal/models"
)

func strPtr(s string) *string { return &s }

func setupRepos(t *testing.T) (*Repositories, *database.DB) {
	t.Helper()
	db := database.SetupTestDB(t)
	database.TruncateTestTables(t, db)
	repos, err := NewRepositories(db)
	require.NoError(t, err)
	return repos, db
}

func TestNewRepositoriesRequiresDB(t *testing.T) {
	_, err := NewRepositories(nil)
	require.Error(t, err)
}

func TestBacktestRepositoryUpsertByNaturalKey(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	record := &models.BacktestRecord{
		Symbol:      "EURUSD",
		Timeframe:   "1h",
		Version:     "v1",
		Performance: strPtr(`[{"All USDT": 1}, {"All USDT": 250}]`),
		Pricing: models.Pricing{
			OneMonth: models.PeriodPrice{Price: decimal.NewFromInt(30), Discount: decimal.NewFromInt(10)},
		},
	}
	created, err := repos.Backtest.Upsert(ctx, record)
	require.NoError(t, err)
	assert.True(t, created)
	require.NotEmpty(t, record.ID)

	replacement := &models.BacktestRecord{
		Symbol:      "EURUSD",
		Timeframe:   "1h",
		Version:     "v1",
		Performance: strPtr(`[{"All USDT": 1}, {"All USDT": 500}]`),
	}
	created, err = repos.Backtest.Upsert(ctx, replacement)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, record.ID, replacement.ID)

	got, err := repos.Backtest.GetByID(ctx, record.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Performance)
	assert.JSONEq(t, *replacement.Performance, *got.Performance)
	assert.Nil(t, got.TradesAnalysis)
	assert.True(t, got.Pricing.OneMonth.Price.IsZero())
}

func TestBacktestRepositoryDelete(t *testing.T) {
	repos, _ := setupRepos(t)
	ctx := context.Background()

	record := &models.BacktestRecord{Symbol: "BTCUSDT", Timeframe: "4h", Version: "v1"}
	_, err := repos.Backtest.Upsert(ctx, record)
	require.NoError(t, err)

	require.NoError(t, repos.Backtest.Delete(ctx, record.ID))
	assert.ErrorIs(t, repos.Backtest.Delete(ctx, record.ID), models.ErrNotFound)

	_, err = repos.Backtest.GetByID(ctx, record.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	all, err := repos.Backtest.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSubscriptionAndPaymentRepositories(t *testing.T) {
	repos, db := setupRepos(t)
	ctx := context.Background()

	pair := &models.BacktestRecord{Symbol: "XAUUSD", Timeframe: "1d", Version: "v3"}
	_, err := repos.Backtest.Upsert(ctx, pair)
	require.NoError(t, err)

	_, err = db.Exec(ctx, `INSERT INTO users (id, email, name) VALUES ('u1', 'alice@example.com', 'Alice')`)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `
		INSERT INTO subscriptions (id, user_id, pair_id, period, status, price, discount)
		VALUES ('s1', 'u1', $1, 'THREE_MONTHS', 'ACTIVE', 90, 10)`, pair.ID)
	require.NoError(t, err)
	_, err = db.Exec(ctx, `
		INSERT INTO payments (id, invoice_id, user_id, subscription_id, pair_symbol, period, amount, status)
		VALUES ('p1', 'INV-1', 'u1', 's1', 'XAUUSD', 'THREE_MONTHS', 81, 'PAID')`)
	require.NoError(t, err)

	subs, err := repos.Subscription.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "XAUUSD", subs[0].PairSymbol)
	assert.Equal(t, "alice@example.com", subs[0].UserEmail)
	assert.True(t, subs[0].Price.Equal(decimal.NewFromInt(90)))

	payments, err := repos.Payment.List(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, models.PaymentPaid, payments[0].Status)
	require.NotNil(t, payments[0].SubscriptionID)
	assert.Equal(t, "s1", *payments[0].SubscriptionID)
}
