package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/cache"
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/table"
)

var settings = TableSettings{PageSizes: []int{5, 10, 20, 50}, DefaultPageSize: 10}

func perfRecord(id, symbol string, profit string) *models.BacktestRecord {
	return &models.BacktestRecord{
		ID:          id,
		Symbol:      symbol,
		Performance: strPtr(`[{"All USDT": 0}, {"All USDT": ` + profit + `}]`),
		CreatedAt:   time.Now(),
	}
}

func newBacktestService(repo *MockBacktestRepository) (*BacktestService, *cache.MemoryCache) {
	c := cache.NewMemoryCache(time.Minute)
	return NewBacktestService(repo, c, quietLogger(), settings, 2), c
}

func TestImportCreatesRecord(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, c := newBacktestService(repo)
	ctx := context.Background()
	c.Set(ctx, backtest.SummaryStats{TotalBacktests: 99})

	repo.On("Upsert", ctx, mock.MatchedBy(func(r *models.BacktestRecord) bool {
		return r.Symbol == "EURUSD" && r.Performance != nil && r.TradesAnalysis == nil
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.BacktestRecord).ID = "new-id"
	}).Return(true, nil)

	record, created, err := svc.Import(ctx, ImportRequest{
		Symbol:    " eurusd ",
		Timeframe: "1h",
		Version:   "v1",
		Sheets:    ImportSheets{Performance: json.RawMessage(`[{"All USDT": 5}]`)},
		Pricing: models.Pricing{
			OneMonth: models.PeriodPrice{Price: decimal.NewFromInt(30), Discount: decimal.NewFromInt(20)},
		},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "new-id", record.ID)
	assert.Equal(t, `[{"All USDT": 5}]`, *record.Performance)

	_, cached := c.Get(ctx)
	assert.False(t, cached, "import must invalidate the summary cache")
	repo.AssertExpectations(t)
}

func TestImportRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  ImportRequest
		is   error
	}{
		{"missing symbol", ImportRequest{Symbol: "  "}, models.ErrSymbolRequired},
		{"sheet not an array", ImportRequest{Symbol: "EURUSD", Sheets: ImportSheets{TradesAnalysis: json.RawMessage(`{"a":1}`)}}, models.ErrInvalidSheet},
		{"discount above 100", ImportRequest{Symbol: "EURUSD", Pricing: models.Pricing{
			SixMonths: models.PeriodPrice{Price: decimal.NewFromInt(1), Discount: decimal.NewFromInt(150)},
		}}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockBacktestRepository)
			svc, _ := newBacktestService(repo)

			_, _, err := svc.Import(context.Background(), tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrValidation)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestImportWrapsRepositoryError(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, _ := newBacktestService(repo)
	boom := errors.New("connection reset")
	repo.On("Upsert", mock.Anything, mock.Anything).Return(false, boom)

	_, _, err := svc.Import(context.Background(), ImportRequest{Symbol: "EURUSD"})
	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrValidation)
}

func TestDelete(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, _ := newBacktestService(repo)
	ctx := context.Background()

	repo.On("GetByID", ctx, "a").Return(perfRecord("a", "EURUSD", "1"), nil)
	repo.On("Delete", ctx, "a").Return(nil)
	repo.On("GetByID", ctx, "missing").Return(nil, models.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, "a"))
	assert.ErrorIs(t, svc.Delete(ctx, "missing"), models.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), models.ErrInvalidID)
	repo.AssertNumberOfCalls(t, "Delete", 1)
}

func TestGetDerivesMetrics(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, _ := newBacktestService(repo)
	repo.On("GetByID", mock.Anything, "a").Return(perfRecord("a", "EURUSD", "250"), nil)

	row, err := svc.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.InDelta(t, 250.0, row.Metrics.Profit, 1e-9)
	assert.InDelta(t, 4000.0, row.Metrics.ROI, 1e-9)
}

func TestRowsKeepsRepositoryOrderAndDegradesBadSheets(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, _ := newBacktestService(repo)

	broken := perfRecord("c", "XAUUSD", "1")
	broken.Performance = strPtr("{not json")
	records := []*models.BacktestRecord{
		perfRecord("a", "EURUSD", "10"),
		perfRecord("b", "BTCUSDT", "-5"),
		broken,
	}
	repo.On("List", mock.Anything).Return(records, nil)

	rows, err := svc.Rows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "a", rows[0].Record.ID)
	assert.Equal(t, "b", rows[1].Record.ID)
	assert.Equal(t, "c", rows[2].Record.ID)
	assert.Equal(t, backtest.DerivedMetrics{}, rows[2].Metrics)
}

func TestSummaryUsesCache(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, _ := newBacktestService(repo)
	ctx := context.Background()

	repo.On("List", ctx).Return([]*models.BacktestRecord{
		perfRecord("a", "AAA", "100"),
		perfRecord("b", "BBB", "-50"),
		perfRecord("c", "CCC", "200"),
	}, nil).Once()

	stats, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalBacktests)
	assert.Equal(t, 2, stats.ProfitableBacktests)
	assert.InDelta(t, 250.0, stats.TotalProfit, 1e-9)
	assert.Equal(t, "AAA", stats.BestPerformer.Symbol)

	again, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, stats, again)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestSummaryEmpty(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, _ := newBacktestService(repo)
	repo.On("List", mock.Anything).Return([]*models.BacktestRecord{}, nil)

	stats, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backtest.SummaryStats{BestPerformer: backtest.NoPerformer}, stats)
}

func TestOverviewFiltersSortsAndSummarisesOneLoad(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, c := newBacktestService(repo)
	repo.On("List", mock.Anything).Return([]*models.BacktestRecord{
		perfRecord("a", "EURUSD", "10"),
		perfRecord("b", "BTCUSDT", "-5"),
		perfRecord("c", "GBPJPY", "30"),
	}, nil)

	state := table.NewViewState(svc.Options()).WithFilter("profitable").WithSort("profit", table.Desc)
	result, stats, err := svc.Overview(context.Background(), state)
	require.NoError(t, err)
	require.Len(t, result.Page.Items, 2)
	assert.Equal(t, "GBPJPY", result.Page.Items[0].Record.Symbol)
	assert.Equal(t, "EURUSD", result.Page.Items[1].Record.Symbol)
	assert.Equal(t, 2, result.Page.TotalItems)

	// the summary covers every row, not just the filtered page
	assert.Equal(t, 3, stats.TotalBacktests)
	assert.Equal(t, 2, stats.ProfitableBacktests)
	repo.AssertNumberOfCalls(t, "List", 1)

	cached, ok := c.Get(context.Background())
	require.True(t, ok)
	assert.Equal(t, stats, cached)
}

func TestOverviewPropagatesLoadError(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, _ := newBacktestService(repo)
	repo.On("List", mock.Anything).Return(nil, errors.New("db down"))

	_, _, err := svc.Overview(context.Background(), table.NewViewState(svc.Options()))
	require.Error(t, err)
}

func TestRefreshDoesNotCacheAcrossImport(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, c := newBacktestService(repo)
	ctx := context.Background()

	listing := make(chan struct{})
	release := make(chan struct{})
	repo.On("List", ctx).Run(func(mock.Arguments) {
		close(listing)
		<-release
	}).Return([]*models.BacktestRecord{perfRecord("a", "EURUSD", "10")}, nil).Once()
	repo.On("List", ctx).Return([]*models.BacktestRecord{
		perfRecord("a", "EURUSD", "10"),
		perfRecord("b", "GBPUSD", "20"),
	}, nil).Once()
	repo.On("Upsert", ctx, mock.Anything).Return(true, nil).Once()

	refreshed := make(chan backtest.SummaryStats, 1)
	go func() {
		stats, err := svc.RefreshSummary(ctx)
		assert.NoError(t, err)
		refreshed <- stats
	}()

	<-listing
	_, _, err := svc.Import(ctx, ImportRequest{Symbol: "GBPUSD", Timeframe: "1h", Version: "v1"})
	require.NoError(t, err)
	close(release)

	stale := <-refreshed
	assert.Equal(t, 1, stale.TotalBacktests)
	_, ok := c.Get(ctx)
	assert.False(t, ok, "a refresh that overlapped a write must not be cached")

	stats, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalBacktests)
	repo.AssertExpectations(t)
}

func TestDeleteInvalidatesPendingRefresh(t *testing.T) {
	repo := new(MockBacktestRepository)
	svc, c := newBacktestService(repo)
	ctx := context.Background()

	gen := svc.summaryGeneration()
	repo.On("GetByID", ctx, "a").Return(perfRecord("a", "EURUSD", "10"), nil)
	repo.On("Delete", ctx, "a").Return(nil)
	require.NoError(t, svc.Delete(ctx, "a"))

	assert.False(t, svc.storeSummary(ctx, gen, backtest.SummaryStats{TotalBacktests: 1}))
	_, ok := c.Get(ctx)
	assert.False(t, ok)
	assert.True(t, svc.storeSummary(ctx, svc.summaryGeneration(), backtest.SummaryStats{TotalBacktests: 0}))
}
