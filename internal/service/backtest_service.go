package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/cache"
	"github.com/yourusername/pairdesk/internal/logger"
	"github.com/yourusername/pairdesk/internal/metrics"
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/repository"
	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

// ImportSheets carries the raw JSON of each workbook sheet. Omitted sheets
// are stored as NULL.
type ImportSheets struct {
	Performance           json.RawMessage `json:"performance"`
	TradesAnalysis        json.RawMessage `json:"tradesAnalysis"`
	RiskPerformanceRatios json.RawMessage `json:"riskPerformanceRatios"`
	Properties            json.RawMessage `json:"properties"`
	ListOfTrades          json.RawMessage `json:"listOfTrades"`
}

func (s ImportSheets) byName() map[string]json.RawMessage {
	return map[string]json.RawMessage{
		models.SheetPerformance:           s.Performance,
		models.SheetTradesAnalysis:        s.TradesAnalysis,
		models.SheetRiskPerformanceRatios: s.RiskPerformanceRatios,
		models.SheetProperties:            s.Properties,
		models.SheetListOfTrades:          s.ListOfTrades,
	}
}

// ImportRequest is one backtest upload.
type ImportRequest struct {
	Symbol    string         `json:"symbol" validate:"required,max=32"`
	Timeframe string         `json:"timeframe" validate:"max=16"`
	Version   string         `json:"version" validate:"max=32"`
	Sheets    ImportSheets   `json:"sheets"`
	Pricing   models.Pricing `json:"pricing"`
}

// BacktestService manages backtest records and their derived metrics.
type BacktestService struct {
	repo     repository.BacktestRepository
	cache    cache.SummaryCache
	validate *validator.Validate
	pipeline *logger.PipelineLogger
	audit    *logger.AuditLogger
	settings TableSettings
	workers  int
	clock    views.Clock

	// summaryMu orders cache writes against invalidations. generation
	// counts writes to the backtests table.
	summaryMu  sync.Mutex
	generation uint64
}

// NewBacktestService creates a backtest service. workers bounds concurrent
// derivation; values below 1 use GOMAXPROCS.
func NewBacktestService(repo repository.BacktestRepository, summaryCache cache.SummaryCache, log *logrus.Logger, settings TableSettings, workers int) *BacktestService {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	if summaryCache == nil {
		summaryCache = cache.Noop{}
	}
	return &BacktestService{
		repo:     repo,
		cache:    summaryCache,
		validate: validator.New(),
		pipeline: logger.NewPipelineLogger(log),
		audit:    logger.NewAuditLogger(log),
		settings: settings,
		workers:  workers,
		clock:    time.Now,
	}
}

// Options returns the view options of the backtests list.
func (s *BacktestService) Options() table.ViewOptions {
	return views.BacktestOptions(s.settings.PageSizes, s.settings.DefaultPageSize)
}

// Import validates req and upserts it by symbol, timeframe and version.
// It reports whether a new record was created.
func (s *BacktestService) Import(ctx context.Context, req ImportRequest) (*models.BacktestRecord, bool, error) {
	record, err := s.recordFromRequest(req)
	if err != nil {
		return nil, false, err
	}

	created, err := s.repo.Upsert(ctx, record)
	if err != nil {
		return nil, false, fmt.Errorf("failed to store backtest %s: %w", record.NaturalKey(), err)
	}

	s.invalidateSummary(ctx)
	metrics.RecordBacktestImported(created)
	s.audit.LogBacktestImported(record.ID, record.Symbol, record.Timeframe, record.Version, created)
	return record, created, nil
}

func (s *BacktestService) recordFromRequest(req ImportRequest) (*models.BacktestRecord, error) {
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	req.Timeframe = strings.TrimSpace(req.Timeframe)
	req.Version = strings.TrimSpace(req.Version)

	if req.Symbol == "" {
		return nil, errors.Join(ErrValidation, models.ErrSymbolRequired)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}
	if err := validatePricing(req.Pricing); err != nil {
		return nil, errors.Join(ErrValidation, err)
	}

	record := &models.BacktestRecord{
		Symbol:    req.Symbol,
		Timeframe: req.Timeframe,
		Version:   req.Version,
		Pricing:   req.Pricing,
	}
	for name, raw := range req.Sheets.byName() {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}
		text := string(raw)
		if err := backtest.ValidateSheet(text); err != nil {
			return nil, errors.Join(ErrValidation, fmt.Errorf("sheet %s: %w", name, err))
		}
		record.SetSheet(name, &text)
	}
	return record, nil
}

var hundred = decimal.NewFromInt(100)

func validatePricing(p models.Pricing) error {
	for _, period := range models.Periods {
		pp, err := p.For(period)
		if err != nil {
			return err
		}
		if pp.Price.IsNegative() {
			return fmt.Errorf("pricing %s: price must not be negative", period)
		}
		if pp.Discount.IsNegative() || pp.Discount.GreaterThan(hundred) {
			return fmt.Errorf("pricing %s: discount must be between 0 and 100", period)
		}
	}
	return nil
}

// Get returns one backtest with its metrics.
func (s *BacktestService) Get(ctx context.Context, id string) (views.BacktestRow, error) {
	if strings.TrimSpace(id) == "" {
		return views.BacktestRow{}, errors.Join(ErrValidation, models.ErrInvalidID)
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return views.BacktestRow{}, err
	}
	return s.derive(record), nil
}

// Delete removes a backtest record.
func (s *BacktestService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.Join(ErrValidation, models.ErrInvalidID)
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateSummary(ctx)
	metrics.RecordBacktestDeleted()
	s.audit.LogBacktestDeleted(id, record.Symbol)
	return nil
}

// Rows loads every backtest and derives its metrics concurrently. Row order
// follows the repository.
func (s *BacktestService) Rows(ctx context.Context) ([]views.BacktestRow, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load backtests: %w", err)
	}

	rows := make([]views.BacktestRow, len(records))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, record := range records {
		i, record := i, record
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rows[i] = s.derive(record)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics.UpdateBacktestsLoaded(len(rows))
	return rows, nil
}

func (s *BacktestService) derive(record *models.BacktestRecord) views.BacktestRow {
	m, issues := backtest.Inspect(record)
	for _, issue := range issues {
		if errors.Is(issue.Err, backtest.ErrSheetMissing) {
			continue
		}
		metrics.RecordSheetFallback(issue.Sheet)
		s.pipeline.LogSheetFallback(record.ID, record.Symbol, issue.Sheet, issue.Err)
	}
	return views.BacktestRow{Record: record, Metrics: m}
}

// Overview runs the backtests list view and aggregates the summary from the
// same load, so the cards always agree with the table.
func (s *BacktestService) Overview(ctx context.Context, state table.ViewState) (table.Result[views.BacktestRow], backtest.SummaryStats, error) {
	gen := s.summaryGeneration()
	rows, err := s.Rows(ctx)
	if err != nil {
		return table.Result[views.BacktestRow]{}, backtest.SummaryStats{}, err
	}

	result := runView(CollectionBacktests, views.BacktestView(s.clock), rows, state, s.pipeline)
	stats := backtest.Aggregate(views.SymbolMetrics(rows))
	s.storeSummary(ctx, gen, stats)
	return result, stats, nil
}

// Summary returns the cached summary stats, recomputing them on a miss.
func (s *BacktestService) Summary(ctx context.Context) (backtest.SummaryStats, error) {
	if stats, ok := s.cache.Get(ctx); ok {
		metrics.RecordSummaryCache(true)
		return stats, nil
	}
	metrics.RecordSummaryCache(false)
	return s.RefreshSummary(ctx)
}

// RefreshSummary recomputes the summary over every backtest and primes the
// cache. A result computed across a concurrent import or delete is returned
// but not cached.
func (s *BacktestService) RefreshSummary(ctx context.Context) (backtest.SummaryStats, error) {
	start := time.Now()
	gen := s.summaryGeneration()
	rows, err := s.Rows(ctx)
	metrics.RecordSummaryRefresh(err)
	if err != nil {
		return backtest.SummaryStats{}, err
	}

	stats := backtest.Aggregate(views.SymbolMetrics(rows))
	if !s.storeSummary(ctx, gen, stats) {
		s.pipeline.WithField("generation", gen).Debug("Summary superseded by a write, not cached")
	}
	s.pipeline.LogSummaryRefreshed(stats.TotalBacktests, stats.BestPerformer.Symbol, time.Since(start))
	return stats, nil
}

func (s *BacktestService) summaryGeneration() uint64 {
	s.summaryMu.Lock()
	defer s.summaryMu.Unlock()
	return s.generation
}

// storeSummary caches stats unless a write landed after gen was read.
func (s *BacktestService) storeSummary(ctx context.Context, gen uint64, stats backtest.SummaryStats) bool {
	s.summaryMu.Lock()
	defer s.summaryMu.Unlock()
	if gen != s.generation {
		return false
	}
	s.cache.Set(ctx, stats)
	return true
}

func (s *BacktestService) invalidateSummary(ctx context.Context) {
	s.summaryMu.Lock()
	defer s.summaryMu.Unlock()
	s.generation++
	s.cache.Invalidate(ctx)
}
