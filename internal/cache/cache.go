// Package cache stores the backtest summary stats between recomputations.
package cache

import (
	"context"

	"github.com/yourusername/pairdesk/internal/backtest"
)

// SummaryCache holds the most recent SummaryStats. Implementations never
// fail a lookup: backend errors read as a miss.
type SummaryCache interface {
	Get(ctx context.Context) (backtest.SummaryStats, bool)
	Set(ctx context.Context, stats backtest.SummaryStats)
	Invalidate(ctx context.Context)
}

// Noop caches nothing.
type Noop struct{}

// Get always misses.
func (Noop) Get(context.Context) (backtest.SummaryStats, bool) { return backtest.SummaryStats{}, false }

// Set discards stats.
func (Noop) Set(context.Context, backtest.SummaryStats) {}

// Invalidate does nothing.
func (Noop) Invalidate(context.Context) {}
