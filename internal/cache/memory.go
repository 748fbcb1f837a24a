package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/yourusername/pairdesk/internal/backtest"
)

const summaryKey = "summary"

// MemoryCache keeps the summary in process memory.
type MemoryCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewMemoryCache creates a memory cache whose entries live for ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get returns the cached summary, if still fresh.
func (m *MemoryCache) Get(_ context.Context) (backtest.SummaryStats, bool) {
	v, found := m.cache.Get(summaryKey)
	if !found {
		return backtest.SummaryStats{}, false
	}
	stats, ok := v.(backtest.SummaryStats)
	return stats, ok
}

// Set stores stats for the configured ttl.
func (m *MemoryCache) Set(_ context.Context, stats backtest.SummaryStats) {
	m.cache.Set(summaryKey, stats, m.ttl)
}

// Invalidate drops the cached summary.
func (m *MemoryCache) Invalidate(_ context.Context) {
	m.cache.Delete(summaryKey)
}
