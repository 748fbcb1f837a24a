package backtest

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(nil)

	assert.Equal(t, SummaryStats{
		TotalBacktests:      0,
		ProfitableBacktests: 0,
		TotalProfit:         0,
		BestPerformer:       BestPerformer{Symbol: "N/A", ROI: 0},
		AverageROI:          0,
	}, stats)
	assert.False(t, math.IsNaN(stats.AverageROI))
}

func TestAggregateMixedResults(t *testing.T) {
	items := []SymbolMetrics{
		{Symbol: "BTCUSDT", DerivedMetrics: DerivedMetrics{Profit: 500, ROI: 12}},
		{Symbol: "EURUSD", DerivedMetrics: DerivedMetrics{Profit: -100, ROI: -4}},
	}

	stats := Aggregate(items)
	assert.Equal(t, 2, stats.TotalBacktests)
	assert.Equal(t, 1, stats.ProfitableBacktests)
	assert.Equal(t, 400.0, stats.TotalProfit)
	assert.Equal(t, BestPerformer{Symbol: "BTCUSDT", ROI: 12}, stats.BestPerformer)
	assert.Equal(t, 4.0, stats.AverageROI)
}

func TestAggregateTieKeepsFirst(t *testing.T) {
	items := []SymbolMetrics{
		{Symbol: "ETHUSDT", DerivedMetrics: DerivedMetrics{ROI: 8}},
		{Symbol: "GBPUSD", DerivedMetrics: DerivedMetrics{ROI: 8}},
		{Symbol: "XAUUSD", DerivedMetrics: DerivedMetrics{ROI: 3}},
	}

	assert.Equal(t, "ETHUSDT", Aggregate(items).BestPerformer.Symbol)
}

func TestAggregateAllNegativeROI(t *testing.T) {
	items := []SymbolMetrics{
		{Symbol: "EURUSD", DerivedMetrics: DerivedMetrics{ROI: -9, Profit: -10}},
		{Symbol: "USDJPY", DerivedMetrics: DerivedMetrics{ROI: -2, Profit: 0}},
	}

	stats := Aggregate(items)
	assert.Equal(t, BestPerformer{Symbol: "USDJPY", ROI: -2}, stats.BestPerformer)
	assert.Zero(t, stats.ProfitableBacktests)
	assert.Equal(t, -10.0, stats.TotalProfit)
}
