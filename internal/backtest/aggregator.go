package backtest

// SymbolMetrics pairs derived metrics with the symbol they belong to.
type SymbolMetrics struct {
	Symbol string `json:"symbol"`
	DerivedMetrics
}

// BestPerformer names the symbol with the highest ROI.
type BestPerformer struct {
	Symbol string  `json:"symbol"`
	ROI    float64 `json:"roi"`
}

// SummaryStats feeds the dashboard summary cards.
type SummaryStats struct {
	TotalBacktests      int           `json:"totalBacktests"`
	ProfitableBacktests int           `json:"profitableBacktests"`
	TotalProfit         float64       `json:"totalProfit"`
	BestPerformer       BestPerformer `json:"bestPerformer"`
	AverageROI          float64       `json:"averageROI"`
}

// NoPerformer is reported when there is nothing to rank.
var NoPerformer = BestPerformer{Symbol: "N/A", ROI: 0}

// Aggregate reduces a metrics collection into summary statistics. Ties for
// best performer keep the first item encountered.
func Aggregate(items []SymbolMetrics) SummaryStats {
	stats := SummaryStats{
		TotalBacktests: len(items),
		BestPerformer:  NoPerformer,
	}
	if len(items) == 0 {
		return stats
	}

	roiSum := 0.0
	for i, item := range items {
		if item.Profit > 0 {
			stats.ProfitableBacktests++
		}
		stats.TotalProfit += item.Profit
		roiSum += item.ROI
		if i == 0 || item.ROI > stats.BestPerformer.ROI {
			stats.BestPerformer = BestPerformer{Symbol: item.Symbol, ROI: item.ROI}
		}
	}
	stats.AverageROI = roiSum / float64(stats.TotalBacktests)

	return stats
}
