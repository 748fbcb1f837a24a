package views

import (
	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/table"
)

// BacktestRow is a backtest record with its derived metrics.
type BacktestRow struct {
	Record  *models.BacktestRecord `json:"record"`
	Metrics backtest.DerivedMetrics `json:"metrics"`
}

// NewBacktestRow derives the metrics of record.
func NewBacktestRow(record *models.BacktestRecord) BacktestRow {
	return BacktestRow{Record: record, Metrics: backtest.Derive(record)}
}

var backtestFieldNames = []string{
	"id", "symbol", "timeframe", "version", "assetClass", "createdAt", "updatedAt",
	"roi", "riskReward", "totalTrades", "winRate", "maxDrawdown", "profit",
	"sharpeRatio", "sortinoRatio", "profitFactor",
}

// Field implements table.Record.
func (r BacktestRow) Field(name string) (any, bool) {
	rec := r.Record
	if rec == nil {
		return nil, false
	}
	m := r.Metrics
	switch name {
	case "id":
		return rec.ID, true
	case "symbol":
		return rec.Symbol, true
	case "timeframe":
		return rec.Timeframe, true
	case "version":
		return rec.Version, true
	case "assetClass":
		return AssetClass(rec.Symbol), true
	case "createdAt":
		return rec.CreatedAt, true
	case "updatedAt":
		return rec.UpdatedAt, true
	case "roi":
		return m.ROI, true
	case "riskReward":
		return m.RiskReward, true
	case "totalTrades":
		return m.TotalTrades, true
	case "winRate":
		return m.WinRate, true
	case "maxDrawdown":
		return m.MaxDrawdown, true
	case "profit":
		return m.Profit, true
	case "sharpeRatio":
		return m.SharpeRatio, true
	case "sortinoRatio":
		return m.SortinoRatio, true
	case "profitFactor":
		return m.ProfitFactor, true
	case "pricing":
		return pricingFields(rec.Pricing), true
	}
	return nil, false
}

// FieldNames implements table.Record.
func (r BacktestRow) FieldNames() []string {
	return backtestFieldNames
}

func pricingFields(p models.Pricing) table.Fields {
	period := func(pp models.PeriodPrice) table.Fields {
		return table.Fields{
			"price":    pp.Price.InexactFloat64(),
			"discount": pp.Discount.InexactFloat64(),
			"final":    pp.Final().InexactFloat64(),
		}
	}
	return table.Fields{
		"oneMonth":     period(p.OneMonth),
		"threeMonths":  period(p.ThreeMonths),
		"sixMonths":    period(p.SixMonths),
		"twelveMonths": period(p.TwelveMonths),
	}
}

// BacktestOptions are the view options of the backtests list.
func BacktestOptions(pageSizes []int, defaultSize int) table.ViewOptions {
	return table.ViewOptions{
		PageSizes:       pageSizes,
		DefaultPageSize: defaultSize,
		DefaultSort:     "createdAt",
		DefaultDir:      table.Desc,
	}
}

// BacktestView is the backtests list: profitability, asset class and
// recency filters, search by symbol, timeframe and version.
func BacktestView(clock Clock) table.View[BacktestRow] {
	symbol := func(r BacktestRow) string { return r.Record.Symbol }
	categories := []table.Category[BacktestRow]{
		{Key: "profitable", Match: func(r BacktestRow) bool { return r.Metrics.Profit > 0 }},
		{Key: "unprofitable", Match: func(r BacktestRow) bool { return r.Metrics.Profit <= 0 }},
	}
	categories = append(categories, assetCategories(symbol)...)
	categories = append(categories, table.Category[BacktestRow]{
		Key:   "recent",
		Match: func(r BacktestRow) bool { return isRecent(r.Record.CreatedAt, clock.now()) },
	})

	return table.View[BacktestRow]{
		Categories:   table.NewCategorySet(categories...),
		SearchFields: table.FieldPaths("symbol", "timeframe", "version"),
		Sortable:     append(append([]string{}, backtestFieldNames...), "pricing.oneMonth.final"),
	}
}

// SymbolMetrics extracts the aggregator input from rows.
func SymbolMetrics(rows []BacktestRow) []backtest.SymbolMetrics {
	out := make([]backtest.SymbolMetrics, 0, len(rows))
	for _, r := range rows {
		if r.Record == nil {
			continue
		}
		out = append(out, backtest.SymbolMetrics{Symbol: r.Record.Symbol, DerivedMetrics: r.Metrics})
	}
	return out
}
