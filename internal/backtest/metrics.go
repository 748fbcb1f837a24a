package backtest

import (
	"math"

	"github.com/yourusername/pairdesk/internal/models"
)

// DerivedMetrics is the flat set of trading metrics computed from the
// workbook sheets of a backtest record. It is never persisted.
type DerivedMetrics struct {
	ROI          float64 `json:"roi"`
	RiskReward   float64 `json:"riskReward"`
	TotalTrades  int     `json:"totalTrades"`
	WinRate      float64 `json:"winRate"`
	MaxDrawdown  float64 `json:"maxDrawdown"`
	Profit       float64 `json:"profit"`
	SharpeRatio  float64 `json:"sharpeRatio"`
	SortinoRatio float64 `json:"sortinoRatio"`
	ProfitFactor float64 `json:"profitFactor"`
}

// SheetIssue records a sheet that could not be decoded during derivation.
type SheetIssue struct {
	Sheet string
	Err   error
}

// Derive computes metrics for record. Undecodable sheets and missing cells
// contribute zero; Derive never fails.
func Derive(record *models.BacktestRecord) DerivedMetrics {
	metrics, _ := Inspect(record)
	return metrics
}

// Inspect is Derive plus the list of sheets that failed to decode.
func Inspect(record *models.BacktestRecord) (DerivedMetrics, []SheetIssue) {
	if record == nil {
		return DerivedMetrics{}, nil
	}

	sheets := make(map[string]Sheet, len(derivedSheets))
	var issues []SheetIssue
	for _, name := range derivedSheets {
		sheet, err := ParseSheet(record.Sheet(name))
		if err != nil {
			issues = append(issues, SheetIssue{Sheet: name, Err: err})
			continue
		}
		sheets[name] = sheet
	}

	value := func(c Cell) float64 {
		return sheets[c.Sheet].Value(c.Row, c.Column)
	}

	metrics := DerivedMetrics{
		RiskReward:   value(Layout.RiskReward),
		TotalTrades:  int(math.Round(value(Layout.TotalTrades))),
		MaxDrawdown:  value(Layout.MaxDrawdown),
		Profit:       value(Layout.NetProfit),
		SharpeRatio:  value(Layout.SharpeRatio),
		SortinoRatio: value(Layout.SortinoRatio),
		ProfitFactor: value(Layout.ProfitFactor),
	}
	metrics.ROI = calculateROI(value(Layout.ROIBase))
	metrics.WinRate = calculateWinRate(value(Layout.WinningTrades), value(Layout.TotalTrades))

	return metrics, issues
}

// calculateROI keeps the historical dashboard formula as-is.
func calculateROI(base float64) float64 {
	if base == 0 {
		return 0
	}
	return (10000 / base) * 100
}

func calculateWinRate(wins, total float64) float64 {
	if total == 0 {
		return 0
	}
	return wins / total * 100
}
