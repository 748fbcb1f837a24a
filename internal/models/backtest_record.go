package models

import (
	"time"
)

// Sheet names as they appear in an uploaded backtest workbook.
const (
	SheetPerformance           = "performance"
	SheetTradesAnalysis        = "tradesAnalysis"
	SheetRiskPerformanceRatios = "riskPerformanceRatios"
	SheetProperties            = "properties"
	SheetListOfTrades          = "listOfTrades"
)

// SheetNames lists every stored sheet in workbook order.
var SheetNames = []string{
	SheetPerformance,
	SheetTradesAnalysis,
	SheetRiskPerformanceRatios,
	SheetProperties,
	SheetListOfTrades,
}

// BacktestRecord is one uploaded strategy backtest for a trading pair.
// The sheet fields hold the raw JSON text of each workbook sheet; a nil
// pointer means the sheet was never stored.
type BacktestRecord struct {
	ID                    string    `db:"id" json:"id"`
	Symbol                string    `db:"symbol" json:"symbol"`
	Timeframe             string    `db:"timeframe" json:"timeframe"`
	Version               string    `db:"version" json:"version"`
	Performance           *string   `db:"performance" json:"performance,omitempty"`
	TradesAnalysis        *string   `db:"trades_analysis" json:"tradesAnalysis,omitempty"`
	RiskPerformanceRatios *string   `db:"risk_performance_ratios" json:"riskPerformanceRatios,omitempty"`
	Properties            *string   `db:"properties" json:"properties,omitempty"`
	ListOfTrades          *string   `db:"list_of_trades" json:"listOfTrades,omitempty"`
	Pricing               Pricing   `json:"pricing"`
	CreatedAt             time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt             time.Time `db:"updated_at" json:"updatedAt"`
}

// Sheet returns the raw payload stored for the named sheet.
func (r *BacktestRecord) Sheet(name string) *string {
	switch name {
	case SheetPerformance:
		return r.Performance
	case SheetTradesAnalysis:
		return r.TradesAnalysis
	case SheetRiskPerformanceRatios:
		return r.RiskPerformanceRatios
	case SheetProperties:
		return r.Properties
	case SheetListOfTrades:
		return r.ListOfTrades
	}
	return nil
}

// SetSheet stores the raw payload for the named sheet. Unknown names are ignored.
func (r *BacktestRecord) SetSheet(name string, payload *string) {
	switch name {
	case SheetPerformance:
		r.Performance = payload
	case SheetTradesAnalysis:
		r.TradesAnalysis = payload
	case SheetRiskPerformanceRatios:
		r.RiskPerformanceRatios = payload
	case SheetProperties:
		r.Properties = payload
	case SheetListOfTrades:
		r.ListOfTrades = payload
	}
}

// NaturalKey identifies the record for re-uploads.
func (r *BacktestRecord) NaturalKey() string {
	return r.Symbol + "|" + r.Timeframe + "|" + r.Version
}
