package backtest

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/spf13/cast"
	"github.com/yourusername/pairdesk/internal/models"
)

// ColumnAllUSDT is the workbook column that carries the all-trades totals.
const ColumnAllUSDT = "All USDT"

var (
	// ErrSheetMissing is reported when a sheet was never stored.
	ErrSheetMissing = errors.New("sheet not stored")
	// ErrSheetEmpty is reported when a sheet was stored as blank text.
	ErrSheetEmpty = errors.New("sheet is empty")
)

// Cell addresses one value inside a workbook sheet. Rows are positional:
// the exported workbook always emits its statistics in the same order.
type Cell struct {
	Sheet  string
	Row    int
	Column string
}

// Layout maps every derived metric to its cell. This is the only place
// that knows row positions.
var Layout = struct {
	NetProfit     Cell
	ROIBase       Cell
	MaxDrawdown   Cell
	TotalTrades   Cell
	WinningTrades Cell
	RiskReward    Cell
	SharpeRatio   Cell
	SortinoRatio  Cell
	ProfitFactor  Cell
}{
	NetProfit:     Cell{Sheet: models.SheetPerformance, Row: 1, Column: ColumnAllUSDT},
	ROIBase:       Cell{Sheet: models.SheetPerformance, Row: 1, Column: ColumnAllUSDT},
	MaxDrawdown:   Cell{Sheet: models.SheetPerformance, Row: 7, Column: ColumnAllUSDT},
	TotalTrades:   Cell{Sheet: models.SheetTradesAnalysis, Row: 0, Column: ColumnAllUSDT},
	WinningTrades: Cell{Sheet: models.SheetTradesAnalysis, Row: 2, Column: ColumnAllUSDT},
	RiskReward:    Cell{Sheet: models.SheetTradesAnalysis, Row: 9, Column: ColumnAllUSDT},
	SharpeRatio:   Cell{Sheet: models.SheetRiskPerformanceRatios, Row: 0, Column: ColumnAllUSDT},
	SortinoRatio:  Cell{Sheet: models.SheetRiskPerformanceRatios, Row: 1, Column: ColumnAllUSDT},
	ProfitFactor:  Cell{Sheet: models.SheetRiskPerformanceRatios, Row: 2, Column: ColumnAllUSDT},
}

// derivedSheets are the sheets Layout reads from.
var derivedSheets = []string{
	models.SheetPerformance,
	models.SheetTradesAnalysis,
	models.SheetRiskPerformanceRatios,
}

// Sheet is a decoded workbook sheet: an ordered list of rows keyed by column.
type Sheet []map[string]any

// ParseSheet decodes a stored sheet payload.
func ParseSheet(raw *string) (Sheet, error) {
	if raw == nil {
		return nil, ErrSheetMissing
	}
	text := strings.TrimSpace(*raw)
	if text == "" {
		return nil, ErrSheetEmpty
	}
	var rows Sheet
	if err := json.Unmarshal([]byte(text), &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ValidateSheet checks that raw is a JSON array of row objects.
func ValidateSheet(raw string) error {
	if _, err := ParseSheet(&raw); err != nil {
		return errors.Join(models.ErrInvalidSheet, err)
	}
	return nil
}

// Value returns the numeric value at row/column, or 0 when the row or column
// is absent or the cell is not a number.
func (s Sheet) Value(row int, column string) float64 {
	if row < 0 || row >= len(s) || s[row] == nil {
		return 0
	}
	v, ok := s[row][column]
	if !ok || v == nil {
		return 0
	}
	return toFloat(v)
}

var numberNoise = strings.NewReplacer(",", "", "%", "", " ", "", "\u00a0", "")

func toFloat(v any) float64 {
	if s, ok := v.(string); ok {
		v = numberNoise.Replace(strings.TrimSpace(s))
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
