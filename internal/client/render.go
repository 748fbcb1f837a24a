package client

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/yourusername/pairdesk/internal/api"
	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/views"
)

// newTable returns a borderless table in the style of command line listings.
func newTable(w io.Writer, header ...string) *tablewriter.Table {
	tw := tablewriter.NewWriter(w)
	if len(header) > 0 {
		tw.SetHeader(header)
	}
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)
	tw.SetBorder(false)
	tw.SetHeaderLine(false)
	tw.SetColumnSeparator("")
	tw.SetCenterSeparator("")
	tw.SetRowSeparator("")
	tw.SetTablePadding("  ")
	tw.SetNoWhiteSpace(true)
	tw.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	tw.SetAlignment(tablewriter.ALIGN_LEFT)
	return tw
}

func pct(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func writeFooter(w io.Writer, p api.Pagination, issues []string) error {
	if _, err := fmt.Fprintf(w, "page %d/%d  (%d items, %d per page)\n", p.Page, max(p.TotalPages, 1), p.TotalItems, p.Limit); err != nil {
		return err
	}
	for _, issue := range issues {
		if _, err := fmt.Fprintf(w, "note: %s\n", issue); err != nil {
			return err
		}
	}
	return nil
}

// RenderBacktests writes a backtests page as an aligned table.
func RenderBacktests(w io.Writer, resp *api.TableResponse[api.BacktestItem]) error {
	tw := newTable(w, "SYMBOL", "TF", "VERSION", "ROI", "WIN RATE", "TRADES", "PROFIT", "MAX DD", "R:R", "1M PRICE")
	for _, item := range resp.Items {
		if item.Record == nil {
			continue
		}
		m := item.Metrics
		price := "-"
		if p, ok := item.Pricing[models.PeriodOneMonth]; ok {
			price = p.StringFixed(2)
		}
		tw.Append([]string{
			item.Record.Symbol, item.Record.Timeframe, item.Record.Version,
			pct(m.ROI), pct(m.WinRate), strconv.Itoa(m.TotalTrades),
			num(m.Profit), num(m.MaxDrawdown), num(m.RiskReward), price,
		})
	}
	tw.Render()
	if resp.Summary != nil {
		if err := RenderSummary(w, *resp.Summary); err != nil {
			return err
		}
	}
	return writeFooter(w, resp.Pagination, resp.Issues)
}

// RenderSubscriptions writes a pairs page as an aligned table.
func RenderSubscriptions(w io.Writer, resp *api.TableResponse[views.SubscriptionRow]) error {
	tw := newTable(w, "PAIR", "TF", "USER", "PERIOD", "STATUS", "PRICE", "EXPIRES")
	for _, row := range resp.Items {
		if row.Subscription == nil {
			continue
		}
		s := row.Subscription
		expires := "-"
		if s.ExpiresAt != nil {
			expires = s.ExpiresAt.Format("2006-01-02")
		}
		tw.Append([]string{
			s.PairSymbol, s.PairTimeframe, s.UserEmail, string(s.Period), string(s.Status),
			models.PeriodPrice{Price: s.Price, Discount: s.Discount}.Final().StringFixed(2), expires,
		})
	}
	tw.Render()
	return writeFooter(w, resp.Pagination, resp.Issues)
}

// RenderPayments writes a payments page as an aligned table.
func RenderPayments(w io.Writer, resp *api.TableResponse[views.PaymentRow]) error {
	tw := newTable(w, "INVOICE", "PAIR", "USER", "PERIOD", "AMOUNT", "STATUS", "CREATED")
	for _, row := range resp.Items {
		if row.Payment == nil {
			continue
		}
		p := row.Payment
		tw.Append([]string{
			p.InvoiceID, p.PairSymbol, p.UserEmail, string(p.Period),
			p.Amount.StringFixed(2) + " " + p.Currency, string(p.Status), p.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	tw.Render()
	return writeFooter(w, resp.Pagination, resp.Issues)
}

// RenderSummary writes the summary cards as key/value lines.
func RenderSummary(w io.Writer, stats backtest.SummaryStats) error {
	tw := newTable(w)
	tw.AppendBulk([][]string{
		{"total backtests", strconv.Itoa(stats.TotalBacktests)},
		{"profitable", strconv.Itoa(stats.ProfitableBacktests)},
		{"total profit", num(stats.TotalProfit)},
		{"best performer", fmt.Sprintf("%s (%s)", stats.BestPerformer.Symbol, pct(stats.BestPerformer.ROI))},
		{"average roi", pct(stats.AverageROI)},
	})
	tw.Render()
	return nil
}
