package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yourusername/pairdesk/internal/client"
	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

var tableFlags struct {
	query  string
	filter string
	sort   string
	desc   bool
	page   int
	limit  int
	userID string
}

func newClient() (*client.Client, error) {
	httpCfg := client.DefaultHTTPConfig()
	httpCfg.Timeout = cfg.ClientTimeout()
	httpCfg.MaxRetries = cfg.Client.RetryAttempts
	httpCfg.RateLimit = cfg.Client.RequestsPerSecond
	return client.New(cfg.Client.BaseURL, httpCfg, appLog)
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the backtest summary cards",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		stats, err := c.Summary(cmd.Context())
		if err != nil {
			return err
		}
		return client.RenderSummary(cmd.OutOrStdout(), stats)
	},
}

var tableCmd = &cobra.Command{
	Use:       "table <backtests|subscriptions|payments>",
	Short:     "Show one page of a table",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{client.CollectionBacktests, client.CollectionSubscriptions, client.CollectionPayments},
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		switch args[0] {
		case client.CollectionBacktests:
			resp, err := c.Backtests(ctx, viewStateFromFlags(views.BacktestOptions(cfg.Table.PageSizes, cfg.Table.DefaultPageSize)))
			if err != nil {
				return err
			}
			return client.RenderBacktests(out, resp)
		case client.CollectionSubscriptions:
			resp, err := c.Subscriptions(ctx, tableFlags.userID, viewStateFromFlags(views.SubscriptionOptions(cfg.Table.PageSizes, cfg.Table.DefaultPageSize)))
			if err != nil {
				return err
			}
			return client.RenderSubscriptions(out, resp)
		case client.CollectionPayments:
			resp, err := c.Payments(ctx, tableFlags.userID, viewStateFromFlags(views.PaymentOptions(cfg.Table.PageSizes, cfg.Table.DefaultPageSize)))
			if err != nil {
				return err
			}
			return client.RenderPayments(out, resp)
		}
		return fmt.Errorf("unknown table %q", args[0])
	},
}

// viewStateFromFlags folds the flags into a view state the same way the
// UI would, one change at a time. The server has the final say on validity.
func viewStateFromFlags(opts table.ViewOptions) table.ViewState {
	state := table.NewViewState(opts)
	if tableFlags.filter != "" {
		state = state.WithFilter(tableFlags.filter)
	}
	if tableFlags.query != "" {
		state = state.WithQuery(tableFlags.query)
	}
	if tableFlags.sort != "" {
		dir := table.Asc
		if tableFlags.desc {
			dir = table.Desc
		}
		state = state.WithSort(tableFlags.sort, dir)
	}
	if tableFlags.limit > 0 {
		state = state.WithLimit(tableFlags.limit)
	}
	if tableFlags.page > 0 {
		state = state.WithPage(tableFlags.page)
	}
	return state
}

func init() {
	flags := tableCmd.Flags()
	flags.StringVarP(&tableFlags.query, "query", "q", "", "Search text")
	flags.StringVarP(&tableFlags.filter, "filter", "f", "", "Filter category")
	flags.StringVarP(&tableFlags.sort, "sort", "s", "", "Sort field (dotted paths allowed)")
	flags.BoolVar(&tableFlags.desc, "desc", false, "Sort descending")
	flags.IntVarP(&tableFlags.page, "page", "p", 0, "Page number")
	flags.IntVarP(&tableFlags.limit, "limit", "l", 0, "Rows per page")
	flags.StringVar(&tableFlags.userID, "user", "", "Only rows belonging to this user id")
}
