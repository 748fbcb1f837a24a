package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/service"
	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Pagination describes the page returned.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// ViewResponse is the applied view state plus what a client needs to
// render its controls.
type ViewResponse struct {
	table.ViewState
	Filters   []string `json:"filters"`
	PageSizes []int    `json:"page_sizes"`
	Query     string   `json:"query"`
}

// TableResponse is one page of a list view.
type TableResponse[T any] struct {
	Items      []T                    `json:"items"`
	Pagination Pagination             `json:"pagination"`
	View       ViewResponse           `json:"view"`
	Issues     []string               `json:"issues,omitempty"`
	Summary    *backtest.SummaryStats `json:"summary,omitempty"`
}

// BacktestItem is a backtest with its metrics and discounted prices.
type BacktestItem struct {
	Record  *models.BacktestRecord                         `json:"record"`
	Metrics backtest.DerivedMetrics                        `json:"metrics"`
	Pricing map[models.SubscriptionPeriod]decimal.Decimal `json:"pricing"`
}

func newBacktestItem(row views.BacktestRow, withSheets bool) BacktestItem {
	record := row.Record
	if !withSheets && record != nil {
		stripped := *record
		for _, name := range models.SheetNames {
			stripped.SetSheet(name, nil)
		}
		record = &stripped
	}
	item := BacktestItem{Record: record, Metrics: row.Metrics}
	if record != nil {
		item.Pricing = record.Pricing.FinalPrices()
	}
	return item
}

func newTableResponse[R any, T any](result table.Result[R], categories []string, opts table.ViewOptions, convert func(R) T) TableResponse[T] {
	items := make([]T, 0, len(result.Page.Items))
	for _, r := range result.Page.Items {
		items = append(items, convert(r))
	}

	pageSizes := opts.PageSizes
	if len(pageSizes) == 0 {
		pageSizes = table.DefaultPageSizes
	}

	resp := TableResponse[T]{
		Items: items,
		Pagination: Pagination{
			Page:       result.State.Page,
			Limit:      result.Page.PageSize,
			TotalItems: result.Page.TotalItems,
			TotalPages: result.Page.TotalPages,
		},
		View: ViewResponse{
			ViewState: result.State,
			Filters:   categories,
			PageSizes: pageSizes,
			Query:     result.State.Values().Encode(),
		},
	}
	for _, issue := range result.Issues {
		resp.Issues = append(resp.Issues, issue.Error())
	}
	return resp
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) errorResponse(c *gin.Context, err error) {
	status := errorStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error("Request failed")
		message = "internal error"
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: http.StatusText(status), Message: message})
}
