package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/pairdesk/internal/service"
	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

// ParamUserID narrows the pairs and payments tables to one user.
const ParamUserID = "user_id"

func (s *Server) viewState(c *gin.Context, opts table.ViewOptions) (table.ViewState, []error) {
	return table.ParseViewState(c.Request.URL.Query(), opts)
}

func withParseIssues[T any](result table.Result[T], issues []error) table.Result[T] {
	result.Issues = append(issues, result.Issues...)
	return result
}

// handleListBacktests returns one page of the backtests view plus the summary
func (s *Server) handleListBacktests(c *gin.Context) {
	svc := s.services.Backtests
	opts := svc.Options()

	state, issues := s.viewState(c, opts)
	result, summary, err := svc.Overview(c.Request.Context(), state)
	if err != nil {
		s.errorResponse(c, err)
		return
	}

	resp := newTableResponse(withParseIssues(result, issues), views.BacktestView(nil).Categories.Keys(), opts,
		func(r views.BacktestRow) BacktestItem { return newBacktestItem(r, false) })
	resp.Summary = &summary
	c.JSON(http.StatusOK, resp)
}

// handleSummary returns the summary stats
func (s *Server) handleSummary(c *gin.Context) {
	stats, err := s.services.Backtests.Summary(c.Request.Context())
	if err != nil {
		s.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// handleGetBacktest returns one backtest including its sheets
func (s *Server) handleGetBacktest(c *gin.Context) {
	row, err := s.services.Backtests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, newBacktestItem(row, true))
}

// handleDeleteBacktest removes a backtest
func (s *Server) handleDeleteBacktest(c *gin.Context) {
	if err := s.services.Backtests.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.errorResponse(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleImportBacktest creates or replaces a backtest
func (s *Server) handleImportBacktest(c *gin.Context) {
	var req service.ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.errorResponse(c, errors.Join(service.ErrValidation, err))
		return
	}

	record, created, err := s.services.Backtests.Import(c.Request.Context(), req)
	if err != nil {
		s.errorResponse(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"id": record.ID, "created": created})
}

// handleListSubscriptions returns one page of the pairs table
func (s *Server) handleListSubscriptions(c *gin.Context) {
	svc := s.services.Subscriptions
	opts := svc.Options()

	state, issues := s.viewState(c, opts)
	result, err := svc.Table(c.Request.Context(), strings.TrimSpace(c.Query(ParamUserID)), state)
	if err != nil {
		s.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, newTableResponse(withParseIssues(result, issues), views.SubscriptionView().Categories.Keys(), opts,
		func(r views.SubscriptionRow) views.SubscriptionRow { return r }))
}

// handleListPayments returns one page of the payments table
func (s *Server) handleListPayments(c *gin.Context) {
	svc := s.services.Payments
	opts := svc.Options()

	state, issues := s.viewState(c, opts)
	result, err := svc.Table(c.Request.Context(), strings.TrimSpace(c.Query(ParamUserID)), state)
	if err != nil {
		s.errorResponse(c, err)
		return
	}
	c.JSON(http.StatusOK, newTableResponse(withParseIssues(result, issues), views.PaymentView(nil).Categories.Keys(), opts,
		func(r views.PaymentRow) views.PaymentRow { return r }))
}
