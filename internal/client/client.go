// Package client talks to the pairdesk API from the console.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/pairdesk/internal/api"
	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

// Collections served by the API
const (
	CollectionBacktests     = "backtests"
	CollectionSubscriptions = "subscriptions"
	CollectionPayments      = "payments"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api returned %d: %s", e.StatusCode, e.Message)
}

// Client fetches table pages. Concurrent fetches of the same collection
// follow last-request-wins.
type Client struct {
	baseURL *url.URL
	http    *rateLimitedHTTP
	guard   *LatestGuard
	logger  *logrus.Entry
}

// New creates a client for the API rooted at baseURL.
func New(baseURL string, cfg HTTPConfig, logger *logrus.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: scheme and host required", baseURL)
	}

	entry := logger.WithField("component", "client")
	return &Client{
		baseURL: u,
		http:    newRateLimitedHTTP(cfg, entry),
		guard:   NewLatestGuard(),
		logger:  entry,
	}, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.http.Close()
}

// Backtests fetches one page of the backtests view.
func (c *Client) Backtests(ctx context.Context, state table.ViewState) (*api.TableResponse[api.BacktestItem], error) {
	var resp api.TableResponse[api.BacktestItem]
	if err := c.fetchLatest(ctx, CollectionBacktests, "/api/backtests", state.Values(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Subscriptions fetches one page of the pairs table, optionally for one user.
func (c *Client) Subscriptions(ctx context.Context, userID string, state table.ViewState) (*api.TableResponse[views.SubscriptionRow], error) {
	var resp api.TableResponse[views.SubscriptionRow]
	if err := c.fetchLatest(ctx, CollectionSubscriptions, "/api/subscriptions", withUser(state.Values(), userID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Payments fetches one page of the payments table, optionally for one user.
func (c *Client) Payments(ctx context.Context, userID string, state table.ViewState) (*api.TableResponse[views.PaymentRow], error) {
	var resp api.TableResponse[views.PaymentRow]
	if err := c.fetchLatest(ctx, CollectionPayments, "/api/payments", withUser(state.Values(), userID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Summary fetches the dashboard summary stats.
func (c *Client) Summary(ctx context.Context) (backtest.SummaryStats, error) {
	var stats backtest.SummaryStats
	err := c.get(ctx, "/api/backtests/summary", nil, &stats)
	return stats, err
}

func withUser(values url.Values, userID string) url.Values {
	if userID != "" {
		values.Set(api.ParamUserID, userID)
	}
	return values
}

// fetchLatest runs a GET under the guard for key. A response that lands
// after a newer fetch for the same key started is dropped.
func (c *Client) fetchLatest(ctx context.Context, key, path string, query url.Values, out any) error {
	reqCtx, done := c.guard.Begin(ctx, key)
	err := c.get(reqCtx, path, query, out)
	if guardErr := done(); guardErr != nil {
		c.logger.WithField("collection", key).Debug("Discarding superseded response")
		return guardErr
	}
	return err
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var body api.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&body); decodeErr != nil || body.Message == "" {
			body.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: body.Message}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}
