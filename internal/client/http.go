package client

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// HTTPConfig holds configuration for the API transport
type HTTPConfig struct {
	Timeout           time.Duration
	MaxRetries        int
	RetryWaitMin      time.Duration
	RetryWaitMax      time.Duration
	RateLimit         float64 // requests per second
	CircuitBreakerMax int     // consecutive failures before the circuit opens
	// CircuitBreakerCooldown is how long an open circuit rejects requests
	// before letting a single trial request through.
	CircuitBreakerCooldown time.Duration
}

// DefaultHTTPConfig returns recommended defaults
func DefaultHTTPConfig() HTTPConfig {
	return HTTPConfig{
		Timeout:                10 * time.Second,
		MaxRetries:             3,
		RetryWaitMin:           100 * time.Millisecond,
		RetryWaitMax:           2 * time.Second,
		RateLimit:              5.0,
		CircuitBreakerMax:      5,
		CircuitBreakerCooldown: 15 * time.Second,
	}
}

// rateLimitedHTTP wraps retryablehttp.Client with rate limiting and a circuit breaker
type rateLimitedHTTP struct {
	client            *retryablehttp.Client
	limiter           *rate.Limiter
	circuitBreakerMax int
	cooldown          time.Duration
	logger            *logrus.Entry
	now               func() time.Time

	mu                sync.Mutex
	consecutiveErrors int
	isOpen            bool
	openedAt          time.Time
	trialInFlight     bool
	lastError         error
}

func newRateLimitedHTTP(cfg HTTPConfig, logger *logrus.Entry) *rateLimitedHTTP {
	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient.Timeout = cfg.Timeout
	retryClient.RetryMax = cfg.MaxRetries
	retryClient.RetryWaitMin = cfg.RetryWaitMin
	retryClient.RetryWaitMax = cfg.RetryWaitMax
	retryClient.CheckRetry = retryPolicy
	retryClient.Logger = nil

	defaults := DefaultHTTPConfig()
	rateLimit := cfg.RateLimit
	if rateLimit <= 0 {
		rateLimit = defaults.RateLimit
	}
	cooldown := cfg.CircuitBreakerCooldown
	if cooldown <= 0 {
		cooldown = defaults.CircuitBreakerCooldown
	}

	return &rateLimitedHTTP{
		client:            retryClient,
		limiter:           rate.NewLimiter(rate.Limit(rateLimit), 1),
		circuitBreakerMax: cfg.CircuitBreakerMax,
		cooldown:          cooldown,
		logger:            logger,
		now:               time.Now,
	}
}

// admit decides whether a request may go out. An open circuit admits one
// trial request once the cooldown has passed; the trial's outcome closes or
// reopens it.
func (c *rateLimitedHTTP) admit() (trial bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.isOpen {
		return false, nil
	}
	if c.trialInFlight || c.now().Sub(c.openedAt) < c.cooldown {
		return false, fmt.Errorf("circuit breaker open: %w", c.lastError)
	}
	c.trialInFlight = true
	return true, nil
}

func (c *rateLimitedHTTP) recordFailure(trial bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if trial {
		c.trialInFlight = false
	}
	c.consecutiveErrors++
	c.lastError = err
	if trial || (c.circuitBreakerMax > 0 && c.consecutiveErrors >= c.circuitBreakerMax) {
		if !c.isOpen || trial {
			c.logger.WithError(err).Warnf("Circuit breaker opened after %d consecutive errors", c.consecutiveErrors)
		}
		c.isOpen = true
		c.openedAt = c.now()
	}
}

func (c *rateLimitedHTTP) recordSuccess(trial bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isOpen && trial {
		c.logger.Info("Circuit breaker closed")
	}
	c.consecutiveErrors = 0
	c.isOpen = false
	c.trialInFlight = false
	c.lastError = nil
}

// abandonTrial hands the trial slot back when a trial never reached the server.
func (c *rateLimitedHTTP) abandonTrial(trial bool) {
	if !trial {
		return
	}
	c.mu.Lock()
	c.trialInFlight = false
	c.mu.Unlock()
}

// Do executes a request once the limiter and the circuit breaker allow it.
func (c *rateLimitedHTTP) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	trial, err := c.admit()
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		c.abandonTrial(trial)
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	retryReq, err := retryablehttp.FromRequest(req.WithContext(ctx))
	if err != nil {
		c.abandonTrial(trial)
		return nil, err
	}
	resp, err := c.client.Do(retryReq)
	if err != nil {
		// Cancellation is the caller's choice, not a server fault.
		if ctx.Err() != nil {
			c.abandonTrial(trial)
			return nil, ctx.Err()
		}
		c.recordFailure(trial, err)
		return nil, err
	}

	if resp.StatusCode < 500 {
		c.recordSuccess(trial)
	} else {
		c.recordFailure(trial, fmt.Errorf("server returned %d", resp.StatusCode))
	}
	return resp, nil
}

func (c *rateLimitedHTTP) Close() {
	c.client.HTTPClient.CloseIdleConnections()
}

// retryPolicy retries network errors, 429 and gateway-class 5xx responses.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, err
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true, nil
	}
	return false, nil
}
