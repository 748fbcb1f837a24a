// Package health provides the health, readiness and liveness endpoints.
package health

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency that can report its connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp,omitempty"`
	Version   string `json:"version,omitempty"`
	Commit    string `json:"commit,omitempty"`
}

// ReadyResponse represents the JSON response for readiness check endpoints.
type ReadyResponse struct {
	Status   string            `json:"status"`
	Service  string            `json:"service"`
	Checks   map[string]string `json:"checks,omitempty"`
	Info     map[string]string `json:"info,omitempty"`
	Duration string            `json:"duration,omitempty"`
}

// Checker tracks readiness and serves the probe endpoints.
type Checker struct {
	serviceName string
	version     string
	commit      string
	db          Pinger
	optional    map[string]Pinger
	info        map[string]func() string
	mu          sync.RWMutex
	ready       bool
}

// Config holds the configuration for the health checker.
type Config struct {
	ServiceName string
	Version     string
	Commit      string
	DB          Pinger
	// Optional dependencies are reported on /ready but never fail it.
	Optional map[string]Pinger
	// Info values are computed per request and shown on /ready.
	Info map[string]func() string
}

// NewChecker creates a checker that starts out not ready.
func NewChecker(cfg Config) *Checker {
	return &Checker{
		serviceName: cfg.ServiceName,
		version:     cfg.Version,
		commit:      cfg.Commit,
		db:          cfg.DB,
		optional:    cfg.Optional,
		info:        cfg.Info,
	}
}

// SetReady marks the service as ready to accept traffic.
func (c *Checker) SetReady(ready bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ready = ready
}

// IsReady returns whether the service is ready.
func (c *Checker) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ready
}

// Register mounts /health, /ready and /live on r.
func (c *Checker) Register(r gin.IRoutes) {
	r.GET("/health", c.handleHealth)
	r.GET("/ready", c.handleReady)
	r.GET("/live", c.handleLive)
}

// handleHealth handles the /health endpoint - basic liveness check.
func (c *Checker) handleHealth(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Service:   c.serviceName,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   c.version,
		Commit:    c.commit,
	})
}

// handleLive handles the /live endpoint - kubernetes liveness probe.
func (c *Checker) handleLive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: c.serviceName,
	})
}

// handleReady handles the /ready endpoint - checks database connectivity.
func (c *Checker) handleReady(ctx *gin.Context) {
	start := time.Now()
	checks := make(map[string]string)
	allHealthy := true

	if !c.IsReady() {
		allHealthy = false
		checks["service"] = "not_ready"
	} else {
		checks["service"] = "ok"
	}

	if c.db != nil {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		if err := c.db.Ping(pingCtx); err != nil {
			allHealthy = false
			checks["database"] = fmt.Sprintf("error: %v", err)
		} else {
			checks["database"] = "ok"
		}
	}

	for name, dep := range c.optional {
		pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), time.Second)
		if err := dep.Ping(pingCtx); err != nil {
			checks[name] = fmt.Sprintf("degraded: %v", err)
		} else {
			checks[name] = "ok"
		}
		cancel()
	}

	response := ReadyResponse{
		Service:  c.serviceName,
		Checks:   checks,
		Duration: time.Since(start).String(),
	}
	if len(c.info) > 0 {
		response.Info = make(map[string]string, len(c.info))
		for name, value := range c.info {
			response.Info[name] = value()
		}
	}

	if allHealthy {
		response.Status = "ok"
		ctx.JSON(http.StatusOK, response)
		return
	}
	response.Status = "not_ready"
	ctx.JSON(http.StatusServiceUnavailable, response)
}
