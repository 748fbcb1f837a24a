// Package api exposes the pairdesk table views and backtest management over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pairdesk/internal/backtest"
	"github.com/yourusername/pairdesk/internal/health"
	"github.com/yourusername/pairdesk/internal/metrics"
	"github.com/yourusername/pairdesk/internal/models"
	"github.com/yourusername/pairdesk/internal/service"
	"github.com/yourusername/pairdesk/internal/table"
	"github.com/yourusername/pairdesk/internal/views"
)

// BacktestService is what the backtest handlers need.
type BacktestService interface {
	Options() table.ViewOptions
	Overview(ctx context.Context, state table.ViewState) (table.Result[views.BacktestRow], backtest.SummaryStats, error)
	Summary(ctx context.Context) (backtest.SummaryStats, error)
	Get(ctx context.Context, id string) (views.BacktestRow, error)
	Delete(ctx context.Context, id string) error
	Import(ctx context.Context, req service.ImportRequest) (*models.BacktestRecord, bool, error)
}

// SubscriptionService is what the pairs table handler needs.
type SubscriptionService interface {
	Options() table.ViewOptions
	Table(ctx context.Context, userID string, state table.ViewState) (table.Result[views.SubscriptionRow], error)
}

// PaymentService is what the payments table handler needs.
type PaymentService interface {
	Options() table.ViewOptions
	Table(ctx context.Context, userID string, state table.ViewState) (table.Result[views.PaymentRow], error)
}

// Services bundles the use cases served over HTTP.
type Services struct {
	Backtests     BacktestService
	Subscriptions SubscriptionService
	Payments      PaymentService
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	CORSOrigins    []string
	MetricsEnabled bool
	MetricsPath    string
	ProductionMode bool
}

// Server is the HTTP API server.
type Server struct {
	router   *gin.Engine
	server   *http.Server
	config   ServerConfig
	services Services
	health   *health.Checker
	logger   *logrus.Logger
}

// NewServer creates the API server and its routes.
func NewServer(config ServerConfig, services Services, checker *health.Checker, logger *logrus.Logger) *Server {
	if config.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(requestLogger(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if len(config.CORSOrigins) > 0 {
		corsConfig.AllowOrigins = config.CORSOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.ExposeHeaders = []string{"Content-Length"}
	router.Use(cors.New(corsConfig))

	s := &Server{
		router:   router,
		config:   config,
		services: services,
		health:   checker,
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	if s.health != nil {
		s.health.Register(s.router)
	}
	if s.config.MetricsEnabled {
		path := s.config.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		s.router.GET(path, gin.WrapH(metrics.Handler()))
	}

	api := s.router.Group("/api")
	{
		backtests := api.Group("/backtests")
		backtests.GET("", s.handleListBacktests)
		backtests.POST("", s.handleImportBacktest)
		backtests.GET("/summary", s.handleSummary)
		backtests.GET("/:id", s.handleGetBacktest)
		backtests.DELETE("/:id", s.handleDeleteBacktest)

		api.GET("/subscriptions", s.handleListSubscriptions)
		api.GET("/payments", s.handleListPayments)
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", s.config.Addr).Info("API server starting")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return s.Shutdown()
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown() error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("API server shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(time.Since(start).Microseconds()) / 1000,
			"client_ip":   c.ClientIP(),
		}).Debug("HTTP request")
	}
}
