package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/pairdesk/internal/api"
	"github.com/yourusername/pairdesk/internal/cache"
	"github.com/yourusername/pairdesk/internal/database"
	"github.com/yourusername/pairdesk/internal/health"
	"github.com/yourusername/pairdesk/internal/metrics"
	"github.com/yourusername/pairdesk/internal/repository"
	"github.com/yourusername/pairdesk/internal/scheduler"
	"github.com/yourusername/pairdesk/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func tableSettings() service.TableSettings {
	return service.TableSettings{
		PageSizes:       cfg.Table.PageSizes,
		DefaultPageSize: cfg.Table.DefaultPageSize,
	}
}

// deps are the stores shared by serve and import.
type deps struct {
	db        *database.DB
	repos     *repository.Repositories
	cache     cache.SummaryCache
	backtests *service.BacktestService
}

func openDeps(ctx context.Context) (*deps, error) {
	db, err := database.Initialize(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repos, err := repository.NewRepositories(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	summaryCache := cache.New(cfg, appLog)
	return &deps{
		db:        db,
		repos:     repos,
		cache:     summaryCache,
		backtests: service.NewBacktestService(repos.Backtest, summaryCache, appLog, tableSettings(), cfg.Table.DeriveWorkers),
	}, nil
}

func (d *deps) Close() {
	if c, ok := d.cache.(io.Closer); ok {
		if err := c.Close(); err != nil {
			appLog.WithError(err).Warn("Failed to close summary cache")
		}
	}
	d.db.Close()
}

func serve(ctx context.Context) error {
	appLog.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"version":     Version,
		"cache":       cfg.Cache.Backend,
	}).Info("pairdesk API starting")

	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
	}

	d, err := openDeps(ctx)
	if err != nil {
		return err
	}
	defer d.Close()
	backtests := d.backtests
	appLog.Info("Database connection established")

	services := api.Services{
		Backtests:     backtests,
		Subscriptions: service.NewSubscriptionService(d.repos.Subscription, appLog, tableSettings()),
		Payments:      service.NewPaymentService(d.repos.Payment, appLog, tableSettings()),
	}

	sched := scheduler.NewScheduler(appLog)
	if cfg.Scheduler.Enabled {
		if err := sched.ScheduleSummaryRefresh(cfg.Scheduler.SummaryRefresh, backtests); err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()
	}

	optional := map[string]health.Pinger{}
	if p, ok := d.cache.(health.Pinger); ok {
		optional["summary_cache"] = p
	}
	checker := health.NewChecker(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Commit:      GitCommit,
		DB:          d.db,
		Optional:    optional,
		Info: map[string]func() string{
			"summary_refresh_next": func() string {
				next := sched.GetNextRun()
				if next.IsZero() {
					return "not scheduled"
				}
				return next.Format(time.RFC3339)
			},
		},
	})

	server := api.NewServer(api.ServerConfig{
		Addr:           cfg.ServerAddress(),
		ReadTimeout:    time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
		CORSOrigins:    cfg.Server.CORSOrigins,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		ProductionMode: cfg.IsProduction(),
	}, services, checker, appLog)

	// Warm the summary before taking traffic.
	if _, err := backtests.RefreshSummary(ctx); err != nil {
		appLog.WithError(err).Warn("Initial summary refresh failed")
	}

	checker.SetReady(true)
	err = server.Start(ctx)
	checker.SetReady(false)
	if err != nil {
		return fmt.Errorf("api server: %w", err)
	}

	appLog.Info("pairdesk API stopped")
	return nil
}
