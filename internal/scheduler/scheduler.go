// Package scheduler runs background jobs on cron schedules.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/pairdesk/internal/backtest"
)

// SummaryRefresher recomputes and caches the summary stats.
type SummaryRefresher interface {
	RefreshSummary(ctx context.Context) (backtest.SummaryStats, error)
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron       *cron.Cron
	logger     *logrus.Entry
	mu         sync.RWMutex
	isRunning  bool
	jobIDs     []cron.EntryID
	jobTimeout time.Duration
}

// NewScheduler creates a new scheduler
func NewScheduler(logger *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		logger:     logger.WithField("component", "scheduler"),
		jobIDs:     make([]cron.EntryID, 0),
		jobTimeout: 2 * time.Minute,
	}
}

// ScheduleSummaryRefresh recomputes the summary stats on spec so API
// requests find a warm cache.
func (s *Scheduler) ScheduleSummaryRefresh(spec string, refresher SummaryRefresher) error {
	return s.addJob(spec, "summary_refresh", func(ctx context.Context) error {
		_, err := refresher.RefreshSummary(ctx)
		return err
	})
}

func (s *Scheduler) addJob(spec, name string, job func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
		defer cancel()

		start := time.Now()
		log := s.logger.WithField("job", name)
		if err := job(ctx); err != nil {
			log.WithError(err).Error("Scheduled job failed")
			return
		}
		log.WithField("duration_ms", time.Since(start).Milliseconds()).Debug("Scheduled job completed")
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", name, err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.WithFields(logrus.Fields{"job": name, "spec": spec}).Info("Job scheduled")
	return nil
}

// Start starts the scheduler
func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("scheduler is already running")
	}
	if len(s.jobIDs) == 0 {
		return fmt.Errorf("no jobs scheduled")
	}

	s.cron.Start()
	s.isRunning = true
	s.logger.Infof("Scheduler started with %d jobs", len(s.jobIDs))
	return nil
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	<-s.cron.Stop().Done()
	s.isRunning = false
	s.logger.Info("Scheduler stopped")
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// GetNextRun returns the time of the next scheduled job run
func (s *Scheduler) GetNextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	nextRun := time.Time{}
	for _, jobID := range s.jobIDs {
		entry := s.cron.Entry(jobID)
		if entry.Valid() && (nextRun.IsZero() || entry.Next.Before(nextRun)) {
			nextRun = entry.Next
		}
	}
	return nextRun
}
