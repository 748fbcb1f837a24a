package scheduler

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pairdesk/internal/backtest"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (c *countingRefresher) RefreshSummary(context.Context) (backtest.SummaryStats, error) {
	c.calls.Add(1)
	return backtest.SummaryStats{}, c.err
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestStartRequiresJobs(t *testing.T) {
	s := NewScheduler(quietLogger())
	require.Error(t, s.Start())
	assert.True(t, s.GetNextRun().IsZero(), "no next run while stopped")
}

func TestScheduleRejectsBadSpec(t *testing.T) {
	s := NewScheduler(quietLogger())
	require.Error(t, s.ScheduleSummaryRefresh("not a spec", &countingRefresher{}))
}

func TestSummaryRefreshRuns(t *testing.T) {
	s := NewScheduler(quietLogger())
	refresher := &countingRefresher{err: errors.New("transient")}
	require.NoError(t, s.ScheduleSummaryRefresh("@every 1s", refresher))

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.True(t, s.IsRunning())
	assert.False(t, s.GetNextRun().IsZero())
	require.Error(t, s.ScheduleSummaryRefresh("@every 1s", refresher), "jobs cannot be added while running")

	assert.Eventually(t, func() bool { return refresher.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestStopIsIdempotent(t *testing.T) {
	s := NewScheduler(quietLogger())
	require.NoError(t, s.ScheduleSummaryRefresh("@every 1h", &countingRefresher{}))
	require.NoError(t, s.Start())
	s.Stop()
	s.Stop()
	assert.False(t, s.IsRunning())
}
