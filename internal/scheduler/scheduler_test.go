package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netoph/f1-2026-predictor/internal/models"
)

type countingRefresher struct {
	calls atomic.Int32
}

func (r *countingRefresher) Refresh(ctx context.Context) models.RatingSnapshot {
	r.calls.Add(1)
	return models.RatingSnapshot{Source: "fallback"}
}

func TestScheduleRatingsRefresh(t *testing.T) {
	refresher := &countingRefresher{}
	s := NewScheduler(refresher, nil)

	require.NoError(t, s.ScheduleRatingsRefresh("@hourly"))
	require.NoError(t, s.Start())
	defer s.Stop()

	assert.True(t, s.IsRunning())
	next := s.NextRun()
	assert.False(t, next.IsZero())
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), next, 31*time.Minute)

	assert.Error(t, s.Start(), "double start")
	assert.Error(t, s.ScheduleRatingsRefresh("@daily"), "schedule while running")
}

func TestScheduleRatingsRefreshRejectsBadExpression(t *testing.T) {
	s := NewScheduler(&countingRefresher{}, nil)
	assert.Error(t, s.ScheduleRatingsRefresh("every tuesday"))
}

func TestEmptyScheduleIsNoop(t *testing.T) {
	s := NewScheduler(&countingRefresher{}, nil)
	require.NoError(t, s.ScheduleRatingsRefresh(""))
	assert.Error(t, s.Start(), "nothing to run")
}

func TestScheduleWithoutRefresher(t *testing.T) {
	s := NewScheduler(nil, nil)
	err := s.ScheduleRatingsRefresh("@hourly")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestRunRatingsRefresh(t *testing.T) {
	refresher := &countingRefresher{}
	s := NewScheduler(refresher, nil)

	s.RunRatingsRefresh()
	s.RunRatingsRefresh()
	assert.Equal(t, int32(2), refresher.calls.Load())
}

func TestStopWhenNotRunning(t *testing.T) {
	s := NewScheduler(&countingRefresher{}, nil)
	s.Stop()
	assert.False(t, s.IsRunning())
	assert.True(t, s.NextRun().IsZero())
}
