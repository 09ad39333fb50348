// Package scheduler runs periodic jobs such as the ratings refresh.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/models"
)

const ratingsRefreshJob = "ratings_refresh"

// RatingsRefresher recomputes the ratings snapshot.
type RatingsRefresher interface {
	Refresh(ctx context.Context) models.RatingSnapshot
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	cron       *cron.Cron
	refresher  RatingsRefresher
	logger     *logger.SchedulerLogger
	jobTimeout time.Duration

	mu        sync.RWMutex
	isRunning bool
	jobIDs    []cron.EntryID
}

// NewScheduler creates a new scheduler
func NewScheduler(refresher RatingsRefresher, log *logrus.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		refresher:  refresher,
		logger:     logger.NewSchedulerLogger(log),
		jobTimeout: 2 * time.Minute,
		jobIDs:     make([]cron.EntryID, 0),
	}
}

// ScheduleRatingsRefresh registers a ratings refresh on a standard cron expression or descriptor.
// An empty expression schedules nothing.
func (s *Scheduler) ScheduleRatingsRefresh(cronExpression string) error {
	if cronExpression == "" {
		return nil
	}
	if s.refresher == nil {
		return fmt.Errorf("ratings refresher is required: %w", models.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot schedule job while scheduler is running")
	}

	entryID, err := s.cron.AddFunc(cronExpression, s.RunRatingsRefresh)
	if err != nil {
		return fmt.Errorf("failed to add job: %w", err)
	}

	s.jobIDs = append(s.jobIDs, entryID)
	s.logger.LogJobScheduled(ratingsRefreshJob, cronExpression)
	return nil
}

// RunRatingsRefresh performs one refresh immediately.
func (s *Scheduler) RunRatingsRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.jobTimeout)
	defer cancel()

	start := time.Now()
	snapshot := s.refresher.Refresh(ctx)
	s.logger.LogJobCompleted(ratingsRefreshJob, time.Since(start), logrus.Fields{
		"source":  snapshot.Source,
		"teams":   len(snapshot.CarRatings),
		"drivers": len(snapshot.DriverRatings),
	})
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
	s.logger.WithField("jobs", len(s.jobIDs)).Info("Scheduler started")
	return nil
}

// Stop waits for running jobs to finish and stops the scheduler
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

// NextRun returns the time of the next scheduled job run, or zero when stopped.
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return time.Time{}
	}

	var next time.Time
	for _, id := range s.jobIDs {
		entry := s.cron.Entry(id)
		if entry.Valid() && (next.IsZero() || entry.Next.Before(next)) {
			next = entry.Next
		}
	}
	return next
}
