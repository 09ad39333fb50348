package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// SchedulerLogger provides dedicated logging for scheduled jobs.
type SchedulerLogger struct {
	*logrus.Entry
}

// NewSchedulerLogger creates a new scheduler logger.
func NewSchedulerLogger(baseLogger *logrus.Logger) *SchedulerLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &SchedulerLogger{
		Entry: baseLogger.WithField("component", "scheduler"),
	}
}

// LogJobScheduled logs a job registration.
func (sl *SchedulerLogger) LogJobScheduled(job, schedule string) {
	sl.WithFields(logrus.Fields{
		"job":      job,
		"schedule": schedule,
	}).Info("Scheduled job")
}

// LogJobCompleted logs a finished job run.
func (sl *SchedulerLogger) LogJobCompleted(job string, duration time.Duration, fields logrus.Fields) {
	sl.WithFields(fields).WithFields(logrus.Fields{
		"job":         job,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	}).Info("Scheduled job completed")
}
