package logger

import (
	"github.com/sirupsen/logrus"
)

// RatingsLogger provides dedicated logging for rating refreshes.
type RatingsLogger struct {
	*logrus.Entry
}

// NewRatingsLogger creates a new ratings logger.
func NewRatingsLogger(baseLogger *logrus.Logger) *RatingsLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &RatingsLogger{
		Entry: baseLogger.WithField("component", "ratings"),
	}
}

// LogRatingsRefreshed logs a successful rating computation.
func (rl *RatingsLogger) LogRatingsRefreshed(source string, teams, drivers int, durationMs float64) {
	rl.WithFields(logrus.Fields{
		"source":      source,
		"teams":       teams,
		"drivers":     drivers,
		"duration_ms": durationMs,
	}).Info("Ratings refreshed")
}

// LogRatingsFallback logs a failed refresh that fell back to hardcoded ratings.
func (rl *RatingsLogger) LogRatingsFallback(err error) {
	rl.WithError(err).Warn("Error computing ratings, using fallback")
}
