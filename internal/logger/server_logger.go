package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// ServerLogger provides dedicated logging for the HTTP API.
type ServerLogger struct {
	*logrus.Entry
}

// NewServerLogger creates a new server logger.
func NewServerLogger(baseLogger *logrus.Logger) *ServerLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &ServerLogger{
		Entry: baseLogger.WithField("component", "server"),
	}
}

// LogRequest logs a served API request. Server errors are logged at warn level.
func (sl *ServerLogger) LogRequest(method, route string, status int, duration time.Duration) {
	entry := sl.WithFields(logrus.Fields{
		"method":      method,
		"route":       route,
		"status":      status,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	})
	if status >= 500 {
		entry.Warn("Request failed")
		return
	}
	entry.Debug("Request served")
}
