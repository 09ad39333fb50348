package logger

import (
	"github.com/sirupsen/logrus"
)

// SimulationLogger provides dedicated logging for Monte Carlo runs.
type SimulationLogger struct {
	*logrus.Entry
}

// NewSimulationLogger creates a new simulation logger.
func NewSimulationLogger(baseLogger *logrus.Logger) *SimulationLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &SimulationLogger{
		Entry: baseLogger.WithField("component", "simulation"),
	}
}

// LogRaceSimulated logs a completed race simulation.
func (sl *SimulationLogger) LogRaceSimulated(runID string, round int, circuit string, iterations int, seed int64, favourite string, favouriteWinPct, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"run_id":            runID,
		"round":             round,
		"circuit":           circuit,
		"iterations":        iterations,
		"seed":              seed,
		"favourite":         favourite,
		"favourite_win_pct": favouriteWinPct,
		"duration_ms":       durationMs,
	}).Debug("Race simulation completed")
}

// LogSeasonSimulated logs a completed championship projection.
func (sl *SimulationLogger) LogSeasonSimulated(runID string, races, iterationsPerRace int, leader string, leaderPoints, durationMs float64) {
	sl.WithFields(logrus.Fields{
		"run_id":              runID,
		"races":               races,
		"iterations_per_race": iterationsPerRace,
		"leader":              leader,
		"leader_points":       leaderPoints,
		"duration_ms":         durationMs,
	}).Info("Season simulation completed")
}
