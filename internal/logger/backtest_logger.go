package logger

import (
	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for model validation runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger) *BacktestLogger {
	if baseLogger == nil {
		baseLogger = Discard()
	}
	return &BacktestLogger{
		Entry: baseLogger.WithField("component", "backtest"),
	}
}

// LogRoundScored logs the comparison of one simulated round against actuals.
func (bl *BacktestLogger) LogRoundScored(round int, predictedWinner, actualWinner string, top3Overlap int, spearman float64) {
	bl.WithFields(logrus.Fields{
		"round":            round,
		"predicted_winner": predictedWinner,
		"actual_winner":    actualWinner,
		"top3_overlap":     top3Overlap,
		"spearman_rho":     spearman,
	}).Debug("Backtest round scored")
}

// LogRoundSkipped logs a round left out of the backtest.
func (bl *BacktestLogger) LogRoundSkipped(round int, reason string) {
	bl.WithFields(logrus.Fields{
		"round":  round,
		"reason": reason,
	}).Warn("Backtest round skipped")
}

// LogBacktestCompleted logs the aggregate backtest metrics.
func (bl *BacktestLogger) LogBacktestCompleted(runID string, racesTested int, hitRate, brier, spearman float64) {
	bl.WithFields(logrus.Fields{
		"run_id":       runID,
		"races_tested": racesTested,
		"p1_hit_rate":  hitRate,
		"brier_score":  brier,
		"spearman_rho": spearman,
	}).Info("Backtest completed")
}
