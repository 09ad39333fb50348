package metrics

import "github.com/prometheus/client_golang/prometheus"

// Backtest counter vectors
var (
	BacktestRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backtest_runs_total",
		Help:      "Total number of backtest runs by status",
	}, []string{"status"})
)

// Backtest gauges hold the scores of the latest run with data.
var (
	BacktestBrierScore = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtest_brier_score",
		Help:      "Podium Brier score of the latest backtest",
	})
	BacktestSpearman = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtest_spearman_rho",
		Help:      "Average Spearman rank correlation of the latest backtest",
	})
	BacktestHitRate = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "backtest_p1_hit_rate",
		Help:      "Winner hit rate percentage of the latest backtest",
	})
)

// RecordBacktestRun records a backtest run event.
// status should be one of: "ok", "no_data", "failure"
func RecordBacktestRun(status string) {
	BacktestRunsTotal.WithLabelValues(status).Inc()
}

// UpdateBacktestScores publishes the aggregate scores of a backtest.
func UpdateBacktestScores(hitRate, brier, spearman float64) {
	BacktestHitRate.Set(hitRate)
	BacktestBrierScore.Set(brier)
	BacktestSpearman.Set(spearman)
}
