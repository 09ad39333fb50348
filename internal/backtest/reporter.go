package backtest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GenerateConsoleReport formats metrics for terminal output
func GenerateConsoleReport(m Metrics) string {
	var builder strings.Builder
	builder.WriteString("Backtest Report\n")
	builder.WriteString("================\n")
	if !m.HasData() {
		builder.WriteString(fmt.Sprintf("No data: %s\n", m.Message))
		writeSkipped(&builder, m.RoundsSkipped)
		return builder.String()
	}
	builder.WriteString(fmt.Sprintf("Races Tested: %d\n", m.RacesTested))
	builder.WriteString(fmt.Sprintf("P1 Hit Rate: %.1f%%\n", m.WinnerHitRate))
	builder.WriteString(fmt.Sprintf("Top-3 Overlap / Race: %.2f\n", m.Top3OverlapPerRace))
	builder.WriteString(fmt.Sprintf("Brier Score (podium): %.4f\n", m.BrierScore))
	builder.WriteString(fmt.Sprintf("Avg Spearman Rho: %.3f\n", m.AvgSpearman))
	if m.Interpretation != nil {
		builder.WriteString(fmt.Sprintf("  Brier: %s\n", m.Interpretation.Brier))
		builder.WriteString(fmt.Sprintf("  Spearman: %s\n", m.Interpretation.Spearman))
	}
	writeSkipped(&builder, m.RoundsSkipped)
	return builder.String()
}

func writeSkipped(builder *strings.Builder, skipped []SkippedRound) {
	if len(skipped) == 0 {
		return
	}
	builder.WriteString(fmt.Sprintf("Skipped Rounds: %d\n", len(skipped)))
	for _, s := range skipped {
		builder.WriteString(fmt.Sprintf("  R%d: %s\n", s.Round, s.Reason))
	}
}

// GenerateCSVExport writes per-round scores followed by the aggregate metrics
func GenerateCSVExport(m Metrics, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}

	var builder strings.Builder
	builder.WriteString("round,predicted_winner,actual_winner,winner_hit,top3_overlap,spearman_rho\n")
	for _, r := range m.Rounds {
		rho := ""
		if r.Spearman != nil {
			rho = fmt.Sprintf("%.4f", *r.Spearman)
		}
		builder.WriteString(fmt.Sprintf("%d,%s,%s,%t,%d,%s\n", r.Round, r.PredictedWinner, r.ActualWinner, r.WinnerHit, r.Top3Overlap, rho))
	}
	builder.WriteString("\nmetric,value\n")
	builder.WriteString(fmt.Sprintf("status,%s\n", m.Status))
	builder.WriteString(fmt.Sprintf("total_races_tested,%d\n", m.RacesTested))
	builder.WriteString(fmt.Sprintf("p1_hit_rate,%.4f\n", m.WinnerHitRate))
	builder.WriteString(fmt.Sprintf("top3_overlap_per_race,%.4f\n", m.Top3OverlapPerRace))
	builder.WriteString(fmt.Sprintf("brier_score_podium,%.4f\n", m.BrierScore))
	builder.WriteString(fmt.Sprintf("avg_spearman_rho,%.4f\n", m.AvgSpearman))

	return os.WriteFile(outputPath, []byte(builder.String()), 0o644)
}
