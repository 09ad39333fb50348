package main

import (
	"errors"
	"fmt"
	"sort"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/netoph/f1-2026-predictor/internal/backtest"
	"github.com/netoph/f1-2026-predictor/internal/models"
)

var (
	raceRound       int
	raceIters       int
	champIters      int
	backtestSeason  int
	backtestIters   int
	backtestCSVPath string
	seedOverride    int64
)

func init() {
	raceCmd.Flags().IntVarP(&raceRound, "round", "r", 0, "Calendar round to simulate (1-24)")
	raceCmd.Flags().IntVar(&raceIters, "iters", 0, "Trials to run (default from config)")
	raceCmd.Flags().Int64Var(&seedOverride, "seed", 0, "Random seed (0 seeds from the clock)")
	_ = raceCmd.MarkFlagRequired("round")

	championshipCmd.Flags().IntVar(&champIters, "iters", 0, "Trials per race (default from config)")
	championshipCmd.Flags().Int64Var(&seedOverride, "seed", 0, "Random seed (0 seeds from the clock)")

	backtestCmd.Flags().IntVar(&backtestSeason, "season", 0, "Season to backtest against (default from config)")
	backtestCmd.Flags().IntVar(&backtestIters, "iters", 0, "Trials per round (default from config)")
	backtestCmd.Flags().StringVar(&backtestCSVPath, "csv", "", "Also write per-round scores to this CSV file")
	backtestCmd.Flags().Int64Var(&seedOverride, "seed", 0, "Random seed (0 seeds from the clock)")
}

// applySeed overrides the configured seed when --seed was given.
func applySeed(cmd *cobra.Command) {
	if cmd.Flags().Changed("seed") {
		cfg.Simulation.Seed = seedOverride
	}
}

var raceCmd = &cobra.Command{
	Use:   "race",
	Short: "Predict the outcome distribution of one race",
	RunE: func(cmd *cobra.Command, args []string) error {
		applySeed(cmd)
		a, err := newApp(cfg, appLog)
		if err != nil {
			return err
		}
		result, err := a.predictor.SimulateRace(cmd.Context(), raceRound, raceIters)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), result)
		}

		out := newTable(cmd.OutOrStdout())
		fmt.Fprintf(out, "%s (%s), round %d, %d trials, seed %d\n\n",
			result.Circuit.Name, result.Circuit.City, result.Circuit.Round, result.Iterations, result.Seed)
		fmt.Fprintln(out, "#\tCODE\tDRIVER\tTEAM\tWIN%\tPODIUM%\tDNF%\tEXP POS\tAVG PTS")
		for i, o := range result.Results {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
				i+1, o.Code, o.Name, o.Team, o.WinPct, o.PodiumPct, o.DNFPct, o.ExpectedPosition, o.AvgPoints)
		}
		return out.Flush()
	},
}

var championshipCmd = &cobra.Command{
	Use:   "championship",
	Short: "Project the drivers' and constructors' championships",
	RunE: func(cmd *cobra.Command, args []string) error {
		applySeed(cmd)
		a, err := newApp(cfg, appLog)
		if err != nil {
			return err
		}
		result, err := a.predictor.SimulateChampionship(cmd.Context(), champIters)
		if err != nil {
			return err
		}
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), result)
		}

		out := newTable(cmd.OutOrStdout())
		fmt.Fprintf(out, "%d races, %d trials per race\n\n", result.TotalRaces, result.IterationsPerRace)
		fmt.Fprintln(out, "#\tCODE\tDRIVER\tTEAM\tPTS")
		for i, d := range result.Drivers {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%.1f\n", i+1, d.Code, d.Name, d.Team, d.Points)
		}
		fmt.Fprintln(out, "\n#\tTEAM\tENGINE\tPTS")
		for i, c := range result.Constructors {
			fmt.Fprintf(out, "%d\t%s\t%s\t%.1f\n", i+1, c.Team, c.Engine, c.Points)
		}
		return out.Flush()
	},
}

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Score the model against a past season's results",
	RunE: func(cmd *cobra.Command, args []string) error {
		applySeed(cmd)
		a, err := newApp(cfg, appLog)
		if err != nil {
			return err
		}
		m, err := a.predictor.BacktestSeason(cmd.Context(), backtestSeason, backtestIters)
		if errors.Is(err, models.ErrNoHistoricalData) {
			fmt.Fprintln(cmd.OutOrStdout(), "Could not fetch historical results")
			return nil
		}
		if err != nil {
			return err
		}

		csvPath := backtestCSVPath
		if csvPath == "" {
			csvPath = cfg.Backtest.OutputPath
		}
		if csvPath != "" {
			if err := backtest.GenerateCSVExport(m, csvPath); err != nil {
				return fmt.Errorf("failed to write CSV: %w", err)
			}
			appLog.WithField("path", csvPath).Info("Backtest CSV written")
		}

		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), m)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), backtest.GenerateConsoleReport(m))
		return err
	},
}

var ratingsCmd = &cobra.Command{
	Use:   "ratings",
	Short: "Show the car and driver ratings in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, appLog)
		if err != nil {
			return err
		}
		snap := a.predictor.Ratings(cmd.Context())
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), snap)
		}

		out := newTable(cmd.OutOrStdout())
		fmt.Fprintf(out, "Source: %s, computed %s\n\n", snap.Source, snap.ComputedAt.Format("2006-01-02 15:04"))
		fmt.Fprintln(out, "TEAM\tCAR\tTIRE DEG")
		for _, team := range byValueDesc(snap.CarRatings) {
			fmt.Fprintf(out, "%s\t%.1f\t%.3f\n", team, snap.CarRatings[team], snap.TireDegradation[team])
		}
		fmt.Fprintln(out, "\nDRIVER\tRATING")
		for _, code := range byValueDesc(snap.DriverRatings) {
			fmt.Fprintf(out, "%s\t%.1f\n", code, snap.DriverRatings[code])
		}
		return out.Flush()
	},
}

var circuitsCmd = &cobra.Command{
	Use:   "circuits",
	Short: "List the season calendar",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cfg, appLog)
		if err != nil {
			return err
		}
		circuits := a.predictor.Circuits()
		if outputFormat == "json" {
			return printJSON(cmd.OutOrStdout(), circuits)
		}

		out := newTable(cmd.OutOrStdout())
		fmt.Fprintln(out, "ROUND\tNAME\tCITY\tTYPE\tTEMP\tOVERTAKING\tLAPS")
		for _, c := range circuits {
			fmt.Fprintf(out, "%d\t%s\t%s\t%s\t%.0f\t%d\t%d\n", c.Round, c.Name, c.City, c.Type, c.Temperature, c.Overtaking, c.Laps)
		}
		return out.Flush()
	},
}

// byValueDesc orders map keys by descending value, then name.
func byValueDesc(m map[string]float64) []string {
	keys := lo.Keys(m)
	sort.Slice(keys, func(i, j int) bool {
		if m[keys[i]] != m[keys[j]] {
			return m[keys[i]] > m[keys[j]]
		}
		return keys[i] < keys[j]
	})
	return keys
}

