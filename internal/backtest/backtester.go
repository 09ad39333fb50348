// Package backtest scores simulated race outcomes against recorded historical results.
package backtest

import (
	"fmt"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/simulation"
)

// RaceSimulator produces the outcome distribution of one race.
type RaceSimulator interface {
	SimulateRace(circuit models.Circuit, ratings models.RatingSnapshot, cfg simulation.Config) (*simulation.SimulationResult, error)
}

// CircuitLookup resolves a round number to the circuit simulated for it.
type CircuitLookup interface {
	Circuit(round int) (models.Circuit, error)
}

// Backtester replays historical rounds through the race simulator.
type Backtester struct {
	simulator RaceSimulator
	circuits  CircuitLookup
	logger    *logger.BacktestLogger
}

// NewBacktester creates a backtester
func NewBacktester(sim RaceSimulator, circuits CircuitLookup, log *logrus.Logger) (*Backtester, error) {
	if sim == nil {
		return nil, fmt.Errorf("simulator is required: %w", models.ErrInvalidArgument)
	}
	if circuits == nil {
		return nil, fmt.Errorf("circuit lookup is required: %w", models.ErrInvalidArgument)
	}
	return &Backtester{
		simulator: sim,
		circuits:  circuits,
		logger:    logger.NewBacktestLogger(log),
	}, nil
}

// Run compares simulated outcomes with the given historical results.
// Missing data yields a no-data Metrics value; only an invalid cfg returns an error.
func (b *Backtester) Run(historical []models.HistoricalResult, ratings models.RatingSnapshot, cfg Config) (Metrics, error) {
	if err := cfg.Validate(); err != nil {
		return Metrics{}, err
	}
	if len(historical) == 0 {
		return noData(MessageNoHistoricalResults, nil), nil
	}

	byRound := lo.GroupBy(historical, func(r models.HistoricalResult) int { return r.Round })
	rounds := lo.Uniq(lo.Map(historical, func(r models.HistoricalResult, _ int) int { return r.Round }))
	if len(rounds) > cfg.MaxRounds {
		rounds = rounds[:cfg.MaxRounds]
	}

	seed := simulation.Config{Seed: cfg.Seed}.ResolvedSeed()
	acc := &accumulator{}
	var skipped []SkippedRound

	skip := func(round int, reason string) {
		skipped = append(skipped, SkippedRound{Round: round, Reason: reason})
		b.logger.LogRoundSkipped(round, reason)
	}

	for _, round := range rounds {
		actual := knownPositions(byRound[round])
		if len(actual) < cfg.MinKnownPositions {
			skip(round, fmt.Sprintf("only %d classified drivers", len(actual)))
			continue
		}

		circuit, err := b.circuits.Circuit(round)
		if err != nil {
			skip(round, err.Error())
			continue
		}

		sim, err := b.simulator.SimulateRace(circuit, ratings, simulation.Config{
			Iterations: cfg.Iterations,
			Seed:       simulation.RoundSeed(seed, round),
		})
		if err != nil {
			skip(round, fmt.Sprintf("simulation failed: %v", err))
			continue
		}

		score, brierTerms := scoreRound(round, sim, actual, cfg.MinKnownPositions)
		acc.add(score, brierTerms)

		rho := 0.0
		if score.Spearman != nil {
			rho = *score.Spearman
		}
		b.logger.LogRoundScored(round, score.PredictedWinner, score.ActualWinner, score.Top3Overlap, rho)
	}

	metrics := acc.metrics(skipped)
	if metrics.HasData() {
		b.logger.LogBacktestCompleted(metrics.RunID.String(), metrics.RacesTested, metrics.WinnerHitRate, metrics.BrierScore, metrics.AvgSpearman)
	}
	return metrics, nil
}

// knownPositions maps driver code to finishing position for classified drivers.
func knownPositions(results []models.HistoricalResult) map[string]int {
	actual := make(map[string]int, len(results))
	for _, r := range results {
		if r.DriverCode == "" || !r.HasPosition() {
			continue
		}
		actual[r.DriverCode] = r.Position
	}
	return actual
}

func actualWinner(actual map[string]int) string {
	winner, best := "", 0
	for code, pos := range actual {
		if winner == "" || pos < best || (pos == best && code < winner) {
			winner, best = code, pos
		}
	}
	return winner
}

func scoreRound(round int, sim *simulation.SimulationResult, actual map[string]int, minCommon int) (RoundScore, []float64) {
	predicted := sim.PredictedOrder()
	score := RoundScore{Round: round, ActualWinner: actualWinner(actual)}
	if len(predicted) > 0 {
		score.PredictedWinner = predicted[0]
	}
	score.WinnerHit = score.PredictedWinner != "" && score.PredictedWinner == score.ActualWinner

	actualTop3 := lo.Keys(lo.PickBy(actual, func(_ string, pos int) bool { return pos <= 3 }))
	predictedTop3 := lo.Slice(predicted, 0, 3)
	score.Top3Overlap = lo.CountBy(predictedTop3, func(code string) bool { return lo.Contains(actualTop3, code) })

	var brierTerms []float64
	for _, o := range sim.Results {
		pos, ok := actual[o.Code]
		if !ok {
			continue
		}
		brierTerms = append(brierTerms, BrierTerm(o.PodiumPct/100, pos <= 3))
	}

	common := lo.Filter(predicted, func(code string, _ int) bool {
		_, ok := actual[code]
		return ok
	})
	score.ComparedDrivers = len(common)
	if len(common) >= minCommon {
		predictedRanks := make([]float64, len(common))
		actualPositions := make([]float64, len(common))
		for i, code := range common {
			predictedRanks[i] = float64(i + 1)
			actualPositions[i] = float64(actual[code])
		}
		rho := Spearman(predictedRanks, actualPositions)
		score.Spearman = &rho
	}

	return score, brierTerms
}
