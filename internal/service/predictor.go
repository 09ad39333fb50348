// Package service exposes the prediction operations on top of the simulator, backtester and ratings.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/netoph/f1-2026-predictor/internal/backtest"
	"github.com/netoph/f1-2026-predictor/internal/config"
	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/metrics"
	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
	"github.com/netoph/f1-2026-predictor/internal/simulation"
)

// MessageHistoryUnavailable is reported when actual results for a backtest cannot be loaded.
const MessageHistoryUnavailable = "Could not fetch historical results"

// RatingsProvider serves the current ratings snapshot.
type RatingsProvider interface {
	Get(ctx context.Context) models.RatingSnapshot
}

// ResultsFetcher loads the classified results of a past season.
type ResultsFetcher interface {
	FetchRaceResults(ctx context.Context, year int) ([]models.HistoricalResult, error)
}

// Predictor runs race, championship and backtest predictions for one season
type Predictor struct {
	season     *refdata.Season
	simulator  *simulation.Simulator
	backtester *backtest.Backtester
	ratings    RatingsProvider
	results    ResultsFetcher
	simConfig  config.SimulationConfig
	btConfig   backtest.Config
	btSeason   int
	validate   *validator.Validate
	logger     *logrus.Entry
}

// NewPredictor wires a predictor from its collaborators. results may be nil, in which
// case BacktestSeason reports no data.
func NewPredictor(
	simulator *simulation.Simulator,
	ratings RatingsProvider,
	results ResultsFetcher,
	cfg *config.Config,
	log *logrus.Logger,
) (*Predictor, error) {
	if simulator == nil {
		return nil, fmt.Errorf("simulator is required: %w", models.ErrInvalidArgument)
	}
	if ratings == nil {
		return nil, fmt.Errorf("ratings provider is required: %w", models.ErrInvalidArgument)
	}
	btConfig, err := backtest.FromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid backtest config: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	bt, err := backtest.NewBacktester(simulator, simulator.Season(), log)
	if err != nil {
		return nil, err
	}

	return &Predictor{
		season:     simulator.Season(),
		simulator:  simulator,
		backtester: bt,
		ratings:    ratings,
		results:    results,
		simConfig:  cfg.Simulation,
		btConfig:   btConfig,
		btSeason:   cfg.Backtest.Season,
		validate:   validator.New(),
		logger:     log.WithField("component", "predictor"),
	}, nil
}

// Season returns the season being predicted.
func (p *Predictor) Season() *refdata.Season {
	return p.season
}

// BacktestSeasonYear returns the season backtested when none is requested.
func (p *Predictor) BacktestSeasonYear() int {
	return p.btSeason
}

// Circuits returns the calendar in round order.
func (p *Predictor) Circuits() []models.Circuit {
	return p.season.Calendar()
}

// Ratings returns the current ratings snapshot.
func (p *Predictor) Ratings(ctx context.Context) models.RatingSnapshot {
	return p.ratings.Get(ctx)
}

// SimulateRace predicts one round. Zero iterations selects the configured default.
func (p *Predictor) SimulateRace(ctx context.Context, round, iterations int) (*simulation.SimulationResult, error) {
	if err := p.validate.Var(round, fmt.Sprintf("gte=1,lte=%d", p.season.Rounds())); err != nil {
		return nil, fmt.Errorf("round must be between 1 and %d, got %d: %w", p.season.Rounds(), round, models.ErrInvalidArgument)
	}
	iters, err := p.iterations(iterations, p.simConfig.Race)
	if err != nil {
		return nil, err
	}
	circuit, err := p.season.Circuit(round)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := p.simulator.SimulateRace(circuit, p.ratings.Get(ctx), p.simulationConfig(iters))
	if err != nil {
		return nil, fmt.Errorf("race simulation failed: %w", err)
	}
	metrics.RecordSimulation(metrics.KindRace, iters, time.Since(start).Seconds())
	return result, nil
}

// SimulateChampionship projects the full season. Zero iterations selects the configured default.
func (p *Predictor) SimulateChampionship(ctx context.Context, iterations int) (*simulation.ChampionshipResult, error) {
	iters, err := p.iterations(iterations, p.simConfig.Championship)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := p.simulator.SimulateSeason(ctx, p.season.Calendar(), p.ratings.Get(ctx), p.simulationConfig(iters))
	if err != nil {
		return nil, fmt.Errorf("championship simulation failed: %w", err)
	}
	metrics.RecordSimulation(metrics.KindChampionship, iters*result.TotalRaces, time.Since(start).Seconds())
	return result, nil
}

// Backtest scores the model against the given historical results.
// Zero iterations selects the configured default.
func (p *Predictor) Backtest(ctx context.Context, historical []models.HistoricalResult, iterations int) (backtest.Metrics, error) {
	iters, err := p.iterations(iterations, p.simConfig.Backtest)
	if err != nil {
		return backtest.Metrics{}, err
	}
	if err := ctx.Err(); err != nil {
		return backtest.Metrics{}, err
	}

	cfg := p.btConfig
	cfg.Iterations = iters

	start := time.Now()
	result, err := p.backtester.Run(historical, p.ratings.Get(ctx), cfg)
	if err != nil {
		return backtest.Metrics{}, err
	}
	metrics.RecordSimulation(metrics.KindBacktest, iters*result.RacesTested, time.Since(start).Seconds())
	metrics.RecordBacktestRun(string(result.Status))
	if result.HasData() {
		metrics.UpdateBacktestScores(result.WinnerHitRate, result.BrierScore, result.AvgSpearman)
	}
	return result, nil
}

// BacktestSeason fetches the actual results of year and backtests against them.
// A zero year selects the configured backtest season. When results cannot be loaded
// the error wraps models.ErrNoHistoricalData.
func (p *Predictor) BacktestSeason(ctx context.Context, year, iterations int) (backtest.Metrics, error) {
	if year == 0 {
		year = p.btSeason
	}
	if _, err := p.iterations(iterations, p.simConfig.Backtest); err != nil {
		return backtest.Metrics{}, err
	}

	historical, err := p.fetchResults(ctx, year)
	if err != nil {
		p.logger.WithError(err).WithField("season", year).Warn("Could not fetch historical results")
		return backtest.Metrics{}, fmt.Errorf("%s for %d: %w", MessageHistoryUnavailable, year, models.ErrNoHistoricalData)
	}
	return p.Backtest(ctx, historical, iterations)
}

func (p *Predictor) fetchResults(ctx context.Context, year int) ([]models.HistoricalResult, error) {
	if p.results == nil {
		return nil, errors.New("no results source configured")
	}
	historical, err := p.results.FetchRaceResults(ctx, year)
	if err != nil {
		return nil, err
	}
	if len(historical) == 0 {
		return nil, fmt.Errorf("season %d has no results", year)
	}
	return historical, nil
}

// iterations resolves a requested trial count against its bounds.
func (p *Predictor) iterations(requested int, bounds config.IterationBounds) (int, error) {
	if requested == 0 {
		return bounds.Default, nil
	}
	if err := p.validate.Var(requested, fmt.Sprintf("gte=%d,lte=%d", bounds.Min, bounds.Max)); err != nil {
		return 0, fmt.Errorf("iterations must be between %d and %d, got %d: %w", bounds.Min, bounds.Max, requested, models.ErrInvalidArgument)
	}
	return requested, nil
}

func (p *Predictor) simulationConfig(iterations int) simulation.Config {
	return simulation.Config{
		Iterations: iterations,
		Seed:       p.simConfig.Seed,
		Workers:    p.simConfig.Workers,
	}
}
