package backtest

import (
	"fmt"

	"github.com/netoph/f1-2026-predictor/internal/config"
	"github.com/netoph/f1-2026-predictor/internal/models"
)

// Defaults used when a field is left zero.
const (
	DefaultIterations        = 2000
	DefaultMaxRounds         = 20
	DefaultMinKnownPositions = 5
)

// Config controls a backtest run
type Config struct {
	// Iterations is the number of trials simulated per round.
	Iterations int
	Seed       int64
	// MaxRounds caps the number of distinct rounds examined, in input order.
	MaxRounds int
	// MinKnownPositions is the minimum number of classified drivers a round needs.
	// The same threshold gates the per-round rank correlation.
	MinKnownPositions int
}

// DefaultConfig returns the standard backtest settings.
func DefaultConfig() Config {
	return Config{
		Iterations:        DefaultIterations,
		MaxRounds:         DefaultMaxRounds,
		MinKnownPositions: DefaultMinKnownPositions,
	}
}

// FromConfig converts app config to backtest config
func FromConfig(cfg *config.Config) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("config is required: %w", models.ErrInvalidArgument)
	}
	bt := Config{
		Iterations:        cfg.Simulation.Backtest.Default,
		Seed:              cfg.Simulation.Seed,
		MaxRounds:         cfg.Backtest.MaxRounds,
		MinKnownPositions: cfg.Backtest.MinKnownPositions,
	}
	return bt, bt.Validate()
}

// Validate validates backtest config parameters
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d: %w", c.Iterations, models.ErrInvalidArgument)
	}
	if c.MaxRounds <= 0 {
		return fmt.Errorf("max rounds must be positive: %w", models.ErrInvalidArgument)
	}
	if c.MinKnownPositions < 2 {
		return fmt.Errorf("min known positions must be at least 2: %w", models.ErrInvalidArgument)
	}
	return nil
}
