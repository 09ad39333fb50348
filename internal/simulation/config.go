package simulation

import (
	"fmt"
	"time"

	"github.com/netoph/f1-2026-predictor/internal/models"
)

// DefaultNoiseStdDev is the per-trial multiplicative noise applied to base scores.
const DefaultNoiseStdDev = 0.09

// Config configures a simulation run
type Config struct {
	Iterations int
	// Seed fixes the random stream. Zero seeds from the clock.
	Seed int64
	// Workers bounds per-circuit parallelism in season runs. Values below 2 run sequentially.
	Workers int
}

// Validate validates simulation parameters
func (c Config) Validate() error {
	if c.Iterations <= 0 {
		return fmt.Errorf("iterations must be positive, got %d: %w", c.Iterations, models.ErrInvalidArgument)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative: %w", models.ErrInvalidArgument)
	}
	return nil
}

// ResolvedSeed returns the configured seed, or a clock-derived one when unset.
func (c Config) ResolvedSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// zeroRoundSeed replaces a derived seed of 0, which would otherwise read as unset.
const zeroRoundSeed int64 = 1<<62 + 1

// RoundSeed derives an independent stream per calendar round from a season seed.
// The result is never 0, so a fixed season seed always yields fixed round seeds.
func RoundSeed(seed int64, round int) int64 {
	derived := seed + int64(round)*7919
	if derived == 0 {
		return zeroRoundSeed
	}
	return derived
}
