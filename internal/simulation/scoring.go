package simulation

import "github.com/netoph/f1-2026-predictor/internal/models"

// Circuit modifier thresholds and multipliers.
const (
	easyOvertakingThreshold = 8
	hardOvertakingThreshold = 3
	eliteDriverRating       = 85.0
	hotTrackTemperature     = 29.0

	easyOvertakingBoost = 1.015
	eliteDriverBoost    = 1.04
	nonEliteDriverDamp  = 0.96
	heatPenalty         = 0.97
)

// DNF probabilities per risk tier.
const (
	NewTeamDNFProbability   = 0.07
	NewEngineDNFProbability = 0.05
	BaseDNFProbability      = 0.03
)

// Weights splits a base score between car and driver.
type Weights struct {
	Car    float64
	Driver float64
}

// SurfaceWeights returns the car/driver split for a surface. Street tracks weight the car less.
func SurfaceWeights(surface models.SurfaceType) Weights {
	if surface == models.SurfaceStreet {
		return Weights{Car: 0.52, Driver: 0.48}
	}
	return Weights{Car: 0.62, Driver: 0.38}
}

// BaseScore is the deterministic circuit-specific performance estimate of a driver/car pair.
func BaseScore(circuit models.Circuit, driver models.Driver, team models.Team, carRating, driverRating float64) float64 {
	w := SurfaceWeights(circuit.Type)
	score := carRating*w.Car + driverRating*w.Driver

	switch {
	case circuit.Overtaking >= easyOvertakingThreshold:
		score *= easyOvertakingBoost
	case circuit.Overtaking <= hardOvertakingThreshold:
		if driverRating > eliteDriverRating {
			score *= eliteDriverBoost
		} else {
			score *= nonEliteDriverDamp
		}
	}

	if circuit.Temperature > hotTrackTemperature && (driver.NewTeam || team.NewEngine) {
		score *= heatPenalty
	}

	return score
}

// DNFModel returns the per-race retirement probability of a driver.
type DNFModel func(driver models.Driver, team models.Team) float64

// DefaultDNFProbability assigns retirement risk by team/engine novelty.
func DefaultDNFProbability(driver models.Driver, team models.Team) float64 {
	switch {
	case driver.NewTeam || team.NewEntrant:
		return NewTeamDNFProbability
	case team.NewEngine:
		return NewEngineDNFProbability
	default:
		return BaseDNFProbability
	}
}
