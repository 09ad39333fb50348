package ratings

import (
	"time"

	"github.com/samber/lo"

	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
)

// Snapshot sources
const (
	SourceComputed = "computed"
	SourceFallback = "fallback"
)

// FallbackCarRatings is used when constructor standings are unavailable.
var FallbackCarRatings = map[string]float64{
	"McLaren":      97.0,
	"Ferrari":      91.0,
	"Red Bull":     87.0,
	"Mercedes":     84.0,
	"Aston Martin": 72.0,
	"Williams":     70.0,
	"Racing Bulls": 68.0,
	"Alpine":       66.0,
	"Haas":         64.0,
	"Audi":         58.0,
	"Cadillac":     55.0,
}

// FallbackDriverRatings is used when race results are unavailable. Rookie values are estimates.
var FallbackDriverRatings = map[string]float64{
	"NOR": 94.0,
	"VER": 97.0,
	"PIA": 87.0,
	"LEC": 88.0,
	"HAM": 91.0,
	"RUS": 84.0,
	"ALO": 86.0,
	"SAI": 83.0,
	"GAS": 78.0,
	"ALB": 79.0,
	"HUL": 76.0,
	"OCO": 75.0,
	"LAW": 74.0,
	"PER": 80.0,
	"BOT": 73.0,
	"STR": 70.0,
	"HAD": 70.0,
	"ANT": 71.0,
	"COL": 69.0,
	"BOR": 68.0,
	"BEA": 69.0,
	"LIN": 68.0,
}

// Fallback returns the fixed ratings with neutral tire degradation for every team.
func Fallback(season *refdata.Season, now time.Time) models.RatingSnapshot {
	tires := make(map[string]float64)
	for _, team := range season.TeamNames() {
		tires[team] = 1.0
	}
	return models.RatingSnapshot{
		CarRatings:      lo.Assign(FallbackCarRatings),
		DriverRatings:   lo.Assign(FallbackDriverRatings),
		TireDegradation: tires,
		ComputedAt:      now,
		Source:          SourceFallback,
	}
}
