package models

import "time"

// DefaultRating is used for any team or driver missing from a RatingSnapshot.
const DefaultRating = 70.0

// RatingSnapshot holds the numeric strength ratings used by a simulation run.
type RatingSnapshot struct {
	CarRatings      map[string]float64 `json:"car_ratings"`
	DriverRatings   map[string]float64 `json:"driver_ratings"`
	TireDegradation map[string]float64 `json:"tire_deg"`
	ComputedAt      time.Time          `json:"computed_at"`
	// Source is "computed" or "fallback".
	Source string `json:"source"`
}

// CarRating returns the team's car rating or DefaultRating.
func (r RatingSnapshot) CarRating(team string) float64 {
	if v, ok := r.CarRatings[team]; ok {
		return v
	}
	return DefaultRating
}

// DriverRating returns the driver's rating or DefaultRating.
func (r RatingSnapshot) DriverRating(code string) float64 {
	if v, ok := r.DriverRatings[code]; ok {
		return v
	}
	return DefaultRating
}
