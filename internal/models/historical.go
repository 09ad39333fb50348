package models

import "strings"

// HistoricalResult is one driver's classified result in a past race.
type HistoricalResult struct {
	Round      int     `json:"round"`
	DriverCode string  `json:"driverCode"`
	Position   int     `json:"position"`
	Points     float64 `json:"points"`
	Status     string  `json:"status"`
}

// HasPosition reports whether the finishing position is known.
func (h HistoricalResult) HasPosition() bool {
	return h.Position > 0
}

// IsRetirement reports whether the status string describes a non-finish.
func (h HistoricalResult) IsRetirement() bool {
	s := h.Status
	if s == "DNF" || s == "DSQ" {
		return true
	}
	return strings.Contains(s, "Retired") || strings.Contains(s, "Accident") || strings.Contains(s, "Collision")
}

// QualifyingResult is one driver's qualifying position in a past event.
type QualifyingResult struct {
	Round      int    `json:"round"`
	DriverCode string `json:"driverCode"`
	Position   int    `json:"position"`
}

// HistoricalStanding is a past championship standing for a constructor.
type HistoricalStanding struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

// SeasonHistory is the raw data the ratings step consumes.
type SeasonHistory struct {
	ConstructorStandings []HistoricalStanding `json:"constructor_standings"`
	PreviousResults      []HistoricalResult   `json:"previous_results"`
	CurrentResults       []HistoricalResult   `json:"current_results"`
	PreviousQualifying   []QualifyingResult   `json:"previous_qualifying"`
	CurrentQualifying    []QualifyingResult   `json:"current_qualifying"`
}
