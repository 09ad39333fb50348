package simulation

import (
	"github.com/google/uuid"

	"github.com/netoph/f1-2026-predictor/internal/models"
)

// PositionProbability is the share of trials a driver finished in a position.
type PositionProbability struct {
	Position int     `json:"pos"`
	Pct      float64 `json:"pct"`
}

// DriverOutcome holds the per-driver statistics of one simulated race.
type DriverOutcome struct {
	Code                 string                `json:"code"`
	Name                 string                `json:"name"`
	Number               int                   `json:"number"`
	Team                 string                `json:"team"`
	TeamColor            string                `json:"team_color"`
	Rookie               bool                  `json:"rookie"`
	NewTeam              bool                  `json:"new_team"`
	WinPct               float64               `json:"win_pct"`
	PodiumPct            float64               `json:"podium_pct"`
	DNFPct               float64               `json:"dnf_pct"`
	AvgPoints            float64               `json:"avg_points"`
	ExpectedPosition     float64               `json:"expected_pos"`
	PositionDistribution []PositionProbability `json:"pos_distribution"`
	DriverRating         float64               `json:"driver_rating"`
	CarRating            float64               `json:"car_rating"`
	BaseScore            float64               `json:"base_score"`
}

// SimulationResult is the outcome distribution of one race.
type SimulationResult struct {
	RunID      uuid.UUID       `json:"run_id"`
	Circuit    models.Circuit  `json:"circuit"`
	Iterations int             `json:"iterations"`
	Seed       int64           `json:"seed"`
	Results    []DriverOutcome `json:"results"`
}

// Outcome returns the statistics of one driver.
func (r *SimulationResult) Outcome(code string) (DriverOutcome, bool) {
	for _, o := range r.Results {
		if o.Code == code {
			return o, true
		}
	}
	return DriverOutcome{}, false
}

// PredictedOrder returns driver codes ranked by descending win probability.
func (r *SimulationResult) PredictedOrder() []string {
	codes := make([]string, len(r.Results))
	for i, o := range r.Results {
		codes[i] = o.Code
	}
	return codes
}

// DriverStanding is a projected drivers' championship entry.
type DriverStanding struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	Number    int     `json:"number"`
	Team      string  `json:"team"`
	TeamColor string  `json:"team_color"`
	Points    float64 `json:"projected_pts"`
}

// ConstructorStanding is a projected constructors' championship entry.
type ConstructorStanding struct {
	Team      string  `json:"team"`
	TeamColor string  `json:"team_color"`
	Engine    string  `json:"engine"`
	Points    float64 `json:"total_pts"`
}

// ChampionshipResult is the projected season standings.
type ChampionshipResult struct {
	RunID             uuid.UUID             `json:"run_id"`
	Drivers           []DriverStanding      `json:"standings"`
	Constructors      []ConstructorStanding `json:"constructors"`
	IterationsPerRace int                   `json:"iterations_per_race"`
	TotalRaces        int                   `json:"total_races"`
	Seed              int64                 `json:"seed"`
}
