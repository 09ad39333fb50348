package server

import (
	"time"

	"github.com/samber/lo"

	"github.com/netoph/f1-2026-predictor/internal/backtest"
	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
	"github.com/netoph/f1-2026-predictor/internal/simulation"
)

// displayPositions is how many finishing positions the race view shows per driver.
const displayPositions = 12

type teamInfo struct {
	Color         string  `json:"color"`
	Engine        string  `json:"engine"`
	CarAdjustment float64 `json:"car_adj_2026"`
}

type ratingsView struct {
	DriverRatings   map[string]float64  `json:"driver_ratings"`
	CarRatings      map[string]float64  `json:"car_ratings"`
	TireDegradation map[string]float64  `json:"tire_deg"`
	Source          string              `json:"source"`
	ComputedAt      time.Time           `json:"computed_at"`
	TeamsInfo       map[string]teamInfo `json:"teams_info"`
}

type circuitsView struct {
	Circuits []models.Circuit `json:"circuits"`
}

type backtestView struct {
	Error   string      `json:"error,omitempty"`
	Metrics interface{} `json:"metrics"`
	Note    string      `json:"note,omitempty"`
}

func newRatingsView(snapshot models.RatingSnapshot, season *refdata.Season) ratingsView {
	teams := make(map[string]teamInfo, len(season.TeamNames()))
	for _, name := range season.TeamNames() {
		team, _ := season.Team(name)
		teams[name] = teamInfo{Color: team.Color, Engine: team.Engine, CarAdjustment: team.CarAdjustment}
	}
	return ratingsView{
		DriverRatings:   snapshot.DriverRatings,
		CarRatings:      snapshot.CarRatings,
		TireDegradation: snapshot.TireDegradation,
		Source:          snapshot.Source,
		ComputedAt:      snapshot.ComputedAt,
		TeamsInfo:       teams,
	}
}

// newRaceView rounds probabilities for display and trims each distribution to P1-P12.
func newRaceView(result *simulation.SimulationResult) *simulation.SimulationResult {
	view := *result
	view.Results = lo.Map(result.Results, func(o simulation.DriverOutcome, _ int) simulation.DriverOutcome {
		o.WinPct = models.Round(o.WinPct, 2)
		o.PodiumPct = models.Round(o.PodiumPct, 2)
		o.DNFPct = models.Round(o.DNFPct, 2)
		o.AvgPoints = models.Round(o.AvgPoints, 2)
		o.ExpectedPosition = models.Round(o.ExpectedPosition, 2)
		o.BaseScore = models.Round(o.BaseScore, 2)
		dist := o.PositionDistribution
		if len(dist) > displayPositions {
			dist = dist[:displayPositions]
		}
		o.PositionDistribution = lo.Map(dist, func(p simulation.PositionProbability, _ int) simulation.PositionProbability {
			return simulation.PositionProbability{Position: p.Position, Pct: models.Round(p.Pct, 2)}
		})
		return o
	})
	return &view
}

func newChampionshipView(result *simulation.ChampionshipResult) *simulation.ChampionshipResult {
	view := *result
	view.Drivers = lo.Map(result.Drivers, func(d simulation.DriverStanding, _ int) simulation.DriverStanding {
		d.Points = models.Round(d.Points, 1)
		return d
	})
	view.Constructors = lo.Map(result.Constructors, func(c simulation.ConstructorStanding, _ int) simulation.ConstructorStanding {
		c.Points = models.Round(c.Points, 1)
		return c
	})
	return &view
}

func newMetricsView(m backtest.Metrics) backtest.Metrics {
	m.WinnerHitRate = models.Round(m.WinnerHitRate, 1)
	m.Top3OverlapPerRace = models.Round(m.Top3OverlapPerRace, 2)
	m.BrierScore = models.Round(m.BrierScore, 4)
	m.AvgSpearman = models.Round(m.AvgSpearman, 3)
	return m
}
