package simulation

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/netoph/f1-2026-predictor/internal/models"
)

// SimulateSeason runs every circuit of the calendar and sums each driver's expected points.
// Rounds may run on up to cfg.Workers goroutines; totals are reduced in round order afterwards.
func (s *Simulator) SimulateSeason(ctx context.Context, calendar []models.Circuit, ratings models.RatingSnapshot, cfg Config) (*ChampionshipResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(calendar) == 0 {
		return nil, fmt.Errorf("calendar is empty: %w", models.ErrInvalidArgument)
	}

	start := time.Now()
	seed := cfg.ResolvedSeed()

	ordered := make([]models.Circuit, len(calendar))
	copy(ordered, calendar)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Round < ordered[j].Round })

	perRound := make([]*SimulationResult, len(ordered))

	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, circuit := range ordered {
		i, circuit := i, circuit
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			raceCfg := Config{Iterations: cfg.Iterations, Seed: RoundSeed(seed, circuit.Round)}
			res, err := s.SimulateRace(circuit, ratings, raceCfg)
			if err != nil {
				return fmt.Errorf("simulate round %d: %w", circuit.Round, err)
			}
			perRound[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	totals := make(map[string]float64, s.season.GridSize())
	for _, res := range perRound {
		for _, o := range res.Results {
			totals[o.Code] += o.AvgPoints
		}
	}

	result := &ChampionshipResult{
		RunID:             uuid.New(),
		Drivers:           s.driverStandings(totals),
		Constructors:      s.constructorStandings(totals),
		IterationsPerRace: cfg.Iterations,
		TotalRaces:        len(ordered),
		Seed:              seed,
	}

	leader, leaderPts := "", 0.0
	if len(result.Drivers) > 0 {
		leader, leaderPts = result.Drivers[0].Code, result.Drivers[0].Points
	}
	s.logger.LogSeasonSimulated(result.RunID.String(), len(ordered), cfg.Iterations, leader, leaderPts,
		float64(time.Since(start).Milliseconds()))

	return result, nil
}

func (s *Simulator) driverStandings(totals map[string]float64) []DriverStanding {
	drivers := s.season.Drivers()
	standings := make([]DriverStanding, 0, len(drivers))
	for _, d := range drivers {
		team, _ := s.season.Team(d.Team)
		standings = append(standings, DriverStanding{
			Code:      d.Code,
			Name:      d.Name,
			Number:    d.Number,
			Team:      d.Team,
			TeamColor: team.Color,
			Points:    totals[d.Code],
		})
	}
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Points > standings[j].Points })
	return standings
}

func (s *Simulator) constructorStandings(totals map[string]float64) []ConstructorStanding {
	byTeam := make(map[string]float64)
	for _, d := range s.season.Drivers() {
		byTeam[d.Team] += totals[d.Code]
	}

	names := s.season.TeamNames()
	standings := make([]ConstructorStanding, 0, len(names))
	for _, name := range names {
		team, _ := s.season.Team(name)
		standings = append(standings, ConstructorStanding{
			Team:      name,
			TeamColor: team.Color,
			Engine:    team.Engine,
			Points:    byTeam[name],
		})
	}
	sort.SliceStable(standings, func(i, j int) bool { return standings[i].Points > standings[j].Points })
	return standings
}
