// Package simulation runs Monte Carlo race and season projections from car and driver ratings.
package simulation

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/netoph/f1-2026-predictor/internal/logger"
	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
)

// Simulator runs randomized trials over a fixed season grid.
type Simulator struct {
	season *refdata.Season
	dnf    DNFModel
	noise  float64
	logger *logger.SimulationLogger
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithDNFModel replaces the retirement probability model.
func WithDNFModel(model DNFModel) Option {
	return func(s *Simulator) {
		if model != nil {
			s.dnf = model
		}
	}
}

// WithNoise sets the standard deviation of per-trial score noise.
func WithNoise(stddev float64) Option {
	return func(s *Simulator) {
		if stddev >= 0 {
			s.noise = stddev
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(l *logrus.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger.NewSimulationLogger(l)
	}
}

// NewSimulator creates a simulator for the given season
func NewSimulator(season *refdata.Season, opts ...Option) (*Simulator, error) {
	if season == nil {
		return nil, fmt.Errorf("season is required: %w", models.ErrInvalidArgument)
	}
	s := &Simulator{
		season: season,
		dnf:    DefaultDNFProbability,
		noise:  DefaultNoiseStdDev,
		logger: logger.NewSimulationLogger(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Season returns the reference data the simulator runs over.
func (s *Simulator) Season() *refdata.Season {
	return s.season
}

// entrant is the per-race precomputed state of one driver.
type entrant struct {
	driver       models.Driver
	team         models.Team
	carRating    float64
	driverRating float64
	baseScore    float64
	dnfProb      float64
}

func (s *Simulator) entrants(circuit models.Circuit, ratings models.RatingSnapshot) []entrant {
	drivers := s.season.Drivers()
	out := make([]entrant, len(drivers))
	for i, d := range drivers {
		team, _ := s.season.Team(d.Team)
		car := ratings.CarRating(d.Team)
		drv := ratings.DriverRating(d.Code)
		out[i] = entrant{
			driver:       d,
			team:         team,
			carRating:    car,
			driverRating: drv,
			baseScore:    BaseScore(circuit, d, team, car, drv),
			dnfProb:      s.dnf(d, team),
		}
	}
	return out
}

// tally accumulates trial outcomes per driver index.
type tally struct {
	wins      []int
	podiums   []int
	dnfs      []int
	points    []float64
	positions [][]int // [driver][position-1]
}

func newTally(n int) *tally {
	t := &tally{
		wins:      make([]int, n),
		podiums:   make([]int, n),
		dnfs:      make([]int, n),
		points:    make([]float64, n),
		positions: make([][]int, n),
	}
	for i := range t.positions {
		t.positions[i] = make([]int, n)
	}
	return t
}

// SimulateRace runs cfg.Iterations trials of one race
func (s *Simulator) SimulateRace(circuit models.Circuit, ratings models.RatingSnapshot, cfg Config) (*SimulationResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	seed := cfg.ResolvedSeed()
	rng := rand.New(rand.NewSource(seed))

	field := s.entrants(circuit, ratings)
	n := len(field)
	counts := newTally(n)
	scores := make([]float64, n)
	finishers := make([]int, 0, n)

	for it := 0; it < cfg.Iterations; it++ {
		finishers = finishers[:0]
		for i := range field {
			scores[i] = field[i].baseScore * (1.0 + rng.NormFloat64()*s.noise)
			if rng.Float64() < field[i].dnfProb {
				counts.dnfs[i]++
				continue
			}
			finishers = append(finishers, i)
		}

		sort.SliceStable(finishers, func(a, b int) bool {
			return scores[finishers[a]] > scores[finishers[b]]
		})

		for idx, driver := range finishers {
			pos := idx + 1
			counts.positions[driver][idx]++
			counts.points[driver] += s.season.Points(pos)
			if pos == 1 {
				counts.wins[driver]++
			}
			if pos <= 3 {
				counts.podiums[driver]++
			}
		}
	}

	result := &SimulationResult{
		RunID:      uuid.New(),
		Circuit:    circuit,
		Iterations: cfg.Iterations,
		Seed:       seed,
		Results:    summarize(field, counts, cfg.Iterations),
	}

	favourite, favouriteWin := "", 0.0
	if len(result.Results) > 0 {
		favourite, favouriteWin = result.Results[0].Code, result.Results[0].WinPct
	}
	s.logger.LogRaceSimulated(result.RunID.String(), circuit.Round, circuit.Name, cfg.Iterations, seed,
		favourite, favouriteWin, float64(time.Since(start).Milliseconds()))

	return result, nil
}

func summarize(field []entrant, counts *tally, iterations int) []DriverOutcome {
	n := len(field)
	iters := float64(iterations)
	out := make([]DriverOutcome, n)

	for i, e := range field {
		finishes := 0
		weighted := 0
		dist := make([]PositionProbability, n)
		for p, c := range counts.positions[i] {
			finishes += c
			weighted += c * (p + 1)
			dist[p] = PositionProbability{Position: p + 1, Pct: float64(c) / iters * 100}
		}

		expected := float64(n)
		if finishes > 0 {
			expected = float64(weighted) / float64(finishes)
		}

		out[i] = DriverOutcome{
			Code:                 e.driver.Code,
			Name:                 e.driver.Name,
			Number:               e.driver.Number,
			Team:                 e.driver.Team,
			TeamColor:            e.team.Color,
			Rookie:               e.driver.Rookie,
			NewTeam:              e.driver.NewTeam,
			WinPct:               float64(counts.wins[i]) / iters * 100,
			PodiumPct:            float64(counts.podiums[i]) / iters * 100,
			DNFPct:               float64(counts.dnfs[i]) / iters * 100,
			AvgPoints:            counts.points[i] / iters,
			ExpectedPosition:     expected,
			PositionDistribution: dist,
			DriverRating:         e.driverRating,
			CarRating:            e.carRating,
			BaseScore:            e.baseScore,
		}
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].WinPct > out[b].WinPct })
	return out
}
