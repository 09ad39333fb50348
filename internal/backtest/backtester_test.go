package backtest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
	"github.com/netoph/f1-2026-predictor/internal/simulation"
)

var sixCodes = []string{"AAA", "BBB", "CCC", "DDD", "EEE", "FFF"}

// stubSimulator returns a fixed predicted order for every round, failing on selected rounds.
type stubSimulator struct {
	order   []string
	podium  map[string]float64
	failing map[int]bool
	calls   []int
	seeds   []int64
}

func (s *stubSimulator) SimulateRace(circuit models.Circuit, _ models.RatingSnapshot, cfg simulation.Config) (*simulation.SimulationResult, error) {
	s.calls = append(s.calls, circuit.Round)
	s.seeds = append(s.seeds, cfg.Seed)
	if s.failing[circuit.Round] {
		return nil, errors.New("boom")
	}
	res := &simulation.SimulationResult{Circuit: circuit, Iterations: cfg.Iterations, Seed: cfg.Seed}
	for i, code := range s.order {
		res.Results = append(res.Results, simulation.DriverOutcome{
			Code:      code,
			WinPct:    float64(len(s.order) - i),
			PodiumPct: s.podium[code],
		})
	}
	return res, nil
}

// anyCircuit resolves every positive round.
type anyCircuit struct{}

func (anyCircuit) Circuit(round int) (models.Circuit, error) {
	if round <= 0 {
		return models.Circuit{}, fmt.Errorf("round %d: %w", round, models.ErrCircuitNotFound)
	}
	return models.Circuit{Round: round, Name: fmt.Sprintf("Round %d", round), Type: models.SurfacePermanent, Overtaking: 5}, nil
}

func roundResults(round int, codes []string) []models.HistoricalResult {
	out := make([]models.HistoricalResult, len(codes))
	for i, code := range codes {
		out[i] = models.HistoricalResult{Round: round, DriverCode: code, Position: i + 1, Status: "Finished"}
	}
	return out
}

func newStubBacktester(t *testing.T, sim *stubSimulator) *Backtester {
	t.Helper()
	b, err := NewBacktester(sim, anyCircuit{}, nil)
	require.NoError(t, err)
	return b
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Iterations = 100
	cfg.Seed = 42
	return cfg
}

func TestRunEmptyHistoryReturnsNoData(t *testing.T) {
	b := newStubBacktester(t, &stubSimulator{order: sixCodes})

	m, err := b.Run(nil, models.RatingSnapshot{}, testConfig())
	require.NoError(t, err)
	assert.Equal(t, StatusNoData, m.Status)
	assert.Equal(t, MessageNoHistoricalResults, m.Message)
	assert.False(t, m.HasData())
	assert.Zero(t, m.RacesTested)
}

func TestRunInvalidConfig(t *testing.T) {
	b := newStubBacktester(t, &stubSimulator{order: sixCodes})

	_, err := b.Run(roundResults(1, sixCodes), models.RatingSnapshot{}, Config{Iterations: 0, MaxRounds: 20, MinKnownPositions: 5})
	assert.True(t, errors.Is(err, models.ErrInvalidArgument))
}

func TestRunPerfectPrediction(t *testing.T) {
	sim := &stubSimulator{
		order:  sixCodes,
		podium: map[string]float64{"AAA": 90, "BBB": 80, "CCC": 70, "DDD": 20, "EEE": 10, "FFF": 0},
	}
	b := newStubBacktester(t, sim)

	history := append(roundResults(1, sixCodes), roundResults(2, sixCodes)...)
	m, err := b.Run(history, models.RatingSnapshot{}, testConfig())
	require.NoError(t, err)

	assert.Equal(t, StatusOK, m.Status)
	assert.Equal(t, 2, m.RacesTested)
	assert.Equal(t, 100.0, m.WinnerHitRate)
	assert.Equal(t, 3.0, m.Top3OverlapPerRace)
	assert.InDelta(t, 1.0, m.AvgSpearman, 1e-9)
	assert.InDelta(t, 0.19/6, m.BrierScore, 1e-9)
	require.NotNil(t, m.Interpretation)
	assert.Equal(t, DefaultInterpretation, *m.Interpretation)
	require.Len(t, m.Rounds, 2)
	assert.Equal(t, "AAA", m.Rounds[0].ActualWinner)
	assert.True(t, m.Rounds[0].WinnerHit)
}

func TestRunReversedPrediction(t *testing.T) {
	reversed := []string{"FFF", "EEE", "DDD", "CCC", "BBB", "AAA"}
	b := newStubBacktester(t, &stubSimulator{order: reversed, podium: map[string]float64{}})

	m, err := b.Run(roundResults(4, sixCodes), models.RatingSnapshot{}, testConfig())
	require.NoError(t, err)

	assert.Equal(t, 0.0, m.WinnerHitRate)
	assert.Equal(t, 0.0, m.Top3OverlapPerRace)
	assert.InDelta(t, -1.0, m.AvgSpearman, 1e-9)
	assert.InDelta(t, 3.0/6, m.BrierScore, 1e-9)
}

func TestRunSkipsSparseAndFailingRounds(t *testing.T) {
	sim := &stubSimulator{order: sixCodes, podium: map[string]float64{}, failing: map[int]bool{3: true}}
	b := newStubBacktester(t, sim)

	var history []models.HistoricalResult
	history = append(history, roundResults(1, sixCodes)...)
	history = append(history, roundResults(2, sixCodes[:4])...)
	history = append(history, roundResults(3, sixCodes)...)
	// unclassified finishers do not count as known positions
	sparse := roundResults(5, sixCodes)
	sparse[4].Position, sparse[5].Position = 0, 0
	history = append(history, sparse...)

	m, err := b.Run(history, models.RatingSnapshot{}, testConfig())
	require.NoError(t, err)

	assert.Equal(t, 1, m.RacesTested)
	require.Len(t, m.RoundsSkipped, 3)
	assert.Equal(t, []int{2, 3, 5}, []int{m.RoundsSkipped[0].Round, m.RoundsSkipped[1].Round, m.RoundsSkipped[2].Round})
	assert.Contains(t, m.RoundsSkipped[1].Reason, "simulation failed")
	assert.Equal(t, []int{1, 3}, sim.calls)
}

func TestRunAllRoundsIneligible(t *testing.T) {
	b := newStubBacktester(t, &stubSimulator{order: sixCodes})

	m, err := b.Run(roundResults(1, sixCodes[:3]), models.RatingSnapshot{}, testConfig())
	require.NoError(t, err)
	assert.Equal(t, StatusNoData, m.Status)
	assert.Equal(t, MessageNoValidRaces, m.Message)
	assert.Equal(t, worstBrier, m.BrierScore)
	assert.Len(t, m.RoundsSkipped, 1)
}

func TestRunCapsDistinctRoundsInInputOrder(t *testing.T) {
	sim := &stubSimulator{order: sixCodes, podium: map[string]float64{}}
	b := newStubBacktester(t, sim)

	var history []models.HistoricalResult
	for _, round := range []int{7, 2, 9, 4} {
		history = append(history, roundResults(round, sixCodes)...)
	}
	cfg := testConfig()
	cfg.MaxRounds = 2

	m, err := b.Run(history, models.RatingSnapshot{}, cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, m.RacesTested)
	assert.Equal(t, []int{7, 2}, sim.calls)
}

// shortCalendar knows only the first n rounds.
type shortCalendar int

func (n shortCalendar) Circuit(round int) (models.Circuit, error) {
	if round < 1 || round > int(n) {
		return models.Circuit{}, fmt.Errorf("round %d: %w", round, models.ErrCircuitNotFound)
	}
	return anyCircuit{}.Circuit(round)
}

func TestRunSkipsRoundsMissingFromCalendar(t *testing.T) {
	sim := &stubSimulator{order: sixCodes}
	b, err := NewBacktester(sim, shortCalendar(2), nil)
	require.NoError(t, err)

	var history []models.HistoricalResult
	for _, round := range []int{1, 2, 3} {
		history = append(history, roundResults(round, sixCodes)...)
	}

	m, err := b.Run(history, models.RatingSnapshot{}, testConfig())
	require.NoError(t, err)
	assert.Equal(t, 2, m.RacesTested)
	assert.Equal(t, []int{1, 2}, sim.calls, "a missing round is never simulated at another circuit")
	require.Len(t, m.RoundsSkipped, 1)
	assert.Equal(t, 3, m.RoundsSkipped[0].Round)
	assert.Contains(t, m.RoundsSkipped[0].Reason, "round 3")
}

func TestRunNeverPassesUnsetRoundSeed(t *testing.T) {
	sim := &stubSimulator{order: sixCodes}
	b := newStubBacktester(t, sim)

	cfg := testConfig()
	cfg.Seed = -2 * 7919
	history := append(roundResults(1, sixCodes), roundResults(2, sixCodes)...)

	_, err := b.Run(history, models.RatingSnapshot{}, cfg)
	require.NoError(t, err)
	require.Len(t, sim.seeds, 2)
	for _, seed := range sim.seeds {
		assert.NotZero(t, seed)
	}
	assert.Equal(t, simulation.RoundSeed(cfg.Seed, 2), sim.seeds[1])
}

func TestRunWithRealSimulatorStaysInBounds(t *testing.T) {
	season := refdata.Season2026()
	sim, err := simulation.NewSimulator(season)
	require.NoError(t, err)
	b, err := NewBacktester(sim, season, nil)
	require.NoError(t, err)

	codes := season.DriverCodes()
	var history []models.HistoricalResult
	for round := 1; round <= 4; round++ {
		// rotate the grid so each round has a different finishing order
		rotated := append(append([]string{}, codes[round:]...), codes[:round]...)
		history = append(history, roundResults(round, rotated)...)
	}
	history = append(history, roundResults(99, codes)...)

	m, err := b.Run(history, models.RatingSnapshot{}, Config{Iterations: 300, Seed: 8, MaxRounds: 20, MinKnownPositions: 5})
	require.NoError(t, err)

	assert.Equal(t, 4, m.RacesTested)
	require.Len(t, m.RoundsSkipped, 1)
	assert.Equal(t, 99, m.RoundsSkipped[0].Round)
	assert.GreaterOrEqual(t, m.BrierScore, 0.0)
	assert.LessOrEqual(t, m.BrierScore, 1.0)
	assert.GreaterOrEqual(t, m.AvgSpearman, -1.0)
	assert.LessOrEqual(t, m.AvgSpearman, 1.0)
	assert.GreaterOrEqual(t, m.WinnerHitRate, 0.0)
	assert.LessOrEqual(t, m.WinnerHitRate, 100.0)
}

func TestNewBacktesterRequiresCollaborators(t *testing.T) {
	_, err := NewBacktester(nil, anyCircuit{}, nil)
	assert.Error(t, err)
	_, err = NewBacktester(&stubSimulator{}, nil, nil)
	assert.Error(t, err)
}

func TestFractionalRanks(t *testing.T) {
	assert.Equal(t, []float64{1, 2.5, 2.5, 4}, FractionalRanks([]float64{10, 20, 20, 30}))
	assert.Equal(t, []float64{3, 1, 2}, FractionalRanks([]float64{9, 1, 5}))
	assert.Equal(t, []float64{2, 2, 2}, FractionalRanks([]float64{7, 7, 7}))
}

func TestSpearman(t *testing.T) {
	tests := []struct {
		name      string
		predicted []float64
		actual    []float64
		expected  float64
	}{
		{"identical", []float64{1, 2, 3, 4, 5}, []float64{1, 2, 3, 4, 5}, 1},
		{"reversed", []float64{1, 2, 3, 4, 5}, []float64{5, 4, 3, 2, 1}, -1},
		{"gapped positions", []float64{1, 2, 3, 4, 5}, []float64{1, 3, 8, 12, 20}, 1},
		{"one swap", []float64{1, 2, 3, 4, 5}, []float64{2, 1, 3, 4, 5}, 0.9},
		{"too short", []float64{1}, []float64{1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Spearman(tt.predicted, tt.actual), 1e-9)
		})
	}

	// tied actual positions never push rho out of range
	rho := Spearman([]float64{1, 2, 3, 4, 5}, []float64{99, 99, 99, 99, 99})
	assert.GreaterOrEqual(t, rho, -1.0)
	assert.LessOrEqual(t, rho, 1.0)
}

func TestBrierTerm(t *testing.T) {
	assert.InDelta(t, 0.04, BrierTerm(0.8, true), 1e-12)
	assert.InDelta(t, 0.64, BrierTerm(0.8, false), 1e-12)
	assert.Zero(t, BrierTerm(0, false))
}

func TestReports(t *testing.T) {
	rho := 0.5
	m := Metrics{
		Status:             StatusOK,
		RacesTested:        2,
		WinnerHitRate:      50,
		Top3OverlapPerRace: 1.5,
		BrierScore:         0.12346,
		AvgSpearman:        0.5,
		Rounds:             []RoundScore{{Round: 1, PredictedWinner: "AAA", ActualWinner: "AAA", WinnerHit: true, Top3Overlap: 2, Spearman: &rho}},
		RoundsSkipped:      []SkippedRound{{Round: 3, Reason: "only 2 classified drivers"}},
		Interpretation:     &DefaultInterpretation,
	}

	report := GenerateConsoleReport(m)
	assert.Contains(t, report, "Races Tested: 2")
	assert.Contains(t, report, "P1 Hit Rate: 50.0%")
	assert.Contains(t, report, "Brier Score (podium): 0.1235")
	assert.Contains(t, report, "R3: only 2 classified drivers")

	empty := GenerateConsoleReport(noData(MessageNoHistoricalResults, nil))
	assert.Contains(t, empty, "No data: "+MessageNoHistoricalResults)

	path := filepath.Join(t.TempDir(), "out", "backtest.csv")
	require.NoError(t, GenerateCSVExport(m, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "1,AAA,AAA,true,2,0.5000")
	assert.Contains(t, string(data), "total_races_tested,2")
}
