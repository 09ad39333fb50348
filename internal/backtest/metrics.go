package backtest

import (
	"math"
	"sort"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Status reports whether a backtest produced metrics.
type Status string

// Backtest statuses
const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data"
)

// No-data messages
const (
	MessageNoHistoricalResults = "No historical results provided"
	MessageNoValidRaces        = "No valid races for backtesting"
)

// worstBrier is reported when no driver could be compared.
const worstBrier = 1.0

// Interpretation explains how to read the aggregate scores.
type Interpretation struct {
	Brier            string `json:"brier"`
	Spearman         string `json:"spearman"`
	OverfittingCheck string `json:"overfitting_check"`
}

// DefaultInterpretation is attached to every successful backtest.
var DefaultInterpretation = Interpretation{
	Brier:            "Lower is better (0=perfect, 0.25=random)",
	Spearman:         "Higher is better (1=perfect rank correlation)",
	OverfittingCheck: "Model uses no race-specific tuning; ratings computed from global season data only",
}

// RoundScore is the comparison of one simulated round against its actual result.
type RoundScore struct {
	Round           int      `json:"round"`
	PredictedWinner string   `json:"predicted_winner"`
	ActualWinner    string   `json:"actual_winner"`
	WinnerHit       bool     `json:"winner_hit"`
	Top3Overlap     int      `json:"top3_overlap"`
	ComparedDrivers int      `json:"compared_drivers"`
	Spearman        *float64 `json:"spearman_rho,omitempty"`
}

// SkippedRound records why a round did not contribute to the metrics.
type SkippedRound struct {
	Round  int    `json:"round"`
	Reason string `json:"reason"`
}

// Metrics aggregates model accuracy across all tested rounds.
type Metrics struct {
	RunID   uuid.UUID `json:"run_id"`
	Status  Status    `json:"status"`
	Message string    `json:"error,omitempty"`

	RacesTested        int     `json:"total_races_tested"`
	WinnerHitRate      float64 `json:"p1_hit_rate"`
	Top3OverlapPerRace float64 `json:"top3_overlap_per_race"`
	BrierScore         float64 `json:"brier_score_podium"`
	AvgSpearman        float64 `json:"avg_spearman_rho"`

	Rounds         []RoundScore    `json:"rounds,omitempty"`
	RoundsSkipped  []SkippedRound  `json:"rounds_skipped,omitempty"`
	Interpretation *Interpretation `json:"interpretation,omitempty"`
}

// HasData reports whether at least one round was scored.
func (m Metrics) HasData() bool {
	return m.Status == StatusOK
}

func noData(message string, skipped []SkippedRound) Metrics {
	return Metrics{
		RunID:         uuid.New(),
		Status:        StatusNoData,
		Message:       message,
		BrierScore:    worstBrier,
		RoundsSkipped: skipped,
	}
}

// accumulator collects per-round terms before they are averaged.
type accumulator struct {
	rounds    []RoundScore
	hits      int
	overlap   int
	brierSum  float64
	brierN    int
	spearmans []float64
}

func (a *accumulator) add(score RoundScore, brierTerms []float64) {
	a.rounds = append(a.rounds, score)
	if score.WinnerHit {
		a.hits++
	}
	a.overlap += score.Top3Overlap
	for _, term := range brierTerms {
		a.brierSum += term
		a.brierN++
	}
	if score.Spearman != nil {
		a.spearmans = append(a.spearmans, *score.Spearman)
	}
}

func (a *accumulator) metrics(skipped []SkippedRound) Metrics {
	tested := len(a.rounds)
	if tested == 0 {
		return noData(MessageNoValidRaces, skipped)
	}

	brier := worstBrier
	if a.brierN > 0 {
		brier = a.brierSum / float64(a.brierN)
	}
	spearman := 0.0
	if len(a.spearmans) > 0 {
		spearman = stat.Mean(a.spearmans, nil)
	}

	interp := DefaultInterpretation
	return Metrics{
		RunID:              uuid.New(),
		Status:             StatusOK,
		RacesTested:        tested,
		WinnerHitRate:      float64(a.hits) / float64(tested) * 100,
		Top3OverlapPerRace: float64(a.overlap) / float64(tested),
		BrierScore:         brier,
		AvgSpearman:        spearman,
		Rounds:             a.rounds,
		RoundsSkipped:      skipped,
		Interpretation:     &interp,
	}
}

// BrierTerm is the squared error of a probability forecast against a binary outcome.
func BrierTerm(probability float64, happened bool) float64 {
	outcome := 0.0
	if happened {
		outcome = 1.0
	}
	d := probability - outcome
	return d * d
}

// FractionalRanks assigns 1-based ranks to values in ascending order. Tied values share the
// average of the ranks they span.
func FractionalRanks(values []float64) []float64 {
	idx := make([]int, len(values))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return values[idx[a]] < values[idx[b]] })

	ranks := make([]float64, len(values))
	for start := 0; start < len(idx); {
		end := start + 1
		for end < len(idx) && values[idx[end]] == values[idx[start]] {
			end++
		}
		// positions start..end-1 hold ranks start+1..end
		avg := float64(start+1+end) / 2
		for k := start; k < end; k++ {
			ranks[idx[k]] = avg
		}
		start = end
	}
	return ranks
}

// Spearman computes 1 - 6*sum(d^2)/(n(n^2-1)) over the fractional ranks of both series.
// The result is clamped to [-1, 1]; fewer than two pairs yields 0.
func Spearman(predicted, actual []float64) float64 {
	n := len(predicted)
	if n < 2 || n != len(actual) {
		return 0
	}
	pr := FractionalRanks(predicted)
	ar := FractionalRanks(actual)

	sumSq := 0.0
	for i := range pr {
		d := pr[i] - ar[i]
		sumSq += d * d
	}
	nf := float64(n)
	rho := 1 - (6*sumSq)/(nf*(nf*nf-1))
	return math.Max(-1, math.Min(1, rho))
}
