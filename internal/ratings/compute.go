// Package ratings turns historical championship data into car and driver strength ratings.
package ratings

import (
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
)

// Rating scales
const (
	carNormMin   = 60.0
	carNormMax   = 94.0
	carRatingMin = 55.0
	carRatingMax = 97.0

	driverBase         = 55.0
	driverPointsWeight = 26.0
	driverPosWeight    = 10.0
	driverDNFPenalty   = 8.0
	driverRatingMin    = 50.0
	driverRatingMax    = 97.0

	rookieRating     = 68.0
	rookieCap        = 73.0
	unknownVeteran   = 72.0
	noPositionsAvg   = 15.0
	tireDegReference = 97.0
	tireDegDivisor   = 400.0
)

// Weights blends the previous and current season when rating drivers.
type Weights struct {
	Previous float64
	Current  float64
}

// DefaultWeights favours the most recent season.
var DefaultWeights = Weights{Previous: 0.45, Current: 0.55}

// constructorAliases maps data-source constructor names onto this season's teams.
// Matching is a case-insensitive substring test in slice order.
var constructorAliases = []struct {
	match string
	team  string
}{
	{"McLaren", "McLaren"},
	{"Ferrari", "Ferrari"},
	{"Red Bull", "Red Bull"},
	{"Mercedes", "Mercedes"},
	{"Aston Martin", "Aston Martin"},
	{"Williams", "Williams"},
	{"RB", "Racing Bulls"},
	{"Alpine F1 Team", "Alpine"},
	{"Haas F1 Team", "Haas"},
	{"Sauber", "Audi"},
	{"AlphaTauri", "Racing Bulls"},
}

// TeamForConstructor resolves a historical constructor name to a current team.
func TeamForConstructor(name string) (string, bool) {
	lower := strings.ToLower(name)
	for _, a := range constructorAliases {
		if strings.Contains(lower, strings.ToLower(a.match)) {
			return a.team, true
		}
	}
	return "", false
}

// Compute derives a ratings snapshot from raw history. Missing pieces fall back to the fixed tables.
// ComputedAt is left for the caller to stamp.
func Compute(season *refdata.Season, history *models.SeasonHistory, w Weights) models.RatingSnapshot {
	if history == nil {
		history = &models.SeasonHistory{}
	}

	cars := FallbackCarRatings
	if len(history.ConstructorStandings) > 0 {
		cars = CarRatings(season, history.ConstructorStandings)
	}

	return models.RatingSnapshot{
		CarRatings:      lo.Assign(cars),
		DriverRatings:   DriverRatings(season, history.PreviousResults, history.CurrentResults, w),
		TireDegradation: TireDegradation(cars),
		Source:          SourceComputed,
	}
}

// CarRatings normalises constructor points to 60-94, adds each team's adjustment and clamps to 55-97.
func CarRatings(season *refdata.Season, standings []models.HistoricalStanding) map[string]float64 {
	raw := make(map[string]float64)
	for _, s := range standings {
		if team, ok := TeamForConstructor(s.Name); ok {
			raw[team] = s.Points
		}
	}
	for _, team := range season.TeamNames() {
		if _, ok := raw[team]; !ok {
			raw[team] = 0
		}
	}

	values := lo.Values(raw)
	minPts, maxPts := floats.Min(values), floats.Max(values)

	out := make(map[string]float64, len(raw))
	for team, pts := range raw {
		adj := 0.0
		if t, ok := season.Team(team); ok {
			adj = t.CarAdjustment
		}
		rating := clamp(normalize(pts, minPts, maxPts, carNormMin, carNormMax)+adj, carRatingMin, carRatingMax)
		out[team] = models.Round(rating, 1)
	}
	return out
}

// seasonAggregate is one driver's per-season totals.
type seasonAggregate struct {
	points    float64
	positions []float64
	dnfs      int
	races     int
}

func aggregate(results []models.HistoricalResult) map[string]*seasonAggregate {
	agg := make(map[string]*seasonAggregate)
	for _, r := range results {
		if r.DriverCode == "" {
			continue
		}
		a, ok := agg[r.DriverCode]
		if !ok {
			a = &seasonAggregate{}
			agg[r.DriverCode] = a
		}
		a.points += r.Points
		a.races++
		if r.HasPosition() {
			a.positions = append(a.positions, float64(r.Position))
		}
		if r.IsRetirement() {
			a.dnfs++
		}
	}
	return agg
}

func (a *seasonAggregate) perRace(v float64) float64 {
	if a == nil || a.races == 0 {
		return 0
	}
	return v / float64(a.races)
}

func (a *seasonAggregate) pointsPerRace() float64 {
	if a == nil {
		return 0
	}
	return a.perRace(a.points)
}

func (a *seasonAggregate) dnfRate() float64 {
	if a == nil {
		return 0
	}
	return a.perRace(float64(a.dnfs))
}

func (a *seasonAggregate) meanPosition() float64 {
	if a == nil || len(a.positions) == 0 {
		return noPositionsAvg
	}
	return stat.Mean(a.positions, nil)
}

type blended struct {
	points   float64
	position float64
	dnfRate  float64
}

// DriverRatings blends two seasons of results into ratings on a 50-97 scale, then fills and caps the grid.
func DriverRatings(season *refdata.Season, previous, current []models.HistoricalResult, w Weights) map[string]float64 {
	prev, curr := aggregate(previous), aggregate(current)
	if len(prev) == 0 && len(curr) == 0 {
		return lo.Assign(FallbackDriverRatings)
	}

	merged := make(map[string]blended, len(prev)+len(curr))
	for _, code := range lo.Union(lo.Keys(prev), lo.Keys(curr)) {
		p, c := prev[code], curr[code]
		merged[code] = blended{
			points:   p.pointsPerRace()*w.Previous + c.pointsPerRace()*w.Current,
			position: p.meanPosition()*w.Previous + c.meanPosition()*w.Current,
			dnfRate:  p.dnfRate()*w.Previous + c.dnfRate()*w.Current,
		}
	}

	pts := lo.MapToSlice(merged, func(_ string, b blended) float64 { return b.points })
	pos := lo.MapToSlice(merged, func(_ string, b blended) float64 { return b.position })
	maxPts := orDefault(floats.Max(pts), 1)
	minPos := orDefault(floats.Min(pos), 1)
	maxPos := orDefault(floats.Max(pos), 20)

	out := make(map[string]float64, len(merged))
	for code, b := range merged {
		ptsNorm := b.points / maxPts
		posNorm := 1 - normalize(b.position, minPos, maxPos, 0, 1)
		rating := driverBase + ptsNorm*driverPointsWeight + posNorm*driverPosWeight - b.dnfRate*driverDNFPenalty
		out[code] = models.Round(clamp(rating, driverRatingMin, driverRatingMax), 1)
	}

	for _, d := range season.Drivers() {
		rating, ok := out[d.Code]
		switch {
		case !ok && d.Rookie:
			out[d.Code] = rookieRating
		case !ok:
			out[d.Code] = lo.ValueOr(FallbackDriverRatings, d.Code, unknownVeteran)
		case d.Rookie:
			out[d.Code] = min(rating, rookieCap)
		}
	}
	return out
}

// TireDegradation scales inversely with car rating: 1 + (97 - car)/400.
func TireDegradation(cars map[string]float64) map[string]float64 {
	return lo.MapValues(cars, func(rating float64, _ string) float64 {
		return models.Round(1+(tireDegReference-rating)/tireDegDivisor, 3)
	})
}

func normalize(v, inMin, inMax, outMin, outMax float64) float64 {
	if inMax == inMin {
		return (outMin + outMax) / 2
	}
	return outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
}

func clamp(v, lower, upper float64) float64 {
	return max(lower, min(upper, v))
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
