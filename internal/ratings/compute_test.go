package ratings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netoph/f1-2026-predictor/internal/models"
	"github.com/netoph/f1-2026-predictor/internal/refdata"
)

func TestTeamForConstructor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		found    bool
	}{
		{"exact", "McLaren", "McLaren", true},
		{"long name", "Red Bull Racing", "Red Bull", true},
		{"rebrand", "RB F1 Team", "Racing Bulls", true},
		{"sauber becomes audi", "Sauber", "Audi", true},
		{"case insensitive", "haas f1 team", "Haas", true},
		{"legacy name", "AlphaTauri", "Racing Bulls", true},
		{"unknown", "Brawn", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			team, ok := TeamForConstructor(tt.input)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.expected, team)
		})
	}
}

func standings2024() []models.HistoricalStanding {
	return []models.HistoricalStanding{
		{Name: "McLaren", Points: 666},
		{Name: "Ferrari", Points: 652},
		{Name: "Red Bull", Points: 589},
		{Name: "Mercedes", Points: 468},
		{Name: "Aston Martin", Points: 94},
		{Name: "Alpine F1 Team", Points: 65},
		{Name: "Haas F1 Team", Points: 58},
		{Name: "RB F1 Team", Points: 46},
		{Name: "Williams", Points: 17},
		{Name: "Sauber", Points: 4},
	}
}

func TestCarRatings(t *testing.T) {
	season := refdata.Season2026()
	cars := CarRatings(season, standings2024())

	require.Len(t, cars, len(season.TeamNames()))
	assert.Equal(t, 96.5, cars["McLaren"])
	// Cadillac has no history: bottom of the scale, adjustment clamped at the floor
	assert.Equal(t, 55.0, cars["Cadillac"])
	for team, rating := range cars {
		assert.GreaterOrEqual(t, rating, 55.0, team)
		assert.LessOrEqual(t, rating, 97.0, team)
	}
	assert.Greater(t, cars["Ferrari"], cars["Mercedes"])
}

func TestCarRatingsEqualPointsUseMidpoint(t *testing.T) {
	season := refdata.Season2026()
	var standings []models.HistoricalStanding
	for _, name := range season.TeamNames() {
		standings = append(standings, models.HistoricalStanding{Name: name, Points: 100})
	}
	cars := CarRatings(season, standings)
	assert.Equal(t, 77.0, cars["Haas"])
	assert.Equal(t, 79.5, cars["McLaren"])
}

func TestDriverRatings(t *testing.T) {
	season := refdata.Season2026()
	current := []models.HistoricalResult{
		{Round: 1, DriverCode: "NOR", Position: 1, Points: 25, Status: "Finished"},
		{Round: 2, DriverCode: "NOR", Position: 1, Points: 25, Status: "Finished"},
		{Round: 1, DriverCode: "VER", Position: 2, Points: 18, Status: "Finished"},
		{Round: 2, DriverCode: "VER", Position: 2, Points: 18, Status: "Finished"},
		{Round: 1, DriverCode: "ANT", Position: 1, Points: 25, Status: "Finished"},
		{Round: 2, DriverCode: "ANT", Position: 1, Points: 25, Status: "Finished"},
		{Round: 1, DriverCode: "XXX", Position: 10, Points: 0, Status: "Retired"},
		{Round: 2, DriverCode: "XXX", Position: 10, Points: 0, Status: "Accident"},
		{Round: 2, DriverCode: "", Position: 11},
	}

	ratings := DriverRatings(season, nil, current, DefaultWeights)

	assert.Equal(t, 91.0, ratings["NOR"])
	assert.Equal(t, 82.6, ratings["VER"])
	assert.Equal(t, 50.6, ratings["XXX"])
	// rookies are capped even with a perfect record
	assert.Equal(t, 73.0, ratings["ANT"])
	// grid drivers without history
	assert.Equal(t, 68.0, ratings["BEA"])
	assert.Equal(t, FallbackDriverRatings["HAM"], ratings["HAM"])

	for _, code := range season.DriverCodes() {
		assert.Contains(t, ratings, code)
	}
}

func TestDriverRatingsEmptyHistoryFallsBack(t *testing.T) {
	ratings := DriverRatings(refdata.Season2026(), nil, nil, DefaultWeights)
	assert.Equal(t, FallbackDriverRatings, ratings)

	// the fallback table must not be aliased
	ratings["VER"] = 1
	assert.Equal(t, 97.0, FallbackDriverRatings["VER"])
}

func TestTireDegradation(t *testing.T) {
	deg := TireDegradation(map[string]float64{"A": 97, "B": 55, "C": 96.5})
	assert.Equal(t, 1.0, deg["A"])
	assert.Equal(t, 1.105, deg["B"])
	assert.Equal(t, 1.001, deg["C"])
}

func TestCompute(t *testing.T) {
	season := refdata.Season2026()

	snap := Compute(season, &models.SeasonHistory{ConstructorStandings: standings2024()}, DefaultWeights)
	assert.Equal(t, SourceComputed, snap.Source)
	assert.Equal(t, 96.5, snap.CarRatings["McLaren"])
	assert.Equal(t, FallbackDriverRatings, snap.DriverRatings)
	assert.Len(t, snap.TireDegradation, len(season.TeamNames()))

	empty := Compute(season, nil, DefaultWeights)
	assert.Equal(t, FallbackCarRatings, empty.CarRatings)
}

func TestFallback(t *testing.T) {
	season := refdata.Season2026()
	snap := Fallback(season, season2026Start)

	assert.Equal(t, SourceFallback, snap.Source)
	assert.Equal(t, season2026Start, snap.ComputedAt)
	assert.Len(t, snap.DriverRatings, season.GridSize())
	for _, team := range season.TeamNames() {
		assert.Equal(t, 1.0, snap.TireDegradation[team])
		assert.Contains(t, snap.CarRatings, team)
	}
}
