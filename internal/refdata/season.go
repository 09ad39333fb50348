// Package refdata holds the static reference tables for the 2026 season.
package refdata

import (
	"fmt"
	"sort"

	"github.com/netoph/f1-2026-predictor/internal/models"
)

// Season is an immutable view of one season's grid, teams, calendar and points table.
type Season struct {
	Year     int
	drivers  []models.Driver
	teams    map[string]models.Team
	calendar []models.Circuit
	points   []float64
}

// NewSeason builds a Season, sorting the calendar by round.
func NewSeason(year int, drivers []models.Driver, teams []models.Team, calendar []models.Circuit, points []float64) (*Season, error) {
	teamByName := make(map[string]models.Team, len(teams))
	for _, t := range teams {
		teamByName[t.Name] = t
	}
	seen := make(map[string]bool, len(drivers))
	for _, d := range drivers {
		if seen[d.Code] {
			return nil, fmt.Errorf("duplicate driver code %s: %w", d.Code, models.ErrInvalidArgument)
		}
		seen[d.Code] = true
		if _, ok := teamByName[d.Team]; !ok {
			return nil, fmt.Errorf("driver %s references unknown team %q: %w", d.Code, d.Team, models.ErrInvalidArgument)
		}
	}

	cal := append([]models.Circuit{}, calendar...)
	sort.SliceStable(cal, func(i, j int) bool { return cal[i].Round < cal[j].Round })
	for i := 1; i < len(cal); i++ {
		if cal[i].Round == cal[i-1].Round {
			return nil, fmt.Errorf("duplicate round %d: %w", cal[i].Round, models.ErrInvalidArgument)
		}
	}

	return &Season{
		Year:     year,
		drivers:  append([]models.Driver{}, drivers...),
		teams:    teamByName,
		calendar: cal,
		points:   append([]float64{}, points...),
	}, nil
}

// Drivers returns the grid in its fixed order.
func (s *Season) Drivers() []models.Driver {
	return append([]models.Driver{}, s.drivers...)
}

// DriverCodes returns driver codes in grid order.
func (s *Season) DriverCodes() []string {
	codes := make([]string, len(s.drivers))
	for i, d := range s.drivers {
		codes[i] = d.Code
	}
	return codes
}

// Driver looks up a driver by code.
func (s *Season) Driver(code string) (models.Driver, bool) {
	for _, d := range s.drivers {
		if d.Code == code {
			return d, true
		}
	}
	return models.Driver{}, false
}

// Team looks up a team by name.
func (s *Season) Team(name string) (models.Team, bool) {
	t, ok := s.teams[name]
	return t, ok
}

// TeamNames returns team names in first-appearance grid order.
func (s *Season) TeamNames() []string {
	names := make([]string, 0, len(s.teams))
	seen := make(map[string]bool, len(s.teams))
	for _, d := range s.drivers {
		if !seen[d.Team] {
			seen[d.Team] = true
			names = append(names, d.Team)
		}
	}
	return names
}

// Calendar returns the circuits in round order.
func (s *Season) Calendar() []models.Circuit {
	return append([]models.Circuit{}, s.calendar...)
}

// Circuit looks up a calendar entry by round.
func (s *Season) Circuit(round int) (models.Circuit, error) {
	for _, c := range s.calendar {
		if c.Round == round {
			return c, nil
		}
	}
	return models.Circuit{}, fmt.Errorf("round %d: %w", round, models.ErrCircuitNotFound)
}

// Rounds returns the number of races in the calendar.
func (s *Season) Rounds() int {
	return len(s.calendar)
}

// Points returns the points awarded for a 1-based finishing position.
func (s *Season) Points(position int) float64 {
	if position < 1 || position > len(s.points) {
		return 0
	}
	return s.points[position-1]
}

// GridSize returns the number of drivers.
func (s *Season) GridSize() int {
	return len(s.drivers)
}
