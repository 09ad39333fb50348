package models

// Driver is a race driver on the season grid.
type Driver struct {
	Code    string `json:"code" validate:"required,len=3"`
	Name    string `json:"name" validate:"required"`
	Number  int    `json:"number" validate:"required,gt=0"`
	Team    string `json:"team" validate:"required"`
	Rookie  bool   `json:"rookie"`
	NewTeam bool   `json:"new_team"`
}

// Team is a constructor entered in the season.
type Team struct {
	Name string `json:"name" validate:"required"`
	// CarAdjustment is a signed offset applied to the normalised car rating.
	CarAdjustment float64 `json:"car_adj"`
	Color         string  `json:"color"`
	Engine        string  `json:"engine"`
	// NewEngine marks a team running a new power unit this season.
	NewEngine bool `json:"new_engine"`
	// NewEntrant marks the lowest-resourced team joining the grid this season.
	NewEntrant bool `json:"new_entrant"`
}
