package refdata

import "github.com/netoph/f1-2026-predictor/internal/models"

// PointsSystem is the points awarded by finishing position.
var PointsSystem = []float64{25, 18, 15, 12, 10, 8, 6, 4, 2, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}

// Grid2026 is the 2026 driver line-up.
var Grid2026 = []models.Driver{
	{Code: "NOR", Name: "Lando Norris", Number: 4, Team: "McLaren"},
	{Code: "PIA", Name: "Oscar Piastri", Number: 81, Team: "McLaren"},
	{Code: "LEC", Name: "Charles Leclerc", Number: 16, Team: "Ferrari"},
	{Code: "HAM", Name: "Lewis Hamilton", Number: 44, Team: "Ferrari", NewTeam: true},
	{Code: "VER", Name: "Max Verstappen", Number: 3, Team: "Red Bull"},
	{Code: "HAD", Name: "Isack Hadjar", Number: 6, Team: "Red Bull", Rookie: true, NewTeam: true},
	{Code: "RUS", Name: "George Russell", Number: 63, Team: "Mercedes"},
	{Code: "ANT", Name: "Kimi Antonelli", Number: 12, Team: "Mercedes", Rookie: true, NewTeam: true},
	{Code: "ALO", Name: "Fernando Alonso", Number: 14, Team: "Aston Martin"},
	{Code: "STR", Name: "Lance Stroll", Number: 18, Team: "Aston Martin"},
	{Code: "PER", Name: "Sergio Perez", Number: 11, Team: "Cadillac", NewTeam: true},
	{Code: "BOT", Name: "Valtteri Bottas", Number: 77, Team: "Cadillac", NewTeam: true},
	{Code: "ALB", Name: "Alexander Albon", Number: 23, Team: "Williams"},
	{Code: "SAI", Name: "Carlos Sainz", Number: 55, Team: "Williams", NewTeam: true},
	{Code: "HUL", Name: "Nico Hulkenberg", Number: 27, Team: "Audi", NewTeam: true},
	{Code: "BOR", Name: "Gabriel Bortoleto", Number: 5, Team: "Audi", Rookie: true, NewTeam: true},
	{Code: "GAS", Name: "Pierre Gasly", Number: 10, Team: "Alpine"},
	{Code: "COL", Name: "Franco Colapinto", Number: 43, Team: "Alpine", Rookie: true, NewTeam: true},
	{Code: "OCO", Name: "Esteban Ocon", Number: 31, Team: "Haas", NewTeam: true},
	{Code: "BEA", Name: "Oliver Bearman", Number: 87, Team: "Haas", Rookie: true},
	{Code: "LAW", Name: "Liam Lawson", Number: 30, Team: "Racing Bulls"},
	{Code: "LIN", Name: "Arvid Lindblad", Number: 41, Team: "Racing Bulls", Rookie: true, NewTeam: true},
}

// Teams2026 is the 2026 constructor list.
var Teams2026 = []models.Team{
	{Name: "McLaren", CarAdjustment: 2.5, Color: "#FF8000", Engine: "Mercedes"},
	{Name: "Ferrari", CarAdjustment: 1.0, Color: "#E8002D", Engine: "Ferrari"},
	{Name: "Red Bull", CarAdjustment: -2.0, Color: "#3671C6", Engine: "Ford (Honda)", NewEngine: true},
	{Name: "Mercedes", CarAdjustment: 0.5, Color: "#27F4D2", Engine: "Mercedes"},
	{Name: "Aston Martin", CarAdjustment: -2.5, Color: "#358C75", Engine: "Honda", NewEngine: true},
	{Name: "Cadillac", CarAdjustment: -10.0, Color: "#FFF500", Engine: "GM (Ferrari client)", NewEntrant: true},
	{Name: "Williams", CarAdjustment: 0.5, Color: "#64C4FF", Engine: "Mercedes"},
	{Name: "Audi", CarAdjustment: -8.0, Color: "#C0C0C0", Engine: "Audi", NewEngine: true},
	{Name: "Alpine", CarAdjustment: -1.0, Color: "#FF87BC", Engine: "Renault"},
	{Name: "Haas", CarAdjustment: 0.0, Color: "#B6BABD", Engine: "Ferrari"},
	{Name: "Racing Bulls", CarAdjustment: -1.5, Color: "#6692FF", Engine: "Ford (Honda)", NewEngine: true},
}

// Calendar2026 is the 24-round 2026 calendar.
var Calendar2026 = []models.Circuit{
	{Round: 1, Name: "Australia", City: "Melbourne", Type: models.SurfacePermanent, Temperature: 22, Overtaking: 5, Laps: 58},
	{Round: 2, Name: "China", City: "Shanghai", Type: models.SurfacePermanent, Temperature: 15, Overtaking: 6, Laps: 56},
	{Round: 3, Name: "Japan", City: "Suzuka", Type: models.SurfacePermanent, Temperature: 18, Overtaking: 4, Laps: 53},
	{Round: 4, Name: "Bahrain", City: "Sakhir", Type: models.SurfacePermanent, Temperature: 29, Overtaking: 7, Laps: 57},
	{Round: 5, Name: "Saudi Arabia", City: "Jeddah", Type: models.SurfaceStreet, Temperature: 33, Overtaking: 3, Laps: 50},
	{Round: 6, Name: "Miami", City: "Miami", Type: models.SurfaceStreet, Temperature: 31, Overtaking: 5, Laps: 57},
	{Round: 7, Name: "Emilia Romagna", City: "Imola", Type: models.SurfacePermanent, Temperature: 20, Overtaking: 3, Laps: 63},
	{Round: 8, Name: "Monaco", City: "Monte Carlo", Type: models.SurfaceStreet, Temperature: 23, Overtaking: 2, Laps: 78},
	{Round: 9, Name: "Spain", City: "Barcelona", Type: models.SurfacePermanent, Temperature: 26, Overtaking: 6, Laps: 66},
	{Round: 10, Name: "Canada", City: "Montréal", Type: models.SurfaceStreet, Temperature: 24, Overtaking: 8, Laps: 70},
	{Round: 11, Name: "Austria", City: "Spielberg", Type: models.SurfacePermanent, Temperature: 22, Overtaking: 9, Laps: 71},
	{Round: 12, Name: "Britain", City: "Silverstone", Type: models.SurfacePermanent, Temperature: 18, Overtaking: 7, Laps: 52},
	{Round: 13, Name: "Belgium", City: "Spa", Type: models.SurfacePermanent, Temperature: 17, Overtaking: 10, Laps: 44},
	{Round: 14, Name: "Hungary", City: "Budapest", Type: models.SurfacePermanent, Temperature: 30, Overtaking: 4, Laps: 70},
	{Round: 15, Name: "Netherlands", City: "Zandvoort", Type: models.SurfacePermanent, Temperature: 19, Overtaking: 3, Laps: 72},
	{Round: 16, Name: "Italy", City: "Monza", Type: models.SurfacePermanent, Temperature: 25, Overtaking: 10, Laps: 53},
	{Round: 17, Name: "Azerbaijan", City: "Baku", Type: models.SurfaceStreet, Temperature: 28, Overtaking: 9, Laps: 51},
	{Round: 18, Name: "Singapore", City: "Singapore", Type: models.SurfaceStreet, Temperature: 31, Overtaking: 3, Laps: 62},
	{Round: 19, Name: "United States", City: "Austin", Type: models.SurfacePermanent, Temperature: 28, Overtaking: 7, Laps: 56},
	{Round: 20, Name: "Mexico", City: "Mexico City", Type: models.SurfacePermanent, Temperature: 23, Overtaking: 5, Laps: 71},
	{Round: 21, Name: "Brazil", City: "São Paulo", Type: models.SurfacePermanent, Temperature: 27, Overtaking: 8, Laps: 71},
	{Round: 22, Name: "Las Vegas", City: "Las Vegas", Type: models.SurfaceStreet, Temperature: 15, Overtaking: 7, Laps: 50},
	{Round: 23, Name: "Qatar", City: "Lusail", Type: models.SurfacePermanent, Temperature: 32, Overtaking: 6, Laps: 57},
	{Round: 24, Name: "Abu Dhabi", City: "Yas Marina", Type: models.SurfacePermanent, Temperature: 28, Overtaking: 5, Laps: 58},
}

// Season2026 returns the 2026 season reference data.
func Season2026() *Season {
	s, err := NewSeason(2026, Grid2026, Teams2026, Calendar2026, PointsSystem)
	if err != nil {
		panic("refdata: invalid 2026 tables: " + err.Error())
	}
	return s
}
