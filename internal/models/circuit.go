package models

// SurfaceType classifies a circuit layout.
type SurfaceType string

// Surface types
const (
	SurfacePermanent SurfaceType = "permanent"
	SurfaceStreet    SurfaceType = "street"
)

// Circuit is one round of the calendar.
type Circuit struct {
	Round       int         `json:"round" validate:"required,gt=0"`
	Name        string      `json:"name" validate:"required"`
	City        string      `json:"city"`
	Type        SurfaceType `json:"type" validate:"required,oneof=permanent street"`
	Temperature float64     `json:"temp"`
	// Overtaking scores how easy passing is, 1 (hard) to 10 (easy).
	Overtaking int `json:"overtaking" validate:"gte=1,lte=10"`
	Laps       int `json:"laps" validate:"gt=0"`
}

// IsStreet reports whether the circuit is a street track.
func (c Circuit) IsStreet() bool {
	return c.Type == SurfaceStreet
}
