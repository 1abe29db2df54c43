package game

import "racer/internal/track"

// Stats is a vehicle preset.
type Stats struct {
	Name         string
	Acceleration float64
	MaxSpeed     float64
	Friction     float64 // per-tick velocity multiplier, < 1
	TurnRate     float64 // degrees per tick at full speed
	Length       float64
	Width        float64
	Color        track.RGB
}

// Built-in presets.
var (
	SportsCar = Stats{
		Name:         "sports",
		Acceleration: 0.3,
		MaxSpeed:     8,
		Friction:     0.95,
		TurnRate:     6,
		Length:       24,
		Width:        14,
		Color:        track.RGB{R: 255, G: 0, B: 0},
	}
	Truck = Stats{
		Name:         "truck",
		Acceleration: 0.2,
		MaxSpeed:     6,
		Friction:     0.93,
		TurnRate:     5,
		Length:       28,
		Width:        18,
		Color:        track.RGB{R: 0, G: 0, B: 255},
	}
)

// Presets maps preset names to stats.
var Presets = map[string]Stats{
	SportsCar.Name: SportsCar,
	Truck.Name:     Truck,
}

// Controls is one tick of driver input.
type Controls struct {
	Accelerate bool
	Brake      bool
	Left       bool
	Right      bool
}

// Vehicle is a single car. It is owned by the simulation goroutine.
type Vehicle struct {
	Pos     Vec2
	Vel     Vec2
	Heading float64 // degrees, 0 faces +x, clockwise on screen

	Acceleration    float64
	MaxSpeed        float64
	CurrentMaxSpeed float64
	Friction        float64
	TurnRate        float64

	Length float64
	Width  float64
	Color  track.RGB
	Hull   [HullPoints]Vec2 // relative to the centre at heading 0

	Reversing     bool
	OnSlowSurface bool

	Spawn        Vec2
	SpawnHeading float64

	baseAcceleration float64
	baseTurnRate     float64
}

// NewVehicle places a car with the given stats at spawn.
func NewVehicle(spawn Vec2, heading float64, s Stats) *Vehicle {
	return &Vehicle{
		Pos:              spawn,
		Heading:          normalizeDeg(heading),
		Acceleration:     s.Acceleration,
		MaxSpeed:         s.MaxSpeed,
		CurrentMaxSpeed:  s.MaxSpeed,
		Friction:         s.Friction,
		TurnRate:         s.TurnRate,
		Length:           s.Length,
		Width:            s.Width,
		Color:            s.Color,
		Hull:             Hull(s.Length, s.Width),
		Spawn:            spawn,
		SpawnHeading:     normalizeDeg(heading),
		baseAcceleration: s.Acceleration,
		baseTurnRate:     s.TurnRate,
	}
}

// State is the externally visible part of a vehicle after a tick.
type State struct {
	Position      Vec2
	Velocity      Vec2
	Heading       float64
	IsReversing   bool
	OnSlowSurface bool
}

func (v *Vehicle) State() State {
	return State{
		Position:      v.Pos,
		Velocity:      v.Vel,
		Heading:       v.Heading,
		IsReversing:   v.Reversing,
		OnSlowSurface: v.OnSlowSurface,
	}
}

func (v *Vehicle) Speed() float64 { return v.Vel.Len() }

// Result is what one Tick produced.
type Result struct {
	State   State
	Outcome Outcome
	Hits    int     // offending probe points, 0 when clear
	Impact  float64 // speed at the start of the tick
}

// Tick advances the vehicle one frame: integrate the controls, probe the
// tentative position and resolve any collision.
func (v *Vehicle) Tick(in Controls, tr Classifier, tu *Tuning) Result {
	prevSpeed := v.Speed()
	tentative := v.integrate(in)
	outcome, hits := v.resolve(tentative, prevSpeed, tr, tu)
	return Result{
		State:   v.State(),
		Outcome: outcome,
		Hits:    hits,
		Impact:  prevSpeed,
	}
}

// reset snaps the car back to its spawn point at rest.
func (v *Vehicle) reset() {
	v.Pos = v.Spawn
	v.Heading = v.SpawnHeading
	v.Vel = Vec2{}
	v.Reversing = false
	v.CurrentMaxSpeed = v.MaxSpeed
	v.OnSlowSurface = false
}
