package game

import (
	"sync/atomic"

	"github.com/rs/zerolog"

	"racer/internal/logging"
	"racer/internal/track"
)

// Players is the number of cars in a race.
const Players = 2

// AdjustQueueSize bounds the pending parameter adjustments.
const AdjustQueueSize = 64

// Adjustment is a queued per-vehicle parameter change.
type Adjustment struct {
	Vehicle int
	Param   Param
	Dir     Direction
}

// Tunables is a read-only copy of one vehicle's adjustable parameters.
type Tunables struct {
	Name         string
	TurnRate     float64
	Acceleration float64
	MaxSpeed     float64
	Friction     float64
}

// Value returns the field matching p.
func (t Tunables) Value(p Param) float64 {
	switch p {
	case ParamTurnRate:
		return t.TurnRate
	case ParamAcceleration:
		return t.Acceleration
	case ParamMaxSpeed:
		return t.MaxSpeed
	case ParamFriction:
		return t.Friction
	}
	return 0
}

// Race steps both vehicles once per frame against a shared track and tuning
// store. Step, Vehicles and Events belong to the simulation goroutine;
// Enqueue, Tunables and Tuning may be used from anywhere.
type Race struct {
	track    *track.Track
	tuning   *Tuning
	vehicles [Players]*Vehicle
	names    [Players]string
	events   *EventBus
	log      zerolog.Logger
	noisy    zerolog.Logger // sampled, for per-tick messages

	adjust   chan Adjustment
	tunables atomic.Pointer[[Players]Tunables]
	ticks    uint64
}

// NewRace spawns one car per preset on the track start positions.
func NewRace(tr *track.Track, tu *Tuning, presets [Players]Stats, log zerolog.Logger) *Race {
	r := &Race{
		track:  tr,
		tuning: tu,
		events: NewEventBus(),
		log:    log,
		noisy:  logging.Sampled(log),
		adjust: make(chan Adjustment, AdjustQueueSize),
	}
	spawns := spawnPoints(tr, log)
	for i := range r.vehicles {
		r.vehicles[i] = NewVehicle(spawns[i], 0, presets[i])
		r.names[i] = presets[i].Name
		if !Fits(tr, spawns[i], 0, r.vehicles[i].Hull) {
			log.Warn().
				Int("vehicle", i).
				Float64("x", spawns[i].X).
				Float64("y", spawns[i].Y).
				Msg("Spawn point overlaps a wall")
		}
		log.Info().
			Int("vehicle", i).
			Str("preset", presets[i].Name).
			Float64("x", spawns[i].X).
			Float64("y", spawns[i].Y).
			Msg("Vehicle created")
	}
	r.publish()
	return r
}

// spawnPoints picks the first two start markers. One marker puts the second
// car 30px below it; none falls back to fixed points on the left quarter.
func spawnPoints(tr *track.Track, log zerolog.Logger) [Players]Vec2 {
	starts := tr.StartPositions()
	at := func(p track.Point) Vec2 { return Vec2{float64(p.X), float64(p.Y)} }
	switch len(starts) {
	case 0:
		log.Warn().Msg("No start positions found, using default positions")
		x := float64(tr.Width() / 4)
		y := float64(tr.Height() / 2)
		return [Players]Vec2{{x, y}, {x, y + 50}}
	case 1:
		log.Warn().Msg("Only one start position found, offsetting second car")
		p := at(starts[0])
		return [Players]Vec2{p, {p.X, p.Y + 30}}
	}
	return [Players]Vec2{at(starts[0]), at(starts[1])}
}

// Step applies queued adjustments, ticks every vehicle and emits events.
func (r *Race) Step(inputs [Players]Controls) [Players]Result {
	r.drainAdjustments()

	var out [Players]Result
	for i, v := range r.vehicles {
		from := v.Pos
		wasSlow := v.OnSlowSurface
		res := v.Tick(inputs[i], r.track, r.tuning)
		out[i] = res
		r.emit(i, from, wasSlow, res)
	}
	r.ticks++
	r.publish()
	return out
}

func (r *Race) emit(i int, from Vec2, wasSlow bool, res Result) {
	pos := res.State.Position
	if res.Outcome != OutcomeClear {
		// A reset car is already back at spawn; the hit happened where it was.
		hit := pos
		if res.Outcome == OutcomeReset {
			hit = from
		}
		r.events.Emit(Event{Type: EventWallHit, Vehicle: i, X: hit.X, Y: hit.Y, Speed: res.Impact})
	}
	switch res.Outcome {
	case OutcomeRepositioned:
		r.noisy.Debug().
			Int("vehicle", i).
			Uint64("tick", r.ticks).
			Float64("fromX", from.X).
			Float64("fromY", from.Y).
			Float64("x", pos.X).
			Float64("y", pos.Y).
			Msg("Vehicle repositioned")
		r.events.Emit(Event{Type: EventRepositioned, Vehicle: i, X: pos.X, Y: pos.Y, Speed: res.State.Velocity.Len()})
	case OutcomeReset:
		r.log.Warn().
			Int("vehicle", i).
			Uint64("tick", r.ticks).
			Float64("fromX", from.X).
			Float64("fromY", from.Y).
			Float64("spawnX", pos.X).
			Float64("spawnY", pos.Y).
			Int("hits", res.Hits).
			Msg("Vehicle stuck, reset to spawn")
		r.events.Emit(Event{Type: EventReset, Vehicle: i, X: pos.X, Y: pos.Y, Speed: res.Impact})
	}
	if wasSlow != res.State.OnSlowSurface {
		r.events.Emit(Event{
			Type:    EventSurfaceChanged,
			Vehicle: i,
			X:       pos.X,
			Y:       pos.Y,
			Speed:   res.State.Velocity.Len(),
			Slow:    res.State.OnSlowSurface,
		})
	}
}

// Enqueue schedules an adjustment for the start of the next Step. It never
// blocks and reports false when the queue is full.
func (r *Race) Enqueue(a Adjustment) bool {
	select {
	case r.adjust <- a:
		return true
	default:
		return false
	}
}

func (r *Race) drainAdjustments() {
	for {
		select {
		case a := <-r.adjust:
			r.apply(a)
		default:
			return
		}
	}
}

func (r *Race) apply(a Adjustment) {
	if a.Vehicle < 0 || a.Vehicle >= Players {
		r.log.Warn().Int("vehicle", a.Vehicle).Msg("Adjustment for unknown vehicle dropped")
		return
	}
	val := r.vehicles[a.Vehicle].Adjust(a.Param, a.Dir)
	r.log.Info().
		Int("vehicle", a.Vehicle).
		Stringer("param", a.Param).
		Float64("value", val).
		Msg("Parameter adjusted")
}

func (r *Race) publish() {
	var snap [Players]Tunables
	for i, v := range r.vehicles {
		snap[i] = Tunables{
			Name:         r.names[i],
			TurnRate:     v.TurnRate,
			Acceleration: v.Acceleration,
			MaxSpeed:     v.MaxSpeed,
			Friction:     v.Friction,
		}
	}
	r.tunables.Store(&snap)
}

// Tunables returns the parameters published by the last Step.
func (r *Race) Tunables() [Players]Tunables { return *r.tunables.Load() }

// AdjustStickiness steps the shared wall stickiness and logs the new value.
func (r *Race) AdjustStickiness(dir Direction) float64 {
	v := r.tuning.AdjustStickiness(dir)
	r.log.Info().Float64("wallStickiness", v).Msg("Wall stickiness adjusted")
	return v
}

// AdjustBounceFactor steps the shared wall bounce factor and logs the new
// value.
func (r *Race) AdjustBounceFactor(dir Direction) float64 {
	v := r.tuning.AdjustBounceFactor(dir)
	r.log.Info().Float64("wallBounceFactor", v).Msg("Wall bounce factor adjusted")
	return v
}

func (r *Race) Tuning() *Tuning             { return r.tuning }
func (r *Race) Track() *track.Track         { return r.track }
func (r *Race) Events() *EventBus           { return r.events }
func (r *Race) Vehicles() [Players]*Vehicle { return r.vehicles }
func (r *Race) Ticks() uint64               { return r.ticks }
