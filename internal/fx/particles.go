// Package fx holds short-lived visual effects spawned by race events.
package fx

import (
	"math"
	"math/rand/v2"

	"racer/internal/game"
	"racer/internal/track"
)

// MaxParticles caps the pool. When full, the oldest slots are overwritten.
const MaxParticles = 512

type ParticleKind uint8

const (
	ParticleSpark ParticleKind = iota
	ParticleDebris
	ParticleDust
)

type Particle struct {
	X, Y   float64
	VX, VY float64 // track pixels per second

	Size    float64
	Life    float64
	MaxLife float64

	Col  track.RGB
	Kind ParticleKind
}

var (
	sparkHot  = track.RGB{R: 255, G: 230, B: 140}
	sparkCool = track.RGB{R: 255, G: 120, B: 30}
	dustCol   = track.RGB{R: 150, G: 130, B: 90}
)

// Drag per second, applied as exp(-k*dt).
const (
	sparkDrag  = 4.0
	debrisDrag = 2.5
	dustDrag   = 1.5
)

type ParticleSystem struct {
	Max    int
	P      []Particle
	rng    *rand.Rand
	ovrIdx int // circular overwrite index when full
}

func NewParticleSystem(maxParticles int, seed uint64) *ParticleSystem {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &ParticleSystem{
		Max: maxParticles,
		P:   make([]Particle, 0, maxParticles),
		rng: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

func (ps *ParticleSystem) Clear() {
	ps.P = ps.P[:0]
	ps.ovrIdx = 0
}

func (ps *ParticleSystem) Add(p Particle) {
	if len(ps.P) < ps.Max {
		ps.P = append(ps.P, p)
		return
	}
	// Circular overwrite.
	if ps.ovrIdx >= ps.Max {
		ps.ovrIdx = 0
	}
	ps.P[ps.ovrIdx] = p
	ps.ovrIdx++
}

func (ps *ParticleSystem) rangeF(lo, hi float64) float64 {
	return lo + ps.rng.Float64()*(hi-lo)
}

// Subscribe spawns effects from race events.
func (ps *ParticleSystem) Subscribe(bus *game.EventBus) {
	bus.Subscribe(game.EventWallHit, func(e game.Event) {
		ps.SpawnSparks(e.X, e.Y, e.Speed)
	})
	bus.Subscribe(game.EventReset, func(e game.Event) {
		ps.SpawnDebris(e.X, e.Y, track.RGB{R: 90, G: 90, B: 90})
	})
	bus.Subscribe(game.EventSurfaceChanged, func(e game.Event) {
		if e.Slow {
			ps.SpawnDust(e.X, e.Y, 10)
		}
	})
}

// SpawnSparks throws a few sparks from a wall contact; faster impacts throw more.
func (ps *ParticleSystem) SpawnSparks(x, y, impact float64) {
	n := int(2 + impact*1.5)
	for range n {
		ang := ps.rangeF(0, math.Pi*2)
		spd := ps.rangeF(40, 120) * (0.5 + impact/8)
		ps.Add(Particle{
			X: x + ps.rangeF(-2, 2), Y: y + ps.rangeF(-2, 2),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: ps.rangeF(1.5, 2.5), MaxLife: ps.rangeF(0.15, 0.35),
			Col: sparkHot, Kind: ParticleSpark,
		})
	}
}

// SpawnDebris is the burst left behind when a car is reset.
func (ps *ParticleSystem) SpawnDebris(x, y float64, col track.RGB) {
	for range 24 {
		ang := ps.rangeF(0, math.Pi*2)
		spd := ps.rangeF(20, 90)
		ps.Add(Particle{
			X: x + ps.rangeF(-4, 4), Y: y + ps.rangeF(-4, 4),
			VX: math.Cos(ang) * spd, VY: math.Sin(ang) * spd,
			Size: ps.rangeF(2, 4), MaxLife: ps.rangeF(0.5, 1.0),
			Col: col, Kind: ParticleDebris,
		})
	}
}

// SpawnDust puffs dust where a car runs onto a slow surface.
func (ps *ParticleSystem) SpawnDust(x, y float64, n int) {
	for range n {
		ps.Add(Particle{
			X: x + ps.rangeF(-6, 6), Y: y + ps.rangeF(-6, 6),
			VX: ps.rangeF(-15, 15), VY: ps.rangeF(-15, 15),
			Size: ps.rangeF(3, 6), MaxLife: ps.rangeF(0.3, 0.6),
			Col: dustCol, Kind: ParticleDust,
		})
	}
}

// Update advances every particle by dt seconds and drops expired ones.
func (ps *ParticleSystem) Update(dt float64) {
	if dt <= 0 {
		return
	}
	sparkXY := math.Exp(-sparkDrag * dt)
	debrisXY := math.Exp(-debrisDrag * dt)
	dustXY := math.Exp(-dustDrag * dt)

	for i := 0; i < len(ps.P); {
		p := &ps.P[i]
		p.Life += dt
		if p.Life >= p.MaxLife {
			ps.P[i] = ps.P[len(ps.P)-1]
			ps.P = ps.P[:len(ps.P)-1]
			continue
		}

		decay := dustXY
		switch p.Kind {
		case ParticleSpark:
			decay = sparkXY
		case ParticleDebris:
			decay = debrisXY
		}
		p.VX *= decay
		p.VY *= decay
		p.X += p.VX * dt
		p.Y += p.VY * dt
		i++
	}
}

// RenderData appends one entry per live particle.
// Format: [x, y, size, r, g, b, a] * N.
func (ps *ParticleSystem) RenderData(buf []float32) []float32 {
	buf = buf[:0]
	for _, p := range ps.P {
		t := p.Life / p.MaxLife
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}

		col := p.Col
		a := 1.0 - t
		size := p.Size
		switch p.Kind {
		case ParticleSpark:
			col = lerpRGB(sparkHot, sparkCool, t)
		case ParticleDebris:
			a = 1.0 - t*t
		case ParticleDust:
			a = (1.0 - t) * 0.6
			size *= 1.0 + t
		}

		buf = append(buf,
			float32(p.X), float32(p.Y), float32(size),
			float32(col.R)/255, float32(col.G)/255, float32(col.B)/255, float32(a),
		)
	}
	return buf
}

func lerpRGB(a, b track.RGB, t float64) track.RGB {
	lerp := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t) }
	return track.RGB{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B)}
}
