package fx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"racer/internal/game"
	"racer/internal/track"
)

func TestParticleSystem_CircularOverwrite(t *testing.T) {
	ps := NewParticleSystem(3, 1)
	for i := range 5 {
		ps.Add(Particle{X: float64(i), MaxLife: 1})
	}

	require.Len(t, ps.P, 3)
	xs := []float64{ps.P[0].X, ps.P[1].X, ps.P[2].X}
	assert.Equal(t, []float64{3, 4, 2}, xs)
}

func TestParticleSystem_DefaultCapacity(t *testing.T) {
	ps := NewParticleSystem(0, 1)
	assert.Equal(t, MaxParticles, ps.Max)
}

func TestParticleSystem_UpdateExpiresAndMoves(t *testing.T) {
	ps := NewParticleSystem(8, 1)
	ps.Add(Particle{X: 0, Y: 0, VX: 100, MaxLife: 1, Kind: ParticleDebris})
	ps.Add(Particle{MaxLife: 0.05, Kind: ParticleSpark})

	ps.Update(0.1)

	require.Len(t, ps.P, 1)
	p := ps.P[0]
	assert.Greater(t, p.X, 0.0)
	assert.Less(t, p.X, 10.0, "drag slows the particle")
	assert.Less(t, p.VX, 100.0)
	assert.InDelta(t, 0.1, p.Life, 1e-9)

	ps.Update(0)
	assert.InDelta(t, 0.1, ps.P[0].Life, 1e-9)
}

func TestParticleSystem_SparksScaleWithImpact(t *testing.T) {
	soft := NewParticleSystem(64, 7)
	soft.SpawnSparks(10, 10, 0)
	hard := NewParticleSystem(64, 7)
	hard.SpawnSparks(10, 10, 8)

	assert.Greater(t, len(hard.P), len(soft.P))
	for _, p := range hard.P {
		assert.Equal(t, ParticleSpark, p.Kind)
		assert.InDelta(t, 10, p.X, 2)
		assert.InDelta(t, 10, p.Y, 2)
	}
}

func TestParticleSystem_SubscribesToRaceEvents(t *testing.T) {
	ps := NewParticleSystem(128, 3)
	bus := game.NewEventBus()
	ps.Subscribe(bus)

	bus.Emit(game.Event{Type: game.EventSurfaceChanged, X: 5, Y: 5, Slow: false})
	assert.Empty(t, ps.P, "leaving a slow surface raises no dust")

	bus.Emit(game.Event{Type: game.EventSurfaceChanged, X: 5, Y: 5, Slow: true})
	assert.Len(t, ps.P, 10)

	ps.Clear()
	bus.Emit(game.Event{Type: game.EventReset, X: 50, Y: 50})
	assert.Len(t, ps.P, 24)

	ps.Clear()
	bus.Emit(game.Event{Type: game.EventWallHit, X: 50, Y: 50, Speed: 4})
	assert.Len(t, ps.P, 8)
}

func TestParticleSystem_RenderData(t *testing.T) {
	ps := NewParticleSystem(8, 1)
	ps.Add(Particle{X: 1, Y: 2, Size: 3, MaxLife: 1, Col: track.RGB{R: 255}, Kind: ParticleDebris})
	ps.Add(Particle{X: 4, Y: 5, Size: 2, Life: 0.5, MaxLife: 1, Kind: ParticleDust})

	buf := ps.RenderData(nil)
	require.Len(t, buf, 14)
	assert.Equal(t, []float32{1, 2, 3, 1, 0, 0, 1}, buf[:7])
	assert.InDelta(t, 3.0, buf[9], 1e-6, "dust grows as it fades")
	assert.InDelta(t, 0.3, buf[13], 1e-6)

	// The buffer is reused.
	again := ps.RenderData(buf)
	assert.Len(t, again, 14)
}

func TestLerpRGB(t *testing.T) {
	a := track.RGB{R: 0, G: 100, B: 200}
	b := track.RGB{R: 200, G: 100, B: 0}
	assert.Equal(t, a, lerpRGB(a, b, 0))
	assert.Equal(t, b, lerpRGB(a, b, 1))
	assert.Equal(t, track.RGB{R: 100, G: 100, B: 100}, lerpRGB(a, b, 0.5))
}
