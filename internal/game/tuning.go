package game

import (
	"math"
	"sync/atomic"
)

// atomicFloat stores a float64 as its bit pattern. Zero value is 0.0.
type atomicFloat struct {
	bits atomic.Uint64
}

func (f *atomicFloat) Set(val float64) { f.bits.Store(math.Float64bits(val)) }
func (f *atomicFloat) Get() float64    { return math.Float64frombits(f.bits.Load()) }

// Tuning holds the wall response coefficients shared by every vehicle. One
// goroutine may write while the simulation reads; a write is seen by the
// next tick.
type Tuning struct {
	wallStickiness   atomicFloat
	wallBounceFactor atomicFloat
}

// NewTuning returns a store with the given coefficients, clamped to [0,1].
func NewTuning(stickiness, bounce float64) *Tuning {
	t := &Tuning{}
	t.SetWallStickiness(stickiness)
	t.SetWallBounceFactor(bounce)
	return t
}

// DefaultTuning returns a store with the default coefficients.
func DefaultTuning() *Tuning {
	return NewTuning(DefaultWallStickiness, DefaultWallBounceFactor)
}

func (t *Tuning) WallStickiness() float64   { return t.wallStickiness.Get() }
func (t *Tuning) WallBounceFactor() float64 { return t.wallBounceFactor.Get() }

func (t *Tuning) SetWallStickiness(v float64)   { t.wallStickiness.Set(clamp01(v)) }
func (t *Tuning) SetWallBounceFactor(v float64) { t.wallBounceFactor.Set(clamp01(v)) }

// AdjustStickiness steps wall stickiness by StickinessIncrement and returns
// the new value.
func (t *Tuning) AdjustStickiness(dir Direction) float64 {
	v := clamp01(t.WallStickiness() + dir.sign()*StickinessIncrement)
	t.wallStickiness.Set(v)
	return v
}

// AdjustBounceFactor steps the bounce factor by BounceFactorIncrement and
// returns the new value.
func (t *Tuning) AdjustBounceFactor(dir Direction) float64 {
	v := clamp01(t.WallBounceFactor() + dir.sign()*BounceFactorIncrement)
	t.wallBounceFactor.Set(v)
	return v
}

// Snapshot returns stickiness and bounce factor.
func (t *Tuning) Snapshot() (stickiness, bounce float64) {
	return t.WallStickiness(), t.WallBounceFactor()
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return clampF(v, 0, 1)
}
