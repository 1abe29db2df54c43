package game

import (
	"math"

	"racer/internal/track"
)

// Outcome is the collision resolver state reached in a tick.
type Outcome int

const (
	OutcomeClear        Outcome = iota // tentative position accepted
	OutcomeSliding                     // pushed off the wall along its normal
	OutcomeRepositioned                // moved by the safe-position search
	OutcomeReset                       // search exhausted, back at spawn
)

func (o Outcome) String() string {
	switch o {
	case OutcomeClear:
		return "clear"
	case OutcomeSliding:
		return "sliding"
	case OutcomeRepositioned:
		return "repositioned"
	case OutcomeReset:
		return "reset"
	}
	return "unknown"
}

// Unit offsets of the 8-neighbourhood used for normal estimation.
var neighbourDirs = func() [8]Vec2 {
	d := 1 / math.Sqrt2
	return [8]Vec2{
		{-d, -d}, {0, -1}, {d, -d},
		{-1, 0}, {1, 0},
		{-d, d}, {0, 1}, {d, d},
	}
}()

// resolve decides where the car ends up this tick given the tentative
// position produced by integrate. It returns the outcome and the number of
// offending points.
func (v *Vehicle) resolve(tentative Vec2, prevSpeed float64, tr Classifier, tu *Tuning) (Outcome, int) {
	probe := Probe(tr, tentative, v.Heading, v.Hull)
	offending := probe.Offending
	if tr.Classify(tentative.X, tentative.Y) == track.Wall {
		offending = append(offending, tentative)
	}
	if len(offending) == 0 {
		v.accept(tentative, tr)
		return OutcomeClear, 0
	}
	count := len(offending)

	stickiness, bounce := tu.Snapshot()
	reduction := clampF((BaseReduction+PerPointReduction*float64(count))*stickiness, 0, 1)
	v.Vel = v.Vel.Scale(bounce * (1 - reduction))
	// A wall never adds energy.
	capSpeed(&v.Vel, prevSpeed)

	normal := wallNormal(tr, tentative, offending)
	speed := v.Vel.Len()
	if speed > MinTurnSpeed {
		if d := v.Vel.Dot(normal); d < 0 {
			v.Vel = v.Vel.Sub(normal.Scale((1 + Restitution) * d))
		}
		slide := tentative.Add(normal.Scale(StepBack))
		if v.Vel.Len() >= MinSlideSpeed && Fits(tr, slide, v.Heading, v.Hull) {
			v.accept(slide, tr)
			return OutcomeSliding, count
		}
	}

	if p, ok := v.searchSafe(tr, normal); ok {
		v.Vel = v.Vel.Scale(RepositionDamping)
		v.accept(p, tr)
		return OutcomeRepositioned, count
	}

	v.reset()
	return OutcomeReset, count
}

// accept commits pos and picks the speed limit of the surface under it.
func (v *Vehicle) accept(pos Vec2, tr Classifier) {
	v.Pos = pos
	if tr.Classify(pos.X, pos.Y) == track.SlowDown {
		v.OnSlowSurface = true
		v.CurrentMaxSpeed = v.MaxSpeed * SlowDownMultiplier
		return
	}
	v.OnSlowSurface = false
	v.CurrentMaxSpeed = v.MaxSpeed
}

// searchSafe scans rings around the last accepted position for a spot the
// hull fits in. Angles start at the wall normal so the first candidates lead
// away from the wall.
func (v *Vehicle) searchSafe(tr Classifier, normal Vec2) (Vec2, bool) {
	for r := SearchMinRadius; r <= SearchMaxRadius; r += SearchRadiusStep {
		for a := 0; a < 360; a += SearchAngleStep {
			c := v.Pos.Add(normal.Rotate(float64(a)).Scale(float64(r)))
			if Fits(tr, c, v.Heading, v.Hull) {
				return c, true
			}
		}
	}
	return Vec2{}, false
}

// wallNormal estimates the outward direction of the wall from the terrain
// around the offending points. Never returns a zero vector.
func wallNormal(tr Classifier, center Vec2, offending []Vec2) Vec2 {
	var sum Vec2
	for _, p := range offending {
		for _, d := range neighbourDirs {
			q := p.Add(d.Scale(NormalStep))
			if tr.Classify(q.X, q.Y) != track.Wall {
				sum = sum.Add(d)
			}
		}
	}
	if n, ok := sum.Normalize(); ok {
		return n
	}
	if len(offending) > 0 {
		if n, ok := center.Sub(offending[0]).Normalize(); ok {
			return n
		}
	}
	return Vec2{0, -1}
}
