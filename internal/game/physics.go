package game

import "math"

// integrate applies input, friction and the speed limit to the velocity
// and returns the tentative position. The position itself is left alone.
func (v *Vehicle) integrate(in Controls) Vec2 {
	speed := v.Vel.Len()
	fwd := headingVec(v.Heading)
	v.Reversing = speed > MinTurnSpeed && v.Vel.Dot(fwd) < 0

	if speed > MinTurnSpeed && (in.Left || in.Right) {
		turn := v.TurnRate
		if v.MaxSpeed > 0 {
			turn *= math.Min(speed/v.MaxSpeed, 1)
		}
		if v.Reversing {
			turn = -turn
		}
		if in.Left {
			v.Heading -= turn
		}
		if in.Right {
			v.Heading += turn
		}
		v.Heading = normalizeDeg(v.Heading)
		fwd = headingVec(v.Heading)
	}

	if in.Accelerate {
		v.Vel = v.Vel.Add(fwd.Scale(v.Acceleration))
	}
	if in.Brake {
		if speed < ReverseThrustBelow {
			v.Vel = v.Vel.Sub(fwd.Scale(v.Acceleration * ReverseMultiplier))
		} else if dir, ok := v.Vel.Normalize(); ok {
			v.Vel = v.Vel.Sub(dir.Scale(BrakeForce))
		}
	}

	v.Vel = v.Vel.Scale(v.Friction)

	limit := v.CurrentMaxSpeed
	if v.Reversing {
		limit *= ReverseMultiplier
	}
	capSpeed(&v.Vel, limit)

	return v.Pos.Add(v.Vel)
}

// capSpeed limits the magnitude of vel to maxSpeed.
// Returns true if velocity was clamped.
func capSpeed(vel *Vec2, maxSpeed float64) bool {
	s := vel.Len()
	if s <= maxSpeed || s == 0 {
		return false
	}
	if maxSpeed <= 0 {
		*vel = Vec2{}
		return true
	}
	*vel = vel.Scale(maxSpeed / s)
	return true
}
