package game

import "math"

// Param names a per-vehicle tunable.
type Param int

const (
	ParamTurnRate Param = iota
	ParamAcceleration
	ParamMaxSpeed
	ParamFriction
)

func (p Param) String() string {
	switch p {
	case ParamTurnRate:
		return "turn rate"
	case ParamAcceleration:
		return "acceleration"
	case ParamMaxSpeed:
		return "max speed"
	case ParamFriction:
		return "friction"
	}
	return "unknown"
}

// Params lists every adjustable parameter in display order.
var Params = [...]Param{ParamAcceleration, ParamMaxSpeed, ParamTurnRate, ParamFriction}

// Direction of an adjustment.
type Direction int

const (
	Decrease Direction = iota
	Increase
)

func (d Direction) sign() float64 {
	if d == Increase {
		return 1
	}
	return -1
}

// Adjust steps one parameter by its increment, clamps it and returns the
// new value. Turn rate and acceleration stay within [0.2x, 2x] of the
// preset they started from.
func (v *Vehicle) Adjust(p Param, dir Direction) float64 {
	s := dir.sign()
	switch p {
	case ParamTurnRate:
		v.TurnRate = clampF(v.TurnRate+s*TurnRateIncrement,
			v.baseTurnRate*MinAdjustment, v.baseTurnRate*MaxAdjustment)
		return v.TurnRate
	case ParamAcceleration:
		v.Acceleration = clampF(v.Acceleration+s*AccelerationIncrement,
			v.baseAcceleration*MinAdjustment, v.baseAcceleration*MaxAdjustment)
		return v.Acceleration
	case ParamMaxSpeed:
		v.MaxSpeed = clampF(v.MaxSpeed+s*MaxSpeedIncrement, MinMaxSpeed, MaxMaxSpeed)
		v.CurrentMaxSpeed = v.MaxSpeed
		if v.OnSlowSurface {
			v.CurrentMaxSpeed = v.MaxSpeed * SlowDownMultiplier
		}
		return v.MaxSpeed
	case ParamFriction:
		// Two decimals, so repeated steps do not drift off the 0.01 grid.
		v.Friction = math.Round(clampF(v.Friction+s*FrictionIncrement, MinFriction, MaxFriction)*100) / 100
		return v.Friction
	}
	return 0
}

// Value returns the current value of p.
func (v *Vehicle) Value(p Param) float64 {
	switch p {
	case ParamTurnRate:
		return v.TurnRate
	case ParamAcceleration:
		return v.Acceleration
	case ParamMaxSpeed:
		return v.MaxSpeed
	case ParamFriction:
		return v.Friction
	}
	return 0
}
