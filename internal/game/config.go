package game

// Surface response.
const (
	SlowDownMultiplier = 0.5
	ReverseMultiplier  = 0.5
)

// Integrator thresholds and forces.
const (
	MinTurnSpeed       = 0.1 // below this the car neither turns nor reverses
	ReverseThrustBelow = 0.5 // brake turns into reverse thrust under this speed
	BrakeForce         = 0.2
)

// Collision response.
const (
	BaseReduction     = 0.2
	PerPointReduction = 0.1
	Restitution       = 0.3
	NormalStep        = 2
	StepBack          = 3.0
	MinSlideSpeed     = 0.3
)

// Safe-position search: radii SearchMinRadius..SearchMaxRadius step
// SearchRadiusStep, angles 0..360 step SearchAngleStep degrees.
const (
	SearchMinRadius   = 5
	SearchMaxRadius   = 23
	SearchRadiusStep  = 2
	SearchAngleStep   = 15
	RepositionDamping = 0.3
)

// Tuning store defaults and increments.
const (
	DefaultWallStickiness   = 0.4
	DefaultWallBounceFactor = 0.6
	StickinessIncrement     = 0.1
	BounceFactorIncrement   = 0.05
)

// Runtime adjustment limits.
const (
	TurnRateIncrement     = 0.2
	AccelerationIncrement = 0.05
	MaxSpeedIncrement     = 0.5
	FrictionIncrement     = 0.01

	MinAdjustment = 0.2 // fraction of the baseline
	MaxAdjustment = 2.0

	MinMaxSpeed = 2.0
	MaxMaxSpeed = 15.0
	MinFriction = 0.8
	MaxFriction = 0.99
)
