package game

// World tuning constants. Distances are in canvas pixels, velocities in
// pixels per tick; the canvas origin is top-left, so Y grows downward.
const (
	CanvasWidth  = 800.0
	GroundY      = 500.0
	PlayerX      = 80.0
	PlayerWidth  = 40.0
	PlayerHeight = 40.0

	JumpForce = -18.0 // instantaneous upward impulse, set once at jump time
	Gravity   = 0.8   // per tick

	InitialSpeed   = 6.0
	MaxSpeed       = 13.0
	SpeedIncrement = 0.001 // per tick, until MaxSpeed

	// ScoreRate scales score accrual per tick by the current world speed.
	ScoreRate = 0.025

	// HitboxInset shrinks the player's collision box from the visual
	// sprite on all four sides to forgive near misses.
	HitboxInset = 6.0

	ObstacleMinWidth  = 20.0
	ObstacleMaxWidth  = 60.0
	ObstacleMinHeight = 30.0
	ObstacleMaxHeight = 70.0

	// Obstacle spacing is distance-based: the spawn countdown is decremented
	// by world speed each tick, so on-screen gaps stay consistent as the
	// world accelerates.
	ObstacleMinGap = 280.0
	ObstacleMaxGap = 560.0

	// RotationStep spins the sprite while airborne. Cosmetic only.
	RotationStep = 0.12
)

// groundTop is the player's resting Y (sprite top) when grounded.
const groundTop = GroundY - PlayerHeight

// groundEpsilon absorbs float error when a jump arc returns to ground
// level.
const groundEpsilon = 1e-9
