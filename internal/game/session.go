package game

import "math/rand"

// Player is the runner's vertical physics state.
// Invariant after every tick: Jumping == false implies VY == 0 and
// Y == groundTop.
type Player struct {
	Y        float64 `json:"y"` // sprite top, canvas coordinates
	VY       float64 `json:"vy"`
	Jumping  bool    `json:"jumping"`
	Rotation float64 `json:"rotation"` // cosmetic spin while airborne
}

// Obstacle is one ground obstacle. X is the left edge; obstacles spawn at
// the right boundary and move left at world speed.
type Obstacle struct {
	X      float64 `json:"x"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Session aggregates the per-run state: player, obstacles and world
// progression. A fresh Session is created on every entry into the playing
// state and discarded on the next one.
type Session struct {
	Player    Player
	Obstacles []Obstacle
	Speed     float64
	Score     float64 // continuous accumulator, displayed floored
	NextSpawn float64 // distance countdown to the next obstacle

	rng *rand.Rand
}

// NewSession creates a session with the player grounded, no obstacles,
// world speed at its initial value and the first spawn gap drawn.
func NewSession(rng *rand.Rand) *Session {
	s := &Session{
		Player: Player{Y: groundTop},
		Speed:  InitialSpeed,
		rng:    rng,
	}
	s.NextSpawn = s.drawGap()
	return s
}

// Jump applies the upward impulse if the player is grounded. Returns false
// while airborne: there is no double jump and early presses are not
// buffered.
func (s *Session) Jump() bool {
	if s.Player.Jumping {
		return false
	}
	s.Player.VY = JumpForce
	s.Player.Jumping = true
	return true
}

// drawGap draws the distance to the next obstacle uniformly within the
// configured gap bounds.
func (s *Session) drawGap() float64 {
	return ObstacleMinGap + s.rng.Float64()*(ObstacleMaxGap-ObstacleMinGap)
}

// spawnObstacle places a new obstacle at the right boundary with randomized
// size within the configured bounds.
func (s *Session) spawnObstacle() {
	s.Obstacles = append(s.Obstacles, Obstacle{
		X:      CanvasWidth,
		Width:  ObstacleMinWidth + s.rng.Float64()*(ObstacleMaxWidth-ObstacleMinWidth),
		Height: ObstacleMinHeight + s.rng.Float64()*(ObstacleMaxHeight-ObstacleMinHeight),
	})
}
