package game

import "math"

// Step advances the session by one tick and reports whether the player hit
// an obstacle. The caller only invokes Step while the game is in the
// playing state; game time does not advance in any other state.
func (s *Session) Step() (collided bool) {
	// World speed ramps by a fixed increment up to the cap and never
	// decreases within a session.
	s.Speed = math.Min(MaxSpeed, s.Speed+SpeedIncrement)

	// Score accrues proportionally to current speed.
	s.Score += s.Speed * ScoreRate

	s.stepPlayer()
	s.stepObstacles()

	for i := range s.Obstacles {
		if s.hitsPlayer(&s.Obstacles[i]) {
			return true
		}
	}
	return false
}

// stepPlayer integrates gravity and clamps to the ground. The same gravity
// model applies on the way up and down; the jump impulse is set once at
// jump time and never reapplied.
func (s *Session) stepPlayer() {
	p := &s.Player
	if !p.Jumping {
		return
	}

	p.Y += p.VY
	p.VY += Gravity
	p.Rotation += RotationStep

	// The arc is symmetric, so the return to ground level lands within
	// float accumulation error of groundTop; the tolerance makes the
	// reaches-or-passes clamp trigger on that exact tick.
	if p.Y >= groundTop-groundEpsilon {
		p.Y = groundTop
		p.VY = 0
		p.Jumping = false
		p.Rotation = 0
	}
}

// stepObstacles moves every obstacle left, drops the ones fully off
// screen, then decrements the spawn countdown by world speed and spawns
// when it runs out. Spawning happens after the advance so a new obstacle
// enters the world exactly at the right boundary. Relative order of the
// survivors is preserved.
func (s *Session) stepObstacles() {
	kept := s.Obstacles[:0]
	for _, o := range s.Obstacles {
		o.X -= s.Speed
		// Removed exactly when the trailing edge passes the left edge.
		if o.X+o.Width >= 0 {
			kept = append(kept, o)
		}
	}
	s.Obstacles = kept

	s.NextSpawn -= s.Speed
	if s.NextSpawn <= 0 {
		s.spawnObstacle()
		s.NextSpawn = s.drawGap()
	}
}

// hitsPlayer runs an axis-aligned overlap test between the inset player
// hitbox and the obstacle's full bounding box.
func (s *Session) hitsPlayer(o *Obstacle) bool {
	px := PlayerX + HitboxInset
	py := s.Player.Y + HitboxInset
	pw := PlayerWidth - 2*HitboxInset
	ph := PlayerHeight - 2*HitboxInset

	ox := o.X
	oy := GroundY - o.Height

	return px < ox+o.Width &&
		px+pw > ox &&
		py < oy+o.Height &&
		py+ph > oy
}
