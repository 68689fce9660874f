package physics

import "math"

// Velocity response policies, dispatched on the surface kind so the TOI loop
// stays generic and the game-feel tuning lives in one place.

// applyResponse updates the ball's velocity for a contact and reports whether
// the ball actually reflected. A false return means pass-through (fireball
// piercing a destructible brick): position and velocity continue unchanged
// and no separation push is wanted.
func applyResponse(ball *Ball, surface SurfaceKind, n Vec2, obstacle *Obstacle, cfg *Config) bool {
	switch surface {
	case SurfacePaddleTop:
		if cfg.Launcher.Enabled && cfg.Paddle != nil {
			ball.Vel = launchVelocity(ball, cfg.Paddle, cfg.Launcher)
			return true
		}
		return mirror(ball, n)

	case SurfacePaddleCorner:
		reflected := mirror(ball, n)
		// A ball must never keep moving downward off the paddle's
		// corner, even when raw reflection yields a shallow downward
		// angle.
		if reflected && ball.Vel.Y > 0 {
			ball.Vel.Y = -ball.Vel.Y
		}
		return reflected

	default:
		if ball.Fireball && obstacle != nil && obstacle.Kind == KindBrick && !obstacle.Indestructible {
			// Pierce: the brick is destroyed by the caller from the
			// event; the ball keeps its course.
			return false
		}
		return mirror(ball, n)
	}
}

// mirror applies the standard reflection law when the ball is moving into the
// surface. Moving-away contacts (already separated by a previous response)
// are left untouched.
func mirror(ball *Ball, n Vec2) bool {
	if ball.Vel.Dot(n) >= 0 {
		return false
	}
	ball.Vel = ball.Vel.Reflect(n)
	return true
}

// launchVelocity implements the paddle-top "launcher": the horizontal impact
// offset relative to paddle center, normalized to [-1, 1], is shaped by a
// power curve and mapped to an outgoing angle within ±MaxAngle from straight
// up. The incoming speed is preserved exactly; the incoming direction is
// discarded. Deterministic directional control beats physically accurate but
// unpredictable reflection.
func launchVelocity(ball *Ball, paddle *Paddle, lc LauncherConfig) Vec2 {
	speed := ball.Speed()
	if speed < 1e-9 {
		return ball.Vel
	}

	half := paddle.Box.W / 2
	var r float64
	if half > 0 {
		r = (ball.Pos.X - paddle.Box.Center().X) / half
	}
	r = clamp(r, -1, 1)

	k := lc.CurveExponent
	if k <= 0 {
		k = 1
	}
	shaped := math.Pow(math.Abs(r), k)
	if r < 0 {
		shaped = -shaped
	}

	angle := shaped * lc.MaxAngle
	return Vec2{
		X: speed * math.Sin(angle),
		Y: -speed * math.Cos(angle),
	}
}
