package physics

import "math"

// RescueConfig tunes the paddle overlap resolver and its emergency rescue
// rule. The thresholds are empirically tuned game policy, not derived
// physics; characterization tests pin them down.
type RescueConfig struct {
	// SafetyMargin is added on top of penetration depth when pushing the
	// ball out along the contact normal.
	SafetyMargin float64
	// PenetrationThreshold is the depth beyond which the rescue rule
	// kicks in.
	PenetrationThreshold float64
	// MinUpwardSpeed is the vertical speed (px/sec) enforced on a rescued
	// ball.
	MinUpwardSpeed float64
}

// DefaultRescueConfig returns the tuned resolver thresholds.
func DefaultRescueConfig() RescueConfig {
	return RescueConfig{
		SafetyMargin:         0.5,
		PenetrationThreshold: 1.0,
		MinUpwardSpeed:       60,
	}
}

// PaddleContact reports a resolved paddle overlap.
type PaddleContact struct {
	Normal  Vec2
	Point   Vec2 // Closest point on the paddle surface
	Depth   float64
	Corner  bool // Contact on a rounded corner rather than a flat strip
	Rescued bool
}

// cornerCenters returns the four corner-circle centers, inset by the corner
// radius from the paddle box corners. Order: top-left, top-right,
// bottom-left, bottom-right.
func (p *Paddle) cornerCenters() [4]Vec2 {
	r := p.CornerRadius
	return [4]Vec2{
		{p.Box.X + r, p.Box.Y + r},
		{p.Box.Right() - r, p.Box.Y + r},
		{p.Box.X + r, p.Box.Bottom() - r},
		{p.Box.Right() - r, p.Box.Bottom() - r},
	}
}

// ClosestSurfacePoint returns the point on the paddle's rounded-rectangle
// outline closest to c, and whether that point lies on a corner arc. The
// shape is the box with its four corners replaced by quarter circles of the
// configured radius; positions in the flat "cross" of edge strips resolve to
// the plain box, positions in a corner quadrant resolve to that corner's
// circle.
func (p *Paddle) ClosestSurfacePoint(c Vec2) (Vec2, bool) {
	r := p.CornerRadius
	if r <= 0 {
		return p.Box.ClosestPoint(c), false
	}

	inCrossX := c.X >= p.Box.X+r && c.X <= p.Box.Right()-r
	inCrossY := c.Y >= p.Box.Y+r && c.Y <= p.Box.Bottom()-r
	if inCrossX || inCrossY {
		return p.Box.ClosestPoint(c), false
	}

	// Corner quadrant: closest point lies on the nearest corner circle.
	centers := p.cornerCenters()
	best := centers[0]
	bestDist := math.Inf(1)
	for _, q := range centers {
		d := c.Sub(q).LengthSq()
		if d < bestDist {
			bestDist = d
			best = q
		}
	}
	dir, ok := c.Sub(best).Normalized()
	if !ok {
		dir = Vec2{0, -1}
	}
	return best.Add(dir.Scale(r)), true
}

// ResolvePaddle performs the discrete overlap check against the rounded
// paddle shape and corrects the ball's position (and, for a rescue, its
// velocity). prev is the ball center on the previous frame, used to gate the
// rescue rule. Returns ok=false when the ball does not touch the paddle.
//
// This is the safety net behind the swept paddle tests in the solver: when a
// fast paddle slides into a slow ball, no sweep ever sees the contact, so the
// overlap is resolved here after the solver returns.
func ResolvePaddle(ball *Ball, prev Vec2, p *Paddle, cfg RescueConfig) (PaddleContact, bool) {
	if ball == nil || p == nil || ball.Radius <= 0 {
		return PaddleContact{}, false
	}

	closest, onCorner := p.ClosestSurfacePoint(ball.Pos)
	delta := ball.Pos.Sub(closest)
	dist := delta.Length()

	inside := p.Box.Contains(ball.Pos)
	if !inside && dist >= ball.Radius {
		return PaddleContact{}, false
	}

	var n Vec2
	var depth float64
	if inside || dist < 1e-9 {
		// Center inside the shape: pick the nearest face.
		n, depth = p.escapeNormal(ball.Pos)
		depth += ball.Radius
	} else {
		var ok bool
		n, ok = delta.Normalized()
		if !ok {
			n = Vec2{0, -1}
		}
		depth = ball.Radius - dist
	}

	contact := PaddleContact{Normal: n, Point: closest, Depth: depth, Corner: onCorner}

	// Push out along the normal by penetration plus margin.
	ball.Pos = ball.Pos.Add(n.Scale(depth + cfg.SafetyMargin))

	// Emergency rescue: a deeply embedded ball over the paddle span is
	// forced fully above the paddle with upward motion. Gated on the
	// normal already pointing up or the previous position being above the
	// paddle, so balls legitimately approaching from below (boss eject)
	// are left alone.
	if depth > cfg.PenetrationThreshold &&
		ball.Pos.X >= p.Box.X && ball.Pos.X <= p.Box.Right() &&
		(n.Y < 0 || prev.Y < p.Box.Y) {
		ball.Pos.Y = p.Box.Y - ball.Radius - cfg.SafetyMargin
		if ball.Vel.Y > -cfg.MinUpwardSpeed {
			ball.Vel.Y = -cfg.MinUpwardSpeed
		}
		contact.Rescued = true
	}

	return contact, true
}

// escapeNormal returns the outward normal of the box face nearest to an
// interior point, plus the distance to that face.
func (p *Paddle) escapeNormal(c Vec2) (Vec2, float64) {
	left := c.X - p.Box.X
	right := p.Box.Right() - c.X
	top := c.Y - p.Box.Y
	bottom := p.Box.Bottom() - c.Y

	n := Vec2{-1, 0}
	depth := left
	if right < depth {
		n, depth = Vec2{1, 0}, right
	}
	if top < depth {
		n, depth = Vec2{0, -1}, top
	}
	if bottom < depth {
		n, depth = Vec2{0, 1}, bottom
	}
	return n, depth
}
