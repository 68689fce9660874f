package physics

import (
	"math"
	"time"
)

// Solver defaults, used when the config leaves a field zero.
const (
	defaultMaxTOIIterations = 3
	defaultEpsilon          = 1e-3
	defaultTravelFraction   = 0.5
	defaultFireballCooldown = 1

	// remainingEps ends a substep's TOI loop once the unconsumed time
	// fraction is negligible.
	remainingEps = 1e-6

	// toiTieEps is the contact-time window inside which a paddle corner
	// hit wins over the paddle's flat top, so edge-adjacent hits resolve
	// to the curved surface.
	toiTieEps = 1e-9
)

// contact is an internal collision candidate during earliest-hit selection.
type contact struct {
	hit      Hit
	surface  SurfaceKind
	obstacle *Obstacle
	id       int
	// priority breaks near-ties; paddle corners outrank everything else.
	priority int
}

// Solve advances one ball through a frame of motion. The frame dt is split
// into cfg.Substeps equal slices; each slice runs a bounded time-of-impact
// loop that finds the earliest contact among walls, the paddle, and the
// broadphase candidates, resolves it, and continues on the remaining time.
//
// The input ball is not mutated; the advanced copy lives in the scratch arena
// and is returned in the result. Events are ordered by occurrence and carry
// the pre-reflection velocity. All side effects (brick damage, scoring) are
// the caller's job, applied after the solve so obstacles stay read-only
// throughout.
func Solve(ball *Ball, cfg *Config, scratch *Scratch) Result {
	started := time.Now()

	if scratch == nil {
		scratch = NewScratch()
	}
	scratch.events = scratch.events[:0]

	var res Result
	if ball == nil || cfg == nil {
		return res
	}

	substeps := cfg.Substeps
	if substeps < 1 {
		substeps = 1
	}
	maxIter := cfg.MaxTOIIterations
	if maxIter <= 0 {
		maxIter = defaultMaxTOIIterations
	}
	eps := cfg.Epsilon
	if eps <= 0 {
		eps = defaultEpsilon
	}
	travelFraction := cfg.TravelFraction
	if travelFraction <= 0 {
		travelFraction = defaultTravelFraction
	}

	// Safety clamp: even if the caller under-provisions substeps, one
	// substep never travels further than a fraction of the smallest
	// obstacle dimension.
	maxTravel := math.Inf(1)
	if cfg.MinObstacleDim > 0 {
		maxTravel = cfg.MinObstacleDim * travelFraction
	}

	scratch.ball = *ball
	b := &scratch.ball
	sliceDT := cfg.DT / float64(substeps)

	res.Stats.Substeps = substeps

	for step := 0; step < substeps; step++ {
		remaining := 1.0
		hits := 0

		// Only actual contacts consume the TOI budget. Clamped no-hit
		// segments commit their motion and keep sweeping, so the whole
		// slice is always covered even when the travel clamp splits it
		// into many pieces. The no-hit path shrinks remaining by a fixed
		// absolute amount per pass, so the loop terminates.
		for remaining > remainingEps {
			seg := b.Vel.Scale(sliceDT * remaining)
			// frac is the share of the remaining substep this segment
			// covers; less than 1 only when the travel clamp cuts it.
			frac := 1.0
			if l := seg.Length(); l > maxTravel {
				frac = maxTravel / l
				seg = seg.Scale(frac)
			}
			if seg.IsZero(segmentEps) {
				break
			}
			res.Stats.TOIIterations++

			end := b.Pos.Add(seg)
			best, found := earliestContact(b, seg, end, cfg, scratch, &res.Stats)
			if !found {
				b.Pos = end
				remaining *= 1 - frac
				continue
			}

			// Advance to the contact and validate the normal.
			b.Pos = best.hit.Center
			n := validNormal(best.hit.Normal)
			point := b.Pos.Sub(n.Scale(b.Radius))

			consumed := frac * best.hit.T
			ev := CollisionEvent{
				T:          (1 - remaining) + consumed*remaining,
				Surface:    best.surface,
				ObstacleID: best.id,
				Point:      point,
				Normal:     n,
				Incoming:   b.Vel,
			}

			if applyResponse(b, best.surface, n, best.obstacle, cfg) {
				// Separate slightly so the same surface is not
				// re-hit on the next iteration. Proportional to
				// radius and travel so fast frames separate
				// further.
				push := eps * (b.Radius + seg.Length())
				b.Pos = b.Pos.Add(n.Scale(push))
			} else if best.obstacle != nil && b.Fireball {
				// Pass-through: remember the contact so the
				// pierced obstacle is not reported again while
				// the ball is inside it.
				if b.Cooldowns == nil {
					b.Cooldowns = make(map[int]uint64)
				}
				b.Cooldowns[best.obstacle.ID] = cfg.Tick
			}

			scratch.events = append(scratch.events, ev)
			res.Stats.Collisions++

			remaining *= 1 - consumed
			hits++
			if hits >= maxIter {
				break
			}
		}
	}

	res.Ball = b
	res.Events = scratch.events
	res.Stats.SolveMicros = time.Since(started).Microseconds()
	return res
}

// earliestContact tests every candidate surface for the motion segment and
// returns the earliest hit. Order of testing: canvas walls, paddle corners,
// paddle box, broadphase obstacles (face test first, corner circles as
// fallback). Paddle corners take a near-tie priority over the flat top.
func earliestContact(b *Ball, seg, end Vec2, cfg *Config, scratch *Scratch, stats *FrameStats) (contact, bool) {
	var best contact
	found := false

	consider := func(c contact) {
		if !found || c.hit.T < best.hit.T-toiTieEps ||
			(c.hit.T < best.hit.T+toiTieEps && c.priority > best.priority) {
			best = c
			found = true
		}
	}

	// Canvas walls: left, right, top. The bottom is open; losing the ball
	// is a game-rule decision made by the caller from the final position.
	if hit, ok := traceWalls(b.Pos, seg, b.Radius, cfg.Bounds); ok {
		consider(contact{hit: hit, surface: SurfaceWall})
	}

	if p := cfg.Paddle; p != nil {
		// Rounded corners first: a hit on the curved region must win
		// over the flat top for edge-adjacent contacts.
		for _, q := range p.cornerCenters() {
			if hit, ok := TraceCircle(b.Pos, end, q, b.Radius+p.CornerRadius); ok {
				consider(contact{hit: hit, surface: SurfacePaddleCorner, id: p.ID, priority: 1})
			}
		}
		// The expanded box overestimates the outline in the corner
		// quadrants and always yields an earlier T there, so face hits
		// whose contact sits inside a corner span are rejected and left
		// to the corner circles above.
		if hit, ok := TraceAABB(b.Pos, end, p.Box, b.Radius); ok && paddleFlatHit(hit, p) {
			surface := SurfacePaddleCorner
			if hit.Normal.Y < 0 {
				surface = SurfacePaddleTop
			}
			consider(contact{hit: hit, surface: surface, id: p.ID})
		}
	}

	if cfg.Query != nil {
		scratch.candidates = scratch.candidates[:0]
		scratch.candidates = cfg.Query(SweptBounds(b.Pos, end, b.Radius), scratch.candidates)
		stats.Candidates += len(scratch.candidates)

		cooldown := cfg.FireballCooldownTicks
		if cooldown == 0 {
			cooldown = defaultFireballCooldown
		}

		for _, o := range scratch.candidates {
			if o == nil || !o.Visible {
				continue
			}
			if b.Fireball && b.Cooldowns != nil {
				if last, ok := b.Cooldowns[o.ID]; ok && cfg.Tick-last <= cooldown {
					continue
				}
			}

			if hit, ok := TraceAABB(b.Pos, end, o.Box, b.Radius); ok {
				consider(contact{hit: hit, surface: SurfaceBrick, obstacle: o, id: o.ID})
				continue
			}

			// Face test missed: the ball may still clip a corner of
			// the rectangle within the rounded region the expanded
			// AABB overestimates.
			for _, corner := range boxCorners(o.Box) {
				if hit, ok := TraceCircle(b.Pos, end, corner, b.Radius); ok {
					consider(contact{hit: hit, surface: SurfaceCorner, obstacle: o, id: o.ID})
				}
			}
		}
	}

	return best, found
}

// paddleFlatHit reports whether an expanded-box hit lands on the flat part of
// the rounded outline: within [Box.X+r, Box.Right()-r] for the horizontal
// faces, within [Box.Y+r, Box.Bottom()-r] for the vertical ones.
func paddleFlatHit(hit Hit, p *Paddle) bool {
	r := p.CornerRadius
	if r <= 0 {
		return true
	}
	if hit.Normal.X != 0 {
		return hit.Center.Y >= p.Box.Y+r && hit.Center.Y <= p.Box.Bottom()-r
	}
	return hit.Center.X >= p.Box.X+r && hit.Center.X <= p.Box.Right()-r
}

// traceWalls finds the earliest contact with the left, right, or top canvas
// plane along the motion segment.
func traceWalls(start, seg Vec2, radius float64, bounds AABB) (Hit, bool) {
	bestT := math.Inf(1)
	var bestN Vec2

	plane := func(t float64, n Vec2) {
		if t >= 0 && t <= 1 && t < bestT {
			bestT = t
			bestN = n
		}
	}

	if seg.X < 0 {
		if p := bounds.X + radius; start.X >= p {
			plane((p-start.X)/seg.X, Vec2{1, 0})
		}
	} else if seg.X > 0 {
		if p := bounds.Right() - radius; start.X <= p {
			plane((p-start.X)/seg.X, Vec2{-1, 0})
		}
	}
	if seg.Y < 0 {
		if p := bounds.Y + radius; start.Y >= p {
			plane((p-start.Y)/seg.Y, Vec2{0, 1})
		}
	}

	if math.IsInf(bestT, 1) {
		return Hit{}, false
	}
	return Hit{T: bestT, Center: start.Add(seg.Scale(bestT)), Normal: bestN}, true
}

// validNormal returns a usable unit normal: the reported one when sane, a
// renormalized copy when its length drifted, or straight up as the final
// degenerate fallback. A broken normal must never poison the reflection.
func validNormal(n Vec2) Vec2 {
	if u, ok := n.Normalized(); ok {
		return u
	}
	return Vec2{0, -1}
}

// boxCorners returns the four corner points of a rectangle.
func boxCorners(b AABB) [4]Vec2 {
	return [4]Vec2{
		{b.X, b.Y},
		{b.Right(), b.Y},
		{b.X, b.Bottom()},
		{b.Right(), b.Bottom()},
	}
}
