package physics

import "math"

// Numeric guard rails for the trace routines. Degenerate inputs are handled
// defensively rather than reported as errors.
const (
	// axisTieEps is the entry-time window inside which the two slab axes
	// are considered tied; the axis with more motion wins so the reported
	// face normal stays stable frame to frame.
	axisTieEps = 1e-9

	// discriminantEps treats a slightly negative discriminant as a
	// tangent hit rather than a miss. Grazing contacts otherwise flicker
	// on numerical noise.
	discriminantEps = 1e-9

	// segmentEps below which a motion segment counts as zero-length.
	segmentEps = 1e-12
)

// Hit describes the earliest contact found by a trace. Center is the ball
// center at the time of impact; Normal is unit length and points away from
// the surface toward the ball.
type Hit struct {
	T      float64
	Center Vec2
	Normal Vec2
}

// TraceAABB sweeps a circle of the given radius from start to end against a
// rectangle, by testing the center point against the box expanded by the
// radius (Minkowski sum). Returns the entry hit, or ok=false when the
// intersection interval is empty, lies outside [0, 1], or the sweep starts
// already inside the expanded box (interior starts are the pass-through case
// and are resolved elsewhere).
func TraceAABB(start, end Vec2, box AABB, radius float64) (Hit, bool) {
	if radius < 0 {
		radius = 0
	}
	ex := box.Expand(radius)

	d := end.Sub(start)

	tminX := math.Inf(-1)
	tmaxX := math.Inf(1)
	if d.X != 0 {
		inv := 1.0 / d.X
		t1 := (ex.X - start.X) * inv
		t2 := (ex.Right() - start.X) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tminX, tmaxX = t1, t2
	} else if start.X < ex.X || start.X > ex.Right() {
		return Hit{}, false
	}

	tminY := math.Inf(-1)
	tmaxY := math.Inf(1)
	if d.Y != 0 {
		inv := 1.0 / d.Y
		t1 := (ex.Y - start.Y) * inv
		t2 := (ex.Bottom() - start.Y) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tminY, tmaxY = t1, t2
	} else if start.Y < ex.Y || start.Y > ex.Bottom() {
		return Hit{}, false
	}

	tmin := math.Max(tminX, tminY)
	tmax := math.Min(tmaxX, tmaxY)
	if tmax < tmin || tmin > 1 || tmax < 0 {
		return Hit{}, false
	}
	if tmin < 0 {
		// Started inside the expanded box.
		return Hit{}, false
	}

	// Pick the face whose slab we entered last. On a near-tie the axis
	// with greater motion magnitude wins, to stabilize the normal.
	useX := tminX > tminY
	if math.Abs(tminX-tminY) < axisTieEps {
		useX = math.Abs(d.X) >= math.Abs(d.Y)
	}

	var n Vec2
	if useX {
		if d.X > 0 {
			n = Vec2{-1, 0}
		} else {
			n = Vec2{1, 0}
		}
	} else {
		if d.Y > 0 {
			n = Vec2{0, -1}
		} else {
			n = Vec2{0, 1}
		}
	}

	return Hit{
		T:      tmin,
		Center: start.Add(d.Scale(tmin)),
		Normal: n,
	}, true
}

// TraceCircle sweeps a point from start to end against a circle of the given
// radius centered at c, solving the quadratic for the first parameter where
// the distance equals the radius. Zero-length segments fall back to a static
// point-in-circle test. A small negative discriminant is treated as tangent.
func TraceCircle(start, end, c Vec2, radius float64) (Hit, bool) {
	if radius <= 0 {
		return Hit{}, false
	}

	d := end.Sub(start)
	f := start.Sub(c)

	a := d.LengthSq()
	if a < segmentEps {
		// Static test: already touching or inside counts as an
		// immediate contact at the start point.
		if f.LengthSq() > radius*radius {
			return Hit{}, false
		}
		n, ok := f.Normalized()
		if !ok {
			n = Vec2{0, -1}
		}
		return Hit{T: 0, Center: start, Normal: n}, true
	}

	b := 2 * f.Dot(d)
	cc := f.LengthSq() - radius*radius

	disc := b*b - 4*a*cc
	if disc < -discriminantEps {
		return Hit{}, false
	}
	if disc < 0 {
		disc = 0
	}

	sq := math.Sqrt(disc)
	t := (-b - sq) / (2 * a)
	if t < 0 {
		// Entry behind the segment start; the exit root only matters
		// when the sweep begins inside the circle, which the solver's
		// separation step prevents.
		return Hit{}, false
	}
	if t > 1 {
		return Hit{}, false
	}

	center := start.Add(d.Scale(t))
	n, ok := center.Sub(c).Normalized()
	if !ok {
		n = Vec2{0, -1}
	}
	return Hit{T: t, Center: center, Normal: n}, true
}
