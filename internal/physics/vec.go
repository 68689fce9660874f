// Package physics implements the continuous collision detection core for the
// breaker simulation: swept circle-vs-rectangle geometry, a uniform-grid
// broadphase, paddle collision resolution, and the substepped time-of-impact
// solver. The package contains no game rules and no external dependencies, so
// the solver stays pure and testable; callers own all state and apply side
// effects (brick damage, scoring) from the emitted collision events.
package physics

import "math"

// Vec2 is a 2D vector in pixel space. Y grows downward, matching screen
// coordinates, so "up" is negative Y throughout the package.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Length returns the Euclidean length of v.
func (v Vec2) Length() float64 {
	return math.Hypot(v.X, v.Y)
}

// LengthSq returns the squared length of v, avoiding the square root.
func (v Vec2) LengthSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

// IsZero reports whether v is shorter than the given epsilon.
func (v Vec2) IsZero(eps float64) bool {
	return v.LengthSq() < eps*eps
}

// Normalized returns v scaled to unit length. Near-zero vectors cannot be
// normalized; ok is false and the zero vector is returned so callers can
// substitute their own fallback direction.
func (v Vec2) Normalized() (Vec2, bool) {
	l := v.Length()
	if l < 1e-12 {
		return Vec2{}, false
	}
	return Vec2{v.X / l, v.Y / l}, true
}

// Reflect mirrors v across the plane with unit normal n: v - 2(v·n)n.
func (v Vec2) Reflect(n Vec2) Vec2 {
	d := 2 * v.Dot(n)
	return Vec2{v.X - d*n.X, v.Y - d*n.Y}
}
