package physics

import "math"

// AABB is an axis-aligned bounding box in pixel space, stored as top-left
// corner plus extents.
type AABB struct {
	X, Y float64 // Top-left corner
	W, H float64 // Width and height
}

// NewAABB creates an AABB from position and dimensions.
func NewAABB(x, y, w, h float64) AABB {
	return AABB{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b AABB) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b AABB) Bottom() float64 {
	return b.Y + b.H
}

// Center returns the box center point.
func (b AABB) Center() Vec2 {
	return Vec2{b.X + b.W/2, b.Y + b.H/2}
}

// MinDim returns the smaller of width and height.
func (b AABB) MinDim() float64 {
	return math.Min(b.W, b.H)
}

// Expand returns the box grown by r on every side (Minkowski sum with a
// circle of radius r, as far as slab tests are concerned).
func (b AABB) Expand(r float64) AABB {
	return AABB{X: b.X - r, Y: b.Y - r, W: b.W + 2*r, H: b.H + 2*r}
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (b AABB) Overlaps(o AABB) bool {
	if b.X >= o.Right() || o.X >= b.Right() {
		return false
	}
	if b.Y >= o.Bottom() || o.Y >= b.Bottom() {
		return false
	}
	return true
}

// Contains reports whether the point lies inside the box.
func (b AABB) Contains(p Vec2) bool {
	return p.X >= b.X && p.X < b.Right() && p.Y >= b.Y && p.Y < b.Bottom()
}

// ClosestPoint returns the point on or inside the box nearest to p.
func (b AABB) ClosestPoint(p Vec2) Vec2 {
	return Vec2{
		X: clamp(p.X, b.X, b.Right()),
		Y: clamp(p.Y, b.Y, b.Bottom()),
	}
}

// SweptBounds returns the box covering a circle of the given radius at both
// endpoints of a motion segment. Used to build broadphase queries.
func SweptBounds(start, end Vec2, radius float64) AABB {
	minX := math.Min(start.X, end.X) - radius
	minY := math.Min(start.Y, end.Y) - radius
	maxX := math.Max(start.X, end.X) + radius
	maxY := math.Max(start.Y, end.Y) + radius
	return AABB{X: minX, Y: minY, W: maxX - minX, H: maxY - minY}
}

// clamp restricts a value to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
