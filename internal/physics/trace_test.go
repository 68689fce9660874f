package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceAABBFaceHit(t *testing.T) {
	box := NewAABB(100, 90, 20, 20)

	hit, ok := TraceAABB(Vec2{80, 100}, Vec2{110, 100}, box, 5)
	require.True(t, ok)
	assert.InDelta(t, 0.5, hit.T, 1e-9)
	assert.InDelta(t, 95.0, hit.Center.X, 1e-9)
	assert.Equal(t, Vec2{-1, 0}, hit.Normal)
}

func TestTraceAABBTopFace(t *testing.T) {
	box := NewAABB(90, 110, 20, 20)

	hit, ok := TraceAABB(Vec2{100, 100}, Vec2{100, 105}, box, 6)
	require.True(t, ok)
	assert.InDelta(t, 0.8, hit.T, 1e-9)
	assert.InDelta(t, 104.0, hit.Center.Y, 1e-9)
	assert.Equal(t, Vec2{0, -1}, hit.Normal)
}

func TestTraceAABBMiss(t *testing.T) {
	box := NewAABB(100, 90, 20, 20)

	tests := []struct {
		name       string
		start, end Vec2
	}{
		{"passes beside", Vec2{80, 50}, Vec2{140, 50}},
		{"stops short", Vec2{80, 100}, Vec2{90, 100}},
		{"moving away", Vec2{80, 100}, Vec2{40, 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := TraceAABB(tt.start, tt.end, box, 5)
			assert.False(t, ok)
		})
	}
}

// A segment starting already inside the expanded box reports no hit: overlap
// resolution is the discrete resolver's job, not the sweep's.
func TestTraceAABBInteriorStartIsMiss(t *testing.T) {
	box := NewAABB(100, 90, 20, 20)

	_, ok := TraceAABB(Vec2{110, 100}, Vec2{150, 100}, box, 5)
	assert.False(t, ok)
}

func TestTraceCircleHeadOn(t *testing.T) {
	hit, ok := TraceCircle(Vec2{80, 100}, Vec2{120, 100}, Vec2{100, 100}, 10)
	require.True(t, ok)
	assert.InDelta(t, 0.25, hit.T, 1e-9)
	assert.InDelta(t, 90.0, hit.Center.X, 1e-9)
	assert.InDelta(t, -1.0, hit.Normal.X, 1e-9)
	assert.InDelta(t, 0.0, hit.Normal.Y, 1e-9)
}

func TestTraceCircleMiss(t *testing.T) {
	// Passes 11 px above a radius-10 circle.
	_, ok := TraceCircle(Vec2{80, 89}, Vec2{120, 89}, Vec2{100, 100}, 10)
	assert.False(t, ok)

	// Moving away from the circle.
	_, ok = TraceCircle(Vec2{120, 100}, Vec2{160, 100}, Vec2{100, 100}, 10)
	assert.False(t, ok)
}

func TestTraceCircleZeroLengthInside(t *testing.T) {
	p := Vec2{103, 100}

	hit, ok := TraceCircle(p, p, Vec2{100, 100}, 10)
	require.True(t, ok)
	assert.Zero(t, hit.T)
	assert.InDelta(t, 1.0, hit.Normal.X, 1e-9)
}

func TestTraceCircleZeroLengthOutside(t *testing.T) {
	p := Vec2{120, 100}

	_, ok := TraceCircle(p, p, Vec2{100, 100}, 10)
	assert.False(t, ok)
}

func TestTraceCircleNormalIsUnit(t *testing.T) {
	hit, ok := TraceCircle(Vec2{80, 94}, Vec2{120, 98}, Vec2{100, 100}, 10)
	require.True(t, ok)
	assert.InDelta(t, 1.0, hit.Normal.Length(), 1e-9)
}
