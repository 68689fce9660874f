package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHash() *SpatialHash {
	return NewSpatialHash(NewAABB(0, 0, 800, 600), 40)
}

func brickAt(id int, x, y float64) *Obstacle {
	return &Obstacle{ID: id, Kind: KindBrick, Box: NewAABB(x, y, 20, 10), Visible: true}
}

func TestSpatialHashInsertQuery(t *testing.T) {
	h := testHash()
	h.Insert(brickAt(1, 100, 100))
	h.Insert(brickAt(2, 300, 100))

	got := h.Query(NewAABB(90, 90, 40, 40), nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)
	assert.Equal(t, 2, h.Len())
}

func TestSpatialHashQueryDeduplicates(t *testing.T) {
	h := testHash()
	// Spans several cells; a query covering all of them must report it
	// once.
	wide := &Obstacle{ID: 1, Kind: KindBrick, Box: NewAABB(20, 20, 200, 10), Visible: true}
	h.Insert(wide)

	got := h.Query(NewAABB(0, 0, 400, 400), nil)
	assert.Len(t, got, 1)
}

func TestSpatialHashQueryAppends(t *testing.T) {
	h := testHash()
	h.Insert(brickAt(1, 100, 100))

	buf := make([]*Obstacle, 0, 8)
	got := h.Query(NewAABB(90, 90, 40, 40), buf)
	require.Len(t, got, 1)

	// Reuse across queries without stale results.
	got = h.Query(NewAABB(90, 90, 40, 40), got[:0])
	assert.Len(t, got, 1)
}

func TestSpatialHashRemove(t *testing.T) {
	h := testHash()
	h.Insert(brickAt(1, 100, 100))
	h.Insert(brickAt(2, 110, 100))

	h.Remove(1)
	got := h.Query(NewAABB(90, 90, 60, 40), nil)
	require.Len(t, got, 1)
	assert.Equal(t, 2, got[0].ID)
	assert.Equal(t, 1, h.Len())

	// Unknown id is a no-op.
	h.Remove(99)
	assert.Equal(t, 1, h.Len())
}

func TestSpatialHashReinsertMoves(t *testing.T) {
	h := testHash()
	o := brickAt(1, 100, 100)
	h.Insert(o)

	o.Box = NewAABB(500, 300, 20, 10)
	h.Insert(o)

	assert.Empty(t, h.Query(NewAABB(90, 90, 40, 40), nil))
	assert.Len(t, h.Query(NewAABB(490, 290, 40, 40), nil), 1)
	assert.Equal(t, 1, h.Len())
}

func TestSpatialHashClear(t *testing.T) {
	h := testHash()
	h.Insert(brickAt(1, 100, 100))
	h.Insert(brickAt(2, 300, 100))

	h.Clear()
	assert.Zero(t, h.Len())
	assert.Empty(t, h.Query(NewAABB(0, 0, 800, 600), nil))
}

func TestSpatialHashOutOfBoundsQueryClamped(t *testing.T) {
	h := testHash()
	h.Insert(brickAt(1, 0, 0))

	// Query box partly outside the grid must not panic and still finds
	// edge obstacles.
	got := h.Query(NewAABB(-100, -100, 150, 150), nil)
	assert.Len(t, got, 1)
}

func TestBroadphaseMergesDynamic(t *testing.T) {
	h := testHash()
	h.Insert(brickAt(1, 100, 100))

	bp := NewBroadphase(h)
	boss := &Obstacle{ID: 900, Kind: KindBoss, Box: NewAABB(80, 40, 60, 30), Visible: true}
	hidden := &Obstacle{ID: 901, Kind: KindEnemy, Box: NewAABB(80, 40, 10, 10), Visible: false}
	bp.SetDynamic([]*Obstacle{boss, hidden})

	got := bp.Query(NewAABB(70, 30, 80, 90), nil)
	require.Len(t, got, 2)
	ids := []int{got[0].ID, got[1].ID}
	assert.ElementsMatch(t, []int{1, 900}, ids)
}

func TestBroadphaseDynamicOutsideBounds(t *testing.T) {
	bp := NewBroadphase(testHash())
	boss := &Obstacle{ID: 900, Kind: KindBoss, Box: NewAABB(500, 40, 60, 30), Visible: true}
	bp.SetDynamic([]*Obstacle{boss})

	assert.Empty(t, bp.Query(NewAABB(0, 0, 100, 100), nil))
}
