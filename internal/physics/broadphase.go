package physics

// Broadphase merges the spatial hash's static-obstacle index with a linear
// scan over dynamic obstacles (bosses, enemies). Dynamic obstacles move every
// tick; reindexing a handful of fast, large hitboxes each frame costs more
// than scanning them, so they deliberately bypass the grid.
//
// The combined result may contain duplicates in pathological setups; the
// solver's earliest-hit selection makes duplicates harmless.
type Broadphase struct {
	hash    *SpatialHash
	dynamic []*Obstacle
}

// NewBroadphase creates a provider over the given spatial hash.
func NewBroadphase(hash *SpatialHash) *Broadphase {
	return &Broadphase{hash: hash}
}

// Hash exposes the underlying spatial hash for insert/remove bookkeeping.
func (b *Broadphase) Hash() *SpatialHash {
	return b.hash
}

// SetDynamic replaces the dynamic obstacle set scanned on every query. The
// slice is retained, not copied; the owner must not mutate it mid-tick.
func (b *Broadphase) SetDynamic(obs []*Obstacle) {
	b.dynamic = obs
}

// Query collects candidates overlapping the swept bounds: hash hits first,
// then visible dynamic obstacles that pass a plain AABB overlap test.
func (b *Broadphase) Query(bounds AABB, out []*Obstacle) []*Obstacle {
	if b.hash != nil {
		out = b.hash.Query(bounds, out)
	}
	for _, o := range b.dynamic {
		if o == nil || !o.Visible || o.Kind == KindBrick {
			continue
		}
		if o.Box.Overlaps(bounds) {
			out = append(out, o)
		}
	}
	return out
}
