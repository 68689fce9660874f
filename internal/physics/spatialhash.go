package physics

import "math"

// SpatialHash is a uniform-grid broadphase index over static rectangular
// obstacles. Each obstacle is stored in every cell its box overlaps; a
// reverse index maps obstacle id to those cells so removal is O(1) amortized.
// Destroyed or hidden obstacles are removed eagerly by the owner rather than
// filtered at query time, keeping queries cheap.
//
// Cell size should be around twice the typical obstacle width so a query box
// touches only a handful of cells.
type SpatialHash struct {
	bounds      AABB
	cellSize    float64
	invCellSize float64
	cols, rows  int

	cells [][]*Obstacle

	// where maps obstacle id to the flat cell indices holding it.
	where map[int][]int

	// Query-time dedup: seen[id] == generation means the id was already
	// emitted for the current query.
	seen       map[int]uint64
	generation uint64
}

// NewSpatialHash creates a grid covering bounds with the given cell size.
func NewSpatialHash(bounds AABB, cellSize float64) *SpatialHash {
	if cellSize <= 0 {
		cellSize = 1
	}
	cols := int(math.Ceil(bounds.W / cellSize))
	rows := int(math.Ceil(bounds.H / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &SpatialHash{
		bounds:      bounds,
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]*Obstacle, cols*rows),
		where:       make(map[int][]int),
		seen:        make(map[int]uint64),
	}
}

// Len returns the number of indexed obstacles.
func (h *SpatialHash) Len() int {
	return len(h.where)
}

// Clear removes all obstacles, keeping cell capacity.
func (h *SpatialHash) Clear() {
	for i := range h.cells {
		h.cells[i] = h.cells[i][:0]
	}
	for id := range h.where {
		delete(h.where, id)
	}
	for id := range h.seen {
		delete(h.seen, id)
	}
}

// cellRange returns the clamped cell coordinate range overlapped by a box.
func (h *SpatialHash) cellRange(box AABB) (minCol, maxCol, minRow, maxRow int) {
	minCol = int((box.X - h.bounds.X) * h.invCellSize)
	maxCol = int((box.Right() - h.bounds.X) * h.invCellSize)
	minRow = int((box.Y - h.bounds.Y) * h.invCellSize)
	maxRow = int((box.Bottom() - h.bounds.Y) * h.invCellSize)

	if minCol < 0 {
		minCol = 0
	}
	if maxCol >= h.cols {
		maxCol = h.cols - 1
	}
	if minRow < 0 {
		minRow = 0
	}
	if maxRow >= h.rows {
		maxRow = h.rows - 1
	}
	return
}

// Insert indexes an obstacle into every cell its box overlaps. Inserting an
// id that is already present reindexes it (remove then insert).
func (h *SpatialHash) Insert(o *Obstacle) {
	if o == nil {
		return
	}
	if _, exists := h.where[o.ID]; exists {
		h.Remove(o.ID)
	}

	minCol, maxCol, minRow, maxRow := h.cellRange(o.Box)
	indices := make([]int, 0, (maxCol-minCol+1)*(maxRow-minRow+1))
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			idx := row*h.cols + col
			h.cells[idx] = append(h.cells[idx], o)
			indices = append(indices, idx)
		}
	}
	h.where[o.ID] = indices
}

// Remove unindexes an obstacle by id. Unknown ids are ignored.
func (h *SpatialHash) Remove(id int) {
	indices, ok := h.where[id]
	if !ok {
		return
	}
	for _, idx := range indices {
		cell := h.cells[idx]
		for i, o := range cell {
			if o.ID == id {
				cell[i] = cell[len(cell)-1]
				h.cells[idx] = cell[:len(cell)-1]
				break
			}
		}
	}
	delete(h.where, id)
	delete(h.seen, id)
}

// Query appends every indexed obstacle whose cells overlap the query box to
// out, deduplicated, and returns the extended slice.
func (h *SpatialHash) Query(box AABB, out []*Obstacle) []*Obstacle {
	h.generation++
	minCol, maxCol, minRow, maxRow := h.cellRange(box)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, o := range h.cells[row*h.cols+col] {
				if h.seen[o.ID] == h.generation {
					continue
				}
				h.seen[o.ID] = h.generation
				out = append(out, o)
			}
		}
	}
	return out
}
