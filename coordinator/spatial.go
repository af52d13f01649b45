package coordinator

import "github.com/popsim/popcore"

// spatialCellSize is the world-unit width of one UnitGrid bucket, chosen to
// match unit.CombatDetectRange so a 3x3 neighborhood query always covers
// every unit within detection range of a query point.
const spatialCellSize = 512

const cellsPerAxis = popcore.WorldSize / spatialCellSize

// gridItem is one occupied-cell record in UnitGrid's flat pool, chained by
// next into a singly-linked bucket list; next == 0 terminates a chain.
type gridItem struct {
	unitIndex int
	next      int
}

// UnitGrid buckets live unit indices by toroidal world cell, rebuilt once
// per tick from scratch, so detectCombat's nearest-enemy query touches
// only nearby units instead of scanning the full unit list. Adapted from
// the pool-plus-hash-buckets shape of a 2D proximity grid, generalized
// from floating-point cell coordinates to this module's wrapped integer
// world grid.
type UnitGrid struct {
	buckets map[int32]int
	pool    []gridItem
}

func newUnitGrid(capacity int) *UnitGrid {
	return &UnitGrid{
		buckets: make(map[int32]int, capacity),
		pool:    make([]gridItem, 0, capacity),
	}
}

func wrapCell(v int32) int32 {
	v %= cellsPerAxis
	if v < 0 {
		v += cellsPerAxis
	}
	return v
}

func cellOf(pos popcore.WorldCoord) (int32, int32) {
	return wrapCell(pos.X / spatialCellSize), wrapCell(pos.Z / spatialCellSize)
}

func cellKey(cx, cz int32) int32 {
	return cz*cellsPerAxis + cx
}

// insert records unitIndex at the cell containing pos.
func (g *UnitGrid) insert(unitIndex int, pos popcore.WorldCoord) {
	cx, cz := cellOf(pos)
	key := cellKey(cx, cz)
	g.pool = append(g.pool, gridItem{unitIndex: unitIndex, next: g.buckets[key]})
	g.buckets[key] = len(g.pool) // 1-based: 0 means "bucket empty"
}

// queryNeighborhood appends every unit index bucketed within one cell of
// pos (a 3x3 block) to out and returns the result.
func (g *UnitGrid) queryNeighborhood(pos popcore.WorldCoord, out []int) []int {
	cx, cz := cellOf(pos)
	for dz := int32(-1); dz <= 1; dz++ {
		for dx := int32(-1); dx <= 1; dx++ {
			key := cellKey(wrapCell(cx+dx), wrapCell(cz+dz))
			idx := g.buckets[key]
			for idx != 0 {
				item := g.pool[idx-1]
				out = append(out, item.unitIndex)
				idx = item.next
			}
		}
	}
	return out
}

// buildUnitGrid indexes every alive unit in c.Units by world position.
func (c *Coordinator) buildUnitGrid() *UnitGrid {
	g := newUnitGrid(len(c.Units))
	for i, u := range c.Units {
		if u.Alive {
			g.insert(i, u.Movement.Position)
		}
	}
	return g
}
