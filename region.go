package popcore

// RegionCell is one cell of the RegionGridSize x RegionGridSize region map.
// TerrainType indexes the terrain flag table (walkability/cost per type);
// RegionID groups cells into connected walkability blobs, assigned lazily
// the first time a cell is touched by SetTile; FlagsHigh
// carries auxiliary bits such as CellHasBuilding.
type RegionCell struct {
	TerrainType uint8
	RegionID    uint16
	FlagsHigh   uint8
}

// RegionMap is the 128x128 grid of RegionCell backing walkability queries
// for the movement package, plus a per-terrain-type walkability table.
type RegionMap struct {
	cells      [RegionGridSize][RegionGridSize]RegionCell
	walkable   [256]bool
	nextRegion uint16
}

// NewRegionMap returns a RegionMap with every terrain type walkable by
// default (terrain type 0) and region ids unassigned.
func NewRegionMap() *RegionMap {
	rm := &RegionMap{nextRegion: 1}
	for i := range rm.walkable {
		rm.walkable[i] = true
	}
	return rm
}

// SetTerrainFlags marks terrainType as walkable or not: it is walkable when
// bit 1 (0x02) of flags is set. A terrain type with flags 0x00 is
// unwalkable (matches the original's water convention: type 1, flags 0x00).
func (rm *RegionMap) SetTerrainFlags(terrainType uint8, flags uint8) {
	rm.walkable[terrainType] = flags&0x02 != 0
}

// Cell returns the RegionCell at the given cell-space coordinates, wrapping
// both axes into the grid.
func (rm *RegionMap) Cell(x, z int16) *RegionCell {
	cx := wrapGrid(x)
	cz := wrapGrid(z)
	return &rm.cells[cz][cx]
}

func wrapGrid(v int16) int16 {
	v %= RegionGridSize
	if v < 0 {
		v += RegionGridSize
	}
	return v
}

// SetTile sets the terrain type and, if the cell has no region id yet
// (id 0), stamps a fresh lazily-allocated region id, mirroring the
// incremental region-painting idiom used when terrain is authored
// piecemeal instead of flood-filled up front.
func (rm *RegionMap) SetTile(tileX, tileY int16, terrainType uint8) {
	c := rm.Cell(tileX/(CellSize/TileSize), tileY/(CellSize/TileSize))
	c.TerrainType = terrainType
	if c.RegionID == 0 {
		c.RegionID = rm.nextRegion
		rm.nextRegion++
	}
}

// IsWalkableCell reports whether the cell at (x, z) is passable for
// pathfinding: a cell is walkable when its terrain type's flag is set and
// it carries no building.
func (rm *RegionMap) IsWalkableCell(x, z int16) bool {
	c := rm.Cell(x, z)
	if c.FlagsHigh&CellHasBuilding != 0 {
		return false
	}
	return rm.walkable[c.TerrainType]
}

// IsWalkableTile reports whether the tile at tile-space (x, z) is passable,
// by consulting the cell that contains it.
func (rm *RegionMap) IsWalkableTile(t TileCoord) bool {
	cell := t.ToCell()
	return rm.IsWalkableCell(cell.X, cell.Z)
}

// RegionAt returns the region id of the cell containing tile, masked to its
// 10 effective bits.
func (rm *RegionMap) RegionAt(tile TileCoord) uint16 {
	c := tile.ToCell()
	return rm.Cell(c.X, c.Z).RegionID & RegionIDMask
}

// SameRegion reports whether two tiles fall in cells sharing a region id,
// i.e. a direct walk between them needs no pathfinder call. Region id 0 is
// the default for untouched cells, so two cells neither of which has been
// explicitly assigned a region both read as region 0 and compare equal —
// only an explicit SetCellRegion partitions the map.
func (rm *RegionMap) SameRegion(a, b TileCoord) bool {
	return rm.RegionAt(a) == rm.RegionAt(b)
}

// SetCellRegion directly stamps the region id of the cell containing tile,
// bypassing the lazy-allocation path SetTile uses for terrain painting.
func (rm *RegionMap) SetCellRegion(tile TileCoord, regionID uint16) {
	c := tile.ToCell()
	rm.Cell(c.X, c.Z).RegionID = regionID
}

// spiralOffsets enumerates (dx, dz) offsets in expanding ring order around
// the origin, starting with (0, 0). radius bounds how many rings are
// produced. The movement package's walkability snap uses its own copy,
// spiralSearchOffsets in movement/route.go.
func spiralOffsets(radius int32) [][2]int32 {
	offsets := make([][2]int32, 0, (2*radius+1)*(2*radius+1))
	offsets = append(offsets, [2]int32{0, 0})
	for r := int32(1); r <= radius; r++ {
		for x := -r; x <= r; x++ {
			offsets = append(offsets, [2]int32{x, -r}, [2]int32{x, r})
		}
		for z := -r + 1; z <= r-1; z++ {
			offsets = append(offsets, [2]int32{-r, z}, [2]int32{r, z})
		}
	}
	return offsets
}
