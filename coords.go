package popcore

// WorldCoord is a raw world-space position on the toroidal WorldSize grid.
type WorldCoord struct {
	X, Z int32
}

// TileCoord addresses a 256-unit tile; values run 0..255 per axis
// (WorldSize / TileSize tiles), and ToTile only ever yields the even ones.
type TileCoord struct {
	X, Z int16
}

// PathNode addresses a single cell of the shared pathfinder visited bitmap
// and region-map grid, one quarter the resolution of TileCoord (CellSize).
type PathNode struct {
	X, Z int16
}

// ToTile converts a world coordinate down to the nearest even tile at or
// below it, i.e. the first of the two tiles of its cell.
func (w WorldCoord) ToTile() TileCoord {
	return TileCoord{
		X: int16(wrapCoord(w.X)/TileSize) &^ 1,
		Z: int16(wrapCoord(w.Z)/TileSize) &^ 1,
	}
}

// ToWorld converts a tile coordinate to the world position of its center.
func (t TileCoord) ToWorld() WorldCoord {
	return WorldCoord{
		X: int32(t.X)*TileSize + TileSize/2,
		Z: int32(t.Z)*TileSize + TileSize/2,
	}
}

// ToCell converts a tile coordinate to its containing region-map cell.
func (t TileCoord) ToCell() PathNode {
	return PathNode{
		X: int16(wrapTile(int32(t.X)) / (CellSize / TileSize)),
		Z: int16(wrapTile(int32(t.Z)) / (CellSize / TileSize)),
	}
}

// wrapTile wraps a tile index into [0, WorldSize/TileSize).
func wrapTile(v int32) int32 {
	const tilesPerAxis = WorldSize / TileSize
	v %= tilesPerAxis
	if v < 0 {
		v += tilesPerAxis
	}
	return v
}

// ToroidalDelta returns b-a adjusted for wraparound: if the raw difference
// exceeds WorldWrapThresh in magnitude, the shorter path around the torus
// is returned instead.
func ToroidalDelta(a, b int32) int32 {
	d := b - a
	if d > WorldWrapThresh {
		d -= WorldSize
	} else if d < -WorldWrapThresh {
		d += WorldSize
	}
	return d
}

// CellToWorld converts a region/cell-space coordinate back to the world
// position of that cell's center. n is the grid's cells-per-axis (normally
// RegionGridSize).
func CellToWorld(cellX, cellY int32, n int32) WorldCoord {
	_ = n
	return WorldCoord{
		X: cellX*CellSize + CellSize/2,
		Z: cellY*CellSize + CellSize/2,
	}
}

// WorldToCell converts a world position to region/cell-space coordinates
// for a grid with n cells per axis.
func WorldToCell(pos WorldCoord, n int32) (cellX, cellY int32) {
	_ = n
	cellX = wrapCoord(pos.X) / CellSize
	cellY = wrapCoord(pos.Z) / CellSize
	return
}

// WorldToRenderPos converts a world position to the (cellX, cellY) float
// position used by the renderer's landscape grid: the landscape buffer
// swaps and flips axes relative to world space (world X maps to a flipped
// cellY, world Z maps to cellX), matching the extraction that feeds the
// render cache. n is the landscape size (normally 128).
func WorldToRenderPos(pos WorldCoord, n float32) (cellX, cellY float32) {
	bevyX := float32(uint16(pos.X)>>8)/2 + 0.5
	bevyZ := float32(uint16(pos.Z)>>8)/2 + 0.5
	cellX = bevyZ
	cellY = (n - 1) - bevyX
	return
}

// RenderPosToWorld is the inverse of WorldToRenderPos.
func RenderPosToWorld(cellX, cellY, n float32) WorldCoord {
	bevyX := (n - 1) - cellY
	bevyZ := cellX
	locX := uint16((bevyX - 0.5) * 2)
	locZ := uint16((bevyZ - 0.5) * 2)
	return WorldCoord{X: int32(int16(locX << 8)), Z: int32(int16(locZ << 8))}
}

// GPUToCell maps a render/landscape-heightmap coordinate (gx, gy) into
// region-map cell space. The landscape buffer is authored with swapped and
// flipped axes relative to world space: cell_x comes from the buffer's z
// axis, and cell_y is the buffer's x axis measured from the far edge. step
// is the heightmap's sample stride, and shiftX/shiftY offset the sampled
// coordinate before the swap (both default to 0 for an unshifted buffer).
func GPUToCell(gx, gy, step, shiftX, shiftY, w int32) (cellX, cellY int32) {
	sx := (gx + shiftX) / step
	sy := (gy + shiftY) / step
	cellX = sy
	cellY = w - 1 - sx
	return
}
