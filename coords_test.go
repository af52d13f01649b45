package popcore

import "testing"

func TestWorldToTileRoundtrip(t *testing.T) {
	w := WorldCoord{X: 0x1234, Z: 0x5678}
	tile := w.ToTile()
	back := tile.ToWorld()

	// ToWorld returns the tile's center, so it should land within one
	// tile of the original point and re-derive the same tile.
	if back.ToTile() != tile {
		t.Fatalf("tile center %v does not resolve back to tile %v", back, tile)
	}
}

func TestWorldToTileOrigin(t *testing.T) {
	got := WorldCoord{X: 0, Z: 0}.ToTile()
	if got != (TileCoord{X: 0, Z: 0}) {
		t.Fatalf("got %v, want origin tile", got)
	}
}

func TestToroidalDeltaShortestPath(t *testing.T) {
	// Crossing the wrap boundary: going from near WorldSize to near 0
	// should report a small positive delta, not a near-WorldSize one.
	got := ToroidalDelta(WorldSize-10, 10)
	if got != 20 {
		t.Fatalf("got %d, want 20", got)
	}
}

func TestToroidalDeltaWithinThreshold(t *testing.T) {
	got := ToroidalDelta(100, 200)
	if got != 100 {
		t.Fatalf("got %d, want 100 (no wrap needed)", got)
	}
}

func TestCellToWorldRoundtrip(t *testing.T) {
	pos := CellToWorld(5, 9, RegionGridSize)
	gotX, gotY := WorldToCell(pos, RegionGridSize)
	if gotX != 5 || gotY != 9 {
		t.Fatalf("got (%d,%d), want (5,9)", gotX, gotY)
	}
}

func TestWorldToRenderPosKnownShift(t *testing.T) {
	// bevyX = (0x20>>8)/2 + 0.5 = 0.5, bevyZ = (0x40>>8)/2 + 0.5 = 0.5,
	// with loc values below 0x100 so the >>8 term is 0.
	pos := WorldCoord{X: 0x20, Z: 0x40}
	cellX, cellY := WorldToRenderPos(pos, 128)
	if cellX != 0.5 {
		t.Fatalf("cellX = %v, want 0.5", cellX)
	}
	if cellY != 127-0.5 {
		t.Fatalf("cellY = %v, want %v", cellY, 127-0.5)
	}
}

func TestWorldToRenderPosRoundtrip(t *testing.T) {
	pos := WorldCoord{X: 0x3400, Z: 0x5600}
	cellX, cellY := WorldToRenderPos(pos, 128)
	back := RenderPosToWorld(cellX, cellY, 128)

	if back.X != pos.X || back.Z != pos.Z {
		t.Fatalf("roundtrip = %v, want %v", back, pos)
	}
}

func TestGPUToCellWithoutShift(t *testing.T) {
	cellX, cellY := GPUToCell(10, 20, 1, 0, 0, 128)
	if cellX != 20 {
		t.Fatalf("cellX = %d, want 20", cellX)
	}
	if cellY != 128-1-10 {
		t.Fatalf("cellY = %d, want %d", cellY, 128-1-10)
	}
}

func TestGPUToCellAppliesShiftBeforeSwap(t *testing.T) {
	cellX, cellY := GPUToCell(8, 18, 1, 2, 2, 128)
	if cellX != 20 {
		t.Fatalf("cellX = %d, want 20", cellX)
	}
	if cellY != 128-1-10 {
		t.Fatalf("cellY = %d, want %d", cellY, 128-1-10)
	}
}
