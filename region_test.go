package popcore

import "testing"

func TestNewRegionMapDefaultsWalkable(t *testing.T) {
	rm := NewRegionMap()
	if !rm.IsWalkableCell(0, 0) {
		t.Fatal("a freshly created region map should be walkable everywhere")
	}
}

func TestSetTerrainFlagsMarksUnwalkable(t *testing.T) {
	rm := NewRegionMap()
	rm.SetTerrainFlags(1, 0x00)
	rm.Cell(3, 4).TerrainType = 1

	if rm.IsWalkableCell(3, 4) {
		t.Fatal("terrain type 1 with flags 0x00 should be unwalkable")
	}
	if !rm.IsWalkableCell(3, 5) {
		t.Fatal("untouched neighbor cell should remain walkable")
	}
}

func TestIsWalkableCellBlockedByBuilding(t *testing.T) {
	rm := NewRegionMap()
	rm.Cell(1, 1).FlagsHigh |= CellHasBuilding
	if rm.IsWalkableCell(1, 1) {
		t.Fatal("a cell carrying CellHasBuilding should be unwalkable regardless of terrain")
	}
}

func TestCellWrapsGridCoordinates(t *testing.T) {
	rm := NewRegionMap()
	rm.Cell(0, 0).TerrainType = 7
	if rm.Cell(RegionGridSize, 0).TerrainType != 7 {
		t.Fatal("cell lookup should wrap x into the grid")
	}
	if rm.Cell(-RegionGridSize, 0).TerrainType != 7 {
		t.Fatal("cell lookup should wrap negative x into the grid")
	}
}

func TestSetTileAllocatesRegionIDOnce(t *testing.T) {
	rm := NewRegionMap()
	rm.SetTile(0, 0, 2)
	first := rm.Cell(0, 0).RegionID
	if first == 0 {
		t.Fatal("SetTile should stamp a nonzero region id on first touch")
	}

	rm.SetTile(0, 0, 3)
	if rm.Cell(0, 0).RegionID != first {
		t.Fatal("a second SetTile on an already-assigned cell should not reassign the region id")
	}
	if rm.Cell(0, 0).TerrainType != 3 {
		t.Fatal("SetTile should still update terrain type on repeat calls")
	}
}

func TestSameRegionDefaultsEqualWhenUntouched(t *testing.T) {
	rm := NewRegionMap()
	a := TileCoord{X: 1, Z: 1}
	b := TileCoord{X: 100, Z: 100}
	if !rm.SameRegion(a, b) {
		t.Fatal("two untouched cells both default to region 0 and should compare equal")
	}
}

func TestSameRegionDiffersAfterExplicitPartition(t *testing.T) {
	rm := NewRegionMap()
	a := TileCoord{X: 1, Z: 1}
	b := TileCoord{X: 100, Z: 100}
	rm.SetCellRegion(a, 1)
	rm.SetCellRegion(b, 2)
	if rm.SameRegion(a, b) {
		t.Fatal("cells stamped with different region ids should not be SameRegion")
	}
}

func TestRegionAtMasksRegionIDTo10Bits(t *testing.T) {
	rm := NewRegionMap()
	a := TileCoord{X: 1, Z: 1}
	rm.SetCellRegion(a, 0x7C01) // low 10 bits are 0x001, high bits should be masked off

	if got := rm.RegionAt(a); got != 0x001 {
		t.Fatalf("RegionAt = 0x%x, want 0x001", got)
	}
}

func TestSameRegionComparesMaskedRegionIDs(t *testing.T) {
	rm := NewRegionMap()
	a := TileCoord{X: 1, Z: 1}
	b := TileCoord{X: 100, Z: 100}
	rm.SetCellRegion(a, 0x0001)
	rm.SetCellRegion(b, 0x0401) // differs from a only above bit 10

	if !rm.SameRegion(a, b) {
		t.Fatal("region ids equal modulo the 10-bit mask should compare SameRegion")
	}
}

func TestSpiralOffsetsStartsAtOriginAndExpands(t *testing.T) {
	offs := spiralOffsets(1)
	if offs[0] != ([2]int32{0, 0}) {
		t.Fatalf("first offset = %v, want origin", offs[0])
	}
	want := 1 + 8 // origin + full ring at radius 1 (3x3 minus center)
	if len(offs) != want {
		t.Fatalf("len(offs) = %d, want %d", len(offs), want)
	}
}
