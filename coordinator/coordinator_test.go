package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popsim/popcore"
	"github.com/popsim/popcore/unit"
)

func tileAtCell(c *Coordinator, cellX, cellY int) popcore.TileCoord {
	world := popcore.RenderPosToWorld(float32(cellX)+0.5, float32(cellY)+0.5, 128)
	return world.ToTile()
}

func TestLoadLevelFiltersNonPersonAndZeroLocationRecords(t *testing.T) {
	c := New()
	var height [128][128]uint16
	for y := range height {
		for x := range height[y] {
			height[y][x] = 1
		}
	}

	raws := []UnitRaw{
		{ModelType: unit.ModelBuilding, LocX: 0x1000, LocY: 0x1000},
		{ModelType: unit.ModelPerson, LocX: 0, LocY: 0},
		{ModelType: unit.ModelPerson, Subtype: 2, TribeIndex: 1, LocX: 0x1000, LocY: 0x1000, Angle: 0x100},
	}
	c.LoadLevel(raws, height, 128)

	require.Len(t, c.Units, 1)
	got := c.Units[0]
	assert.EqualValues(t, 2, got.Subtype)
	assert.EqualValues(t, 1, got.TribeIndex)
	assert.Equal(t, unit.StateIdle, got.State)
	assert.True(t, got.Alive, "loaded unit should be alive")
	assert.Equal(t, got.MaxHealth, got.Health)
	assert.NotZero(t, got.Health)
}

func TestLoadLevelMarksZeroHeightAsWater(t *testing.T) {
	c := New()
	var height [128][128]uint16
	height[10][20] = 0

	c.LoadLevel(nil, height, 128)

	assert.False(t, c.RegionMap().IsWalkableTile(tileAtCell(c, 20, 10)), "a zero-height cell should be marked unwalkable water")
}

func TestLoadLevelAllLandStaysWalkable(t *testing.T) {
	c := New()
	var height [128][128]uint16
	for y := range height {
		for x := range height[y] {
			height[y][x] = 5
		}
	}
	c.LoadLevel(nil, height, 128)

	assert.True(t, c.RegionMap().IsWalkableTile(tileAtCell(c, 20, 10)), "an all-land heightmap should leave every cell walkable")
}
