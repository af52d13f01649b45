package movement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/popsim/popcore"
)

func TestSegmentPoolAllocAndGet(t *testing.T) {
	pool := NewSegmentPool()
	start := popcore.TileCoord{X: 1, Z: 1}
	end := popcore.TileCoord{X: 10, Z: 10}
	wps := []popcore.WorldCoord{{X: 100, Z: 100}, {X: 200, Z: 200}}

	idx, ok := pool.Alloc(start, end, wps)
	require.True(t, ok)
	require.NotZero(t, idx)
	assert.EqualValues(t, 1, pool.ActiveCount)

	seg := pool.Get(idx)
	require.NotNil(t, seg, "Get returned nil for a freshly allocated segment")
	assert.EqualValues(t, 2, seg.WaypointCount)
	assert.EqualValues(t, 1, seg.RefCount)
}

func TestSegmentPoolGetZeroIsNeverValid(t *testing.T) {
	pool := NewSegmentPool()
	assert.Nil(t, pool.Get(0), "index 0 should never resolve to a segment")
}

func TestSegmentPoolFindExisting(t *testing.T) {
	pool := NewSegmentPool()
	start := popcore.TileCoord{X: 2, Z: 2}
	end := popcore.TileCoord{X: 20, Z: 20}

	_, ok := pool.FindExisting(start, end)
	assert.False(t, ok, "should not find a segment in an empty pool")

	idx, _ := pool.Alloc(start, end, []popcore.WorldCoord{{X: 1, Z: 1}})
	got, ok := pool.FindExisting(start, end)
	require.True(t, ok)
	assert.Equal(t, idx, got)
}

func TestSegmentPoolAddRefAndRelease(t *testing.T) {
	pool := NewSegmentPool()
	idx, _ := pool.Alloc(popcore.TileCoord{X: 1}, popcore.TileCoord{X: 2}, []popcore.WorldCoord{{X: 1}})

	pool.AddRef(idx)
	assert.EqualValues(t, 2, pool.Get(idx).RefCount)

	pool.Release(idx)
	assert.NotNil(t, pool.Get(idx), "segment should still be live after one release")

	pool.Release(idx)
	assert.Nil(t, pool.Get(idx), "segment should be freed once ref count reaches zero")
	assert.EqualValues(t, 0, pool.ActiveCount)
}

func TestSegmentPoolPersistentSurvivesZeroRefs(t *testing.T) {
	pool := NewSegmentPool()
	idx, _ := pool.Alloc(popcore.TileCoord{X: 1}, popcore.TileCoord{X: 2}, []popcore.WorldCoord{{X: 1}})
	pool.slots[idx].Flags |= SegmentPersistent

	pool.Release(idx)
	assert.NotNil(t, pool.Get(idx), "persistent segment should survive a ref count of zero")
}

func TestSegmentPoolExhaustion(t *testing.T) {
	pool := NewSegmentPool()
	for i := 0; i < SegmentPoolCapacity-1; i++ {
		_, ok := pool.Alloc(popcore.TileCoord{X: int16(i)}, popcore.TileCoord{X: int16(i + 1)}, []popcore.WorldCoord{{X: 1}})
		require.True(t, ok, "alloc %d should have succeeded before exhaustion", i)
	}
	_, ok := pool.Alloc(popcore.TileCoord{X: 999}, popcore.TileCoord{X: 998}, []popcore.WorldCoord{{X: 1}})
	assert.False(t, ok, "alloc should fail once every slot is in use")
}

func TestSegmentPoolAllocStoresUpToTwentyThreeWaypoints(t *testing.T) {
	require.Equal(t, 23, MaxWaypoints, "MaxWaypoints must match the spec's 23-waypoint segment capacity")

	pool := NewSegmentPool()
	wps := make([]popcore.WorldCoord, MaxWaypoints)
	for i := range wps {
		wps[i] = popcore.WorldCoord{X: int32(i), Z: int32(i)}
	}

	idx, ok := pool.Alloc(popcore.TileCoord{X: 1}, popcore.TileCoord{X: 2}, wps)
	require.True(t, ok)

	seg := pool.Get(idx)
	require.NotNil(t, seg)
	assert.EqualValues(t, MaxWaypoints, seg.WaypointCount, "a 23-waypoint path should not be truncated to 16")

	last, ok := seg.WaypointWorld(MaxWaypoints - 1)
	require.True(t, ok)
	assert.Equal(t, wps[MaxWaypoints-1], last)
}

func TestRouteSegmentWaypointWorld(t *testing.T) {
	pool := NewSegmentPool()
	idx, _ := pool.Alloc(popcore.TileCoord{}, popcore.TileCoord{}, []popcore.WorldCoord{{X: 10, Z: 20}})
	seg := pool.Get(idx)

	wp, ok := seg.WaypointWorld(0)
	require.True(t, ok)
	assert.Equal(t, int32(10), wp.X)
	assert.Equal(t, int32(20), wp.Z)

	_, ok = seg.WaypointWorld(1)
	assert.False(t, ok, "WaypointWorld(1) should be out of range for a single-waypoint segment")
}
