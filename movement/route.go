package movement

import "github.com/popsim/popcore"

// AdjustTargetForWalkability snaps an unwalkable target tile onto the
// nearest walkable one via an expanding spiral scan, skipping tiles the
// used-targets cache already assigned this tick so a simultaneous group
// order doesn't pile every unit onto one tile. Returns the original target
// unchanged if it is already walkable.
func AdjustTargetForWalkability(rm *popcore.RegionMap, used *UsedTargetsCache, target popcore.TileCoord) popcore.TileCoord {
	if rm.IsWalkableTile(target) {
		return target
	}

	for i, off := range spiralSearchOffsets(popcore.MaxWalkabilitySearch) {
		if i > popcore.MaxWalkabilitySearch {
			break
		}
		cand := popcore.TileCoord{X: target.X + int16(off[0]*2), Z: target.Z + int16(off[1]*2)}
		if cand.X < 0 || cand.X > 254 || cand.Z < 0 || cand.Z > 254 {
			continue
		}
		if rm.IsWalkableTile(cand) && !used.Contains(cand) {
			used.Record(cand)
			return cand
		}
	}

	used.Record(target)
	return target
}

func spiralSearchOffsets(radius int32) [][2]int32 {
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

// RouteTableLookup is the 4-tier route dispatcher: a same-region pair
// walks directly with no segment, an endpoint pair already computed by
// another unit this level reuses that segment, a pair recently proven
// unreachable short-circuits to NoRoute without re-running the
// pathfinder, and anything else falls through to the pathfinder with a
// freshly allocated segment on success.
//
// Diverges from the traced original by one deliberate step: it takes the
// failure cache mutably and records a Tier-4 pathfinder miss itself,
// instead of leaving that to the caller. The dispatcher is the only place
// that knows a miss occurred, so recording it here is the natural owner
// of that bookkeeping.
func RouteTableLookup(rm *popcore.RegionMap, pool *SegmentPool, failures *FailureCache, start, end popcore.TileCoord) popcore.RouteResult {
	if rm.SameRegion(start, end) {
		return popcore.RouteResult{Kind: popcore.RouteDirectWalk}
	}

	if idx, ok := pool.FindExisting(start, end); ok {
		pool.AddRef(idx)
		return popcore.RouteResult{Kind: popcore.RouteSegment, Segment: idx}
	}

	if failures.Contains(start, end) {
		return popcore.RouteResult{Kind: popcore.RouteNoRoute}
	}

	result := Pathfind(rm, start, end)
	if result.Kind != popcore.PathFound {
		failures.RecordFailure(start, end)
		return popcore.RouteResult{Kind: popcore.RouteNoRoute}
	}

	idx, ok := pool.Alloc(start, end, result.Waypoints)
	if !ok {
		failures.RecordFailure(start, end)
		return popcore.RouteResult{Kind: popcore.RouteNoRoute}
	}
	return popcore.RouteResult{Kind: popcore.RouteSegment, Segment: idx}
}
