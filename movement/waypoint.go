package movement

import "github.com/popsim/popcore"

// ProcessRouteMovement performs one tick of waypoint consumption for a
// unit already walking a route segment. It does not itself advance the
// unit's position — that is a separate downstream step driven by facing
// and speed — it only decides whether the unit has arrived at its current
// waypoint and, if so, advances to the next one or releases the segment
// once the final waypoint is reached.
func ProcessRouteMovement(pool *SegmentPool, m *PersonMovement) popcore.WaypointResult {
	if m.SegmentIndex == 0 {
		return popcore.WaypointNoSegment
	}

	segIdx := m.SegmentIndex
	seg := pool.Get(segIdx)
	if seg == nil {
		m.SegmentIndex = 0
		m.WaypointIdx = 0
		return popcore.WaypointNoSegment
	}

	waypointCount := seg.WaypointCount
	currentWP, ok := seg.WaypointWorld(m.WaypointIdx)
	if !ok {
		releaseSegment(pool, m)
		return popcore.WaypointCompleted
	}

	dx := popcore.ToroidalDelta(currentWP.X, m.Position.X)
	dz := popcore.ToroidalDelta(currentWP.Z, m.Position.Z)
	if dx < 0 {
		dx = -dx
	}
	if dz < 0 {
		dz = -dz
	}

	if dx > WaypointArrivalThreshold || dz > WaypointArrivalThreshold {
		return popcore.WaypointInProgress
	}

	nextIdx := m.WaypointIdx + 1
	if nextIdx >= waypointCount {
		releaseSegment(pool, m)
		return popcore.WaypointCompleted
	}

	m.WaypointIdx = nextIdx
	if nextWP, ok := seg.WaypointWorld(nextIdx); ok {
		m.NextWaypoint = nextWP
		m.MovementDest = nextWP
	}
	m.SetGotoFlags()
	return popcore.WaypointAdvanced
}

// releaseSegment drops the unit's reference to its current segment,
// freeing the slot once the ref count reaches zero (unless persistent),
// and switches the unit to walking directly toward its final target.
func releaseSegment(pool *SegmentPool, m *PersonMovement) {
	pool.Release(m.SegmentIndex)

	m.SegmentIndex = 0
	m.WaypointIdx = 0
	m.NextWaypoint = m.TargetPos
	m.MovementDest = m.TargetPos
	m.SetGotoFlags()
}
