package movement

import "github.com/popsim/popcore"

// MovementFlags bits, carried in PersonMovement.Flags.
const (
	FlagMoving   uint32 = 0x1000 // unit is actively walking toward next_waypoint
	FlagBlocked  uint32 = 0x0080 // path obstructed; paired with FlagMoving during wander/flee setup
	FlagDeadA    uint32 = 0x0400 // set on death, clears on revival (never happens in this core)
	FlagClearMask uint32 = 0xFCDEFDDD // ANDed into Flags on every state transition: bits outside it are cleared
)

// IsMoving reports whether FlagMoving is set.
func (m *PersonMovement) IsMoving() bool {
	return m.Flags&FlagMoving != 0
}

// IsBlocked reports whether FlagBlocked is set.
func (m *PersonMovement) IsBlocked() bool {
	return m.Flags&FlagBlocked != 0
}

// WaypointArrivalThreshold is the fixed-point distance under which a unit
// is considered to have arrived at its current waypoint.
const WaypointArrivalThreshold = 0x240

// PersonMovement is the subset of per-unit state the movement package
// reads and writes each tick: current position, the final order target,
// the immediate steering target, and which route segment (if any) is
// currently being walked.
type PersonMovement struct {
	Position     popcore.WorldCoord
	TargetPos    popcore.WorldCoord
	NextWaypoint popcore.WorldCoord
	MovementDest popcore.WorldCoord
	SegmentIndex uint16
	WaypointIdx  uint8
	Flags        uint32
	Speed        uint16 // fixed-point units per tick along FacingAngle
	FacingAngle  uint16 // current facing, in AngleMod units
}

// SetGotoFlags marks the unit as actively moving toward NextWaypoint and
// clears any stale blocked flag from a previous route attempt.
func (m *PersonMovement) SetGotoFlags() {
	m.Flags |= FlagMoving
	m.Flags &^= FlagBlocked
}

// StateGoto resolves a move order into concrete per-tick movement state:
// it snaps an unwalkable target onto the nearest walkable tile, runs it
// through the route dispatcher, and on success points the unit at the
// first waypoint (or the target directly, for a same-region walk).
func StateGoto(rm *popcore.RegionMap, pool *SegmentPool, failures *FailureCache, used *UsedTargetsCache, m *PersonMovement, target popcore.WorldCoord) popcore.RouteResult {
	startTile := m.Position.ToTile()
	targetTile := AdjustTargetForWalkability(rm, used, target.ToTile())
	m.TargetPos = targetTile.ToWorld()

	result := RouteTableLookup(rm, pool, failures, startTile, targetTile)

	switch result.Kind {
	case popcore.RouteDirectWalk:
		m.SegmentIndex = 0
		m.WaypointIdx = 0
		m.NextWaypoint = m.TargetPos
		m.MovementDest = m.TargetPos
		m.SetGotoFlags()
	case popcore.RouteSegment:
		m.SegmentIndex = result.Segment
		m.WaypointIdx = 0
		if seg := pool.Get(result.Segment); seg != nil {
			if wp, ok := seg.WaypointWorld(0); ok {
				m.NextWaypoint = wp
				m.MovementDest = wp
			}
		}
		m.SetGotoFlags()
	case popcore.RouteNoRoute:
		m.Flags &^= FlagMoving
	}

	return result
}
