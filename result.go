package popcore

// RouteResult is the outcome of a route-table lookup: either the target is
// reachable directly (same region, no segment needed), reachable via an
// already-computed or newly pathfound segment, or unreachable.
type RouteResult struct {
	Kind    RouteResultKind
	Segment uint16 // valid when Kind == RouteSegment
}

// RouteResultKind enumerates the tags of RouteResult.
type RouteResultKind uint8

const (
	RouteDirectWalk RouteResultKind = iota
	RouteSegment
	RouteNoRoute
)

// PathfindResult is the outcome of a single pathfinder invocation.
type PathfindResult struct {
	Kind      PathfindResultKind
	Waypoints []WorldCoord
}

// PathfindResultKind enumerates the tags of PathfindResult.
type PathfindResultKind uint8

const (
	PathFound PathfindResultKind = iota
	PathNotFound
)

// WaypointResult is the outcome of one tick of waypoint consumption on a
// unit already travelling along a route segment.
type WaypointResult uint8

const (
	// WaypointNoSegment: the unit holds no active route segment.
	WaypointNoSegment WaypointResult = iota
	// WaypointInProgress: still travelling toward the current waypoint.
	WaypointInProgress
	// WaypointAdvanced: arrived at the current waypoint, advanced to the next.
	WaypointAdvanced
	// WaypointCompleted: arrived at the final waypoint; segment released.
	WaypointCompleted
)
