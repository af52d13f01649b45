package movement

import (
	"github.com/aurelien-rainone/assertgo"

	"github.com/popsim/popcore"
)

// Pathfinder search tuning constants.
const (
	MaxIterations     = 1500
	MaxRetries        = 3
	ArmMaxWaypoints   = 260
	MaxPoolWaypoints  = 400
	MaxSegmentWaypoints = MaxWaypoints
)

type armState uint8

const (
	armExpanding armState = iota
	armFound
	armStalled
)

// searchArm is one wall-following search arm: pos/facing advance each
// step, turnDir selects clockwise (1) or counter-clockwise (3) rotation
// when a step is blocked, and checkpoint freezes at the last beeline
// position to drive the anti-loop bounds check.
type searchArm struct {
	waypoints      []popcore.PathNode
	pos            popcore.PathNode
	facing         int
	turnDir        int
	state          armState
	startPos       popcore.PathNode
	checkpoint     popcore.PathNode
	initialFacing  int
}

func newSearchArm(start popcore.PathNode, facing, turnDir int) *searchArm {
	return &searchArm{
		waypoints:     make([]popcore.PathNode, 0, 32),
		pos:           start,
		facing:        facing,
		turnDir:       turnDir,
		state:         armExpanding,
		startPos:      start,
		checkpoint:    start,
		initialFacing: facing,
	}
}

// VisitedBitmap is a 128x128-bit cell-visited map shared by both search
// arms within a single pathfind call, preventing either arm from
// revisiting a cell the other has already claimed.
type VisitedBitmap struct {
	bits [popcore.RegionGridSize * popcore.RegionGridSize / 8]byte
}

func (v *VisitedBitmap) index(x, z int16) int {
	return int(z)*popcore.RegionGridSize + int(x)
}

// IsVisited reports whether cell (x, z) has been marked.
func (v *VisitedBitmap) IsVisited(x, z int16) bool {
	idx := v.index(x, z)
	return (v.bits[idx>>3]>>(uint(idx)&7))&1 != 0
}

func (v *VisitedBitmap) mark(x, z int16) {
	idx := v.index(x, z)
	v.bits[idx>>3] |= 1 << (uint(idx) & 7)
}

// PathfindDebug carries the visited bitmap and per-arm traces produced by
// PathfindDebugTrace, for offline inspection of a single search.
type PathfindDebug struct {
	Result    popcore.PathfindResult
	Visited   *VisitedBitmap
	Arm0Trace []popcore.PathNode
	Arm1Trace []popcore.PathNode
}

func nodeStep(n popcore.PathNode, dir int) popcore.PathNode {
	return popcore.PathNode{
		X: n.X + int16(popcore.DirectionDX[dir&3]),
		Z: n.Z + int16(popcore.DirectionDZ[dir&3]),
	}
}

func onMap(n popcore.PathNode) bool {
	return n.X >= 0 && n.X < popcore.RegionGridSize && n.Z >= 0 && n.Z < popcore.RegionGridSize
}

func nodeFromTile(t popcore.TileCoord) popcore.PathNode {
	return popcore.PathNode{X: t.X >> 1, Z: t.Z >> 1}
}

func nodeToTile(n popcore.PathNode) popcore.TileCoord {
	return popcore.TileCoord{
		X: (n.X << 1) & 0xFE,
		Z: (n.Z << 1) & 0xFE,
	}
}

// Pathfind runs the dual-arm wall-following search from start to goal,
// returning the waypoint path in tile coordinates. Not A*: two arms walk
// outward from the start, one turning clockwise and one counter-clockwise
// whenever blocked, following obstacle edges until one reaches the goal or
// both stall. Retries with rotated primary/secondary axes up to MaxRetries
// times before giving up.
func Pathfind(rm *popcore.RegionMap, start, goal popcore.TileCoord) popcore.PathfindResult {
	result, _ := pathfindInternal(rm, start, goal, false)
	return result
}

// PathfindDebugTrace runs the same search as Pathfind but also returns the
// visited bitmap and each arm's step-by-step trace, for the debug CLI.
func PathfindDebugTrace(rm *popcore.RegionMap, start, goal popcore.TileCoord) PathfindDebug {
	result, dbg := pathfindInternal(rm, start, goal, true)
	dbg.Result = result
	return dbg
}

func pathfindInternal(rm *popcore.RegionMap, start, goal popcore.TileCoord, trace bool) (popcore.PathfindResult, PathfindDebug) {
	startNode := nodeFromTile(start)
	goalNode := nodeFromTile(goal)

	if startNode == goalNode {
		return popcore.PathfindResult{Kind: popcore.PathFound}, PathfindDebug{}
	}
	if !rm.IsWalkableTile(start) || !rm.IsWalkableTile(goal) {
		return popcore.PathfindResult{Kind: popcore.PathNotFound}, PathfindDebug{}
	}

	primary, secondary := setupDirections(startNode, goalNode)
	_ = secondary

	var lastDebug PathfindDebug
	for retry := 0; retry < MaxRetries; retry++ {
		pdir := (primary + retry) & 3
		result, dbg := pathSearchExecute(rm, startNode, goalNode, pdir)
		if trace {
			lastDebug = dbg
		}
		if result.Kind == popcore.PathFound {
			if len(result.Waypoints) > 0 || startNode == goalNode {
				return result, lastDebug
			}
		}
	}
	return popcore.PathfindResult{Kind: popcore.PathNotFound}, lastDebug
}

func setupDirections(start, goal popcore.PathNode) (primary, secondary int) {
	dx := int32(goal.X - start.X)
	dz := int32(goal.Z - start.Z)

	adx, adz := dx, dz
	if adx < 0 {
		adx = -adx
	}
	if adz < 0 {
		adz = -adz
	}

	if adx >= adz {
		if dx > 0 {
			primary = popcore.DirE
		} else {
			primary = popcore.DirW
		}
		if dz > 0 {
			secondary = popcore.DirS
		} else {
			secondary = popcore.DirN
		}
	} else {
		if dz > 0 {
			primary = popcore.DirS
		} else {
			primary = popcore.DirN
		}
		if dx > 0 {
			secondary = popcore.DirE
		} else {
			secondary = popcore.DirW
		}
	}
	return
}

func goalDirection(from, goal popcore.PathNode) int {
	dx := int32(goal.X - from.X)
	dz := int32(goal.Z - from.Z)
	adx, adz := dx, dz
	if adx < 0 {
		adx = -adx
	}
	if adz < 0 {
		adz = -adz
	}
	if adx >= adz {
		if dx > 0 {
			return popcore.DirE
		}
		return popcore.DirW
	}
	if dz > 0 {
		return popcore.DirS
	}
	return popcore.DirN
}

func pathSearchExecute(rm *popcore.RegionMap, start, goal popcore.PathNode, primaryDir int) (popcore.PathfindResult, PathfindDebug) {
	visited := &VisitedBitmap{}
	visited.mark(start.X, start.Z)

	arm0 := newSearchArm(start, primaryDir, 1)
	arm1 := newSearchArm(start, primaryDir, 3)

	globalWaypoints := make([]popcore.PathNode, 0, 64)
	iterations := 0

	for iterations < MaxIterations {
		iterations++

		if arm0.state == armExpanding {
			expandArm(rm, visited, arm0, goal)
		}
		if arm0.state == armFound {
			globalWaypoints = append(globalWaypoints, arm0.waypoints...)
			return buildPathResult(rm, goal, globalWaypoints), debugOf(visited, arm0, arm1)
		}

		if arm1.state == armExpanding {
			expandArm(rm, visited, arm1, goal)
		}
		if arm1.state == armFound {
			globalWaypoints = append(globalWaypoints, arm1.waypoints...)
			return buildPathResult(rm, goal, globalWaypoints), debugOf(visited, arm0, arm1)
		}

		if arm0.state != armExpanding && arm1.state != armExpanding {
			break
		}
		if arm0.pos == arm1.startPos || arm1.pos == arm0.startPos {
			reverse0 := (arm0.facing + 2) & 3
			reverse1 := (arm1.facing + 2) & 3
			if reverse0 == arm0.initialFacing || reverse1 == arm1.initialFacing {
				break
			}
		}
		total := len(arm0.waypoints) + len(arm1.waypoints) + len(globalWaypoints)
		if total >= MaxPoolWaypoints {
			break
		}
	}

	return popcore.PathfindResult{Kind: popcore.PathNotFound}, debugOf(visited, arm0, arm1)
}

func debugOf(v *VisitedBitmap, arm0, arm1 *searchArm) PathfindDebug {
	return PathfindDebug{
		Visited:   v,
		Arm0Trace: append([]popcore.PathNode(nil), arm0.waypoints...),
		Arm1Trace: append([]popcore.PathNode(nil), arm1.waypoints...),
	}
}

// expandArm advances one search arm by a single step: a beeline phase that
// walks straight toward the goal while clear, a wall-following phase that
// rotates through up to 4 candidate directions when the beeline step is
// blocked, and a wall-end check that looks perpendicular to pick up a
// newly-uncovered wall on the next call.
func expandArm(rm *popcore.RegionMap, visited *VisitedBitmap, arm *searchArm, goal popcore.PathNode) {
	if arm.state != armExpanding {
		return
	}

	goalDir := goalDirection(arm.pos, goal)
	goalCell := nodeStep(arm.pos, goalDir)
	goalIsTarget := goalCell == goal
	if onMap(goalCell) && isCellPassable(rm, goalCell) && (goalIsTarget || !visited.IsVisited(goalCell.X, goalCell.Z)) {
		arm.facing = goalDir
		arm.pos = goalCell
		arm.checkpoint = arm.pos
		visited.mark(arm.pos.X, arm.pos.Z)
		arm.waypoints = append(arm.waypoints, arm.pos)
		if goalIsTarget {
			arm.state = armFound
		}
		return
	}

	dir := arm.facing
	found := false
	var candidate popcore.PathNode
	for i := 0; i < 4; i++ {
		candidate = nodeStep(arm.pos, dir)
		isTarget := candidate == goal
		if onMap(candidate) && isCellPassable(rm, candidate) && (isTarget || !visited.IsVisited(candidate.X, candidate.Z)) {
			found = true
			break
		}
		dir = wrapDir(dir - arm.turnDir)
	}

	if !found {
		arm.state = armStalled
		return
	}

	arm.facing = dir
	arm.pos = candidate
	visited.mark(arm.pos.X, arm.pos.Z)
	arm.waypoints = append(arm.waypoints, arm.pos)

	if arm.pos == goal {
		arm.state = armFound
		return
	}

	perpDir := wrapDir(arm.turnDir + arm.facing)
	perpCell := nodeStep(arm.pos, perpDir)
	if onMap(perpCell) && isCellPassable(rm, perpCell) {
		arm.facing = perpDir
	}

	if !boundsCheckArm(arm) {
		arm.state = armStalled
	}
	if len(arm.waypoints) >= ArmMaxWaypoints {
		arm.state = armStalled
	}
}

func wrapDir(d int) int {
	d %= 4
	if d < 0 {
		d += 4
	}
	return d
}

// boundsCheckArm rejects an arm that has circled back onto its last
// beeline checkpoint. The original's 4-layer bounding box collapses to
// this single anti-loop test once phantom-stepping through walls is
// removed: the visited bitmap, iteration cap and waypoint cap already
// bound the search, so only the checkpoint-equality loop guard survives.
func boundsCheckArm(arm *searchArm) bool {
	return arm.pos != arm.checkpoint
}

func isCellPassable(rm *popcore.RegionMap, node popcore.PathNode) bool {
	if !onMap(node) {
		return false
	}
	return rm.IsWalkableTile(nodeToTile(node))
}

func buildPathResult(rm *popcore.RegionMap, goal popcore.PathNode, raw []popcore.PathNode) popcore.PathfindResult {
	goalTile := nodeToTile(goal)
	if len(raw) == 0 {
		return popcore.PathfindResult{Kind: popcore.PathFound, Waypoints: []popcore.WorldCoord{goalTile.ToWorld()}}
	}

	deduped := make([]popcore.PathNode, 0, len(raw))
	for _, wp := range raw {
		if len(deduped) == 0 || deduped[len(deduped)-1] != wp {
			deduped = append(deduped, wp)
		}
	}

	simplified := optimizePathLOS(rm, deduped)

	maxWps := MaxSegmentWaypoints
	if len(simplified) < maxWps {
		maxWps = len(simplified)
	}
	waypoints := make([]popcore.WorldCoord, 0, maxWps)

	if len(simplified) <= maxWps {
		for _, node := range simplified {
			waypoints = append(waypoints, nodeToTile(node).ToWorld())
		}
	} else {
		for i := 0; i < maxWps; i++ {
			var idx int
			if i == maxWps-1 {
				idx = len(simplified) - 1
			} else {
				idx = i * len(simplified) / maxWps
			}
			waypoints = append(waypoints, nodeToTile(simplified[idx]).ToWorld())
		}
	}

	goalWorld := goalTile.ToWorld()
	if len(waypoints) == 0 || waypoints[len(waypoints)-1] != goalWorld {
		if len(waypoints) < MaxSegmentWaypoints {
			waypoints = append(waypoints, goalWorld)
		} else {
			waypoints[len(waypoints)-1] = goalWorld
		}
	}

	assert.True(len(waypoints) <= MaxSegmentWaypoints, "pathfinder produced more waypoints than a segment can hold")
	return popcore.PathfindResult{Kind: popcore.PathFound, Waypoints: waypoints}
}

// lineOfSight walks a Bresenham line between two cells and reports whether
// every cell along it is passable.
func lineOfSight(rm *popcore.RegionMap, from, to popcore.PathNode) bool {
	x, z := from.X, from.Z
	dx := to.X - from.X
	if dx < 0 {
		dx = -dx
	}
	dz := to.Z - from.Z
	if dz < 0 {
		dz = -dz
	}
	sx := int16(-1)
	if to.X > from.X {
		sx = 1
	}
	sz := int16(-1)
	if to.Z > from.Z {
		sz = 1
	}
	err := int32(dx) - int32(dz)

	for {
		node := popcore.PathNode{X: x, Z: z}
		if !onMap(node) || !isCellPassable(rm, node) {
			return false
		}
		if x == to.X && z == to.Z {
			break
		}
		e2 := 2 * err
		if e2 > -int32(dz) {
			err -= int32(dz)
			x += sx
		}
		if e2 < int32(dx) {
			err += int32(dx)
			z += sz
		}
	}
	return true
}

// optimizePathLOS greedily removes intermediate waypoints whenever a
// straight line of sight connects a farther-ahead waypoint directly,
// shortening zigzagging wall-follow traces into straighter paths.
func optimizePathLOS(rm *popcore.RegionMap, nodes []popcore.PathNode) []popcore.PathNode {
	if len(nodes) <= 2 {
		return nodes
	}

	result := make([]popcore.PathNode, 0, len(nodes))
	result = append(result, nodes[0])

	i := 0
	for i < len(nodes)-1 {
		bestJ := i + 1
		for j := len(nodes) - 1; j >= i+2; j-- {
			if lineOfSight(rm, nodes[i], nodes[j]) {
				bestJ = j
				break
			}
		}
		result = append(result, nodes[bestJ])
		i = bestJ
	}

	return result
}
