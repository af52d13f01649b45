// Package coordinator owns the live unit list and the movement
// infrastructure that backs it, and drives one simulation tick at a time:
// FSM advance, waypoint stepping, drowning detection, and melee combat.
package coordinator

import (
	"log"

	"github.com/popsim/popcore"
	"github.com/popsim/popcore/movement"
	"github.com/popsim/popcore/unit"
)

// UnitRaw is one level-file unit record as handed to LoadLevel. Only
// person-model records with a nonzero location are instantiated.
type UnitRaw struct {
	ModelType  unit.ModelType
	Subtype    uint8
	TribeIndex uint8
	LocX       int32
	LocY       int32
	Angle      uint16
}

// Coordinator owns every unit and the shared movement tables, and is the
// single entry point the game loop drives per tick.
type Coordinator struct {
	Units     []*unit.Unit
	Selection SelectionState
	Drag      DragState

	regionMap    *popcore.RegionMap
	segmentPool  *movement.SegmentPool
	failureCache *movement.FailureCache
	usedTargets  *movement.UsedTargetsCache

	landscapeSize float32

	RNG *unit.GameRng
}

// New returns an empty Coordinator seeded with the original binary's fixed
// state-machine RNG seed.
func New() *Coordinator {
	return &Coordinator{
		Selection:     NewSelectionState(),
		regionMap:     popcore.NewRegionMap(),
		segmentPool:   movement.NewSegmentPool(),
		failureCache:  movement.NewFailureCache(),
		usedTargets:   movement.NewUsedTargetsCache(),
		landscapeSize: 128,
		RNG:           unit.NewGameRng(0x1234),
	}
}

// RegionMap exposes the region map read-only, for rendering or debugging.
func (c *Coordinator) RegionMap() *popcore.RegionMap {
	return c.regionMap
}

// LoadLevel discards all live state and rebuilds it from raw level data:
// water tiles from the heightmap, then one Unit per person-model record
// with a nonzero location.
func (c *Coordinator) LoadLevel(unitsRaw []UnitRaw, landscapeHeight [128][128]uint16, landscapeSize int) {
	c.Units = c.Units[:0]
	c.Selection.Clear()
	c.landscapeSize = float32(landscapeSize)

	c.segmentPool = movement.NewSegmentPool()
	c.failureCache = movement.NewFailureCache()
	c.regionMap = popcore.NewRegionMap()

	populateWater(c.regionMap, landscapeHeight, landscapeSize)

	log.Printf("[coordinator] load_level: %d raw units, landscape_size=%d", len(unitsRaw), landscapeSize)

	var nextID uint32
	for _, raw := range unitsRaw {
		if raw.ModelType != unit.ModelPerson {
			continue
		}
		if raw.LocX == 0 && raw.LocY == 0 {
			continue
		}

		defaults := unit.PersonDefaults(raw.Subtype)
		var m movement.PersonMovement
		m.Position = popcore.WorldCoord{X: raw.LocX, Z: raw.LocY}
		m.FacingAngle = raw.Angle & 0x7FF
		m.Speed = defaults.Speed

		home := m.Position
		cx, cy := popcore.WorldToRenderPos(m.Position, c.landscapeSize)

		u := &unit.Unit{
			ID:         nextID,
			ModelType:  unit.ModelPerson,
			Subtype:    raw.Subtype,
			TribeIndex: raw.TribeIndex,
			Movement:   m,
			CellX:      cx,
			CellY:      cy,
			State:      unit.StateIdle,
			PrevState:  unit.StateIdle,
			Health:     defaults.MaxHealth,
			MaxHealth:  defaults.MaxHealth,
			Alive:      true,
			HomePos:    home,
		}
		nextID++
		c.Units = append(c.Units, u)

		// Run Idle's entry hook so the unit starts with a random idle timer.
		unit.EnterState(u, unit.StateIdle, c.RNG)
	}

	log.Printf("[coordinator] loaded %d person units", len(c.Units))
	for _, u := range c.Units {
		log.Printf("[coordinator] unit %d sub=%d tribe=%d state=%v timer=%d pos=(%d, %d) hp=%d/%d",
			u.ID, u.Subtype, u.TribeIndex, u.State, u.StateTimer,
			u.Movement.Position.X, u.Movement.Position.Z, u.Health, u.MaxHealth)
	}
}

// OrderMove issues a move order to every currently selected unit, targeting
// target. Any segment a unit was already walking is dereferenced before the
// new route replaces it.
func (c *Coordinator) OrderMove(target popcore.WorldCoord) {
	c.usedTargets.Reset()

	for _, id := range c.Selection.Selected {
		u := c.findUnit(id)
		if u == nil || !u.Alive {
			continue
		}

		if u.Movement.SegmentIndex != 0 {
			c.segmentPool.Release(u.Movement.SegmentIndex)
		}

		result := movement.StateGoto(c.regionMap, c.segmentPool, c.failureCache, c.usedTargets, &u.Movement, target)
		if result.Kind == popcore.RouteNoRoute {
			u.Movement.Flags &^= movement.FlagMoving
		} else {
			u.State = unit.StateGoToPoint
			u.TargetUnit = nil
			u.Movement.Speed = unit.PersonDefaults(u.Subtype).Speed
		}

		log.Printf("[coordinator] move order unit %d result=%v state=%v target=(%d, %d)",
			u.ID, result.Kind, u.State, u.Movement.TargetPos.X, u.Movement.TargetPos.Z)
	}
}

func (c *Coordinator) findUnit(id uint32) *unit.Unit {
	for _, u := range c.Units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Tick advances every alive unit by one simulation tick: FSM, movement,
// drowning detection, combat detection, and combat processing, in that
// fixed order.
func (c *Coordinator) Tick() {
	for _, u := range c.Units {
		if !u.Alive {
			continue
		}

		result := unit.TickState(u, c.RNG)
		if result.Transition {
			unit.EnterState(u, result.NextState, c.RNG)
		}

		if u.Movement.IsMoving() {
			c.advanceMovement(u)
		}

		u.CellX, u.CellY = popcore.WorldToRenderPos(u.Movement.Position, c.landscapeSize)

		// Frame counts come from the sprite asset table, which is a
		// renderer concern outside this core; nil here means every
		// animation is treated as single-frame until a caller supplies one.
		unit.AdvanceAnimation(u, nil)
	}

	for _, u := range c.Units {
		if !u.Alive {
			continue
		}
		if u.State == unit.StateDrowning || u.State == unit.StateDead {
			continue
		}
		tile := u.Movement.Position.ToTile()
		if !c.regionMap.IsWalkableTile(tile) {
			unit.EnterState(u, unit.StateDrowning, c.RNG)
		}
	}

	c.detectCombat()
	c.processCombat()
}

// advanceMovement steps a moving unit: waypoint consumption, facing
// recompute, then position advance along that facing.
func (c *Coordinator) advanceMovement(u *unit.Unit) {
	isRouted := u.State == unit.StateGoToPoint || u.State == unit.StateGoToMarker || u.State == unit.StateMoving

	if isRouted {
		movement.ProcessRouteMovement(c.segmentPool, &u.Movement)
	}

	if isRouted {
		dx := popcore.ToroidalDelta(u.Movement.Position.X, u.Movement.NextWaypoint.X)
		dz := popcore.ToroidalDelta(u.Movement.Position.Z, u.Movement.NextWaypoint.Z)

		if abs32(dx) < 0x48 && abs32(dz) < 0x48 {
			if u.Movement.SegmentIndex == 0 {
				u.Movement.Position = u.Movement.TargetPos
				u.Movement.Flags &^= movement.FlagMoving
			}
			return
		}
		u.Movement.FacingAngle = uint16(popcore.Atan2(dx, dz))
	}

	nx, nz := popcore.MovePointByAngle(u.Movement.Position.X, u.Movement.Position.Z, int32(u.Movement.FacingAngle), int32(u.Movement.Speed))
	u.Movement.Position = popcore.WorldCoord{X: nx, Z: nz}
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// detectCombat scans idle/wandering units for the nearest different-tribe
// enemy within combat detect range and engages it.
func (c *Coordinator) detectCombat() {
	type engagement struct {
		attacker int
		target   int
	}
	var engagements []engagement

	grid := c.buildUnitGrid()
	var candidates []int

	for i, u := range c.Units {
		if !u.Alive {
			continue
		}
		if u.State != unit.StateIdle && u.State != unit.StateWander {
			continue
		}

		bestDist := unit.CombatDetectRange + 1
		bestTarget := -1

		candidates = grid.queryNeighborhood(u.Movement.Position, candidates[:0])
		for _, j := range candidates {
			if i == j {
				continue
			}
			other := c.Units[j]
			if other.TribeIndex == u.TribeIndex {
				continue
			}
			if other.State == unit.StateDead {
				continue
			}

			dx := popcore.ToroidalDelta(u.Movement.Position.X, other.Movement.Position.X)
			dz := popcore.ToroidalDelta(u.Movement.Position.Z, other.Movement.Position.Z)
			dist := abs32(dx) + abs32(dz)

			if dist < bestDist {
				bestDist = dist
				bestTarget = j
			}
		}

		if bestTarget >= 0 {
			engagements = append(engagements, engagement{attacker: i, target: bestTarget})
		}
	}

	for _, e := range engagements {
		targetID := c.Units[e.target].ID
		targetPos := c.Units[e.target].Movement.Position
		u := c.Units[e.attacker]

		id := targetID
		u.TargetUnit = &id
		unit.EnterState(u, unit.StateFighting, c.RNG)

		dx := popcore.ToroidalDelta(u.Movement.Position.X, targetPos.X)
		dz := popcore.ToroidalDelta(u.Movement.Position.Z, targetPos.Z)
		u.Movement.FacingAngle = uint16(popcore.Atan2(dx, dz))
	}
}

// processCombat drives the Seek/Approach chase and Strike damage
// application for every fighting unit, collecting damage events before
// applying them so iteration order can't change which combatant dies
// first within a tick.
func (c *Coordinator) processCombat() {
	type damageEvent struct {
		targetIdx int
		damage    uint16
	}
	var damageEvents []damageEvent

	for _, u := range c.Units {
		if !u.Alive || u.State != unit.StateFighting {
			continue
		}
		if u.TargetUnit == nil {
			continue
		}

		targetIdx := c.indexOf(*u.TargetUnit)
		if targetIdx < 0 {
			continue
		}
		target := c.Units[targetIdx]
		if !target.Alive || target.Health == 0 {
			continue
		}

		targetPos := target.Movement.Position
		dx := popcore.ToroidalDelta(u.Movement.Position.X, targetPos.X)
		dz := popcore.ToroidalDelta(u.Movement.Position.Z, targetPos.Z)
		dist := abs32(dx) + abs32(dz)

		phase := unit.CombatPhaseFromCounter(u.StateCounter)

		switch phase {
		case unit.CombatSeek:
			if dist <= unit.CombatDetectRange {
				u.StateCounter = uint8(unit.CombatApproach)
			} else {
				u.TargetUnit = nil
			}
		case unit.CombatApproach:
			switch {
			case dist <= unit.CombatMeleeRange:
				u.Movement.Flags &^= movement.FlagMoving
				u.Movement.Speed = 0
				u.StateCounter = uint8(unit.CombatSwingReady)
				u.StateTimer = unit.SwingReadyTicks
			case dist <= unit.CombatDetectRange:
				u.Movement.Speed = unit.PersonDefaults(u.Subtype).Speed
				u.Movement.Flags |= 0x1080
				u.Movement.FacingAngle = uint16(popcore.Atan2(
					popcore.ToroidalDelta(u.Movement.Position.X, targetPos.X),
					popcore.ToroidalDelta(u.Movement.Position.Z, targetPos.Z),
				))
			default:
				u.TargetUnit = nil
			}
		case unit.CombatStrike:
			damage := unit.CalculateMeleeDamage(u)
			damageEvents = append(damageEvents, damageEvent{targetIdx: targetIdx, damage: damage})
		case unit.CombatSwingReady, unit.CombatLungeBack, unit.CombatLungeFwd, unit.CombatRecovering:
			u.Movement.FacingAngle = uint16(popcore.Atan2(
				popcore.ToroidalDelta(u.Movement.Position.X, targetPos.X),
				popcore.ToroidalDelta(u.Movement.Position.Z, targetPos.Z),
			))
		}
	}

	for _, ev := range damageEvents {
		target := c.Units[ev.targetIdx]
		unit.ApplyDamage(target, ev.damage)
		if target.Health == 0 {
			unit.EnterState(target, unit.StateDead, c.RNG)
		}
	}

	for _, u := range c.Units {
		if u.State != unit.StateFighting || u.TargetUnit == nil {
			continue
		}
		idx := c.indexOf(*u.TargetUnit)
		if idx < 0 {
			continue
		}
		target := c.Units[idx]
		if !target.Alive || target.State == unit.StateDead {
			u.TargetUnit = nil
		}
	}
}

func (c *Coordinator) indexOf(id uint32) int {
	for i, u := range c.Units {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// populateWater marks every height-0 cell of the landscape heightmap as
// water (terrain class 1, region 1), so a route between land and water
// fails same-region and engages the pathfinder, which then rejects it as
// unwalkable.
func populateWater(rm *popcore.RegionMap, landscapeHeight [128][128]uint16, size int) {
	rm.SetTerrainFlags(1, 0x00)

	for cellY := 0; cellY < size; cellY++ {
		for cellX := 0; cellX < size; cellX++ {
			if landscapeHeight[cellY][cellX] != 0 {
				continue
			}
			world := popcore.RenderPosToWorld(float32(cellX)+0.5, float32(cellY)+0.5, float32(size))
			tile := world.ToTile()
			cellSpace := tile.ToCell()
			rm.Cell(cellSpace.X, cellSpace.Z).TerrainType = 1
			rm.SetCellRegion(tile, 1)
		}
	}
}
