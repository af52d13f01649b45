// Package movement implements the pathfinder, route dispatcher, waypoint
// stepper and the fixed-capacity caches that back them: a 400-slot
// RouteSegment slab, an 8-entry FailureCache and a 16-entry
// UsedTargetsCache.
package movement

import (
	"github.com/aurelien-rainone/assertgo"

	"github.com/popsim/popcore"
)

// MaxWaypoints bounds the waypoint list stored inline in each RouteSegment.
const MaxWaypoints = 23

// SegmentPoolCapacity is the fixed number of slots in a SegmentPool.
const SegmentPoolCapacity = 400

// Segment flag bits.
const (
	SegmentPersistent uint8 = 1 << 2 // survives ref-count reaching zero, e.g. shared lanes
)

// RouteSegment is one precomputed or in-progress path between two tiles,
// stored by value in a fixed slab and shared by reference count across
// every unit currently walking it.
type RouteSegment struct {
	StartTile     popcore.TileCoord
	EndTile       popcore.TileCoord
	WaypointCount uint8
	Waypoints     [MaxWaypoints]popcore.WorldCoord
	RefCount      uint16
	Flags         uint8
	inUse         bool
}

// SegmentPool is a fixed 400-slot allocator for RouteSegment values, with
// free-list reuse and reference counting, modelled on the fixed-capacity
// node pool used for pathfinding graphs: slots are never grown, allocation
// fails closed once the capacity is exhausted, and a free slot is found by
// linear scan rather than a free-list chain because segment churn is low
// relative to the pool size.
type SegmentPool struct {
	slots       [SegmentPoolCapacity]RouteSegment
	ActiveCount int32
}

// NewSegmentPool returns an empty SegmentPool.
func NewSegmentPool() *SegmentPool {
	return &SegmentPool{}
}

// Reset clears every slot, matching the coordinator's level-load behaviour.
func (p *SegmentPool) Reset() {
	for i := range p.slots {
		p.slots[i] = RouteSegment{}
	}
	p.ActiveCount = 0
}

// Get returns the segment at index idx, or nil if idx is out of range or
// the slot is not currently in use. Index 0 is never a valid allocated
// segment (callers use 0 as "no segment").
func (p *SegmentPool) Get(idx uint16) *RouteSegment {
	if idx == 0 || int(idx) >= len(p.slots) {
		return nil
	}
	if !p.slots[idx].inUse {
		return nil
	}
	return &p.slots[idx]
}

// FindExisting linearly scans the pool for an in-use segment whose
// StartTile/EndTile match (start, end) exactly, returning its index and
// true on a hit. Matches the original's segment-reuse check in
// route_table_lookup: an exact endpoint match lets a second unit share an
// already-computed path instead of re-running the pathfinder.
func (p *SegmentPool) FindExisting(start, end popcore.TileCoord) (uint16, bool) {
	for i := 1; i < len(p.slots); i++ {
		s := &p.slots[i]
		if s.inUse && s.StartTile == start && s.EndTile == end {
			return uint16(i), true
		}
	}
	return 0, false
}

// Alloc finds a free slot, fills it with the given path and returns its
// index with RefCount 1. Returns (0, false) if the pool is full.
func (p *SegmentPool) Alloc(start, end popcore.TileCoord, waypoints []popcore.WorldCoord) (uint16, bool) {
	assert.True(len(waypoints) <= MaxWaypoints, "path exceeds MaxWaypoints")

	for i := 1; i < len(p.slots); i++ {
		if !p.slots[i].inUse {
			s := &p.slots[i]
			*s = RouteSegment{
				StartTile:     start,
				EndTile:       end,
				WaypointCount: uint8(len(waypoints)),
				RefCount:      1,
				inUse:         true,
			}
			copy(s.Waypoints[:], waypoints)
			p.ActiveCount++
			return uint16(i), true
		}
	}
	return 0, false
}

// WaypointWorld returns the world position of waypoint i within the given
// segment, or false if i is out of range.
func (s *RouteSegment) WaypointWorld(i uint8) (popcore.WorldCoord, bool) {
	if i >= s.WaypointCount {
		return popcore.WorldCoord{}, false
	}
	return s.Waypoints[i], true
}

// AddRef increments the ref count of the segment at idx.
func (p *SegmentPool) AddRef(idx uint16) {
	if s := p.Get(idx); s != nil {
		s.RefCount++
	}
}

// Release decrements the ref count of the segment at idx, freeing the slot
// once it reaches zero unless SegmentPersistent is set.
func (p *SegmentPool) Release(idx uint16) {
	s := p.Get(idx)
	if s == nil {
		return
	}
	if s.RefCount > 0 {
		s.RefCount--
	}
	if s.RefCount == 0 && s.Flags&SegmentPersistent == 0 {
		*s = RouteSegment{}
		p.ActiveCount--
	}
}
