package coordinator

// SelectionState tracks the currently selected unit ids, in the order they
// were selected.
type SelectionState struct {
	Selected []uint32
}

// NewSelectionState returns an empty SelectionState.
func NewSelectionState() SelectionState {
	return SelectionState{}
}

// Clear empties the selection.
func (s *SelectionState) Clear() {
	s.Selected = s.Selected[:0]
}

// SelectSingle replaces the selection with a single unit id.
func (s *SelectionState) SelectSingle(id uint32) {
	s.Selected = append(s.Selected[:0], id)
}

// SelectMultiple replaces the selection with the given unit ids.
func (s *SelectionState) SelectMultiple(ids []uint32) {
	s.Selected = append([]uint32(nil), ids...)
}

// IsSelected reports whether id is currently selected.
func (s *SelectionState) IsSelected(id uint32) bool {
	for _, sel := range s.Selected {
		if sel == id {
			return true
		}
	}
	return false
}

// DragKind enumerates the rubber-band drag-select state machine.
type DragKind uint8

const (
	DragNone DragKind = iota
	DragPending
	DragActive
)

// DragState is the drag-box state for rubber-band multi-select: plain
// float coordinates in renderer cell space, carrying no rendering
// dependency so the core stays usable headlessly.
type DragState struct {
	Kind    DragKind
	StartX  float32
	StartY  float32
	CurX    float32
	CurY    float32
}

// BeginPendingDrag records a press that hasn't yet crossed the drag
// threshold.
func (d *DragState) BeginPendingDrag(x, y float32) {
	*d = DragState{Kind: DragPending, StartX: x, StartY: y}
}

// BeginDragging promotes a pending drag into an active rubber-band drag.
func (d *DragState) BeginDragging(x, y float32) {
	d.Kind = DragActive
	d.CurX, d.CurY = x, y
}

// UpdateDragging updates the current corner of an active drag.
func (d *DragState) UpdateDragging(x, y float32) {
	if d.Kind != DragActive {
		return
	}
	d.CurX, d.CurY = x, y
}

// EndDrag resets drag state to None.
func (d *DragState) EndDrag() {
	*d = DragState{}
}

// unitLike is the minimal shape FindUnitAtCell needs; satisfied by *unit.Unit.
type unitLike interface {
	CellPos() (float32, float32)
	UnitID() uint32
}

// FindUnitAtCell returns the id of the nearest unit to (cellX, cellY) within
// threshold distance, or (0, false) if none qualifies.
func FindUnitAtCell(units []unitLike, cellX, cellY, threshold float32) (uint32, bool) {
	thresholdSq := threshold * threshold
	bestDistSq := thresholdSq
	var bestID uint32
	found := false

	for _, u := range units {
		ux, uy := u.CellPos()
		dx := ux - cellX
		dy := uy - cellY
		distSq := dx*dx + dy*dy
		if distSq < bestDistSq {
			bestDistSq = distSq
			bestID = u.UnitID()
			found = true
		}
	}
	return bestID, found
}
