package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectionStateBasics(t *testing.T) {
	s := NewSelectionState()
	assert.False(t, s.IsSelected(1), "empty selection should select nothing")

	s.SelectSingle(5)
	assert.True(t, s.IsSelected(5))
	require.Len(t, s.Selected, 1)

	s.SelectMultiple([]uint32{1, 2, 3})
	assert.True(t, s.IsSelected(2))
	assert.False(t, s.IsSelected(5), "SelectMultiple should replace the prior selection")

	s.Clear()
	assert.False(t, s.IsSelected(1))
	assert.Empty(t, s.Selected)
}

func TestDragStateTransitions(t *testing.T) {
	var d DragState
	d.BeginPendingDrag(10, 20)
	assert.Equal(t, DragPending, d.Kind)
	assert.EqualValues(t, 10, d.StartX)
	assert.EqualValues(t, 20, d.StartY)

	// Updates before promotion to active are ignored.
	d.UpdateDragging(99, 99)
	assert.Zero(t, d.CurX)
	assert.Zero(t, d.CurY)

	d.BeginDragging(15, 25)
	assert.Equal(t, DragActive, d.Kind)
	assert.EqualValues(t, 15, d.CurX)
	assert.EqualValues(t, 25, d.CurY)

	d.UpdateDragging(30, 40)
	assert.EqualValues(t, 30, d.CurX)
	assert.EqualValues(t, 40, d.CurY)

	d.EndDrag()
	assert.Equal(t, DragNone, d.Kind)
}

type fakeUnit struct {
	id   uint32
	x, y float32
}

func (f fakeUnit) CellPos() (float32, float32) { return f.x, f.y }
func (f fakeUnit) UnitID() uint32              { return f.id }

func TestFindUnitAtCellNearestWithinThreshold(t *testing.T) {
	units := []unitLike{
		fakeUnit{id: 1, x: 10, y: 10},
		fakeUnit{id: 2, x: 10.5, y: 10.5},
		fakeUnit{id: 3, x: 50, y: 50},
	}

	id, ok := FindUnitAtCell(units, 10, 10, 2)
	require.True(t, ok)
	assert.EqualValues(t, 1, id)
}

func TestFindUnitAtCellOutsideThreshold(t *testing.T) {
	units := []unitLike{fakeUnit{id: 1, x: 100, y: 100}}
	_, ok := FindUnitAtCell(units, 0, 0, 2)
	assert.False(t, ok, "expected no match outside threshold")
}

func TestFindUnitAtCellTieBreaksToFirst(t *testing.T) {
	units := []unitLike{
		fakeUnit{id: 1, x: 10, y: 10},
		fakeUnit{id: 2, x: 10, y: 10},
	}
	id, ok := FindUnitAtCell(units, 10, 10, 5)
	require.True(t, ok)
	assert.EqualValues(t, 1, id, "expected first unit on an exact tie")
}
