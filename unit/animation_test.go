package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateToAnimTypeMapsKnownStates(t *testing.T) {
	cases := []struct {
		state PersonState
		want  uint8
	}{
		{StateIdle, 0},
		{StateFighting, 0},
		{StateWander, 1},
		{StateGoToPoint, 1},
		{StateInsideBuilding, 3},
		{StateDead, 6},
		{StateFleeing, 25},
		{StateDrowning, 16},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, StateToAnimType(c.state), "state=%v", c.state)
	}
}

func TestLookupAnimationMissingCombinationReportsFalse(t *testing.T) {
	// row 3 (Actn), subtype 1 is -1 in the table.
	_, ok := LookupAnimation(StateInsideBuilding, 1)
	assert.False(t, ok, "expected no animation for (Actn, subtype 1)")
}

func TestLookupAnimationKnownCombination(t *testing.T) {
	got, ok := LookupAnimation(StateIdle, 2)
	require.True(t, ok)
	assert.EqualValues(t, 15, got)
}

func TestLookupAnimationClampsSubtypeColumn(t *testing.T) {
	got, ok := LookupAnimation(StateIdle, 200)
	want, wantOk := LookupAnimation(StateIdle, 8)
	assert.Equal(t, want, got, "out-of-range subtype not clamped to column 8")
	assert.Equal(t, wantOk, ok)
}

func TestAdvanceAnimationResetsFrameStateOnChange(t *testing.T) {
	u := &Unit{State: StateIdle, Subtype: 2, FrameIndex: 5, AnimTickCounter: 3, AnimationID: 999}
	AdvanceAnimation(u, []uint8{})

	assert.EqualValues(t, 15, u.AnimationID)
	assert.EqualValues(t, 0, u.FrameIndex)
	assert.EqualValues(t, 0, u.AnimTickCounter)
}

func TestAdvanceAnimationFallsBackToIdleWhenNoAnimation(t *testing.T) {
	// subtype 1 has no Actn (row 3) animation; fall back to idle row.
	u := &Unit{State: StateInsideBuilding, Subtype: 1}
	AdvanceAnimation(u, nil)
	assert.Equal(t, PersonAnimationTable[0][1], u.AnimationID)
}

func TestTickAnimationAdvancesFrameAfterTicksPerFrame(t *testing.T) {
	u := &Unit{State: StateIdle, Subtype: 2, AnimationID: 15}
	frameCounts := []uint8{15: 4}
	tpf := ticksPerFrame(2) // AnimSpeedMultiplier[2] + 1 = 3

	for i := uint8(0); i < tpf-1; i++ {
		tickAnimation(u, frameCounts)
		assert.EqualValues(t, 0, u.FrameIndex, "frame advanced early at tick %d", i)
	}
	tickAnimation(u, frameCounts)
	assert.EqualValues(t, 1, u.FrameIndex)
}

func TestTickAnimationLoopsAtFrameCount(t *testing.T) {
	u := &Unit{State: StateIdle, Subtype: 5, AnimationID: 15, FrameIndex: 1}
	frameCounts := []uint8{15: 2}
	tpf := ticksPerFrame(5)

	for i := uint8(0); i < tpf; i++ {
		tickAnimation(u, frameCounts)
	}
	assert.EqualValues(t, 0, u.FrameIndex, "expected wrap to 0")
}

func TestTickAnimationSingleFrameNeverAdvances(t *testing.T) {
	u := &Unit{State: StateIdle, Subtype: 1, AnimationID: 0}
	tickAnimation(u, nil)
	assert.EqualValues(t, 0, u.FrameIndex)
	assert.EqualValues(t, 0, u.AnimTickCounter)
}
