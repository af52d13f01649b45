// Package unit implements the Person finite-state machine: per-subtype
// stat defaults, state entry/tick dispatch, melee combat sub-phases, and
// animation selection, all driven from a single deterministic RNG owned
// by the caller.
package unit

import (
	"github.com/popsim/popcore"
	"github.com/popsim/popcore/movement"
)

// ModelType distinguishes the handful of object kinds the coordinator can
// load from a level; only Person is simulated by this package.
type ModelType uint8

const (
	ModelPerson ModelType = iota
	ModelBuilding
	ModelOther
)

// Unit is one simulated person: identity, movement state (embedded from
// the movement package), FSM state, combat state and animation state.
type Unit struct {
	ID          uint32
	ModelType   ModelType
	Subtype     uint8
	TribeIndex  uint8
	Movement    movement.PersonMovement
	CellX       float32
	CellY       float32
	State       PersonState
	PrevState   PersonState
	StateTimer  uint16
	StateCounter uint8
	Health      uint16
	MaxHealth   uint16
	TargetUnit  *uint32 // ID of the engaged unit, nil if none
	AttackerUnit *uint32
	Alive       bool
	HomePos     popcore.WorldCoord
	WanderDuration uint16
	WanderRange    uint16
	Bloodlust   bool
	Shielded    bool

	AnimationID    int16
	FrameIndex     uint8
	AnimTickCounter uint8
}

// CellPos returns the unit's cached render-cell position.
func (u *Unit) CellPos() (float32, float32) { return u.CellX, u.CellY }

// UnitID returns the unit's id.
func (u *Unit) UnitID() uint32 { return u.ID }

// PersonTypeDefaults holds the per-subtype stat table entries.
type PersonTypeDefaults struct {
	MaxHealth   uint16
	Speed       uint16
	FightDamage uint16
}

// personTypeDefaults is the per-subtype stat table: 1=Wild, 2=Brave,
// 3=Warrior, 4=Religious, 5=Spy, 6=SuperWarrior, 7=Shaman,
// 8=AngelOfDeath, anything else falls back to a generic default.
var personTypeDefaults = map[uint8]PersonTypeDefaults{
	1: {MaxHealth: 32, Speed: 0x30, FightDamage: 64},
	2: {MaxHealth: 1400, Speed: 0x30, FightDamage: 200},
	3: {MaxHealth: 1800, Speed: 0x28, FightDamage: 400},
	4: {MaxHealth: 1400, Speed: 0x28, FightDamage: 150},
	5: {MaxHealth: 1400, Speed: 0x30, FightDamage: 200},
	6: {MaxHealth: 1200, Speed: 0x28, FightDamage: 500},
	7: {MaxHealth: 900, Speed: 0x30, FightDamage: 300},
	8: {MaxHealth: 2000, Speed: 0x30, FightDamage: 600},
}

var fallbackDefaults = PersonTypeDefaults{MaxHealth: 200, Speed: 0x30, FightDamage: 100}

// PersonDefaults returns the default stats for a person subtype, falling
// back to a generic profile for unrecognised subtypes.
func PersonDefaults(subtype uint8) PersonTypeDefaults {
	if d, ok := personTypeDefaults[subtype]; ok {
		return d
	}
	return fallbackDefaults
}
