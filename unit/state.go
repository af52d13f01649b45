package unit

import (
	"log"

	"github.com/popsim/popcore/movement"
)

// PersonState enumerates every state value the original Person_SetState
// switch recognised; all 42 named here are kept for binary-offset
// compatibility (0x12 and 0x14 have no name), but
// only the core set (Idle, Wander, Moving/GoToPoint/GoToMarker, Fighting,
// Fleeing, Drowning, Dead) has entry/tick logic here — the rest no-op on
// entry and hold on tick, matching the original's unimplemented-state
// fallthrough.
type PersonState uint8

const (
	StateIdle                 PersonState = 0x01
	StateDying                PersonState = 0x02
	StateMoving               PersonState = 0x03
	StateWander               PersonState = 0x04
	StateGoToPoint            PersonState = 0x05
	StateFollowPath           PersonState = 0x06
	StateGoToMarker           PersonState = 0x07
	StateWaitForPath          PersonState = 0x08
	StateWaitAtMarker         PersonState = 0x09
	StateEnterBuilding        PersonState = 0x0A
	StateInsideBuilding       PersonState = 0x0B
	StateInsideTraining       PersonState = 0x0C
	StateBuilding             PersonState = 0x0D
	StateInTraining           PersonState = 0x0E
	StateWaitOutside          PersonState = 0x0F
	StateTraining             PersonState = 0x10
	StateHousing              PersonState = 0x11
	StateGathering            PersonState = 0x13
	StateGatheringWood        PersonState = 0x15
	StateCarryingWood         PersonState = 0x16
	StateDrowning             PersonState = 0x17
	StateDead                 PersonState = 0x18
	StateFighting             PersonState = 0x19
	StateFleeing              PersonState = 0x1A
	StateSpawning             PersonState = 0x1B
	StateBeingSacrificed      PersonState = 0x1C
	StateInShield             PersonState = 0x1D
	StateInShieldIdle         PersonState = 0x1E
	StatePreaching            PersonState = 0x1F
	StateSitDown              PersonState = 0x20
	StateBeingConverted       PersonState = 0x21
	StateWaitingAfterConvert  PersonState = 0x22
	StateWaitingForBoat       PersonState = 0x23
	StatePlaceholder          PersonState = 0x24
	StateGetOffBoat           PersonState = 0x25
	StateWaitingInWater       PersonState = 0x26
	StateEnteringVehicle      PersonState = 0x27
	StateExitingVehicle       PersonState = 0x28
	StateCelebrating          PersonState = 0x29
	StateTeleporting          PersonState = 0x2A
	StateInternalState        PersonState = 0x2B
	StateWaitingAtReincPillar PersonState = 0x2C
)

// WanderPhase values are stored in StateCounter while State == StateWander.
type WanderPhase uint8

const (
	WanderWalking WanderPhase = iota
	WanderPausing
	WanderWalking2
	// WanderWaterEscape is recovered from the original enum for
	// binary-value compatibility only; tick_wander never drives the
	// counter into it and its behaviour is identical to the unrecognised
	// fallthrough arm below. Kept as a named slot for a future
	// drowning-avoidance producer rather than collapsed into WanderWalking2.
	WanderWaterEscape
)

// TickResult is the outcome of one TickState call: either the unit stays
// in its current state, or it should transition to a new one.
type TickResult struct {
	Transition bool
	NextState  PersonState
}

func holdResult() TickResult { return TickResult{} }
func transitionTo(s PersonState) TickResult { return TickResult{Transition: true, NextState: s} }

// EnterState runs the entry preamble (previous-state save, counter reset,
// flag clear) and dispatches to the per-state entry hook, mirroring
// Person_SetState's switch. Unrecognised states simply fall through.
func EnterState(u *Unit, newState PersonState, rng *GameRng) {
	log.Printf("[state] unit %d %v -> %v", u.ID, u.State, newState)
	u.PrevState = u.State
	u.State = newState
	u.StateCounter = 0
	u.Movement.Flags &= movement.FlagClearMask

	switch newState {
	case StateIdle:
		enterIdle(u, rng)
	case StateWander:
		enterWander(u, rng)
	case StateMoving, StateGoToPoint, StateGoToMarker:
		// movement/route package handles entry via StateGoto
	case StateFighting:
		enterFighting(u)
	case StateFleeing:
		enterFleeing(u, rng)
	case StateDrowning:
		enterDrowning(u)
	case StateDead:
		enterDead(u, rng)
	}
}

func enterIdle(u *Unit, rng *GameRng) {
	u.Movement.Speed = 0
	u.StateTimer = uint16(rng.Next()%50 + 50)
}

func enterWander(u *Unit, rng *GameRng) {
	u.StateCounter = uint8(WanderWalking)
	enterWanderWalking(u, rng)
}

func enterWanderWalking(u *Unit, rng *GameRng) {
	u.StateTimer = uint16(rng.Next()&0x1F) + 0x20
	u.Movement.FacingAngle = uint16(rng.Next() & 0x7FF)
	u.Movement.Flags |= 0x1080
	u.Movement.Speed = PersonDefaults(u.Subtype).Speed
}

func enterWanderPausing(u *Unit, rng *GameRng) {
	u.StateTimer = uint16(rng.Next()&0x3F) + 0x40
	u.Movement.Flags &^= 0x1000
	u.Movement.Speed = 0
}

func enterFighting(u *Unit) {
	u.Movement.Speed = 0
	u.Movement.Flags &^= 0x1000
	u.StateCounter = uint8(CombatSeek)
	u.StateTimer = 0
}

func enterFleeing(u *Unit, rng *GameRng) {
	u.Movement.Speed = 0x6E
	u.StateTimer = 0x40
	u.Movement.FacingAngle = uint16(rng.Next() & 0x7FF)
	u.Movement.Flags |= 0x1080
}

func enterDrowning(u *Unit) {
	u.Movement.Speed = 0
	u.Movement.Flags &^= 0x1000
}

func enterDead(u *Unit, rng *GameRng) {
	u.Movement.Speed = 0
	u.Movement.Flags &^= 0x1000
	u.Movement.Flags |= 0x480
	u.StateCounter = uint8(rng.Next() & 7)
}

// TickState advances a unit's state machine by one tick, dispatching on
// the current state; unimplemented states hold.
func TickState(u *Unit, rng *GameRng) TickResult {
	switch u.State {
	case StateIdle:
		return tickIdle(u)
	case StateMoving, StateGoToPoint, StateGoToMarker:
		return tickMoving(u)
	case StateWander:
		return tickWander(u, rng)
	case StateFighting:
		return tickFighting(u)
	case StateFleeing:
		return tickFleeing(u)
	case StateDrowning:
		return tickDrowning(u)
	case StateDead:
		return tickDead(u)
	default:
		return holdResult()
	}
}

func tickIdle(u *Unit) TickResult {
	if u.StateTimer > 0 {
		u.StateTimer--
		return holdResult()
	}
	return transitionTo(StateWander)
}

func tickMoving(u *Unit) TickResult {
	if !u.Movement.IsMoving() {
		return transitionTo(StateIdle)
	}
	return holdResult()
}

// tickWander cycles Walking -> Pausing -> Walking2 -> Idle. The counter
// value for WanderWaterEscape (3) and any other unrecognised value both
// fall through to the same exit-to-Idle path as Walking2's successor.
func tickWander(u *Unit, rng *GameRng) TickResult {
	if u.StateTimer > 0 {
		u.StateTimer--
		return holdResult()
	}

	switch WanderPhase(u.StateCounter) {
	case WanderWalking:
		u.StateCounter = uint8(WanderPausing)
		enterWanderPausing(u, rng)
		return holdResult()
	case WanderPausing:
		u.StateCounter = uint8(WanderWalking2)
		enterWanderWalking(u, rng)
		return holdResult()
	default:
		u.Movement.Flags &^= 0x1000
		u.Movement.Speed = 0
		return transitionTo(StateIdle)
	}
}

func tickFleeing(u *Unit) TickResult {
	if u.StateTimer > 0 {
		u.StateTimer--
		return holdResult()
	}
	u.Movement.Flags &^= 0x1000
	return transitionTo(StateIdle)
}

func tickDrowning(u *Unit) TickResult {
	damage := u.MaxHealth / 50
	if damage < 1 {
		damage = 1
	}
	if u.Health <= damage {
		u.Health = 0
		return transitionTo(StateDead)
	}
	u.Health -= damage
	return holdResult()
}

func tickDead(u *Unit) TickResult {
	if u.StateCounter > 0 {
		u.StateCounter--
	} else {
		u.Alive = false
	}
	return holdResult()
}
