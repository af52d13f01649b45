package unit

// PersonAnimationTable maps [animType][subtype] to a VSTART animation
// index; -1 means no animation exists for that combination. Column 0 is
// unused (subtype 0 = none), columns 1-8 are the eight person subtypes.
var PersonAnimationTable = [26][9]int16{
	/*  0 Idle */ {0, 0, 15, 16, 17, 18, 19, 20, -1},
	/*  1 Walk */ {0, 1, 21, 22, 23, 24, 25, 26, -1},
	/*  2 Ride */ {0, 130, 110, 111, 112, 113, 114, 129, -1},
	/*  3 Actn */ {0, -1, 32, 33, 34, 35, 36, 37, -1},
	/*  4 SpId */ {0, -1, 43, 44, 45, 46, 47, 20, -1},
	/*  5 SpWk */ {0, -1, 48, 49, 50, 51, 52, 26, -1},
	/*  6 Die  */ {0, -1, 27, 28, 29, 30, 31, 20, -1},
	/*  7 Celb */ {0, -1, 38, 39, 40, 41, 42, 20, -1},
	/*  8 Wrk1 */ {0, -1, 53, 54, 55, 56, 57, 106, -1},
	/*  9 Wrk2 */ {0, -1, 58, 59, 60, 61, 62, 20, -1},
	/* 10 Wrk3 */ {0, -1, 63, 64, 65, 66, 67, 106, -1},
	/* 11 Wrk4 */ {0, -1, 68, 69, 70, 71, 72, 20, -1},
	/* 12 Vhcl */ {0, 108, 78, 79, 80, 81, 82, 107, -1},
	/* 13 Wrk5 */ {0, -1, 73, 74, 75, 76, 77, 20, -1},
	/* 14 Spec */ {0, -1, 100, -1, -1, 101, -1, -1, -1},
	/* 15 Sham */ {0, -1, -1, -1, -1, -1, 94, -1, -1},
	/* 16 Swim */ {0, -1, 83, 84, 85, 86, 87, 125, -1},
	/* 17  ??? */ {0, -1, -1, -1, -1, -1, -1, 107, -1},
	/* 18 Crry */ {0, 0, 88, 89, 90, 91, 92, 127, -1},
	/* 19 Dig  */ {0, 0, 115, 116, 117, 118, 119, 126, -1},
	/* 20 Bld  */ {0, 108, 120, 121, 122, 123, 124, 128, -1},
	/* 21 Sit1 */ {0, 0, 131, 132, 133, 134, 135, 20, -1},
	/* 22 Sit2 */ {0, 0, 136, 137, 138, 139, 140, 20, -1},
	/* 23 Sit3 */ {0, 0, 141, 142, 143, 144, 145, 20, -1},
	/* 24 Sit4 */ {0, 0, 146, 147, 148, 149, 150, 20, -1},
	/* 25 Run  */ {0, 1, 156, 157, 158, 159, 160, 26, -1},
}

// AnimSpeedMultiplier gives, per subtype, the extra ticks held per frame;
// ticks-per-frame is this value plus one.
var AnimSpeedMultiplier = [9]uint8{0, 4, 2, 2, 4, 0, 0, 0, 0}

// Animation playback flag bits.
const (
	AnimFlagLoop    uint8 = 1 << 0
	AnimFlagPlaying uint8 = 1 << 1
)

// StateToAnimType maps a PersonState onto its PersonAnimationTable row.
func StateToAnimType(s PersonState) uint8 {
	switch s {
	case StateIdle, StateMoving, StateInsideTraining, StateGathering, StateFighting,
		StateInShield, StateEnteringVehicle, StateWaitingAtReincPillar:
		return 0
	case StateWander, StateGoToPoint, StateFollowPath, StateGoToMarker, StateWaitForPath,
		StateWaitAtMarker, StateEnterBuilding, StateBuilding, StateGatheringWood, StateCarryingWood,
		StateSpawning, StateBeingSacrificed, StateSitDown, StateBeingConverted, StateWaitingAfterConvert,
		StateWaitingForBoat, StatePlaceholder, StateGetOffBoat, StateWaitingInWater, StateCelebrating,
		StateTeleporting, StateInternalState, StateWaitOutside, StateTraining, StateHousing, StateInShieldIdle:
		return 1
	case StateInsideBuilding, StateInTraining:
		return 3
	case StateDead, StateDying:
		return 6
	case StateFleeing, StatePreaching, StateExitingVehicle:
		return 25
	case StateDrowning:
		return 16
	default:
		return 1
	}
}

// LookupAnimation returns the VSTART animation index for (state, subtype),
// or false if that combination has no animation.
func LookupAnimation(state PersonState, subtype uint8) (int16, bool) {
	animType := StateToAnimType(state)
	col := subtype
	if col > 8 {
		col = 8
	}
	val := PersonAnimationTable[animType][col]
	return val, val >= 0
}

// AdvanceAnimation selects the animation for a unit's current state and
// subtype (resetting frame state on a change) and ticks frame playback by
// one tick. frameCounts maps a VSTART animation index to its frame count;
// a missing entry is treated as a single-frame animation.
func AdvanceAnimation(u *Unit, frameCounts []uint8) {
	newID, ok := LookupAnimation(u.State, u.Subtype)
	if !ok {
		col := u.Subtype
		if col > 8 {
			col = 8
		}
		idleVal := PersonAnimationTable[0][col]
		if idleVal >= 0 {
			newID = idleVal
		} else {
			newID = 0
		}
	}

	if newID != u.AnimationID {
		u.AnimationID = newID
		u.FrameIndex = 0
		u.AnimTickCounter = 0
	}

	tickAnimation(u, frameCounts)
}

func frameCount(frameCounts []uint8, id int16) uint8 {
	if id < 0 || int(id) >= len(frameCounts) {
		return 1
	}
	c := frameCounts[id]
	if c == 0 {
		return 1
	}
	return c
}

func ticksPerFrame(subtype uint8) uint8 {
	idx := subtype
	if int(idx) >= len(AnimSpeedMultiplier) {
		idx = uint8(len(AnimSpeedMultiplier) - 1)
	}
	return AnimSpeedMultiplier[idx] + 1
}

// tickAnimation advances frame playback by one tick: single-frame
// animations never advance, and every multi-frame animation wraps back to
// frame 0 after its last frame. AnimFlagLoop is not consulted, so no
// animation holds on its final frame.
func tickAnimation(u *Unit, frameCounts []uint8) {
	fc := frameCount(frameCounts, u.AnimationID)
	if fc <= 1 {
		return
	}

	tpf := ticksPerFrame(u.Subtype)
	u.AnimTickCounter++
	if uint8(u.AnimTickCounter) < tpf {
		return
	}
	u.AnimTickCounter = 0
	u.FrameIndex++
	if u.FrameIndex >= fc {
		u.FrameIndex = 0 // looping is the only playback mode this core exposes
	}
}
