package unit

// Combat tuning constants, in world-coordinate units / ticks.
const (
	CombatDetectRange    int32  = 512
	CombatMeleeRange     int32  = 72
	CombatAttackInterval uint16 = 8

	SwingReadyTicks uint16 = 0x10
	RecoveringTicks uint16 = 8
	LungeTicks      uint16 = 4
)

// CombatPhase values are stored in StateCounter while State == StateFighting.
// The non-sequential values match the original binary's phase encoding.
type CombatPhase uint8

const (
	CombatSeek       CombatPhase = 0x00
	CombatSwingReady CombatPhase = 0x07
	CombatRecovering CombatPhase = 0x0C
	CombatApproach   CombatPhase = 0x22
	CombatStrike     CombatPhase = 0x26
	CombatLungeBack  CombatPhase = 0x27
	CombatLungeFwd   CombatPhase = 0x28
)

// CombatPhaseFromCounter maps a raw StateCounter value onto its
// CombatPhase, defaulting unrecognised values to Seek.
func CombatPhaseFromCounter(v uint8) CombatPhase {
	switch CombatPhase(v) {
	case CombatApproach, CombatSwingReady, CombatStrike, CombatLungeBack, CombatLungeFwd, CombatRecovering:
		return CombatPhase(v)
	default:
		return CombatSeek
	}
}

// TickFighting advances the combat sub-phase state machine by one tick.
// Movement (seeking/approaching) and damage application happen in the
// coordinator, which has visibility into both combatants; this only drives
// the phase timers and transitions.
func TickFighting(u *Unit) TickResult {
	if u.TargetUnit == nil {
		return transitionTo(StateIdle)
	}

	switch CombatPhaseFromCounter(u.StateCounter) {
	case CombatSeek, CombatApproach:
		return holdResult()
	case CombatSwingReady:
		if u.StateTimer > 0 {
			u.StateTimer--
			return holdResult()
		}
		u.StateCounter = uint8(CombatStrike)
		return holdResult()
	case CombatStrike:
		u.StateCounter = uint8(CombatLungeBack)
		u.StateTimer = LungeTicks
		return holdResult()
	case CombatLungeBack:
		if u.StateTimer > 0 {
			u.StateTimer--
			return holdResult()
		}
		u.StateCounter = uint8(CombatLungeFwd)
		u.StateTimer = LungeTicks
		return holdResult()
	case CombatLungeFwd:
		if u.StateTimer > 0 {
			u.StateTimer--
			return holdResult()
		}
		u.StateCounter = uint8(CombatRecovering)
		u.StateTimer = RecoveringTicks
		return holdResult()
	case CombatRecovering:
		if u.StateTimer > 0 {
			u.StateTimer--
			return holdResult()
		}
		u.StateCounter = uint8(CombatSeek)
		return holdResult()
	}
	return holdResult()
}

func tickFighting(u *Unit) TickResult { return TickFighting(u) }

// CalculateMeleeDamage scales an attacker's base fight damage by their
// remaining health fraction, floored at 32 so a nearly-dead attacker still
// lands a token hit, then doubles the result under bloodlust.
func CalculateMeleeDamage(attacker *Unit) uint16 {
	defaults := PersonDefaults(attacker.Subtype)
	base := uint32(defaults.FightDamage)
	maxHealth := uint32(attacker.MaxHealth)
	if maxHealth == 0 {
		maxHealth = 1
	}
	damage := base * uint32(attacker.Health) / maxHealth
	if damage < 0x20 {
		damage = 0x20
	}
	if attacker.Bloodlust {
		damage *= 2
	}
	return uint16(damage)
}

// ApplyDamage subtracts damage from a unit's health, halved if the unit is
// shielded, clamping at zero.
func ApplyDamage(u *Unit, damage uint16) {
	effective := damage
	if u.Shielded {
		effective >>= 1
	}
	if u.Health <= effective {
		u.Health = 0
	} else {
		u.Health -= effective
	}
}
