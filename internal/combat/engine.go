package combat

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/sloppymo/shadowrun-backend/internal/dice"
)

var (
	// ErrEncounterCompleted rejects operations on a finished encounter.
	ErrEncounterCompleted = errors.New("encounter is completed")
	// ErrEncounterNotActive rejects turn advancement outside the active state.
	ErrEncounterNotActive = errors.New("encounter is not active")
	// ErrEmptyRoster rejects operations that need at least one combatant.
	ErrEmptyRoster = errors.New("no combatants in encounter")
	// ErrNoCombatant rejects operations on a missing combatant.
	ErrNoCombatant = errors.New("combatant not found")
)

// Engine resolves combat operations using an injected dice roller.
type Engine struct {
	roller *dice.Roller
	now    func() time.Time
}

// NewEngine creates a combat engine drawing from the given roller.
func NewEngine(roller *dice.Roller) *Engine {
	return &Engine{roller: roller, now: time.Now}
}

// NewEngineWithClock creates a combat engine with an injected clock for
// audit timestamps.
func NewEngineWithClock(roller *dice.Roller, now func() time.Time) *Engine {
	return &Engine{roller: roller, now: now}
}

// RollInitiativeForAll rolls initiative for every combatant
// (initiative + intuition + 1d6, no Edge), sorts the roster into turn
// order, and activates the encounter at round 1, first combatant.
func (e *Engine) RollInitiativeForAll(enc *Encounter, roster []*Combatant) ([]InitiativeEntry, error) {
	if enc == nil {
		return nil, fmt.Errorf("roll initiative: %w", ErrEncounterNotActive)
	}
	if enc.Status == EncounterCompleted {
		return nil, fmt.Errorf("roll initiative: %w", ErrEncounterCompleted)
	}
	if len(roster) == 0 {
		return nil, fmt.Errorf("roll initiative: %w", ErrEmptyRoster)
	}

	entries := make([]InitiativeEntry, 0, len(roster))
	for _, c := range roster {
		roll := e.roller.D6()
		c.InitiativeScore = c.Initiative + c.Intuition + roll
		entries = append(entries, InitiativeEntry{CombatantID: c.ID, Roll: roll, Score: c.InitiativeScore})
	}
	SortRoster(roster)

	enc.Status = EncounterActive
	enc.CurrentRound = 1
	enc.ActiveIndex = 0
	return entries, nil
}

// SortRoster orders combatants by initiative score descending. Ties break
// on combatant ID ascending so turn order is reproducible.
func SortRoster(roster []*Combatant) {
	sort.SliceStable(roster, func(i, j int) bool {
		if roster[i].InitiativeScore != roster[j].InitiativeScore {
			return roster[i].InitiativeScore > roster[j].InitiativeScore
		}
		return roster[i].ID < roster[j].ID
	})
}

// ApplyDamage adds physical and stun deltas to the combatant's condition
// monitors, clamping each into [0, monitor]. A filled physical monitor
// means dead; a filled stun monitor means unconscious; physical death
// wins when both fill on the same update. Negative deltas heal.
func (e *Engine) ApplyDamage(c *Combatant, physical, stun int) (DamageResult, error) {
	if c == nil {
		return DamageResult{}, fmt.Errorf("apply damage: %w", ErrNoCombatant)
	}
	if c.PhysicalMonitor < 1 || c.StunMonitor < 1 {
		return DamageResult{}, &dice.ValidationError{
			Msg: fmt.Sprintf("combatant %s has invalid condition monitors (%d physical, %d stun)", c.ID, c.PhysicalMonitor, c.StunMonitor),
		}
	}

	c.PhysicalDamage = clamp(c.PhysicalDamage+physical, 0, c.PhysicalMonitor)
	c.StunDamage = clamp(c.StunDamage+stun, 0, c.StunMonitor)

	if c.PhysicalDamage == c.PhysicalMonitor {
		c.Status = StatusDead
	} else if c.StunDamage == c.StunMonitor {
		c.Status = StatusUnconscious
	}

	return DamageResult{
		PhysicalDamage: c.PhysicalDamage,
		StunDamage:     c.StunDamage,
		Status:         c.Status,
	}, nil
}

// AdvanceTurn moves to the next combatant in turn order. Wrapping past
// the end of the roster starts a new round and decrements every
// combatant's sustained actions (floor 0). The roster must already be in
// turn order (see SortRoster).
func (e *Engine) AdvanceTurn(enc *Encounter, roster []*Combatant) (TurnResult, error) {
	if enc == nil || enc.Status != EncounterActive {
		return TurnResult{}, fmt.Errorf("advance turn: %w", ErrEncounterNotActive)
	}
	if len(roster) == 0 {
		return TurnResult{}, fmt.Errorf("advance turn: %w", ErrEmptyRoster)
	}

	enc.ActiveIndex++
	roundAdvanced := false
	if enc.ActiveIndex >= len(roster) {
		enc.ActiveIndex = 0
		enc.CurrentRound++
		roundAdvanced = true
		for _, c := range roster {
			if c.Actions > 0 {
				c.Actions--
			}
		}
	}

	return TurnResult{
		Round:         enc.CurrentRound,
		ActiveIndex:   enc.ActiveIndex,
		ActiveID:      roster[enc.ActiveIndex].ID,
		RoundAdvanced: roundAdvanced,
	}, nil
}

// RecordAction builds an audit entry for a combat action. It mutates
// nothing; the caller appends it to the audit log.
func (e *Engine) RecordAction(c *Combatant, round int, actionType, description string, rolls []string) (ActionRecord, error) {
	if c == nil {
		return ActionRecord{}, fmt.Errorf("record action: %w", ErrNoCombatant)
	}
	return ActionRecord{
		CombatantID: c.ID,
		Round:       round,
		ActionType:  actionType,
		Description: description,
		Rolls:       rolls,
		Time:        e.now(),
	}, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
