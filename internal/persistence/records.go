package persistence

import (
	"fmt"

	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/dice"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"
)

// RecordType identifies the concrete type inside a log line.
type RecordType string

const (
	RecordRoll         RecordType = "roll"
	RecordPool         RecordType = "pool"
	RecordExtended     RecordType = "extended"
	RecordInitiative   RecordType = "initiative"
	RecordEncounter    RecordType = "encounter"
	RecordDamage       RecordType = "damage"
	RecordTurn         RecordType = "turn"
	RecordCombatAction RecordType = "combat_action"
	RecordMatrixAction RecordType = "matrix_action"
	RecordPerception   RecordType = "perception"
)

// Record is one append-only audit log entry.
type Record interface {
	Type() RecordType
	Message() string
}

// RollRecord logs a notation roll.
type RollRecord struct {
	Actor  string          `json:"actor,omitempty"`
	Result dice.RollResult `json:"result"`
}

func (r *RollRecord) Type() RecordType { return RecordRoll }
func (r *RollRecord) Message() string {
	who := r.Actor
	if who == "" {
		who = "GM"
	}
	return fmt.Sprintf("%s rolled %s for %d", who, r.Result.Notation, r.Result.Total)
}

// PoolRecord logs a Shadowrun pool roll.
type PoolRecord struct {
	Actor  string          `json:"actor,omitempty"`
	Result dice.PoolResult `json:"result"`
}

func (r *PoolRecord) Type() RecordType { return RecordPool }
func (r *PoolRecord) Message() string {
	who := r.Actor
	if who == "" {
		who = "GM"
	}
	msg := fmt.Sprintf("%s rolled a pool of %d for %d hits", who, r.Result.PoolSize, r.Result.Hits)
	if r.Result.CriticalGlitch {
		msg += " (critical glitch)"
	} else if r.Result.Glitch {
		msg += " (glitch)"
	}
	return msg
}

// ExtendedRecord logs an extended test.
type ExtendedRecord struct {
	Actor  string              `json:"actor,omitempty"`
	Result dice.ExtendedResult `json:"result"`
}

func (r *ExtendedRecord) Type() RecordType { return RecordExtended }
func (r *ExtendedRecord) Message() string {
	outcome := "failed"
	if r.Result.Success {
		outcome = "succeeded"
	}
	return fmt.Sprintf("extended test %s with %d/%d hits after %d rolls", outcome, r.Result.TotalHits, r.Result.Threshold, r.Result.RollsMade)
}

// InitiativeRecord logs the initiative pass that opens an encounter.
type InitiativeRecord struct {
	Encounter string                   `json:"encounter"`
	Entries   []combat.InitiativeEntry `json:"entries"`
}

func (r *InitiativeRecord) Type() RecordType { return RecordInitiative }
func (r *InitiativeRecord) Message() string {
	return fmt.Sprintf("initiative rolled for %d combatants in %s", len(r.Entries), r.Encounter)
}

// EncounterRecord logs an encounter lifecycle change.
type EncounterRecord struct {
	Name   string                 `json:"name"`
	Status combat.EncounterStatus `json:"status"`
}

func (r *EncounterRecord) Type() RecordType { return RecordEncounter }
func (r *EncounterRecord) Message() string {
	return fmt.Sprintf("encounter %s is now %s", r.Name, r.Status)
}

// DamageRecord logs a damage application.
type DamageRecord struct {
	CombatantID string              `json:"combatant_id"`
	Physical    int                 `json:"physical"`
	Stun        int                 `json:"stun"`
	Result      combat.DamageResult `json:"result"`
}

func (r *DamageRecord) Type() RecordType { return RecordDamage }
func (r *DamageRecord) Message() string {
	return fmt.Sprintf("%s took %dP/%dS, now %s", r.CombatantID, r.Physical, r.Stun, r.Result.Status)
}

// TurnRecord logs a turn advance.
type TurnRecord struct {
	Result combat.TurnResult `json:"result"`
}

func (r *TurnRecord) Type() RecordType { return RecordTurn }
func (r *TurnRecord) Message() string {
	return fmt.Sprintf("round %d, %s acts", r.Result.Round, r.Result.ActiveID)
}

// CombatActionRecord logs a narrated combat action.
type CombatActionRecord struct {
	Action combat.ActionRecord `json:"action"`
}

func (r *CombatActionRecord) Type() RecordType { return RecordCombatAction }
func (r *CombatActionRecord) Message() string {
	return fmt.Sprintf("%s: %s", r.Action.CombatantID, r.Action.Description)
}

// MatrixActionRecord logs a resolved Matrix action.
type MatrixActionRecord struct {
	PersonaID string              `json:"persona_id"`
	NodeID    string              `json:"node_id,omitempty"`
	Result    matrix.ActionResult `json:"result"`
}

func (r *MatrixActionRecord) Type() RecordType { return RecordMatrixAction }
func (r *MatrixActionRecord) Message() string {
	outcome := "failed"
	if r.Result.Success {
		outcome = "succeeded"
	}
	target := r.NodeID
	if target == "" {
		target = "the grid"
	}
	return fmt.Sprintf("%s %s a %s against %s", r.PersonaID, outcome, r.Result.Action, target)
}

// PerceptionRecord logs a Matrix perception sweep.
type PerceptionRecord struct {
	PersonaID string                 `json:"persona_id"`
	Result    matrix.DiscoveryResult `json:"result"`
}

func (r *PerceptionRecord) Type() RecordType { return RecordPerception }
func (r *PerceptionRecord) Message() string {
	return fmt.Sprintf("%s perceived %d hidden nodes", r.PersonaID, len(r.Result.Discovered))
}
