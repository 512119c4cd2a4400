// Package combat tracks Shadowrun combat encounters: initiative order,
// condition monitors, and turn/round progression. The engine operates on
// roster state passed in by the caller and returns structured results;
// persistence and notification stay with the caller.
package combat

import "time"

// Status is a combatant's derived condition.
type Status string

const (
	StatusActive      Status = "active"
	StatusDelayed     Status = "delayed"
	StatusUnconscious Status = "unconscious"
	StatusDead        Status = "dead"
)

// EncounterStatus is the lifecycle state of a combat encounter.
// Setup becomes active when initiative is rolled; pausing, resuming and
// completing are driven externally. Completed is terminal.
type EncounterStatus string

const (
	EncounterSetup     EncounterStatus = "setup"
	EncounterActive    EncounterStatus = "active"
	EncounterPaused    EncounterStatus = "paused"
	EncounterCompleted EncounterStatus = "completed"
)

// Combatant is one participant in an encounter.
type Combatant struct {
	ID              string `json:"id" yaml:"id"`
	Name            string `json:"name" yaml:"name"`
	Type            string `json:"type" yaml:"type"` // "player" or "npc"
	Initiative      int    `json:"initiative" yaml:"initiative"`
	InitiativeScore int    `json:"initiative_score" yaml:"-"`
	Actions         int    `json:"actions" yaml:"actions"`
	Reaction        int    `json:"reaction" yaml:"reaction"`
	Intuition       int    `json:"intuition" yaml:"intuition"`
	Edge            int    `json:"edge" yaml:"edge"`
	CurrentEdge     int    `json:"current_edge" yaml:"current_edge"`
	PhysicalDamage  int    `json:"physical_damage" yaml:"-"`
	StunDamage      int    `json:"stun_damage" yaml:"-"`
	PhysicalMonitor int    `json:"physical_monitor" yaml:"physical_monitor"`
	StunMonitor     int    `json:"stun_monitor" yaml:"stun_monitor"`
	Status          Status `json:"status" yaml:"-"`
}

// Encounter is the turn-tracking state of one combat.
type Encounter struct {
	Name         string          `json:"name"`
	Status       EncounterStatus `json:"status"`
	CurrentRound int             `json:"current_round"`
	ActiveIndex  int             `json:"active_index"`
}

// NewEncounter creates an encounter in the setup phase.
func NewEncounter(name string) *Encounter {
	return &Encounter{Name: name, Status: EncounterSetup}
}

// InitiativeEntry records one combatant's initiative roll.
type InitiativeEntry struct {
	CombatantID string `json:"combatant_id"`
	Roll        int    `json:"roll"`
	Score       int    `json:"score"`
}

// DamageResult reports the combatant's state after damage application.
type DamageResult struct {
	PhysicalDamage int    `json:"physical_damage"`
	StunDamage     int    `json:"stun_damage"`
	Status         Status `json:"status"`
}

// TurnResult reports the encounter position after a turn advance.
type TurnResult struct {
	Round         int    `json:"round"`
	ActiveIndex   int    `json:"active_index"`
	ActiveID      string `json:"active_id"`
	RoundAdvanced bool   `json:"round_advanced"`
}

// ActionRecord is an audit entry for a combat action. Building one never
// mutates combatant or encounter state.
type ActionRecord struct {
	CombatantID string    `json:"combatant_id"`
	Round       int       `json:"round"`
	ActionType  string    `json:"action_type"`
	Description string    `json:"description"`
	Rolls       []string  `json:"rolls"`
	Time        time.Time `json:"time"`
}
