package command

import (
	"fmt"
	"strings"

	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/parser"
	"github.com/sloppymo/shadowrun-backend/internal/persistence"
)

// ExecuteEncounter starts or ends combat tracking. Starting with targets
// narrows the roster to the named combatants; without targets the whole
// available roster fights.
func ExecuteEncounter(ctx *Context, cmd *parser.EncounterCmd, available []*combat.Combatant) (string, error) {
	switch cmd.Action {
	case "start":
		if ctx.Encounter != nil && ctx.Encounter.Status == combat.EncounterActive {
			return "", fmt.Errorf("an encounter is already active; end it first")
		}

		roster := available
		if len(cmd.Targets) > 0 {
			roster = nil
			for _, id := range cmd.Targets {
				found := false
				for _, c := range available {
					if c.ID == id || c.Name == id {
						roster = append(roster, c)
						found = true
						break
					}
				}
				if !found {
					return "", fmt.Errorf("combatant '%s' not found in scenario", id)
				}
			}
		}
		if len(roster) == 0 {
			return "", fmt.Errorf("no combatants available to start an encounter")
		}

		ctx.Encounter = combat.NewEncounter("encounter")
		ctx.Roster = roster

		if err := ctx.record(&persistence.EncounterRecord{Name: ctx.Encounter.Name, Status: ctx.Encounter.Status}); err != nil {
			return "", err
		}

		names := make([]string, len(roster))
		for i, c := range roster {
			names[i] = c.Name
		}
		return fmt.Sprintf("Encounter set up with %s. Roll initiative to begin.", strings.Join(names, ", ")), nil

	case "end":
		if ctx.Encounter == nil {
			return "", fmt.Errorf("no encounter to end")
		}
		ctx.Encounter.Status = combat.EncounterCompleted
		if err := ctx.record(&persistence.EncounterRecord{Name: ctx.Encounter.Name, Status: combat.EncounterCompleted}); err != nil {
			return "", err
		}
		return "Encounter ended.", nil
	}
	return "", fmt.Errorf("unknown encounter action '%s'", cmd.Action)
}

// ExecuteInitiative rolls initiative for every roster member and opens
// the encounter.
func ExecuteInitiative(ctx *Context, cmd *parser.InitiativeCmd) (string, error) {
	if ctx.Encounter == nil {
		return "", fmt.Errorf("no encounter set up (use: encounter start)")
	}

	entries, err := ctx.Combat.RollInitiativeForAll(ctx.Encounter, ctx.Roster)
	if err != nil {
		return "", err
	}

	if err := ctx.record(&persistence.InitiativeRecord{Encounter: ctx.Encounter.Name, Entries: entries}); err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Initiative order:\n")
	for i, c := range ctx.Roster {
		fmt.Fprintf(&b, "  %d. %s (%d)\n", i+1, c.Name, c.InitiativeScore)
	}
	fmt.Fprintf(&b, "Round 1, %s acts.", ctx.Roster[0].Name)
	return b.String(), nil
}

// ExecuteDamage applies physical and stun damage to one combatant.
func ExecuteDamage(ctx *Context, cmd *parser.DamageCmd) (string, error) {
	target, err := ctx.FindCombatant(cmd.Target)
	if err != nil {
		return "", err
	}

	phys, stun := 0, 0
	if cmd.Phys != nil {
		phys = *cmd.Phys
	}
	if cmd.Stun != nil {
		stun = *cmd.Stun
	}

	if err := ctx.checkRule("damage", map[string]any{
		"action": map[string]any{"physical": phys, "stun": stun},
	}); err != nil {
		return "", err
	}

	res, err := ctx.Combat.ApplyDamage(target, phys, stun)
	if err != nil {
		return "", err
	}

	if err := ctx.record(&persistence.DamageRecord{CombatantID: target.ID, Physical: phys, Stun: stun, Result: res}); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("%s: %d/%d physical, %d/%d stun",
		target.Name, res.PhysicalDamage, target.PhysicalMonitor, res.StunDamage, target.StunMonitor)
	switch res.Status {
	case combat.StatusDead:
		msg += " - DEAD"
	case combat.StatusUnconscious:
		msg += " - unconscious"
	}
	return msg, nil
}

// ExecuteTurn advances the encounter to the next combatant.
func ExecuteTurn(ctx *Context, cmd *parser.TurnCmd) (string, error) {
	if ctx.Encounter == nil {
		return "", fmt.Errorf("no encounter in progress")
	}

	res, err := ctx.Combat.AdvanceTurn(ctx.Encounter, ctx.Roster)
	if err != nil {
		return "", err
	}

	if err := ctx.record(&persistence.TurnRecord{Result: res}); err != nil {
		return "", err
	}

	active := ctx.Roster[res.ActiveIndex]
	if res.RoundAdvanced {
		return fmt.Sprintf("Round %d begins. %s acts.", res.Round, active.Name), nil
	}
	return fmt.Sprintf("%s acts.", active.Name), nil
}
