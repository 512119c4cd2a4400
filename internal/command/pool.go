package command

import (
	"fmt"

	"github.com/sloppymo/shadowrun-backend/internal/dice"
	"github.com/sloppymo/shadowrun-backend/internal/parser"
	"github.com/sloppymo/shadowrun-backend/internal/persistence"
	"github.com/sloppymo/shadowrun-backend/internal/rules"
)

// ExecutePool resolves a Shadowrun dice pool roll. When the actor is a
// roster member and Edge is spent, the point comes off their current
// Edge; the GM rolls with Edge freely.
func ExecutePool(ctx *Context, cmd *parser.PoolCmd) (string, error) {
	actor := ActorGM
	if cmd.Actor != nil {
		actor = cmd.Actor.Name
	}

	combatant, _ := ctx.FindCombatant(actor)
	if err := ctx.checkRule("pool", map[string]any{
		"actor":  rules.ContextFromCombatant(combatant),
		"action": map[string]any{"size": cmd.Size, "edge": cmd.Edge},
	}); err != nil {
		return "", err
	}

	if cmd.Edge && combatant != nil {
		if combatant.CurrentEdge < 1 {
			return "", fmt.Errorf("%s has no Edge left to spend", combatant.Name)
		}
		combatant.CurrentEdge--
	}

	res, err := ctx.Roller.RollPool(cmd.Size, cmd.Edge)
	if err != nil {
		return "", err
	}

	if err := ctx.record(&persistence.PoolRecord{Actor: actor, Result: res}); err != nil {
		return "", err
	}
	return dice.FormatPool(res), nil
}

// ExecuteExtended resolves an extended test.
func ExecuteExtended(ctx *Context, cmd *parser.ExtendedCmd) (string, error) {
	maxRolls := 0
	if cmd.Max != nil {
		maxRolls = *cmd.Max
	}

	if err := ctx.checkRule("extended", map[string]any{
		"action": map[string]any{"pool": cmd.Pool, "threshold": cmd.Threshold, "max": maxRolls},
	}); err != nil {
		return "", err
	}

	res, err := ctx.Roller.RollExtendedTest(cmd.Pool, cmd.Threshold, maxRolls)
	if err != nil {
		return "", err
	}

	if err := ctx.record(&persistence.ExtendedRecord{Result: res}); err != nil {
		return "", err
	}
	return dice.FormatExtended(res), nil
}
