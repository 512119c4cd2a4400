package command

import (
	"github.com/sloppymo/shadowrun-backend/internal/dice"
	"github.com/sloppymo/shadowrun-backend/internal/parser"
	"github.com/sloppymo/shadowrun-backend/internal/persistence"
)

// ExecuteRoll resolves a standard notation roll.
func ExecuteRoll(ctx *Context, cmd *parser.RollCmd) (string, error) {
	actor := ActorGM
	if cmd.Actor != nil {
		actor = cmd.Actor.Name
	}

	if err := ctx.checkRule("roll", map[string]any{
		"action": map[string]any{"actor": actor, "dice": cmd.Dice},
	}); err != nil {
		return "", err
	}

	res, err := ctx.Roller.Roll(cmd.Dice)
	if err != nil {
		return "", err
	}

	if err := ctx.record(&persistence.RollRecord{Actor: actor, Result: res}); err != nil {
		return "", err
	}
	return dice.FormatRoll(res), nil
}
