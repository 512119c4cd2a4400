package command

import (
	"fmt"
	"strings"

	"github.com/sloppymo/shadowrun-backend/internal/matrix"
	"github.com/sloppymo/shadowrun-backend/internal/parser"
	"github.com/sloppymo/shadowrun-backend/internal/persistence"
	"github.com/sloppymo/shadowrun-backend/internal/rules"
)

// ExecuteMatrix resolves a hack, search or crash action.
func ExecuteMatrix(ctx *Context, cmd *parser.MatrixCmd) (string, error) {
	action, err := matrix.ParseActionType(strings.ToLower(cmd.Action))
	if err != nil {
		return "", err
	}

	persona, err := ctx.FindPersona(cmd.Actor.Name)
	if err != nil {
		return "", err
	}

	var target *matrix.Node
	if cmd.On != nil {
		target, err = ctx.FindNode(*cmd.On)
		if err != nil {
			return "", err
		}
	}

	if err := ctx.checkRule(string(action), rules.BuildMatrixContext(persona, target, map[string]any{"type": string(action)})); err != nil {
		return "", err
	}

	res, err := ctx.Matrix.PerformAction(persona, action, ctx.Grid, target)
	if err != nil {
		return "", err
	}

	nodeID := ""
	if target != nil {
		nodeID = target.ID
	}
	if err := ctx.record(&persistence.MatrixActionRecord{PersonaID: persona.ID, NodeID: nodeID, Result: res}); err != nil {
		return "", err
	}

	var b strings.Builder
	outcome := "fails"
	if res.Success {
		outcome = "succeeds"
	}
	targetName := "the grid"
	if target != nil {
		targetName = target.Name
	}
	fmt.Fprintf(&b, "%s %s: 2d6 (%d) + %s (%d) vs %d - %s %s against %s.",
		persona.Name, action, res.Roll, res.AttributeUsed, res.AttributeValue, res.Difficulty, persona.Name, outcome, targetName)

	if len(res.Discovered) > 0 {
		fmt.Fprintf(&b, "\nDiscovered: %s", strings.Join(res.Discovered, ", "))
	}
	if res.IceCrashed != "" {
		fmt.Fprintf(&b, "\nICE program crashed.")
	}
	if res.OverwatchGenerated > 0 {
		fmt.Fprintf(&b, "\nOverwatch +%d (now %d/40).", res.OverwatchGenerated, res.CurrentOverwatch)
	}
	return b.String(), nil
}

// ExecutePerceive resolves a Matrix perception sweep.
func ExecutePerceive(ctx *Context, cmd *parser.PerceiveCmd) (string, error) {
	persona, err := ctx.FindPersona(cmd.Actor.Name)
	if err != nil {
		return "", err
	}
	if ctx.Grid == nil {
		return "", fmt.Errorf("no matrix grid loaded")
	}

	if err := ctx.checkRule("perceive", rules.BuildMatrixContext(persona, nil, nil)); err != nil {
		return "", err
	}

	res, err := ctx.Matrix.Perception(persona, ctx.Grid)
	if err != nil {
		return "", err
	}

	if err := ctx.record(&persistence.PerceptionRecord{PersonaID: persona.ID, Result: res}); err != nil {
		return "", err
	}

	if len(res.Discovered) == 0 {
		return fmt.Sprintf("%s perceives (roll %d): nothing new on the grid.", persona.Name, res.Roll), nil
	}
	return fmt.Sprintf("%s perceives (roll %d): discovered %s.", persona.Name, res.Roll, strings.Join(res.Discovered, ", ")), nil
}
