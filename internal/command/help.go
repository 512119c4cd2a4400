package command

import (
	"fmt"
	"strings"

	"github.com/sloppymo/shadowrun-backend/internal/parser"
)

var usage = map[string]string{
	"roll":       "roll [by: Actor] <NdS+M>          Roll standard dice notation (e.g. roll 3d6+2)",
	"pool":       "pool [by: Actor] <size> [edge]    Roll a Shadowrun d6 pool; edge explodes 6s",
	"extended":   "extended pool: N threshold: T [max: M]   Run an extended test with fatigue",
	"initiative": "initiative                        Roll initiative for the whole roster",
	"encounter":  "encounter <start|end> [with: A [and: B]*]   Manage combat tracking",
	"damage":     "damage to: Target [phys: N] [stun: N]   Apply damage to a combatant",
	"turn":       "turn                              Advance to the next combatant",
	"hack":       "hack by: Persona on: Node         Hack a node (sleaze, or attack if compromised)",
	"search":     "search by: Persona [on: Node]     Search the grid or a node's neighbors",
	"crash":      "crash by: Persona on: Node        Crash an ICE program (attack)",
	"perceive":   "perceive by: Persona              Matrix perception sweep over hidden nodes",
	"log":        "log                               Show the session audit log",
	"help":       "help [command]                    Show usage",
}

// commandOrder keeps help output stable.
var commandOrder = []string{
	"roll", "pool", "extended", "initiative", "encounter", "damage", "turn",
	"hack", "search", "crash", "perceive", "log", "help",
}

// ExecuteHelp prints usage, for one command or all of them.
func ExecuteHelp(cmd *parser.HelpCmd) (string, error) {
	if cmd.Command != "" {
		u, ok := usage[strings.ToLower(cmd.Command)]
		if !ok {
			return "", fmt.Errorf("no such command '%s'", cmd.Command)
		}
		return u, nil
	}

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range commandOrder {
		fmt.Fprintf(&b, "  %s\n", usage[name])
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// ExecuteLog prints the audit trail accumulated so far.
func ExecuteLog(ctx *Context) (string, error) {
	if ctx.Store == nil {
		return "No audit log attached to this session.", nil
	}
	records, err := ctx.Store.Load()
	if err != nil {
		return "", err
	}
	if len(records) == 0 {
		return "The log is empty.", nil
	}

	var b strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&b, "%s\n", rec.Message())
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
