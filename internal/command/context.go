// Package command executes parsed DSL commands against the session's
// engines and state, returning display output plus audit records.
package command

import (
	"fmt"

	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/dice"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"
	"github.com/sloppymo/shadowrun-backend/internal/persistence"
	"github.com/sloppymo/shadowrun-backend/internal/rules"
)

const ActorGM = "GM"

// Context carries the shared session state commands execute against.
// The engines hold no entity state themselves; everything lives here and
// is mutated in place by command execution.
type Context struct {
	Roller *dice.Roller
	Combat *combat.Engine
	Matrix *matrix.Engine
	Rules  *rules.Registry
	Store  *persistence.Store // nil disables the audit log

	Encounter *combat.Encounter
	Roster    []*combat.Combatant
	Grid      *matrix.Grid
	Personas  map[string]*matrix.Persona
}

// FindCombatant looks up a roster member by ID or name.
func (c *Context) FindCombatant(id string) (*combat.Combatant, error) {
	for _, cb := range c.Roster {
		if cb.ID == id || cb.Name == id {
			return cb, nil
		}
	}
	return nil, fmt.Errorf("combatant '%s' not found in encounter", id)
}

// FindPersona looks up a Matrix persona by ID or name.
func (c *Context) FindPersona(id string) (*matrix.Persona, error) {
	if p, ok := c.Personas[id]; ok {
		return p, nil
	}
	for _, p := range c.Personas {
		if p.Name == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("persona '%s' not found in session", id)
}

// FindNode looks up a grid node by ID.
func (c *Context) FindNode(id string) (*matrix.Node, error) {
	if c.Grid == nil {
		return nil, fmt.Errorf("no matrix grid loaded")
	}
	if n, ok := c.Grid.Nodes[id]; ok {
		return n, nil
	}
	return nil, fmt.Errorf("node '%s' not found on the grid", id)
}

// record appends to the audit log when one is attached.
func (c *Context) record(rec persistence.Record) error {
	if c.Store == nil {
		return nil
	}
	return c.Store.Append(rec)
}

// checkRule evaluates the house rule registered for an action, if a
// registry is attached.
func (c *Context) checkRule(action string, evalCtx map[string]any) error {
	if c.Rules == nil {
		return nil
	}
	return c.Rules.Check(action, evalCtx)
}
