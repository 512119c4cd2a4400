package rules

import (
	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"
)

// ContextFromCombatant converts a combatant into a map suitable for CEL evaluation.
func ContextFromCombatant(c *combat.Combatant) map[string]any {
	if c == nil {
		return nil
	}
	return map[string]any{
		"id":               c.ID,
		"name":             c.Name,
		"type":             c.Type,
		"initiative":       c.Initiative,
		"initiative_score": c.InitiativeScore,
		"actions":          c.Actions,
		"reaction":         c.Reaction,
		"intuition":        c.Intuition,
		"edge":             c.Edge,
		"current_edge":     c.CurrentEdge,
		"physical_damage":  c.PhysicalDamage,
		"stun_damage":      c.StunDamage,
		"physical_monitor": c.PhysicalMonitor,
		"stun_monitor":     c.StunMonitor,
		"status":           string(c.Status),
	}
}

// ContextFromPersona converts a Matrix persona into a map suitable for CEL evaluation.
func ContextFromPersona(p *matrix.Persona) map[string]any {
	if p == nil {
		return nil
	}
	return map[string]any{
		"id":              p.ID,
		"name":            p.Name,
		"attack":          p.Attack,
		"sleaze":          p.Sleaze,
		"data_processing": p.DataProcessing,
		"firewall":        p.Firewall,
		"overwatch_score": p.OverwatchScore,
		"running_silent":  p.RunningSilent,
		"hot_sim":         p.HotSim,
	}
}

// ContextFromNode converts a Matrix node into a map suitable for CEL evaluation.
func ContextFromNode(n *matrix.Node) map[string]any {
	if n == nil {
		return nil
	}
	return map[string]any{
		"id":          n.ID,
		"name":        n.Name,
		"type":        n.Type,
		"security":    n.Security,
		"encrypted":   n.Encrypted,
		"discovered":  n.Discovered,
		"compromised": n.Compromised,
	}
}

// BuildCombatContext creates the standard combat evaluation context.
func BuildCombatContext(actor, target *combat.Combatant, action map[string]any) map[string]any {
	return map[string]any{
		"actor":  ContextFromCombatant(actor),
		"target": ContextFromCombatant(target),
		"action": action,
	}
}

// BuildMatrixContext creates the standard Matrix evaluation context.
func BuildMatrixContext(persona *matrix.Persona, node *matrix.Node, action map[string]any) map[string]any {
	return map[string]any{
		"persona": ContextFromPersona(persona),
		"node":    ContextFromNode(node),
		"action":  action,
	}
}
