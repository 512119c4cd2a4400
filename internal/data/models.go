package data

import (
	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"
)

// Default values applied to templates that omit a field. A zero in the
// YAML counts as omitted; none of these attributes are ever zero in play.
const (
	defaultAttack          = 4
	defaultSleaze          = 5
	defaultDataProcessing  = 6
	defaultFirewall        = 4
	defaultPhysicalMonitor = 10
	defaultStunMonitor     = 10
	defaultInitiative      = 10
	defaultReaction        = 5
	defaultIntuition       = 3
	defaultEdge            = 2
	defaultActions         = 1
)

// NodeTemplate declares one Matrix node in a scenario file.
type NodeTemplate struct {
	ID         string          `yaml:"id"`
	Name       string          `yaml:"name"`
	Type       string          `yaml:"type"`
	Security   int             `yaml:"security"`
	Encrypted  bool            `yaml:"encrypted"`
	Discovered bool            `yaml:"discovered"`
	Position   matrix.Position `yaml:"position"`
	Connected  []string        `yaml:"connected"`
	Payload    map[string]any  `yaml:"data"`
}

// IceTemplate declares one ICE program in a scenario file.
type IceTemplate struct {
	ID       string          `yaml:"id"`
	Name     string          `yaml:"name"`
	Type     string          `yaml:"ice_type"`
	Rating   int             `yaml:"rating"`
	NodeID   string          `yaml:"node_id"`
	Position matrix.Position `yaml:"position"`
}

// GridTemplate declares a Matrix host layout: archetypal nodes plus
// adjacency, kept apart from the resolution engine so layouts can change
// without touching resolution code.
type GridTemplate struct {
	Name  string         `yaml:"name"`
	Nodes []NodeTemplate `yaml:"nodes"`
	Ice   []IceTemplate  `yaml:"ice"`
}

// PersonaTemplate declares a decker's Matrix attributes.
type PersonaTemplate struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Attack         int    `yaml:"attack"`
	Sleaze         int    `yaml:"sleaze"`
	DataProcessing int    `yaml:"data_processing"`
	Firewall       int    `yaml:"firewall"`
	RunningSilent  bool   `yaml:"running_silent"`
	HotSim         bool   `yaml:"hot_sim"`
}

// CombatantTemplate declares one combat roster entry.
type CombatantTemplate struct {
	ID              string `yaml:"id"`
	Name            string `yaml:"name"`
	Type            string `yaml:"type"`
	Initiative      int    `yaml:"initiative"`
	Reaction        int    `yaml:"reaction"`
	Intuition       int    `yaml:"intuition"`
	Edge            int    `yaml:"edge"`
	Actions         int    `yaml:"actions"`
	PhysicalMonitor int    `yaml:"physical_monitor"`
	StunMonitor     int    `yaml:"stun_monitor"`
}

// ScenarioTemplate is one complete session setup: a combat roster, the
// deckers' personas, and the Matrix grid they run against.
type ScenarioTemplate struct {
	Name     string              `yaml:"name"`
	Roster   []CombatantTemplate `yaml:"roster"`
	Personas []PersonaTemplate   `yaml:"personas"`
	Grid     *GridTemplate       `yaml:"grid"`
}

// BuildGrid instantiates a grid from its template.
func BuildGrid(t *GridTemplate) *matrix.Grid {
	g := matrix.NewGrid(t.Name)
	for _, nt := range t.Nodes {
		g.AddNode(&matrix.Node{
			ID:         nt.ID,
			Name:       nt.Name,
			Type:       nt.Type,
			Security:   nt.Security,
			Encrypted:  nt.Encrypted,
			Discovered: nt.Discovered,
			Position:   nt.Position,
			Connected:  nt.Connected,
			Payload:    nt.Payload,
		})
	}
	for _, it := range t.Ice {
		g.AddIce(&matrix.IceProgram{
			ID:       it.ID,
			Name:     it.Name,
			Type:     matrix.IceType(it.Type),
			Rating:   it.Rating,
			Status:   matrix.IceActive,
			NodeID:   it.NodeID,
			Position: it.Position,
		})
	}
	return g
}

// BuildPersona instantiates a persona, filling omitted attributes with
// the standard decker defaults.
func BuildPersona(t PersonaTemplate) *matrix.Persona {
	return &matrix.Persona{
		ID:             t.ID,
		Name:           t.Name,
		Attack:         orDefault(t.Attack, defaultAttack),
		Sleaze:         orDefault(t.Sleaze, defaultSleaze),
		DataProcessing: orDefault(t.DataProcessing, defaultDataProcessing),
		Firewall:       orDefault(t.Firewall, defaultFirewall),
		RunningSilent:  t.RunningSilent,
		HotSim:         t.HotSim,
	}
}

// BuildCombatant instantiates a combatant, filling omitted attributes
// with baseline values so a terse roster entry is still playable.
func BuildCombatant(t CombatantTemplate) *combat.Combatant {
	return &combat.Combatant{
		ID:              t.ID,
		Name:            t.Name,
		Type:            t.Type,
		Initiative:      orDefault(t.Initiative, defaultInitiative),
		Reaction:        orDefault(t.Reaction, defaultReaction),
		Intuition:       orDefault(t.Intuition, defaultIntuition),
		Edge:            orDefault(t.Edge, defaultEdge),
		CurrentEdge:     orDefault(t.Edge, defaultEdge),
		Actions:         orDefault(t.Actions, defaultActions),
		PhysicalMonitor: orDefault(t.PhysicalMonitor, defaultPhysicalMonitor),
		StunMonitor:     orDefault(t.StunMonitor, defaultStunMonitor),
		Status:          combat.StatusActive,
	}
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
