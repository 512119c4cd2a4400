// Package matrix resolves Shadowrun Matrix runs over a node graph: hack,
// search and crash actions against node security, perception sweeps, and
// ICE patrol updates. Actions use an opposed 2d6 + attribute check, a
// mechanic separate from the combat dice pool.
package matrix

import (
	"fmt"
	"time"

	"github.com/sloppymo/shadowrun-backend/internal/dice"
)

// ActionType is the closed set of Matrix actions. An unrecognized type is
// a validation error, never a silent default.
type ActionType string

const (
	ActionHack   ActionType = "hack"
	ActionSearch ActionType = "search"
	ActionCrash  ActionType = "crash"
)

// ParseActionType validates a raw action name against the closed set.
func ParseActionType(s string) (ActionType, error) {
	switch ActionType(s) {
	case ActionHack, ActionSearch, ActionCrash:
		return ActionType(s), nil
	}
	return "", &dice.ValidationError{Msg: fmt.Sprintf("unknown matrix action %q (want hack, search or crash)", s)}
}

// Position locates a node or ICE program in grid space.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Node is one host, device, file, data store or ICE anchor in a grid.
// Discovered and compromised only ever flip to true; the engine never
// reverts them.
type Node struct {
	ID          string         `json:"id" yaml:"id"`
	Name        string         `json:"name" yaml:"name"`
	Type        string         `json:"type" yaml:"type"` // host, device, file, data, ice
	Security    int            `json:"security" yaml:"security"`
	Encrypted   bool           `json:"encrypted" yaml:"encrypted"`
	Discovered  bool           `json:"discovered" yaml:"discovered"`
	Compromised bool           `json:"compromised" yaml:"-"`
	Position    Position       `json:"position" yaml:"position"`
	Connected   []string       `json:"connected" yaml:"connected"`
	Payload     map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// IceStatus is an ICE program's lifecycle state. Crashed is terminal.
type IceStatus string

const (
	IceActive  IceStatus = "active"
	IceAlerted IceStatus = "alerted"
	IceCrashed IceStatus = "crashed"
)

// IceType is the closed set of ICE program varieties.
type IceType string

const (
	IcePatrol  IceType = "patrol"
	IceProbe   IceType = "probe"
	IceKiller  IceType = "killer"
	IceTrack   IceType = "track"
	IceTarBaby IceType = "tar_baby"
)

// IceProgram is an autonomous defense program anchored to a grid node.
type IceProgram struct {
	ID         string    `json:"id" yaml:"id"`
	Name       string    `json:"name" yaml:"name"`
	Type       IceType   `json:"ice_type" yaml:"ice_type"`
	Rating     int       `json:"rating" yaml:"rating"`
	Status     IceStatus `json:"status" yaml:"-"`
	NodeID     string    `json:"node_id" yaml:"node_id"`
	Position   Position  `json:"position" yaml:"position"`
	LastAction time.Time `json:"last_action" yaml:"-"`
}

// Grid is one Matrix host's node graph plus its ICE programs.
type Grid struct {
	Name  string                 `json:"name" yaml:"name"`
	Nodes map[string]*Node       `json:"nodes" yaml:"-"`
	Ice   map[string]*IceProgram `json:"ice" yaml:"-"`
}

// NewGrid creates an empty grid.
func NewGrid(name string) *Grid {
	return &Grid{
		Name:  name,
		Nodes: make(map[string]*Node),
		Ice:   make(map[string]*IceProgram),
	}
}

// AddNode registers a node in the grid.
func (g *Grid) AddNode(n *Node) {
	g.Nodes[n.ID] = n
}

// AddIce registers an ICE program in the grid.
func (g *Grid) AddIce(ice *IceProgram) {
	g.Ice[ice.ID] = ice
}

// IceAtNode finds the ICE program anchored to the given node, if any.
func (g *Grid) IceAtNode(nodeID string) *IceProgram {
	for _, ice := range g.Ice {
		if ice.NodeID == nodeID {
			return ice
		}
	}
	return nil
}

// Persona is a decker's Matrix presence. OverwatchScore sits in [0,40]
// and only rises through failed actions; resetting it is the caller's
// business.
type Persona struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Attack         int    `json:"attack" yaml:"attack"`
	Sleaze         int    `json:"sleaze" yaml:"sleaze"`
	DataProcessing int    `json:"data_processing" yaml:"data_processing"`
	Firewall       int    `json:"firewall" yaml:"firewall"`
	OverwatchScore int    `json:"overwatch_score" yaml:"-"`
	RunningSilent  bool   `json:"running_silent" yaml:"running_silent"`
	HotSim         bool   `json:"hot_sim" yaml:"hot_sim"`
}

// ActionResult reports one resolved Matrix action.
type ActionResult struct {
	Action             ActionType `json:"action"`
	Success            bool       `json:"success"`
	Roll               int        `json:"roll"`
	AttributeUsed      string     `json:"attribute_used"`
	AttributeValue     int        `json:"attribute_value"`
	Difficulty         int        `json:"difficulty"`
	OverwatchGenerated int        `json:"overwatch_generated"`
	CurrentOverwatch   int        `json:"current_overwatch"`
	Discovered         []string   `json:"discovered,omitempty"`
	IceCrashed         string     `json:"ice_crashed,omitempty"`
	Time               time.Time  `json:"time"`
}

// DiscoveryResult reports one Matrix perception sweep.
type DiscoveryResult struct {
	Roll       int       `json:"roll"`
	Discovered []string  `json:"discovered"`
	Time       time.Time `json:"time"`
}

// TickResult reports one ICE behavior update.
type TickResult struct {
	Active   bool     `json:"active"`
	Position Position `json:"position"`
}
