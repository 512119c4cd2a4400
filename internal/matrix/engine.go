package matrix

import (
	"fmt"
	"sort"
	"time"

	"github.com/sloppymo/shadowrun-backend/internal/dice"
)

const (
	baseDifficulty = 3
	maxOverwatch   = 40
)

// DomainError reports an action against a missing entity, such as a hack
// with no target node. Raised before any state changes.
type DomainError struct {
	Msg string
}

func (e *DomainError) Error() string { return e.Msg }

func domainf(format string, args ...any) *DomainError {
	return &DomainError{Msg: fmt.Sprintf(format, args...)}
}

// Engine resolves Matrix actions using an injected dice roller.
type Engine struct {
	roller *dice.Roller
	now    func() time.Time
}

// NewEngine creates a Matrix engine drawing from the given roller.
func NewEngine(roller *dice.Roller) *Engine {
	return &Engine{roller: roller, now: time.Now}
}

// NewEngineWithClock creates a Matrix engine with an injected clock.
func NewEngineWithClock(roller *dice.Roller, now func() time.Time) *Engine {
	return &Engine{roller: roller, now: now}
}

// PerformAction resolves one Matrix action: 2d6 + attribute against the
// target's security (3 when no target). Hacking uses sleaze against an
// uncompromised node and attack against one already compromised; crash
// uses attack; search uses data processing.
//
// Success compromises the hack target and discovers its directly
// connected nodes (one hop, no traversal); a search discovers the same
// hop without compromising; a crash against an ICE node crashes its
// program. Failure adds the difficulty to the persona's overwatch score,
// capped at 40.
func (e *Engine) PerformAction(persona *Persona, action ActionType, grid *Grid, target *Node) (ActionResult, error) {
	if persona == nil {
		return ActionResult{}, domainf("matrix action %s: no persona", action)
	}
	if _, err := ParseActionType(string(action)); err != nil {
		return ActionResult{}, err
	}
	if target == nil && action != ActionSearch {
		return ActionResult{}, domainf("matrix action %s requires a target node", action)
	}

	difficulty := baseDifficulty
	if target != nil {
		difficulty = target.Security
	}

	var attrName string
	var attrValue int
	switch action {
	case ActionHack:
		if target.Compromised {
			attrName, attrValue = "attack", persona.Attack
		} else {
			attrName, attrValue = "sleaze", persona.Sleaze
		}
	case ActionCrash:
		attrName, attrValue = "attack", persona.Attack
	case ActionSearch:
		attrName, attrValue = "data_processing", persona.DataProcessing
	}

	roll := e.roller.D6() + e.roller.D6()
	success := roll+attrValue >= difficulty

	res := ActionResult{
		Action:           action,
		Success:          success,
		Roll:             roll,
		AttributeUsed:    attrName,
		AttributeValue:   attrValue,
		Difficulty:       difficulty,
		CurrentOverwatch: persona.OverwatchScore,
		Time:             e.now(),
	}

	if !success {
		res.OverwatchGenerated = difficulty
		persona.OverwatchScore = min(maxOverwatch, persona.OverwatchScore+difficulty)
		res.CurrentOverwatch = persona.OverwatchScore
		return res, nil
	}

	switch action {
	case ActionHack:
		target.Compromised = true
		res.Discovered = discoverConnected(grid, target)
	case ActionSearch:
		if target != nil {
			res.Discovered = discoverConnected(grid, target)
		}
	case ActionCrash:
		if target.Type == "ice" {
			if ice := grid.IceAtNode(target.ID); ice != nil {
				ice.Status = IceCrashed
				res.IceCrashed = ice.ID
			}
		}
	}
	return res, nil
}

// discoverConnected marks every node one hop from target as discovered
// and returns the IDs newly revealed, in sorted order for reproducible
// output. Nodes absent from the grid are skipped.
func discoverConnected(grid *Grid, target *Node) []string {
	if grid == nil {
		return nil
	}
	var revealed []string
	for _, id := range target.Connected {
		n, ok := grid.Nodes[id]
		if !ok {
			continue
		}
		if !n.Discovered {
			n.Discovered = true
			revealed = append(revealed, id)
		}
	}
	sort.Strings(revealed)
	return revealed
}

// Perception resolves a Matrix perception sweep: one 2d6 + data
// processing roll, compared against every undiscovered node's security.
// Every node whose security is below the roll becomes discovered in this
// single pass.
func (e *Engine) Perception(persona *Persona, grid *Grid) (DiscoveryResult, error) {
	if persona == nil {
		return DiscoveryResult{}, domainf("matrix perception: no persona")
	}
	if grid == nil {
		return DiscoveryResult{}, domainf("matrix perception: no grid")
	}

	roll := e.roller.D6() + e.roller.D6() + persona.DataProcessing

	var revealed []string
	for id, n := range grid.Nodes {
		if !n.Discovered && n.Security < roll {
			n.Discovered = true
			revealed = append(revealed, id)
		}
	}
	sort.Strings(revealed)

	return DiscoveryResult{Roll: roll, Discovered: revealed, Time: e.now()}, nil
}

// Tick applies one behavior update to an ICE program: a small random
// position drift plus a last-action timestamp. Alerted and crashed
// programs do not move. The drift magnitude matches a patrol pacing its
// node, at most a quarter unit per axis.
func (e *Engine) Tick(ice *IceProgram) (TickResult, error) {
	if ice == nil {
		return TickResult{}, domainf("ice tick: no program")
	}
	if ice.Status != IceActive {
		return TickResult{Active: false, Position: ice.Position}, nil
	}

	ice.Position.X += (e.roller.Float64() - 0.5) * 0.5
	ice.Position.Y += (e.roller.Float64() - 0.5) * 0.5
	ice.LastAction = e.now()

	return TickResult{Active: true, Position: ice.Position}, nil
}
