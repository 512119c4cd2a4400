package matrix

import (
	"errors"
	"testing"
	"time"

	"github.com/sloppymo/shadowrun-backend/internal/dice"
)

func testGrid() *Grid {
	g := NewGrid("corporate host")
	g.AddNode(&Node{ID: "host-1", Name: "Corporate Host", Type: "host", Security: 8, Discovered: true, Connected: []string{"node-1", "node-2", "ice-1"}})
	g.AddNode(&Node{ID: "node-1", Name: "Security Subsystem", Type: "device", Security: 6, Connected: []string{"data-1"}})
	g.AddNode(&Node{ID: "node-2", Name: "Personnel Database", Type: "file", Security: 5, Encrypted: true, Connected: []string{"data-2"}})
	g.AddNode(&Node{ID: "data-1", Name: "Camera Controls", Type: "data", Security: 4})
	g.AddNode(&Node{ID: "data-2", Name: "Paydata Cache", Type: "data", Security: 7, Encrypted: true})
	g.AddNode(&Node{ID: "ice-1", Name: "Patrol IC", Type: "ice", Security: 6, Discovered: true})
	g.AddIce(&IceProgram{ID: "ice-prog-1", Name: "Patrol IC", Type: IcePatrol, Rating: 6, Status: IceActive, NodeID: "ice-1"})
	return g
}

func testPersona() *Persona {
	return &Persona{ID: "decker-1", Name: "Nix", Attack: 4, Sleaze: 5, DataProcessing: 6, Firewall: 4}
}

func TestPerformActionHackSuccess(t *testing.T) {
	roller := dice.NewRoller(1)
	roller.Enqueue(4, 4) // 8 + sleaze 5 = 13 vs security 8
	eng := NewEngine(roller)

	grid := testGrid()
	persona := testPersona()
	target := grid.Nodes["host-1"]

	res, err := eng.PerformAction(persona, ActionHack, grid, target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Success || res.AttributeUsed != "sleaze" || res.Difficulty != 8 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !target.Compromised {
		t.Errorf("successful hack must compromise the target")
	}

	// One hop only: the host's neighbors, never data-1/data-2 beyond them.
	want := []string{"node-1", "node-2"}
	if len(res.Discovered) != len(want) {
		t.Fatalf("expected discoveries %v, got %v", want, res.Discovered)
	}
	for i, id := range want {
		if res.Discovered[i] != id {
			t.Errorf("discovery %d: got %s, want %s", i, res.Discovered[i], id)
		}
	}
	if grid.Nodes["data-1"].Discovered || grid.Nodes["data-2"].Discovered {
		t.Errorf("two-hop nodes must stay hidden after a single hack")
	}
	if persona.OverwatchScore != 0 {
		t.Errorf("success must not generate overwatch, got %d", persona.OverwatchScore)
	}
}

func TestPerformActionHackCompromisedUsesAttack(t *testing.T) {
	roller := dice.NewRoller(1)
	roller.Enqueue(3, 3)
	eng := NewEngine(roller)

	grid := testGrid()
	target := grid.Nodes["node-1"]
	target.Compromised = true

	res, err := eng.PerformAction(testPersona(), ActionHack, grid, target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.AttributeUsed != "attack" || res.AttributeValue != 4 {
		t.Errorf("hack on compromised node should use attack, got %s=%d", res.AttributeUsed, res.AttributeValue)
	}
}

func TestPerformActionSearchDiscoversWithoutCompromise(t *testing.T) {
	roller := dice.NewRoller(1)
	roller.Enqueue(4, 4)
	eng := NewEngine(roller)

	grid := testGrid()
	target := grid.Nodes["node-2"]

	res, err := eng.PerformAction(testPersona(), ActionSearch, grid, target)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.AttributeUsed != "data_processing" {
		t.Errorf("search should use data_processing, got %s", res.AttributeUsed)
	}
	if target.Compromised {
		t.Errorf("search must not compromise the target")
	}
	if len(res.Discovered) != 1 || res.Discovered[0] != "data-2" {
		t.Errorf("expected data-2 discovered, got %v", res.Discovered)
	}
}

func TestPerformActionCrashIce(t *testing.T) {
	roller := dice.NewRoller(1)
	roller.Enqueue(6, 6)
	eng := NewEngine(roller)

	grid := testGrid()
	res, err := eng.PerformAction(testPersona(), ActionCrash, grid, grid.Nodes["ice-1"])
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Success || res.AttributeUsed != "attack" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.IceCrashed != "ice-prog-1" || grid.Ice["ice-prog-1"].Status != IceCrashed {
		t.Errorf("crash against ICE node must crash its program, got %+v", grid.Ice["ice-prog-1"])
	}
}

func TestPerformActionFailureAccumulatesOverwatch(t *testing.T) {
	roller := dice.NewRoller(1)
	eng := NewEngine(roller)

	grid := testGrid()
	persona := testPersona()
	persona.Sleaze = 0
	target := grid.Nodes["host-1"] // security 8

	for i := 0; i < 10; i++ {
		roller.Enqueue(1, 1)
		res, err := eng.PerformAction(persona, ActionHack, grid, target)
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if res.Success {
			t.Fatalf("attempt %d: 2+0 vs 8 cannot succeed", i)
		}
		if res.OverwatchGenerated != 8 {
			t.Errorf("attempt %d: expected 8 overwatch generated, got %d", i, res.OverwatchGenerated)
		}
	}
	if persona.OverwatchScore != 40 {
		t.Errorf("overwatch must cap at 40, got %d", persona.OverwatchScore)
	}
	if grid.Nodes["host-1"].Compromised {
		t.Errorf("failed hacks must not compromise the target")
	}
}

func TestPerformActionValidation(t *testing.T) {
	eng := NewEngine(dice.NewRoller(1))
	grid := testGrid()

	var derr *DomainError
	if _, err := eng.PerformAction(nil, ActionHack, grid, grid.Nodes["host-1"]); !errors.As(err, &derr) {
		t.Errorf("nil persona: expected DomainError, got %v", err)
	}
	if _, err := eng.PerformAction(testPersona(), ActionHack, grid, nil); !errors.As(err, &derr) {
		t.Errorf("hack without target: expected DomainError, got %v", err)
	}
	if _, err := eng.PerformAction(testPersona(), ActionCrash, grid, nil); !errors.As(err, &derr) {
		t.Errorf("crash without target: expected DomainError, got %v", err)
	}

	var verr *dice.ValidationError
	if _, err := eng.PerformAction(testPersona(), ActionType("dance"), grid, grid.Nodes["host-1"]); !errors.As(err, &verr) {
		t.Errorf("unknown action type: expected ValidationError, got %v", err)
	}
}

func TestParseActionType(t *testing.T) {
	for _, s := range []string{"hack", "search", "crash"} {
		if _, err := ParseActionType(s); err != nil {
			t.Errorf("action %q rejected: %v", s, err)
		}
	}
	if _, err := ParseActionType("format"); err == nil {
		t.Errorf("unknown action accepted")
	}
}

func TestPerceptionSinglePass(t *testing.T) {
	roller := dice.NewRoller(1)
	roller.Enqueue(3, 3)
	eng := NewEngine(roller)

	grid := testGrid()
	persona := testPersona()
	persona.DataProcessing = 1 // total roll 3+3+1 = 7

	res, err := eng.Perception(persona, grid)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Roll != 7 {
		t.Fatalf("expected roll 7, got %d", res.Roll)
	}

	// Undiscovered nodes with security < 7: node-1 (6), node-2 (5),
	// data-1 (4). data-2 (7) stays hidden; 7 < 7 is false.
	want := []string{"data-1", "node-1", "node-2"}
	if len(res.Discovered) != len(want) {
		t.Fatalf("expected %v discovered, got %v", want, res.Discovered)
	}
	for i, id := range want {
		if res.Discovered[i] != id {
			t.Errorf("discovery %d: got %s, want %s", i, res.Discovered[i], id)
		}
	}
	if grid.Nodes["data-2"].Discovered {
		t.Errorf("security equal to the roll must stay hidden")
	}
}

func TestTickDriftsActiveIce(t *testing.T) {
	fixed := time.Date(2026, 8, 24, 18, 0, 0, 0, time.UTC)
	eng := NewEngineWithClock(dice.NewRoller(1), func() time.Time { return fixed })

	ice := &IceProgram{ID: "ice-prog-1", Type: IcePatrol, Status: IceActive}
	res, err := eng.Tick(ice)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Active {
		t.Fatalf("active ICE should report active")
	}
	if res.Position.X < -0.25 || res.Position.X > 0.25 || res.Position.Y < -0.25 || res.Position.Y > 0.25 {
		t.Errorf("drift exceeds quarter unit: %+v", res.Position)
	}
	if res.Position.Z != 0 {
		t.Errorf("tick must not drift on Z, got %f", res.Position.Z)
	}
	if !ice.LastAction.Equal(fixed) {
		t.Errorf("expected last action stamped with clock time, got %v", ice.LastAction)
	}
}

func TestTickSkipsCrashedIce(t *testing.T) {
	eng := NewEngine(dice.NewRoller(1))
	ice := &IceProgram{ID: "x", Status: IceCrashed, Position: Position{X: 1, Y: 2}}

	res, err := eng.Tick(ice)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Active {
		t.Errorf("crashed ICE must report inactive")
	}
	if ice.Position.X != 1 || ice.Position.Y != 2 {
		t.Errorf("crashed ICE must not move, got %+v", ice.Position)
	}
	if !ice.LastAction.IsZero() {
		t.Errorf("crashed ICE must not be stamped")
	}
}
