package data

import (
	"os"
	"path/filepath"
	"testing"
)

const scenarioYAML = `name: Back Alley Run
roster:
  - id: pc-1
    name: Shadow
    type: player
    initiative: 11
    reaction: 6
    intuition: 4
    edge: 3
    physical_monitor: 11
  - id: npc-1
    name: Ganger
    type: npc
personas:
  - id: decker-1
    name: Nix
    sleaze: 7
grid:
  name: Corporate Host
  nodes:
    - id: host-1
      name: Corporate Host
      type: host
      security: 8
      encrypted: true
      discovered: true
      connected: [node-1, ice-1]
    - id: node-1
      name: Security Subsystem
      type: device
      security: 6
    - id: ice-1
      name: Patrol IC
      type: ice
      security: 6
      discovered: true
  ice:
    - id: ice-prog-1
      name: Patrol IC
      ice_type: patrol
      rating: 6
      node_id: ice-1
`

func writeScenario(t *testing.T) *Loader {
	t.Helper()
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "scenarios"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, "scenarios", "back-alley-run.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return NewLoader([]string{dir})
}

func TestLoadScenario(t *testing.T) {
	l := writeScenario(t)

	s, err := l.LoadScenario("Back Alley Run")
	if err != nil {
		t.Fatalf("failed to load scenario: %v", err)
	}
	if s.Name != "Back Alley Run" {
		t.Errorf("expected scenario name, got %s", s.Name)
	}
	if len(s.Roster) != 2 || len(s.Personas) != 1 || s.Grid == nil {
		t.Fatalf("scenario incomplete: %+v", s)
	}
	if len(s.Grid.Nodes) != 3 || len(s.Grid.Ice) != 1 {
		t.Errorf("grid incomplete: %+v", s.Grid)
	}
}

func TestLoadScenarioMissing(t *testing.T) {
	l := NewLoader(nil)
	if _, err := l.LoadScenario("nowhere"); err == nil {
		t.Errorf("expected error for missing scenario")
	}
}

func TestBuildCombatantDefaults(t *testing.T) {
	l := writeScenario(t)
	s, err := l.LoadScenario("Back Alley Run")
	if err != nil {
		t.Fatalf("failed to load scenario: %v", err)
	}

	// Fully specified entry keeps its values.
	pc := BuildCombatant(s.Roster[0])
	if pc.Initiative != 11 || pc.Reaction != 6 || pc.Edge != 3 || pc.PhysicalMonitor != 11 {
		t.Errorf("explicit values overridden: %+v", pc)
	}
	if pc.StunMonitor != 10 {
		t.Errorf("omitted stun monitor should default to 10, got %d", pc.StunMonitor)
	}

	// Terse entry gets the full baseline.
	npc := BuildCombatant(s.Roster[1])
	if npc.Initiative != 10 || npc.Reaction != 5 || npc.Intuition != 3 || npc.Edge != 2 {
		t.Errorf("defaults not applied: %+v", npc)
	}
	if npc.Actions != 1 || npc.PhysicalMonitor != 10 || npc.StunMonitor != 10 {
		t.Errorf("defaults not applied: %+v", npc)
	}
	if npc.CurrentEdge != npc.Edge {
		t.Errorf("current edge should start full, got %d/%d", npc.CurrentEdge, npc.Edge)
	}
}

func TestBuildPersonaDefaults(t *testing.T) {
	l := writeScenario(t)
	s, err := l.LoadScenario("Back Alley Run")
	if err != nil {
		t.Fatalf("failed to load scenario: %v", err)
	}

	p := BuildPersona(s.Personas[0])
	if p.Sleaze != 7 {
		t.Errorf("explicit sleaze overridden, got %d", p.Sleaze)
	}
	if p.Attack != 4 || p.DataProcessing != 6 || p.Firewall != 4 {
		t.Errorf("defaults not applied: %+v", p)
	}
	if p.OverwatchScore != 0 {
		t.Errorf("overwatch must start at zero, got %d", p.OverwatchScore)
	}
}

func TestBuildGrid(t *testing.T) {
	l := writeScenario(t)
	s, err := l.LoadScenario("Back Alley Run")
	if err != nil {
		t.Fatalf("failed to load scenario: %v", err)
	}

	g := BuildGrid(s.Grid)
	host, ok := g.Nodes["host-1"]
	if !ok {
		t.Fatalf("host node missing from built grid")
	}
	if !host.Discovered || !host.Encrypted || host.Security != 8 {
		t.Errorf("host fields wrong: %+v", host)
	}
	if len(host.Connected) != 2 {
		t.Errorf("adjacency lost: %v", host.Connected)
	}
	ice := g.IceAtNode("ice-1")
	if ice == nil || ice.Status != "active" {
		t.Fatalf("ice program not built active: %+v", ice)
	}
}
