package command

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/dice"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"
	"github.com/sloppymo/shadowrun-backend/internal/parser"
	"github.com/sloppymo/shadowrun-backend/internal/persistence"
)

func newTestContext(t *testing.T) *Context {
	t.Helper()
	roller := dice.NewRoller(1)
	store, err := persistence.NewStore(filepath.Join(t.TempDir(), "log.jsonl"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	grid := matrix.NewGrid("test host")
	grid.AddNode(&matrix.Node{ID: "host-1", Name: "Host", Type: "host", Security: 6, Discovered: true, Connected: []string{"node-1"}})
	grid.AddNode(&matrix.Node{ID: "node-1", Name: "Files", Type: "file", Security: 4})
	grid.AddNode(&matrix.Node{ID: "ice-1", Name: "Patrol IC", Type: "ice", Security: 5, Discovered: true})
	grid.AddIce(&matrix.IceProgram{ID: "ice-prog-1", Type: matrix.IcePatrol, Status: matrix.IceActive, NodeID: "ice-1"})

	return &Context{
		Roller: roller,
		Combat: combat.NewEngine(roller),
		Matrix: matrix.NewEngine(roller),
		Store:  store,
		Grid:   grid,
		Personas: map[string]*matrix.Persona{
			"decker-1": {ID: "decker-1", Name: "Nix", Attack: 4, Sleaze: 5, DataProcessing: 6, Firewall: 4},
		},
	}
}

func scenarioRoster() []*combat.Combatant {
	return []*combat.Combatant{
		{ID: "pc-1", Name: "Shadow", Type: "player", Initiative: 10, Intuition: 4, Edge: 2, CurrentEdge: 2, Actions: 1, PhysicalMonitor: 10, StunMonitor: 10, Status: combat.StatusActive},
		{ID: "npc-1", Name: "Ganger", Type: "npc", Initiative: 8, Intuition: 3, Edge: 1, CurrentEdge: 1, Actions: 1, PhysicalMonitor: 9, StunMonitor: 9, Status: combat.StatusActive},
	}
}

func parse(t *testing.T, input string) *parser.Command {
	t.Helper()
	cmd, err := parser.Build().ParseString("", input)
	require.NoError(t, err)
	return cmd
}

func TestExecuteRoll(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Roller.Enqueue(3, 4, 5)

	out, err := ExecuteRoll(ctx, parse(t, "roll by: Shadow 3d6+2").Roll)
	assert.NoError(t, err)
	assert.Equal(t, "Rolled 3d6+2: [3, 4, 5] + 2 = 14", out)

	records, err := ctx.Store.Load()
	assert.NoError(t, err)
	require.Len(t, records, 1)
	rec, ok := records[0].(*persistence.RollRecord)
	require.True(t, ok)
	assert.Equal(t, "Shadow", rec.Actor)
	assert.Equal(t, 14, rec.Result.Total)
}

func TestExecuteRollInvalidNotation(t *testing.T) {
	ctx := newTestContext(t)

	_, err := ExecuteRoll(ctx, &parser.RollCmd{Dice: "99d6"})
	assert.Error(t, err)

	records, err := ctx.Store.Load()
	assert.NoError(t, err)
	assert.Empty(t, records, "rejected rolls must not be logged")
}

func TestExecutePoolSpendsEdge(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Roster = scenarioRoster()
	ctx.Roller.Enqueue(5, 2, 3, 4, 1, 6, 2)

	out, err := ExecutePool(ctx, parse(t, "pool by: Shadow 6 edge").Pool)
	assert.NoError(t, err)
	assert.Contains(t, out, "Edge used")

	pc, _ := ctx.FindCombatant("pc-1")
	assert.Equal(t, 1, pc.CurrentEdge, "edge point should be spent")

	// Drain the last point, then the next spend fails.
	ctx.Roller.Enqueue(2, 2, 2, 2, 2, 2)
	_, err = ExecutePool(ctx, parse(t, "pool by: Shadow 6 edge").Pool)
	assert.NoError(t, err)
	_, err = ExecutePool(ctx, parse(t, "pool by: Shadow 6 edge").Pool)
	assert.ErrorContains(t, err, "no Edge left")
}

func TestExecutePoolGM(t *testing.T) {
	ctx := newTestContext(t)

	out, err := ExecutePool(ctx, parse(t, "pool 8").Pool)
	assert.NoError(t, err)
	assert.Contains(t, out, "Rolled 8d6")
}

func TestCombatFlow(t *testing.T) {
	ctx := newTestContext(t)
	available := scenarioRoster()

	out, err := ExecuteEncounter(ctx, parse(t, "encounter start with: pc-1 and: npc-1").Encounter, available)
	require.NoError(t, err)
	assert.Contains(t, out, "Shadow, Ganger")

	ctx.Roller.Enqueue(3, 2) // Shadow 10+4+3=17, Ganger 8+3+2=13
	out, err = ExecuteInitiative(ctx, parse(t, "initiative").Initiative)
	require.NoError(t, err)
	assert.Contains(t, out, "Initiative order:")
	assert.Contains(t, out, "Round 1, Shadow acts.")

	_, err = ExecuteEncounter(ctx, parse(t, "encounter start").Encounter, available)
	assert.ErrorContains(t, err, "already active")

	out, err = ExecuteDamage(ctx, parse(t, "damage to: npc-1 phys: 9").Damage)
	require.NoError(t, err)
	assert.Contains(t, out, "DEAD")

	out, err = ExecuteTurn(ctx, parse(t, "turn").Turn)
	require.NoError(t, err)

	out, err = ExecuteEncounter(ctx, parse(t, "encounter end").Encounter, available)
	require.NoError(t, err)
	assert.Equal(t, "Encounter ended.", out)

	_, err = ExecuteTurn(ctx, parse(t, "turn").Turn)
	assert.Error(t, err, "completed encounters cannot advance")
}

func TestExecuteDamageUnknownTarget(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Roster = scenarioRoster()

	_, err := ExecuteDamage(ctx, parse(t, "damage to: ghost-9 phys: 2").Damage)
	assert.ErrorContains(t, err, "not found")
}

func TestExecuteMatrixHack(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Roller.Enqueue(4, 4) // 8 + sleaze 5 vs security 6

	out, err := ExecuteMatrix(ctx, parse(t, "hack by: decker-1 on: host-1").Matrix)
	require.NoError(t, err)
	assert.Contains(t, out, "succeeds")
	assert.Contains(t, out, "Discovered: node-1")
	assert.True(t, ctx.Grid.Nodes["host-1"].Compromised)
}

func TestExecuteMatrixCrash(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Roller.Enqueue(6, 6)

	out, err := ExecuteMatrix(ctx, parse(t, "crash by: decker-1 on: ice-1").Matrix)
	require.NoError(t, err)
	assert.Contains(t, out, "ICE program crashed")
	assert.Equal(t, matrix.IceCrashed, ctx.Grid.Ice["ice-prog-1"].Status)
}

func TestExecuteMatrixFailureReportsOverwatch(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Personas["decker-1"].Sleaze = 0
	ctx.Roller.Enqueue(1, 1)

	out, err := ExecuteMatrix(ctx, parse(t, "hack by: decker-1 on: host-1").Matrix)
	require.NoError(t, err)
	assert.Contains(t, out, "fails")
	assert.Contains(t, out, "Overwatch +6 (now 6/40)")
}

func TestExecuteMatrixUnknownPersona(t *testing.T) {
	ctx := newTestContext(t)

	_, err := ExecuteMatrix(ctx, parse(t, "hack by: nobody on: host-1").Matrix)
	assert.ErrorContains(t, err, "not found")
}

func TestExecutePerceive(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Roller.Enqueue(1, 1) // 2 + data_processing 6 = 8: reveals node-1 (security 4)

	out, err := ExecutePerceive(ctx, parse(t, "perceive by: decker-1").Perceive)
	require.NoError(t, err)
	assert.Contains(t, out, "discovered node-1")
	assert.True(t, ctx.Grid.Nodes["node-1"].Discovered)
}

func TestExecuteHelp(t *testing.T) {
	out, err := ExecuteHelp(parse(t, "help").Help)
	assert.NoError(t, err)
	assert.Contains(t, out, "Available commands:")
	assert.Contains(t, out, "perceive by: Persona")

	out, err = ExecuteHelp(parse(t, "help damage").Help)
	assert.NoError(t, err)
	assert.Contains(t, out, "damage to: Target")

	_, err = ExecuteHelp(&parser.HelpCmd{Command: "dance"})
	assert.Error(t, err)
}

func TestExecuteLog(t *testing.T) {
	ctx := newTestContext(t)
	ctx.Roller.Enqueue(2, 3)

	_, err := ExecuteRoll(ctx, parse(t, "roll 2d6").Roll)
	require.NoError(t, err)

	out, err := ExecuteLog(ctx)
	assert.NoError(t, err)
	assert.Contains(t, out, "GM rolled 2d6 for 5")
}
