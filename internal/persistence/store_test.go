package persistence

import (
	"path/filepath"
	"testing"

	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/dice"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"
)

func TestStoreAppendLoad(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "log.jsonl")

	store, err := NewStore(logPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer store.Close()

	err = store.Append(&PoolRecord{
		Actor: "Shadow",
		Result: dice.PoolResult{
			PoolSize: 8,
			Rolls:    []int{5, 6, 2, 1, 3, 5, 4, 2},
			Hits:     3,
			Ones:     1,
		},
	})
	if err != nil {
		t.Fatalf("failed to append pool record: %v", err)
	}

	err = store.Append(&DamageRecord{
		CombatantID: "npc-1",
		Physical:    4,
		Result:      combat.DamageResult{PhysicalDamage: 4, Status: combat.StatusActive},
	})
	if err != nil {
		t.Fatalf("failed to append damage record: %v", err)
	}

	err = store.Append(&MatrixActionRecord{
		PersonaID: "decker-1",
		NodeID:    "host-1",
		Result:    matrix.ActionResult{Action: matrix.ActionHack, Success: true, Roll: 9},
	})
	if err != nil {
		t.Fatalf("failed to append matrix record: %v", err)
	}

	// Read it back
	records, err := store.Load()
	if err != nil {
		t.Fatalf("failed to load records: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected 3 records loaded, got %d", len(records))
	}

	// Verify record type casting works properly
	r1, ok := records[0].(*PoolRecord)
	if !ok {
		t.Errorf("expected first record to be PoolRecord")
	} else if r1.Actor != "Shadow" || r1.Result.Hits != 3 {
		t.Errorf("pool record round-trip mangled: %+v", r1)
	}

	r2, ok := records[1].(*DamageRecord)
	if !ok {
		t.Errorf("expected second record to be DamageRecord")
	} else if r2.CombatantID != "npc-1" || r2.Physical != 4 {
		t.Errorf("damage record round-trip mangled: %+v", r2)
	}

	r3, ok := records[2].(*MatrixActionRecord)
	if !ok {
		t.Errorf("expected third record to be MatrixActionRecord")
	} else if !r3.Result.Success || r3.Result.Action != matrix.ActionHack {
		t.Errorf("matrix record round-trip mangled: %+v", r3)
	}
}

func TestRecordMessages(t *testing.T) {
	cases := []struct {
		rec  Record
		want string
	}{
		{&RollRecord{Result: dice.RollResult{Notation: "3d6", Total: 11}}, "GM rolled 3d6 for 11"},
		{&PoolRecord{Actor: "Nix", Result: dice.PoolResult{PoolSize: 6, Hits: 0, Glitch: true, CriticalGlitch: true}}, "Nix rolled a pool of 6 for 0 hits (critical glitch)"},
		{&TurnRecord{Result: combat.TurnResult{Round: 3, ActiveID: "pc-1"}}, "round 3, pc-1 acts"},
		{&EncounterRecord{Name: "ambush", Status: combat.EncounterActive}, "encounter ambush is now active"},
		{&PerceptionRecord{PersonaID: "decker-1", Result: matrix.DiscoveryResult{Discovered: []string{"node-1", "node-2"}}}, "decker-1 perceived 2 hidden nodes"},
	}
	for _, tc := range cases {
		if got := tc.rec.Message(); got != tc.want {
			t.Errorf("%s message: got %q, want %q", tc.rec.Type(), got, tc.want)
		}
	}
}

func TestScenarioManagerCreateLoad(t *testing.T) {
	dir := t.TempDir()
	m := NewScenarioManager(dir)

	store, err := m.Create("corporate-host", "session-1")
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	store.Close()

	store, err = m.Load("corporate-host", "session-1")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	store.Close()

	if _, err := m.Load("corporate-host", "missing"); err == nil {
		t.Errorf("expected error loading missing session")
	}
}
