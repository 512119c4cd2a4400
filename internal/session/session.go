// Package session wires the parser, engines, rules and audit log into
// one interactive loop: raw input goes in, display output comes back,
// and everything that changed state lands in the jsonl log.
package session

import (
	"fmt"

	"github.com/alecthomas/participle/v2"

	"github.com/sloppymo/shadowrun-backend/internal/combat"
	"github.com/sloppymo/shadowrun-backend/internal/command"
	"github.com/sloppymo/shadowrun-backend/internal/data"
	"github.com/sloppymo/shadowrun-backend/internal/dice"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"
	"github.com/sloppymo/shadowrun-backend/internal/parser"
	"github.com/sloppymo/shadowrun-backend/internal/persistence"
	"github.com/sloppymo/shadowrun-backend/internal/rules"
)

// Session manages the cohesive loop of taking commands, executing them
// against the engines, and persisting audit records.
type Session struct {
	loader    *data.Loader
	ctx       *command.Context
	parser    *participle.Parser[parser.Command]
	available []*combat.Combatant
}

// NewSession bootstraps a game session. scenarioName selects a scenario
// template from the data directories; empty means a bare session with no
// roster or grid. seed fixes the dice; pass 0 for a random sequence.
// store may be nil to run without an audit log.
func NewSession(dataDirs []string, scenarioName string, seed int64, store *persistence.Store) (*Session, error) {
	loader := data.NewLoader(dataDirs)

	var roller *dice.Roller
	var err error
	if seed != 0 {
		roller = dice.NewRoller(seed)
	} else {
		roller, err = dice.NewRandomRoller()
		if err != nil {
			return nil, fmt.Errorf("failed to seed dice: %w", err)
		}
	}

	reg, err := rules.NewRegistry(func(notation string) int {
		res, err := roller.Roll(notation)
		if err != nil {
			return 0
		}
		return res.Total
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize rules registry: %w", err)
	}
	hr, err := loader.LoadHouseRules()
	if err != nil {
		return nil, fmt.Errorf("failed to load house rules: %w", err)
	}
	if hr != nil {
		reg.SetHouseRules(hr)
	}

	s := &Session{
		loader: loader,
		parser: parser.Build(),
		ctx: &command.Context{
			Roller:   roller,
			Combat:   combat.NewEngine(roller),
			Matrix:   matrix.NewEngine(roller),
			Rules:    reg,
			Store:    store,
			Personas: make(map[string]*matrix.Persona),
		},
	}

	if scenarioName != "" {
		if err := s.LoadScenario(scenarioName); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// LoadScenario replaces the session's roster, personas and grid from a
// scenario template.
func (s *Session) LoadScenario(name string) error {
	tmpl, err := s.loader.LoadScenario(name)
	if err != nil {
		return err
	}

	s.available = nil
	for _, ct := range tmpl.Roster {
		s.available = append(s.available, data.BuildCombatant(ct))
	}
	s.ctx.Personas = make(map[string]*matrix.Persona)
	for _, pt := range tmpl.Personas {
		p := data.BuildPersona(pt)
		s.ctx.Personas[p.ID] = p
	}
	if tmpl.Grid != nil {
		s.ctx.Grid = data.BuildGrid(tmpl.Grid)
	}
	s.ctx.Encounter = nil
	s.ctx.Roster = nil
	return nil
}

// Roster returns the combatants in the current encounter, or the full
// scenario roster before one starts.
func (s *Session) Roster() []*combat.Combatant {
	if len(s.ctx.Roster) > 0 {
		return s.ctx.Roster
	}
	return s.available
}

// Encounter returns the current encounter state, nil before one is set up.
func (s *Session) Encounter() *combat.Encounter {
	return s.ctx.Encounter
}

// Grid returns the loaded Matrix grid, nil when the scenario has none.
func (s *Session) Grid() *matrix.Grid {
	return s.ctx.Grid
}

// Personas returns the session's Matrix personas keyed by ID.
func (s *Session) Personas() map[string]*matrix.Persona {
	return s.ctx.Personas
}

// History returns every audit record logged so far.
func (s *Session) History() ([]persistence.Record, error) {
	if s.ctx.Store == nil {
		return nil, nil
	}
	return s.ctx.Store.Load()
}

// Execute takes a raw command string from a UI client, coordinates
// execution, and returns the printable result.
func (s *Session) Execute(input string) (string, error) {
	astCmd, err := s.parser.ParseString("", input)
	if err != nil {
		return "", parser.MapError(input, err)
	}

	switch {
	case astCmd.Roll != nil:
		return command.ExecuteRoll(s.ctx, astCmd.Roll)
	case astCmd.Pool != nil:
		return command.ExecutePool(s.ctx, astCmd.Pool)
	case astCmd.Extended != nil:
		return command.ExecuteExtended(s.ctx, astCmd.Extended)
	case astCmd.Initiative != nil:
		return command.ExecuteInitiative(s.ctx, astCmd.Initiative)
	case astCmd.Encounter != nil:
		return command.ExecuteEncounter(s.ctx, astCmd.Encounter, s.available)
	case astCmd.Damage != nil:
		return command.ExecuteDamage(s.ctx, astCmd.Damage)
	case astCmd.Turn != nil:
		return command.ExecuteTurn(s.ctx, astCmd.Turn)
	case astCmd.Matrix != nil:
		return command.ExecuteMatrix(s.ctx, astCmd.Matrix)
	case astCmd.Perceive != nil:
		return command.ExecutePerceive(s.ctx, astCmd.Perceive)
	case astCmd.Log != nil:
		return command.ExecuteLog(s.ctx)
	case astCmd.Help != nil:
		return command.ExecuteHelp(astCmd.Help)
	}

	return "", fmt.Errorf("unsupported command pattern")
}
