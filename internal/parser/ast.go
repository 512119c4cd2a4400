package parser

// Command represents a top-level action inputted into the DSL
type Command struct {
	Roll       *RollCmd       `parser:"( @@"`
	Pool       *PoolCmd       `parser:"| @@"`
	Extended   *ExtendedCmd   `parser:"| @@"`
	Initiative *InitiativeCmd `parser:"| @@"`
	Encounter  *EncounterCmd  `parser:"| @@"`
	Damage     *DamageCmd     `parser:"| @@"`
	Turn       *TurnCmd       `parser:"| @@"`
	Matrix     *MatrixCmd     `parser:"| @@"`
	Perceive   *PerceiveCmd   `parser:"| @@"`
	Log        *LogCmd        `parser:"| @@"`
	Help       *HelpCmd       `parser:"| @@ )"`
}

// ActorExpr maps parsing the optional "by: Someone" block
type ActorExpr struct {
	Keyword string `parser:"\"by\" \":\""`
	Name    string `parser:"@Ident"`
}

// RollCmd rolls standard dice notation
type RollCmd struct {
	Keyword string     `parser:"@(\"roll\"|\"Roll\"|\"ROLL\")"`
	Actor   *ActorExpr `parser:"@@?"`
	Dice    string     `parser:"@DiceMacro"`
}

// PoolCmd rolls a Shadowrun d6 dice pool, optionally spending Edge
type PoolCmd struct {
	Keyword string     `parser:"@(\"pool\"|\"Pool\"|\"POOL\")"`
	Actor   *ActorExpr `parser:"@@?"`
	Size    int        `parser:"@Int"`
	Edge    bool       `parser:"@\"edge\"?"`
}

// ExtendedCmd runs a multi-interval extended test
type ExtendedCmd struct {
	Keyword   string `parser:"@(\"extended\"|\"Extended\"|\"EXTENDED\")"`
	Pool      int    `parser:"\"pool\" \":\" @Int"`
	Threshold int    `parser:"\"threshold\" \":\" @Int"`
	Max       *int   `parser:"( \"max\" \":\" @Int )?"`
}

// InitiativeCmd rolls initiative for the whole active encounter roster
type InitiativeCmd struct {
	Keyword string     `parser:"@(\"initiative\"|\"Initiative\"|\"INITIATIVE\")"`
	Actor   *ActorExpr `parser:"@@?"` // MUST be GM under execution rules, but parsing we catch anyone
}

// EncounterCmd manages start and ending of combat tracking
type EncounterCmd struct {
	Keyword string   `parser:"@(\"encounter\"|\"Encounter\"|\"ENCOUNTER\")"`
	Action  string   `parser:"@(\"start\"|\"end\")"`
	Targets []string `parser:"( \"with\" \":\" @Ident ( \"and\" \":\" @Ident )* )?"`
}

// DamageCmd applies physical and/or stun damage to a combatant
type DamageCmd struct {
	Keyword string `parser:"@(\"damage\"|\"Damage\"|\"DAMAGE\")"`
	Target  string `parser:"\"to\" \":\" @Ident"`
	Phys    *int   `parser:"( \"phys\" \":\" @Int )?"`
	Stun    *int   `parser:"( \"stun\" \":\" @Int )?"`
}

// TurnCmd advances the active encounter to the next combatant
type TurnCmd struct {
	Keyword string `parser:"@(\"turn\"|\"Turn\"|\"TURN\")"`
}

// MatrixCmd resolves a Matrix action by a persona, optionally on a node
type MatrixCmd struct {
	Action string     `parser:"@(\"hack\"|\"Hack\"|\"HACK\"|\"search\"|\"Search\"|\"SEARCH\"|\"crash\"|\"Crash\"|\"CRASH\")"`
	Actor  *ActorExpr `parser:"@@"`
	On     *string    `parser:"( \"on\" \":\" @Ident )?"`
}

// PerceiveCmd runs a Matrix perception sweep over the grid
type PerceiveCmd struct {
	Keyword string     `parser:"@(\"perceive\"|\"Perceive\"|\"PERCEIVE\")"`
	Actor   *ActorExpr `parser:"@@"`
}

// LogCmd prints the session audit log
type LogCmd struct {
	Keyword string `parser:"@(\"log\"|\"Log\"|\"LOG\")"`
}

// HelpCmd provides context-aware guidance
type HelpCmd struct {
	Keyword string `parser:"@(\"help\"|\"Help\"|\"HELP\")"`
	Command string `parser:"@(Ident|Keyword)?"`
}
