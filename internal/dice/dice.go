// Package dice implements the Shadowrun resolution dice: standard NdS+M
// notation rolls, the d6 success-counting pool with Edge explosion and
// glitch detection, initiative rolls, and multi-interval extended tests.
//
// Every Roller owns its own generator, seeded at construction, so two
// sessions never share random state and tests can fix the sequence.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
)

const (
	// D6 thresholds for the Shadowrun pool mechanic.
	successThreshold = 5

	maxNotationDice = 20
	maxNotationSize = 100
	maxPoolSize     = 50
	maxInitDice     = 5
	maxAttribute    = 50
)

var notationRegex = regexp.MustCompile(`(?i)^\s*(\d{1,2})d(\d{1,3})([+-]\d{1,2})?\s*$`)

// Roller draws uniform dice from an instance-owned generator.
type Roller struct {
	rng   *rand.Rand
	queue []int
}

// NewRoller creates a Roller seeded with the given value. The same seed
// always produces the same roll sequence.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// NewRandomRoller creates a Roller seeded from crypto/rand.
func NewRandomRoller() (*Roller, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return nil, fmt.Errorf("read random seed: %w", err)
	}
	return NewRoller(int64(binary.LittleEndian.Uint64(b[:]))), nil
}

// Enqueue prepares a sequence of deterministic results consumed by the
// next dice drawn from this Roller. Once the queue empties, draws fall
// back to the generator. Intended for tests that need exact faces.
func (r *Roller) Enqueue(results ...int) {
	r.queue = append(r.queue, results...)
}

// die draws one uniform value in [1, sides], honoring the queue.
func (r *Roller) die(sides int) int {
	if len(r.queue) > 0 {
		v := r.queue[0]
		r.queue = r.queue[1:]
		return v
	}
	return r.rng.Intn(sides) + 1
}

// D6 draws a single six-sided die. The Matrix engine uses this for its
// 2d6 opposed checks, which are a separate mechanic from the pool.
func (r *Roller) D6() int {
	return r.die(6)
}

// Float64 exposes a uniform [0,1) draw from the same generator, used for
// ICE position drift.
func (r *Roller) Float64() float64 {
	return r.rng.Float64()
}

// RollResult is the outcome of a standard notation roll.
type RollResult struct {
	Notation string `json:"notation"`
	Count    int    `json:"count"`
	Size     int    `json:"size"`
	Modifier int    `json:"modifier"`
	Rolls    []int  `json:"rolls"`
	Total    int    `json:"total"`
}

// Parse validates dice notation like "3d6", "2d10+5", "4d8-2" and returns
// its components. Anything outside the strict NdS(+/-M) grammar is
// rejected before a single die is drawn; the string is never evaluated.
func Parse(notation string) (count, size, modifier int, err error) {
	m := notationRegex.FindStringSubmatch(notation)
	if m == nil {
		return 0, 0, 0, validationf("invalid dice notation: %q", notation)
	}

	count, _ = strconv.Atoi(m[1])
	size, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		modifier, _ = strconv.Atoi(m[3])
	}

	if count < 1 || count > maxNotationDice {
		return 0, 0, 0, validationf("dice count must be between 1 and %d, got %d", maxNotationDice, count)
	}
	if size < 1 || size > maxNotationSize {
		return 0, 0, 0, validationf("dice size must be between 1 and %d, got %d", maxNotationSize, size)
	}
	return count, size, modifier, nil
}

// Roll parses the notation and rolls it.
func (r *Roller) Roll(notation string) (RollResult, error) {
	count, size, modifier, err := Parse(notation)
	if err != nil {
		return RollResult{}, err
	}

	rolls := make([]int, count)
	total := modifier
	for i := range rolls {
		rolls[i] = r.die(size)
		total += rolls[i]
	}

	return RollResult{
		Notation: notation,
		Count:    count,
		Size:     size,
		Modifier: modifier,
		Rolls:    rolls,
		Total:    total,
	}, nil
}

// PoolResult is the outcome of a Shadowrun d6 pool roll. Rolls includes
// every exploded die; hits and ones are counted over the full set.
type PoolResult struct {
	PoolSize       int   `json:"pool_size"`
	Rolls          []int `json:"rolls"`
	Hits           int   `json:"hits"`
	Ones           int   `json:"ones"`
	Glitch         bool  `json:"glitch"`
	CriticalGlitch bool  `json:"critical_glitch"`
	EdgeUsed       bool  `json:"edge_used"`
}

// RollPool rolls a Shadowrun dice pool. A 5 or 6 is a hit. With Edge,
// every 6 triggers exactly one additional die, recursively, and the new
// dice join the roll set. A glitch means more than half the final set
// shows 1s; a critical glitch is a glitch with zero hits.
func (r *Roller) RollPool(poolSize int, edgeUsed bool) (PoolResult, error) {
	if poolSize < 1 {
		return PoolResult{}, validationf("dice pool must be at least 1, got %d", poolSize)
	}
	if poolSize > maxPoolSize {
		return PoolResult{}, validationf("dice pool cannot exceed %d, got %d", maxPoolSize, poolSize)
	}

	rolls := make([]int, 0, poolSize)
	for i := 0; i < poolSize; i++ {
		rolls = append(rolls, r.die(6))
	}

	if edgeUsed {
		rolls = r.explode(rolls)
	}

	hits, ones := 0, 0
	for _, v := range rolls {
		if v >= successThreshold {
			hits++
		}
		if v == 1 {
			ones++
		}
	}

	glitch := ones > len(rolls)/2
	return PoolResult{
		PoolSize:       poolSize,
		Rolls:          rolls,
		Hits:           hits,
		Ones:           ones,
		Glitch:         glitch,
		CriticalGlitch: glitch && hits == 0,
		EdgeUsed:       edgeUsed,
	}, nil
}

// explode appends one extra d6 per 6 in rolls; extra 6s explode again.
// Terminates almost surely.
func (r *Roller) explode(rolls []int) []int {
	pending := 0
	for _, v := range rolls {
		if v == 6 {
			pending++
		}
	}
	for pending > 0 {
		pending--
		v := r.die(6)
		rolls = append(rolls, v)
		if v == 6 {
			pending++
		}
	}
	return rolls
}

// InitiativeResult is the outcome of a Shadowrun initiative roll.
type InitiativeResult struct {
	Base      int   `json:"base"`
	DiceRolls []int `json:"dice_rolls"`
	Total     int   `json:"total"`
	EdgeUsed  bool  `json:"edge_used"`
}

// RollInitiative computes reaction + intuition plus diceCount d6, with
// the same exploding-6 rule under Edge.
func (r *Roller) RollInitiative(reaction, intuition, diceCount int, edgeUsed bool) (InitiativeResult, error) {
	if reaction < 0 || reaction > maxAttribute {
		return InitiativeResult{}, validationf("reaction must be between 0 and %d, got %d", maxAttribute, reaction)
	}
	if intuition < 0 || intuition > maxAttribute {
		return InitiativeResult{}, validationf("intuition must be between 0 and %d, got %d", maxAttribute, intuition)
	}
	if diceCount < 1 || diceCount > maxInitDice {
		return InitiativeResult{}, validationf("initiative dice must be between 1 and %d, got %d", maxInitDice, diceCount)
	}

	rolls := make([]int, 0, diceCount)
	for i := 0; i < diceCount; i++ {
		rolls = append(rolls, r.die(6))
	}
	if edgeUsed {
		rolls = r.explode(rolls)
	}

	base := reaction + intuition
	total := base
	for _, v := range rolls {
		total += v
	}

	return InitiativeResult{
		Base:      base,
		DiceRolls: rolls,
		Total:     total,
		EdgeUsed:  edgeUsed,
	}, nil
}

// ExtendedResult is the outcome of an extended test.
type ExtendedResult struct {
	Success     bool         `json:"success"`
	Threshold   int          `json:"threshold"`
	TotalHits   int          `json:"total_hits"`
	RollsMade   int          `json:"rolls_made"`
	RollHistory []PoolResult `json:"roll_history"`
	Glitched    bool         `json:"glitched"`
}

// RollExtendedTest rolls the pool repeatedly, reducing it by one die per
// interval (floor of 1, fatigue), until the accumulated hits reach the
// threshold, a critical glitch ends the test, or maxRolls intervals have
// been rolled. maxRolls of 0 means unlimited.
func (r *Roller) RollExtendedTest(pool, threshold, maxRolls int) (ExtendedResult, error) {
	if pool < 1 || pool > maxPoolSize {
		return ExtendedResult{}, validationf("dice pool must be between 1 and %d, got %d", maxPoolSize, pool)
	}
	if threshold < 1 {
		return ExtendedResult{}, validationf("threshold must be at least 1, got %d", threshold)
	}
	if maxRolls < 0 {
		return ExtendedResult{}, validationf("max rolls cannot be negative, got %d", maxRolls)
	}

	res := ExtendedResult{Threshold: threshold}
	for res.TotalHits < threshold {
		if maxRolls > 0 && res.RollsMade >= maxRolls {
			break
		}
		res.RollsMade++

		current := pool - (res.RollsMade - 1)
		if current < 1 {
			current = 1
		}

		roll, err := r.RollPool(current, false)
		if err != nil {
			return ExtendedResult{}, err
		}
		res.RollHistory = append(res.RollHistory, roll)
		res.TotalHits += roll.Hits
		if roll.Glitch {
			res.Glitched = true
		}
		if roll.CriticalGlitch {
			break
		}
	}

	res.Success = res.TotalHits >= threshold
	return res, nil
}
