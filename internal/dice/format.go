package dice

import (
	"fmt"
	"strings"
)

// FormatRoll renders a notation roll for console display.
func FormatRoll(res RollResult) string {
	rolls := joinInts(res.Rolls)
	switch {
	case res.Modifier > 0:
		return fmt.Sprintf("Rolled %s: [%s] + %d = %d", res.Notation, rolls, res.Modifier, res.Total)
	case res.Modifier < 0:
		return fmt.Sprintf("Rolled %s: [%s] - %d = %d", res.Notation, rolls, -res.Modifier, res.Total)
	default:
		return fmt.Sprintf("Rolled %s: [%s] = %d", res.Notation, rolls, res.Total)
	}
}

// FormatPool renders a Shadowrun pool result for console display.
func FormatPool(res PoolResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rolled %dd6: [%s]\n", res.PoolSize, joinInts(res.Rolls))
	fmt.Fprintf(&b, "Hits: %d", res.Hits)
	if res.EdgeUsed {
		b.WriteString(" (Edge used - 6s exploded)")
	}
	if res.CriticalGlitch {
		b.WriteString("\nCRITICAL GLITCH!")
	} else if res.Glitch {
		b.WriteString("\nGLITCH!")
	}
	return b.String()
}

// FormatInitiative renders an initiative roll for console display.
func FormatInitiative(res InitiativeResult) string {
	return fmt.Sprintf("Initiative %d + [%s] = %d", res.Base, joinInts(res.DiceRolls), res.Total)
}

// FormatExtended renders an extended test for console display.
func FormatExtended(res ExtendedResult) string {
	outcome := "failed"
	if res.Success {
		outcome = "succeeded"
	}
	s := fmt.Sprintf("Extended test %s: %d/%d hits in %d rolls", outcome, res.TotalHits, res.Threshold, res.RollsMade)
	if res.Glitched {
		s += " (glitched)"
	}
	return s
}

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ", ")
}
