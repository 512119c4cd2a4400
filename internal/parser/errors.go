package parser

import (
	"fmt"
	"strings"
)

// MapError takes a raw input and a participle error, and returns a human-friendly guidance message.
func MapError(input string, err error) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("I wasn't able to understand your command")
	}

	parts := strings.Fields(strings.ToLower(input))
	cmd := parts[0]

	switch cmd {
	case "roll":
		return fmt.Errorf("The command roll must be: roll [by: Actor] <NdS+M>")
	case "pool":
		return fmt.Errorf("The command pool must be: pool [by: Actor] <size> [edge]")
	case "extended":
		return fmt.Errorf("The command extended must be: extended pool: <size> threshold: <hits> [max: <rolls>]")
	case "initiative":
		return fmt.Errorf("The command initiative must be: initiative [by: GM]")
	case "encounter":
		return fmt.Errorf("The command encounter must be: encounter <start|end> [with: Target1 [and: Target2]*]")
	case "damage":
		return fmt.Errorf("The command damage must be: damage to: Target [phys: N] [stun: N]")
	case "turn":
		return fmt.Errorf("The command turn must be: turn")
	case "hack", "search", "crash":
		return fmt.Errorf("The command %s must be: %s by: Persona [on: Node]", cmd, cmd)
	case "perceive":
		return fmt.Errorf("The command perceive must be: perceive by: Persona")
	case "log":
		return fmt.Errorf("The command log must be: log")
	}

	return fmt.Errorf("I wasn't able to understand your command")
}
