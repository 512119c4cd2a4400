package rules

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Prereq is one house-rule gate: a CEL formula that must hold before the
// named action resolves, and the message shown when it does not.
type Prereq struct {
	Formula string `yaml:"formula"`
	Error   string `yaml:"error"`
}

// HouseRules is the table's rule customization file, keyed by action
// name (roll, pool, hack, crash, damage, ...).
type HouseRules struct {
	Prereqs map[string]Prereq `yaml:"prereqs"`
}

// ParseHouseRules decodes a house-rules YAML document.
func ParseHouseRules(raw []byte) (*HouseRules, error) {
	var hr HouseRules
	if err := yaml.Unmarshal(raw, &hr); err != nil {
		return nil, fmt.Errorf("failed to decode house rules: %w", err)
	}
	return &hr, nil
}
