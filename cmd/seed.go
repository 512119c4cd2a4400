/*
Copyright © 2026 shadowrun-backend contributors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sloppymo/shadowrun-backend/internal/data"
	"github.com/sloppymo/shadowrun-backend/internal/matrix"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var seedCmd = &cobra.Command{
	Use:   "seed [scenario_name]",
	Short: "Write an example scenario file to start from",
	Long: `Writes a ready-to-play scenario YAML (roster, decker persona and a
corporate host grid) into the scenarios directory. Edit the file or use
it directly:

	shadowrun-backend seed corp-extraction
	shadowrun-backend repl "Corp Extraction"`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := "Corp Extraction"
		if len(args) == 1 {
			name = args[0]
		}

		scenariosDir := viper.GetString("scenarios_dir")
		if scenariosDir == "" {
			scenariosDir = "./scenarios"
		}

		dashName := strings.ReplaceAll(strings.ToLower(name), " ", "-")
		dir := filepath.Join(filepath.Dir(scenariosDir), "scenarios")
		path := filepath.Join(dir, fmt.Sprintf("%s.yaml", dashName))

		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Refusing to overwrite existing scenario: %s\n", path)
			os.Exit(1)
		}

		if err := os.MkdirAll(dir, 0755); err != nil {
			fmt.Printf("Failed to create scenarios directory: %v\n", err)
			os.Exit(1)
		}

		raw, err := yaml.Marshal(exampleScenario(name))
		if err != nil {
			fmt.Printf("Failed to serialize scenario: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(path, raw, 0644); err != nil {
			fmt.Printf("Failed to write scenario: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Wrote example scenario to %s\n", path)
		fmt.Printf("Run it with: shadowrun-backend repl %q\n", name)
	},
}

// exampleScenario is a small corporate host run: two runners, one decker
// persona, and a six-node grid with a patrol ICE guarding the entrance.
func exampleScenario(name string) *data.ScenarioTemplate {
	return &data.ScenarioTemplate{
		Name: name,
		Roster: []data.CombatantTemplate{
			{ID: "pc-1", Name: "Shadow", Type: "player", Initiative: 12, Reaction: 6, Intuition: 4, Edge: 3},
			{ID: "pc-2", Name: "Nix", Type: "player", Initiative: 9, Reaction: 4, Intuition: 5, Edge: 2},
			{ID: "npc-1", Name: "Corpsec Guard", Type: "npc", Initiative: 8, Reaction: 4, Intuition: 3, Edge: 1},
		},
		Personas: []data.PersonaTemplate{
			{ID: "decker-1", Name: "Nix", Attack: 4, Sleaze: 5, DataProcessing: 6, Firewall: 4},
		},
		Grid: &data.GridTemplate{
			Name: "Corporate Host",
			Nodes: []data.NodeTemplate{
				{
					ID: "host-1", Name: "Corporate Host", Type: "host",
					Security: 8, Encrypted: true, Discovered: true,
					Position:  matrix.Position{X: 0, Y: 0, Z: 0},
					Connected: []string{"node-1", "node-2", "ice-1"},
				},
				{
					ID: "node-1", Name: "Security Subsystem", Type: "device",
					Security:  6,
					Position:  matrix.Position{X: -2, Y: 1, Z: 0},
					Connected: []string{"data-1"},
				},
				{
					ID: "node-2", Name: "Personnel Database", Type: "file",
					Security: 5, Encrypted: true,
					Position:  matrix.Position{X: 2, Y: 1, Z: 0},
					Connected: []string{"data-2"},
				},
				{
					ID: "data-1", Name: "Camera Controls", Type: "data",
					Security: 4,
					Position: matrix.Position{X: -3, Y: 2, Z: 0},
					Payload:  map[string]any{"device_control": "cameras"},
				},
				{
					ID: "data-2", Name: "Paydata Cache", Type: "data",
					Security: 7, Encrypted: true,
					Position: matrix.Position{X: 3, Y: 2, Z: 0},
					Payload:  map[string]any{"paydata": true, "value": 5000},
				},
				{
					ID: "ice-1", Name: "Patrol IC", Type: "ice",
					Security: 6,
					Position: matrix.Position{X: 0, Y: -1, Z: 0},
				},
			},
			Ice: []data.IceTemplate{
				{
					ID: "ice-prog-1", Name: "Patrol IC", Type: "patrol",
					Rating: 6, NodeID: "ice-1",
					Position: matrix.Position{X: 0, Y: -1, Z: 0},
				},
			},
		},
	}
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
