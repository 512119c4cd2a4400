/*
Copyright © 2026 shadowrun-backend contributors
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sloppymo/shadowrun-backend/internal/persistence"
	"github.com/sloppymo/shadowrun-backend/internal/session"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var replCmd = &cobra.Command{
	Use:   "repl [scenario_name] [session_name]",
	Short: "Start the interactive GM shell",
	Long: `Starts the read-eval-print loop for running a Shadowrun session.
Usage:
	> pool by: Shadow 12 edge
	> hack by: decker-1 on: host-1`,
	Args: cobra.MaximumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		scenarioName := ""
		sessionName := "default"
		if len(args) >= 1 {
			scenarioName = args[0]
		}
		if len(args) >= 2 {
			sessionName = args[1]
		}

		scenariosDir := viper.GetString("scenarios_dir")
		if scenariosDir == "" {
			scenariosDir = "./scenarios"
		}

		var store *persistence.Store
		if scenarioName != "" {
			manager := persistence.NewScenarioManager(scenariosDir)
			var err error
			store, err = manager.Create(scenarioName, sessionName)
			if err != nil {
				fmt.Printf("Failed to open session log: %v\n", err)
				os.Exit(1)
			}
			defer store.Close()
		}

		// The loader resolves "scenarios/<name>.yaml" relative to each data
		// dir, so the parent of the scenarios dir comes first; the session
		// folder allows per-session grid and house rule overrides.
		dataDirs := []string{
			filepath.Join(scenariosDir, scenarioName, sessionName),
			filepath.Dir(scenariosDir),
			".",
		}

		app, err := session.NewSession(dataDirs, scenarioName, viper.GetInt64("seed"), store)
		if err != nil {
			fmt.Printf("Failed to bootstrap game session: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Starting session '%s/%s'...\nType 'exit' or 'quit' to leave.\n\n", scenarioName, sessionName)

		if err := RunTUI(app, scenarioName, sessionName); err != nil {
			fmt.Printf("Fatal TUI Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
