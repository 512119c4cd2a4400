/*
Copyright © 2026 shadowrun-backend contributors
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "shadowrun-backend",
	Short: "A Shadowrun GM game resolution engine",
	Long: `shadowrun-backend resolves the dice, combat and Matrix mechanics a
Shadowrun table needs: notation rolls, d6 success pools with Edge and
glitches, initiative and condition tracking, and node-graph hacking
with overwatch accumulation. Scenarios and house rules are plain YAML.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.shadowrun-backend.yaml)")
	rootCmd.PersistentFlags().String("scenarios_dir", "", "Directory holding scenario and session data")
	rootCmd.PersistentFlags().Int64("seed", 0, "Fixed dice seed for reproducible sessions (0 means random)")

	viper.BindPFlag("scenarios_dir", rootCmd.PersistentFlags().Lookup("scenarios_dir"))
	viper.BindPFlag("seed", rootCmd.PersistentFlags().Lookup("seed"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".shadowrun-backend")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
