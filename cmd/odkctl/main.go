package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/incatools/odkctl/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "odkctl",
	Short: "Seed ontology project repositories and provision their native tool environment",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.ConfigureRuntime()
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(newSeedCommand())
	rootCmd.AddCommand(newInstallCommand())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
