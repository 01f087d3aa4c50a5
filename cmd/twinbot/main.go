package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/twinbot/core/cmd/twinbot/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "twinbot",
		Short: "TwinBot personal assistant",
		Long:  `TwinBot is a personal productivity assistant covering classes, assignments, todos, reminders, family life, and quick research lookups.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewBriefCommand())
	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
