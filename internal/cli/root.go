// Package cli implements the questlog command-line interface using Cobra.
// Each subcommand maps to a daemon capability (serve, log, stats, badges).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "questlog",
	Short: "QuestLog — Gamified productivity tracking",
	Long: `QuestLog turns your day into a quest log.
Log activities in plain language, earn XP and badges, keep your streak
alive and climb the weekly leaderboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
