// Package cli implements the MemoClarity command-line interface using Cobra.
// Each subcommand maps to a tracker capability (checkin, status, games, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "memoclarity",
	Short: "MemoClarity — Daily memory wellness tracker",
	Long: `MemoClarity tracks daily check-ins, streaks, cognitive mini-games
and raffle tickets, all stored locally. No accounts, no network required.`,
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
