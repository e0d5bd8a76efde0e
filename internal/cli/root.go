// Package cli содержит команды терминальной утилиты soroban.
package cli

import (
	"github.com/spf13/cobra"
)

// ============================================================
// Root Command
// ============================================================

var rootCmd = &cobra.Command{
	Use:   "soroban",
	Short: "Soroban flash card toolkit",
	Long: `Soroban renders abacus flash cards as SVG, explains bead moves
between numbers and builds printable practice decks.

Examples:
  soroban render 172
  soroban diff 5 15
  soroban generate --range 0-99 --shuffle --out cards/
  soroban practice --range 0-99`,
	SilenceUsage: true,
}

// Execute запускает корневую команду.
func Execute() error {
	return rootCmd.Execute()
}
