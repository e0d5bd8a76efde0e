package main

import (
	"os"

	"soroban/internal/cli"
)

// ============================================================
// Soroban CLI
// ============================================================

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
