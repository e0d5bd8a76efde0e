package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"soroban/internal/engine"
)

// ============================================================
// Validate Command
// ============================================================

var validateCmd = &cobra.Command{
	Use:   "validate VALUE",
	Short: "Check whether a value fits on the abacus",
	Long: `Check that a value is representable on the configured number
of columns. Exits 0 when it fits and 1 with a reason when it does not.

Examples:
  soroban validate 99999
  soroban validate 123456 --columns 5`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().Int("columns", engine.DefaultColumns, "Column count")
}

func runValidate(cmd *cobra.Command, args []string) error {
	value, err := parseNumberArg(args[0])
	if err != nil {
		return err
	}

	columns, _ := cmd.Flags().GetInt("columns")
	if columns < 1 {
		columns = engine.DefaultColumns
	}

	check := engine.ValidateBig(value, columns)
	if !check.IsValid {
		fmt.Fprintln(cmd.OutOrStdout(), check.Error)
		return fmt.Errorf("validation failed")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s fits on %d columns\n", value.String(), columns)
	return nil
}
