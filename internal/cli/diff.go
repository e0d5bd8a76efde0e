package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"soroban/internal/engine"
)

// ============================================================
// Diff Command
// ============================================================

var diffCmd = &cobra.Command{
	Use:   "diff FROM TO",
	Short: "Explain the bead moves between two numbers",
	Long: `Print the instruction for moving the abacus from one number
to another: a one-line summary plus the ordered bead moves.

Examples:
  soroban diff 5 15
  soroban diff 19 91 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)

	diffCmd.Flags().Int("columns", 0, "Column count (default: fit both values)")
	diffCmd.Flags().Bool("json", false, "Output the raw change list as JSON")
}

func runDiff(cmd *cobra.Command, args []string) error {
	from, err := parseNumberArg(args[0])
	if err != nil {
		return err
	}
	to, err := parseNumberArg(args[1])
	if err != nil {
		return err
	}

	columns, _ := cmd.Flags().GetInt("columns")
	if columns < 1 {
		columns = engine.DefaultColumns
		if auto := engine.AutoColumnsBig(from); auto > columns {
			columns = auto
		}
		if auto := engine.AutoColumnsBig(to); auto > columns {
			columns = auto
		}
	}
	if check := engine.ValidateBig(from, columns); !check.IsValid {
		return fmt.Errorf("from: %s", check.Error)
	}
	if check := engine.ValidateBig(to, columns); !check.IsValid {
		return fmt.Errorf("to: %s", check.Error)
	}

	result := engine.DiffStates(
		engine.BigToState(from, columns),
		engine.BigToState(to, columns),
	)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal diff: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s -> %s: %s\n", from.String(), to.String(), result.Summary)
	if !result.HasChanges {
		return nil
	}
	fmt.Fprintln(out)
	for i, change := range result.Changes {
		fmt.Fprintf(out, "  %2d. %s\n", i+1, describeChange(change))
	}
	return nil
}

// describeChange формулирует один шаг инструкции.
func describeChange(change engine.BeadChange) string {
	verb := "add"
	if change.Direction == engine.Deactivate {
		verb = "remove"
	}

	var bead string
	if change.Type == engine.BeadHeaven {
		bead = "heaven bead"
	} else {
		bead = fmt.Sprintf("earth bead %d", change.Position+1)
	}
	return strings.Join([]string{verb, bead, "in", engine.PlaceName(change.PlaceValue)}, " ")
}
