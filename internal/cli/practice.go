package cli

import (
	"math/big"
	"time"

	"github.com/spf13/cobra"

	"soroban/internal/deck"
	"soroban/internal/engine"
	"soroban/internal/tui"
)

// ============================================================
// Practice Command
// ============================================================

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Interactive practice in the terminal",
	Long: `Run the terminal trainer: a flash card quiz over a number range,
plus a free mode where you dial numbers and watch the beads move.

Examples:
  soroban practice
  soroban practice --range 0-99 --shuffle --seed 7
  soroban practice --columns 3 --free`,
	Args: cobra.NoArgs,
	RunE: runPractice,
}

func init() {
	rootCmd.AddCommand(practiceCmd)

	practiceCmd.Flags().StringP("range", "r", "", `Quiz values ("0-99"; default random)`)
	practiceCmd.Flags().Int("step", 1, "Step for ranges")
	practiceCmd.Flags().Int("columns", 0, "Column count (default: fit the range)")
	practiceCmd.Flags().Bool("shuffle", false, "Shuffle the quiz values")
	practiceCmd.Flags().Int64("seed", 0, "Random seed for shuffle and random cards")
	practiceCmd.Flags().Bool("free", false, "Start in free mode")
}

func runPractice(cmd *cobra.Command, args []string) error {
	f := cmd.Flags()
	spec, _ := f.GetString("range")
	step, _ := f.GetInt("step")
	columns, _ := f.GetInt("columns")
	shuffle, _ := f.GetBool("shuffle")
	seed, _ := f.GetInt64("seed")
	free, _ := f.GetBool("free")

	var values []*big.Int
	if spec != "" {
		parsed, err := deck.ParseRange(spec, step)
		if err != nil {
			return err
		}
		if shuffle {
			shuffleSeed := seed
			if shuffleSeed == 0 {
				shuffleSeed = time.Now().UnixNano()
			}
			deck.Shuffle(parsed, shuffleSeed)
		}
		values = parsed
	}

	if columns < 1 {
		columns = fitColumns(values)
	}
	return tui.Run(tui.Options{
		Values:  values,
		Columns: columns,
		Seed:    seed,
		Free:    free,
	})
}

// fitColumns подбирает ширину абакуса под самое широкое значение квиза.
func fitColumns(values []*big.Int) int {
	columns := engine.DefaultColumns
	for _, value := range values {
		if auto := engine.AutoColumnsBig(value); auto > columns {
			columns = auto
		}
	}
	return columns
}
