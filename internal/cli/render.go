package cli

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"soroban/internal/engine"
	"soroban/internal/render"
)

// ============================================================
// Render Command
// ============================================================

var renderCmd = &cobra.Command{
	Use:   "render VALUE",
	Short: "Render a single value as an SVG card",
	Long: `Render the soroban bead diagram for one value as SVG.

Examples:
  soroban render 172
  soroban render 42 --columns 5 --color-scheme place-value
  soroban render 98765432109876543210 --out card.svg`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("out", "o", "", "Output file (default stdout)")
	renderCmd.Flags().Int("columns", 0, "Column count (default: fit the value)")
	renderCmd.Flags().String("bead-shape", "diamond", "Bead shape: diamond, circle or square")
	renderCmd.Flags().String("color-scheme", "monochrome", "Color scheme: monochrome, place-value, heaven-earth or alternating")
	renderCmd.Flags().Float64("scale-factor", 1.0, "Scale adjustment (0.1 to 1.0)")
	renderCmd.Flags().Bool("colored-numerals", false, "Color numerals to match the bead scheme")
	renderCmd.Flags().Bool("hide-inactive-beads", false, "Only draw active beads")
	renderCmd.Flags().Bool("show-numbers", false, "Print the value under the card")
	renderCmd.Flags().Bool("show-labels", false, "Print place labels above the columns")
	renderCmd.Flags().Bool("transparent", false, "Transparent background")
}

func runRender(cmd *cobra.Command, args []string) error {
	value, err := parseNumberArg(args[0])
	if err != nil {
		return err
	}

	f := cmd.Flags()
	columns, _ := f.GetInt("columns")
	if columns < 1 {
		columns = engine.AutoColumnsBig(value)
	}
	if check := engine.ValidateBig(value, columns); !check.IsValid {
		return fmt.Errorf("%s", check.Error)
	}

	shape, _ := f.GetString("bead-shape")
	scheme, _ := f.GetString("color-scheme")
	scale, _ := f.GetFloat64("scale-factor")
	coloredNumerals, _ := f.GetBool("colored-numerals")
	hideInactive, _ := f.GetBool("hide-inactive-beads")
	showNumbers, _ := f.GetBool("show-numbers")
	showLabels, _ := f.GetBool("show-labels")
	transparent, _ := f.GetBool("transparent")

	svg, err := render.NewRenderer(render.Options{
		Columns:           columns,
		BeadShape:         render.BeadShape(shape),
		ColorScheme:       render.ColorScheme(scheme),
		ScaleFactor:       scale,
		ColoredNumerals:   coloredNumerals,
		HideInactiveBeads: hideInactive,
		ShowNumbers:       showNumbers,
		ShowLabels:        showLabels,
		Transparent:       transparent,
	}).Render(engine.BigToState(value, columns))
	if err != nil {
		return err
	}

	out, _ := f.GetString("out")
	return writeOutput(cmd, out, []byte(svg))
}

// parseNumberArg разбирает десятичный аргумент команды.
func parseNumberArg(raw string) (*big.Int, error) {
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	return value, nil
}
