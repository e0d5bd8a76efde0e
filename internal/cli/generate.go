package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"soroban/internal/deck"
	"soroban/internal/render"
)

// ============================================================
// Generate Command
// ============================================================

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build a flash card deck",
	Long: `Build a deck of SVG flash cards from a number range.

Options come from a config file (--config, YAML or JSON), with any
explicitly set flag overriding the file value.

Examples:
  soroban generate --range 0-99 --out cards
  soroban generate --config deck.yaml --shuffle --seed 42
  soroban generate --range 1,5-7,10 --format json
  soroban generate --range 0-50 --step 5 --format html --out deck.html`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringP("config", "c", "", "Deck config file (YAML or JSON)")
	generateCmd.Flags().String("format", "svg", "Output format: svg, json or html")
	generateCmd.Flags().StringP("out", "o", "", "Output directory (svg) or file (json, html; default stdout)")
	addDeckFlags(generateCmd.Flags())
}

// addDeckFlags регистрирует флаги, зеркалящие конфиг колоды.
func addDeckFlags(f *pflag.FlagSet) {
	f.StringP("range", "r", "", `Number range ("0-99") or list ("1,2,5,10")`)
	f.IntP("step", "s", 1, "Step for ranges")
	f.String("name", "", "Deck name")
	f.String("columns", "auto", `Soroban columns: "auto" or a number`)
	f.String("bead-shape", "diamond", "Bead shape: diamond, circle or square")
	f.String("color-scheme", "monochrome", "Color scheme: monochrome, place-value, heaven-earth or alternating")
	f.Float64("scale-factor", 0.9, "Scale adjustment (0.1 to 1.0)")
	f.Bool("colored-numerals", false, "Color numerals to match the bead scheme")
	f.Bool("hide-inactive-beads", false, "Only draw active beads")
	f.Bool("show-empty-columns", false, "Keep leading empty columns")
	f.Bool("show-numbers", false, "Print the value under each card")
	f.Bool("shuffle", false, "Shuffle the numbers")
	f.Int64("seed", 0, "Random seed for shuffle")
	f.Int("cards-per-page", 6, "Cards per gallery page")
	f.Bool("transparent", false, "Transparent card background")
}

// mergeDeckFlags накладывает явно заданные флаги поверх конфига.
// Порядок тот же, что у веб-формы: файл, затем флаги.
func mergeDeckFlags(f *pflag.FlagSet, cfg deck.Config) (deck.Config, error) {
	if f.Changed("range") {
		cfg.Range, _ = f.GetString("range")
	}
	if f.Changed("step") {
		cfg.Step, _ = f.GetInt("step")
	}
	if f.Changed("name") {
		cfg.Name, _ = f.GetString("name")
	}
	if f.Changed("columns") {
		raw, _ := f.GetString("columns")
		columns, err := deck.ParseColumns(raw)
		if err != nil {
			return cfg, err
		}
		cfg.Columns = columns
	}
	if f.Changed("bead-shape") {
		shape, _ := f.GetString("bead-shape")
		cfg.BeadShape = render.BeadShape(shape)
	}
	if f.Changed("color-scheme") {
		scheme, _ := f.GetString("color-scheme")
		cfg.ColorScheme = render.ColorScheme(scheme)
	}
	if f.Changed("scale-factor") {
		cfg.ScaleFactor, _ = f.GetFloat64("scale-factor")
	}
	if f.Changed("colored-numerals") {
		cfg.ColoredNumerals, _ = f.GetBool("colored-numerals")
	}
	if f.Changed("hide-inactive-beads") {
		cfg.HideInactiveBeads, _ = f.GetBool("hide-inactive-beads")
	}
	if f.Changed("show-empty-columns") {
		cfg.ShowEmptyColumns, _ = f.GetBool("show-empty-columns")
	}
	if f.Changed("show-numbers") {
		cfg.ShowNumbers, _ = f.GetBool("show-numbers")
	}
	if f.Changed("shuffle") {
		cfg.Shuffle, _ = f.GetBool("shuffle")
	}
	if f.Changed("seed") {
		seed, _ := f.GetInt64("seed")
		cfg.Seed = &seed
	}
	if f.Changed("cards-per-page") {
		cfg.CardsPerPage, _ = f.GetInt("cards-per-page")
	}
	if f.Changed("transparent") {
		cfg.Transparent, _ = f.GetBool("transparent")
	}
	return cfg, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg := deck.DefaultConfig()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		loaded, err := deck.LoadConfig(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	cfg, err := mergeDeckFlags(cmd.Flags(), cfg)
	if err != nil {
		return err
	}

	built, err := deck.Build(cfg)
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	switch format {
	case "svg":
		if out == "" {
			out = "out"
		}
		writer := deck.NewFileWriter(filepath.Dir(out))
		if err := writer.WriteDeck(filepath.Base(out), built); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Generated %d cards in %s\n", len(built.Cards), out)
		return nil

	case "json":
		data, err := json.MarshalIndent(built, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal deck: %w", err)
		}
		return writeOutput(cmd, out, append(data, '\n'))

	case "html":
		var page strings.Builder
		if err := built.WriteHTML(&page); err != nil {
			return err
		}
		return writeOutput(cmd, out, []byte(page.String()))
	}
	return fmt.Errorf("unknown format %q: expected svg, json or html", format)
}

// writeOutput пишет результат в файл или stdout, когда путь пуст.
func writeOutput(cmd *cobra.Command, out string, data []byte) error {
	if out == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated: %s\n", out)
	return nil
}
