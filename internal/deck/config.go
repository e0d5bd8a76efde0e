package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"soroban/internal/render"
)

// ============================================================
// Columns Spec
// ============================================================

// Columns — число колонок колоды: фиксированное или "auto"
// (по самому широкому значению карточки).
type Columns struct {
	Auto  bool
	Count int
}

func AutoColumnsSpec() Columns {
	return Columns{Auto: true}
}

func FixedColumns(count int) Columns {
	return Columns{Count: count}
}

func (c Columns) String() string {
	if c.Auto {
		return "auto"
	}
	return strconv.Itoa(c.Count)
}

// ParseColumns разбирает значение колонок из конфигов и флагов.
func ParseColumns(raw string) (Columns, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "auto" {
		return AutoColumnsSpec(), nil
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 1 {
		return Columns{}, fmt.Errorf("invalid columns %q: expected positive number or \"auto\"", raw)
	}
	return FixedColumns(count), nil
}

func (c *Columns) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := ParseColumns(node.Value)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c Columns) MarshalYAML() (any, error) {
	return c.String(), nil
}

func (c *Columns) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := ParseColumns(v)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case float64:
		if v < 1 || v != float64(int(v)) {
			return fmt.Errorf("invalid columns %v: expected positive number or \"auto\"", v)
		}
		*c = FixedColumns(int(v))
		return nil
	case nil:
		*c = AutoColumnsSpec()
		return nil
	}
	return fmt.Errorf("invalid columns value %v", raw)
}

func (c Columns) MarshalJSON() ([]byte, error) {
	if c.Auto {
		return json.Marshal("auto")
	}
	return json.Marshal(c.Count)
}

// ============================================================
// Deck Config
// ============================================================

type Config struct {
	Name              string             `yaml:"name" json:"name"`
	Range             string             `yaml:"range" json:"range"`
	Step              int                `yaml:"step" json:"step"`
	Columns           Columns            `yaml:"columns" json:"columns"`
	BeadShape         render.BeadShape   `yaml:"bead_shape" json:"beadShape"`
	ColorScheme       render.ColorScheme `yaml:"color_scheme" json:"colorScheme"`
	ScaleFactor       float64            `yaml:"scale_factor" json:"scaleFactor"`
	ColoredNumerals   bool               `yaml:"colored_numerals" json:"coloredNumerals"`
	HideInactiveBeads bool               `yaml:"hide_inactive_beads" json:"hideInactiveBeads"`
	ShowEmptyColumns  bool               `yaml:"show_empty_columns" json:"showEmptyColumns"`
	ShowNumbers       bool               `yaml:"show_numbers" json:"showNumbers"`
	Shuffle           bool               `yaml:"shuffle" json:"shuffle"`
	Seed              *int64             `yaml:"seed" json:"seed,omitempty"`
	CardsPerPage      int                `yaml:"cards_per_page" json:"cardsPerPage"`
	Transparent       bool               `yaml:"transparent" json:"transparent"`
}

// DefaultConfig — значения по умолчанию для новой колоды.
func DefaultConfig() Config {
	return Config{
		Name:         "Soroban Flash Cards",
		Range:        "0-9",
		Step:         1,
		Columns:      AutoColumnsSpec(),
		BeadShape:    render.ShapeDiamond,
		ColorScheme:  render.SchemeMonochrome,
		ScaleFactor:  0.9,
		CardsPerPage: 6,
	}
}

// LoadConfig читает конфиг колоды из YAML или JSON файла.
// Отсутствующие поля остаются со значениями по умолчанию.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse json config: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate проверяет согласованность конфига.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Range) == "" {
		return fmt.Errorf("range is required")
	}
	if c.Step < 0 {
		return fmt.Errorf("step must be positive, got %d", c.Step)
	}
	if !c.Columns.Auto && c.Columns.Count < 1 {
		return fmt.Errorf("columns must be positive, got %d", c.Columns.Count)
	}
	if c.ScaleFactor != 0 && (c.ScaleFactor < 0.1 || c.ScaleFactor > 1.0) {
		return fmt.Errorf("scale_factor must be within [0.1, 1.0], got %g", c.ScaleFactor)
	}
	switch c.BeadShape {
	case "", render.ShapeDiamond, render.ShapeCircle, render.ShapeSquare:
	default:
		return fmt.Errorf("unknown bead_shape %q", c.BeadShape)
	}
	switch c.ColorScheme {
	case "", render.SchemeMonochrome, render.SchemePlaceValue, render.SchemeHeavenEarth, render.SchemeAlternating:
	default:
		return fmt.Errorf("unknown color_scheme %q", c.ColorScheme)
	}
	// Ноль значит "взять значение по умолчанию", как и scale_factor.
	if c.CardsPerPage < 0 || c.CardsPerPage > 24 {
		return fmt.Errorf("cards_per_page must be within [1, 24] or 0 for the default, got %d", c.CardsPerPage)
	}
	return nil
}

// renderOptions переводит конфиг колоды в опции рендера одной карточки.
func (c Config) renderOptions(columns int) render.Options {
	return render.Options{
		Columns:           columns,
		BeadShape:         c.BeadShape,
		ColorScheme:       c.ColorScheme,
		ScaleFactor:       c.ScaleFactor,
		ColoredNumerals:   c.ColoredNumerals,
		HideInactiveBeads: c.HideInactiveBeads,
		ShowNumbers:       c.ShowNumbers,
		Transparent:       c.Transparent,
	}
}
