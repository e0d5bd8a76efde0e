package deck

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soroban/internal/render"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeTempConfig(t, "deck.yaml", `
name: Practice 0-99
range: 0-99
step: 3
columns: auto
bead_shape: circle
color_scheme: place-value
scale_factor: 0.8
colored_numerals: true
shuffle: true
seed: 42
cards_per_page: 8
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Practice 0-99", cfg.Name)
	assert.Equal(t, "0-99", cfg.Range)
	assert.Equal(t, 3, cfg.Step)
	assert.True(t, cfg.Columns.Auto)
	assert.Equal(t, render.ShapeCircle, cfg.BeadShape)
	assert.Equal(t, render.SchemePlaceValue, cfg.ColorScheme)
	assert.InDelta(t, 0.8, cfg.ScaleFactor, 1e-9)
	assert.True(t, cfg.ColoredNumerals)
	assert.True(t, cfg.Shuffle)
	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(42), *cfg.Seed)
	assert.Equal(t, 8, cfg.CardsPerPage)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeTempConfig(t, "deck.json", `{
  "range": "1-5",
  "columns": 4,
  "beadShape": "square"
}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "1-5", cfg.Range)
	assert.False(t, cfg.Columns.Auto)
	assert.Equal(t, 4, cfg.Columns.Count)
	assert.Equal(t, render.ShapeSquare, cfg.BeadShape)
	// Непомянутые поля берут значения по умолчанию.
	assert.Equal(t, render.SchemeMonochrome, cfg.ColorScheme)
	assert.Equal(t, 6, cfg.CardsPerPage)
}

func TestLoadConfigFixedColumnsYAML(t *testing.T) {
	path := writeTempConfig(t, "deck.yml", "range: 0-9\ncolumns: 5\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Columns.Auto)
	assert.Equal(t, 5, cfg.Columns.Count)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeTempConfig(t, "deck.toml", "range = \"0-9\"")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config format")
	})

	t.Run("bad yaml", func(t *testing.T) {
		path := writeTempConfig(t, "deck.yaml", "range: [unclosed")
		_, err := LoadConfig(path)
		require.Error(t, err)
	})

	t.Run("invalid scale", func(t *testing.T) {
		path := writeTempConfig(t, "deck.yaml", "range: 0-9\nscale_factor: 1.5\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "scale_factor")
	})

	t.Run("invalid shape", func(t *testing.T) {
		path := writeTempConfig(t, "deck.yaml", "range: 0-9\nbead_shape: star\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "star")
	})

	t.Run("invalid columns", func(t *testing.T) {
		path := writeTempConfig(t, "deck.yaml", "range: 0-9\ncolumns: kraken\n")
		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}

func TestParseColumns(t *testing.T) {
	spec, err := ParseColumns("auto")
	require.NoError(t, err)
	assert.True(t, spec.Auto)
	assert.Equal(t, "auto", spec.String())

	spec, err = ParseColumns("7")
	require.NoError(t, err)
	assert.False(t, spec.Auto)
	assert.Equal(t, 7, spec.Count)
	assert.Equal(t, "7", spec.String())

	_, err = ParseColumns("0")
	require.Error(t, err)
	_, err = ParseColumns("-2")
	require.Error(t, err)
}

func TestColumnsJSONRoundTrip(t *testing.T) {
	var spec Columns
	require.NoError(t, json.Unmarshal([]byte(`"auto"`), &spec))
	assert.True(t, spec.Auto)

	require.NoError(t, json.Unmarshal([]byte(`3`), &spec))
	assert.Equal(t, 3, spec.Count)

	data, err := json.Marshal(FixedColumns(3))
	require.NoError(t, err)
	assert.JSONEq(t, `3`, string(data))

	data, err = json.Marshal(AutoColumnsSpec())
	require.NoError(t, err)
	assert.JSONEq(t, `"auto"`, string(data))

	assert.Error(t, json.Unmarshal([]byte(`2.5`), &spec))
	assert.Error(t, json.Unmarshal([]byte(`true`), &spec))
}

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Range = ""
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.CardsPerPage = 25
	assert.Error(t, cfg.Validate())

	// Ноль допустим и означает значение по умолчанию.
	cfg.CardsPerPage = 0
	assert.NoError(t, cfg.Validate())

	cfg.CardsPerPage = -1
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Columns = FixedColumns(0)
	assert.Error(t, cfg.Validate())
}
