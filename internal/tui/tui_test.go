package tui

import (
	"math/big"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soroban/internal/engine"
)

// ============================================================
// Helpers
// ============================================================

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, key := range keys {
		updated, _ := m.Update(key)
		var ok bool
		m, ok = updated.(Model)
		require.True(t, ok)
	}
	return m
}

func runes(s string) []tea.KeyMsg {
	msgs := make([]tea.KeyMsg, 0, len(s))
	for _, r := range s {
		msgs = append(msgs, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return msgs
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func newQuiz(values ...int64) Model {
	parsed := make([]*big.Int, len(values))
	for i, v := range values {
		parsed[i] = big.NewInt(v)
	}
	return New(Options{Values: parsed, Columns: 2, Seed: 1})
}

// ============================================================
// Quiz Mode
// ============================================================

func TestQuizCorrectAnswer(t *testing.T) {
	m := newQuiz(15, 7)

	m = press(t, m, runes("15")...)
	m = press(t, m, enter)

	assert.Equal(t, 1, m.correct)
	assert.Equal(t, 1, m.total)
	assert.Equal(t, 1, m.streak)
	assert.True(t, m.revealed)
	assert.Equal(t, "Correct!", m.feedback)
}

func TestQuizWrongAnswerShowsDiff(t *testing.T) {
	m := newQuiz(15)

	m = press(t, m, runes("5")...)
	m = press(t, m, enter)

	assert.Equal(t, 0, m.correct)
	assert.Equal(t, 1, m.total)
	assert.Equal(t, 0, m.streak)
	assert.True(t, m.revealed)
	// Инструкция ведет от ответа игрока к правильному значению.
	assert.Contains(t, m.feedback, "it was 15")
	assert.Contains(t, m.feedback, "add 1 earth bead in tens column")
}

func TestQuizNextCardAdvancesSequence(t *testing.T) {
	m := newQuiz(15, 7)
	require.Equal(t, int64(15), m.target.Int64())

	m = press(t, m, runes("15")...)
	m = press(t, m, enter)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})

	assert.Equal(t, int64(7), m.target.Int64())
	assert.False(t, m.revealed)
	assert.Empty(t, m.feedback)
	assert.Empty(t, m.input.Value())
}

func TestQuizStreakResetsOnMistake(t *testing.T) {
	m := newQuiz(15, 7, 15)

	m = press(t, m, runes("15")...)
	m = press(t, m, enter)
	m = press(t, m, enter) // next
	m = press(t, m, runes("9")...)
	m = press(t, m, enter)

	assert.Equal(t, 1, m.correct)
	assert.Equal(t, 2, m.total)
	assert.Equal(t, 0, m.streak)
}

func TestQuizIgnoresNonDigitInput(t *testing.T) {
	m := newQuiz(15)

	m = press(t, m, runes("abc")...)
	assert.Empty(t, m.input.Value())

	m = press(t, m, enter)
	assert.Equal(t, 0, m.total)
	assert.False(t, m.revealed)
}

// ============================================================
// Free Mode
// ============================================================

func newFree() Model {
	return New(Options{Columns: 3, Seed: 1, Free: true})
}

func TestFreeModeDigitEntry(t *testing.T) {
	m := newFree()

	m = press(t, m, runes("42")...)
	assert.Equal(t, int64(42), m.value.Int64())
	assert.Equal(t, int64(4), m.prev.Int64())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, int64(43), m.value.Int64())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, int64(42), m.value.Int64())

	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, int64(4), m.value.Int64())

	m = press(t, m, runes("c")...)
	assert.Equal(t, int64(0), m.value.Int64())
}

func TestFreeModeRejectsOverflow(t *testing.T) {
	m := newFree()

	m = press(t, m, runes("999")...)
	require.Equal(t, int64(999), m.value.Int64())

	// Четвертая цифра не влезает в три колонки.
	m = press(t, m, runes("9")...)
	assert.Equal(t, int64(999), m.value.Int64())

	// Ниже нуля тоже нельзя.
	m = press(t, m, runes("c")...)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, int64(0), m.value.Int64())
}

func TestFreeModeDiffToggle(t *testing.T) {
	m := newFree()

	m = press(t, m, runes("5")...)
	m = press(t, m, runes("d")...)
	assert.True(t, m.showDiff)

	view := m.View()
	assert.Contains(t, view, "0 -> 5")
	assert.Contains(t, view, "add heaven bead in ones column")

	m = press(t, m, runes("d")...)
	assert.False(t, m.showDiff)
}

func TestModeSwitch(t *testing.T) {
	m := newQuiz(15)
	require.Equal(t, ModeQuiz, m.mode)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ModeFree, m.mode)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, ModeQuiz, m.mode)
}

// ============================================================
// Drawing
// ============================================================

func TestDrawStateShape(t *testing.T) {
	state := engine.NumberToState(507, 3)
	drawn := DrawState(state, 3)

	// Две строки небесной секции, планка, пять строк земной.
	lines := strings.Split(drawn, "\n")
	assert.Len(t, lines, 8)

	// Каждая колонка рисует ровно пять бусин независимо от значения.
	assert.Equal(t, 3*(engine.EarthBeadsPerColumn+1), strings.Count(drawn, beadRune))
}

func TestQuizViewShowsScore(t *testing.T) {
	m := newQuiz(15)
	m = press(t, m, runes("15")...)
	m = press(t, m, enter)

	view := m.View()
	assert.Contains(t, view, "score 1/1")
	assert.Contains(t, view, "streak 1")
	assert.Contains(t, view, "Correct!")
}
