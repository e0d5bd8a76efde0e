package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"soroban/internal/engine"
)

// ============================================================
// Styles
// ============================================================

var (
	titleStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#3e2723", Dark: "#d7a87e"})
	scoreStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#81c784"})
	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#b71c1c", Dark: "#ef9a9a"})
	correctStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#2e7d32", Dark: "#81c784"})
	helpStyle = lipgloss.NewStyle().Faint(true)

	activeBead = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#bf360c", Dark: "#ffab40"})
	idleBead = lipgloss.NewStyle().Faint(true)
	rodStyle = lipgloss.NewStyle().Faint(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#8d6e63", Dark: "#8d6e63"})
	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#3e2723", Dark: "#a1887f"})
	digitStyle = lipgloss.NewStyle().Bold(true)
)

// ============================================================
// View
// ============================================================

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("soroban practice"))
	b.WriteString("\n\n")

	if m.mode == ModeQuiz {
		m.viewQuiz(&b)
	} else {
		m.viewFree(&b)
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewQuiz(b *strings.Builder) {
	b.WriteString(scoreStyle.Render(fmt.Sprintf("score %d/%d  streak %d", m.correct, m.total, m.streak)))
	b.WriteString("\n\n")
	b.WriteString(DrawState(m.state, m.columns))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.feedback != "" {
		style := feedbackStyle
		if m.feedback == "Correct!" {
			style = correctStyle
		}
		b.WriteString(style.Render(m.feedback))
		b.WriteString("\n")
	}
}

func (m Model) viewFree(b *strings.Builder) {
	state := engine.BigToState(m.value, m.columns)
	b.WriteString(DrawState(state, m.columns))
	b.WriteString("\n")
	b.WriteString(digitStyle.Render(m.value.String()))
	b.WriteString("\n")

	if m.showDiff {
		diff := engine.DiffStates(engine.BigToState(m.prev, m.columns), state)
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%s -> %s: %s\n", m.prev.String(), m.value.String(), diff.Summary))
	}
}

func (m Model) helpLine() string {
	if m.mode == ModeQuiz {
		if m.revealed {
			return "enter/n next card · tab free mode · esc quit"
		}
		return "type the number, enter to check · tab free mode · esc quit"
	}
	return "0-9 append digit · backspace drop · up/down ±1 · c clear · d diff · tab quiz · q quit"
}

// ============================================================
// Abacus Drawing
// ============================================================

const (
	beadRune = "◆"
	rodRune  = "│"
	barRune  = "━"
)

// Ширина ячейки колонки в символах.
const cellWidth = 3

// DrawState рисует абакус псевдографикой: небесная секция,
// разделительная планка и земная секция, активные бусины у планки.
func DrawState(state engine.AbacusState, columns int) string {
	if columns < 1 {
		columns = 1
	}

	var rows []string

	// Небесная секция: ряд 0 — покой, ряд 1 — у планки.
	rows = append(rows, drawRow(columns, state, func(bead engine.BeadState) string {
		if bead.HeavenActive {
			return rodCell()
		}
		return beadCell(false)
	}))
	rows = append(rows, drawRow(columns, state, func(bead engine.BeadState) string {
		if bead.HeavenActive {
			return beadCell(true)
		}
		return rodCell()
	}))

	rows = append(rows, barStyle.Render(strings.Repeat(barRune, columns*cellWidth+2)))

	// Земная секция: активные стопкой от планки вниз, затем зазор,
	// затем неактивные у нижнего края.
	for row := 0; row <= engine.EarthBeadsPerColumn; row++ {
		rows = append(rows, drawRow(columns, state, func(bead engine.BeadState) string {
			switch {
			case row < bead.EarthActive:
				return beadCell(true)
			case row == bead.EarthActive:
				return rodCell()
			default:
				return beadCell(false)
			}
		}))
	}

	return strings.Join(rows, "\n")
}

// drawRow строит один ряд из ячеек колонок, старшие разряды слева.
func drawRow(columns int, state engine.AbacusState, cell func(engine.BeadState) string) string {
	var b strings.Builder
	b.WriteString(" ")
	for place := columns - 1; place >= 0; place-- {
		var bead engine.BeadState
		if place < len(state) {
			bead = state[place]
		}
		b.WriteString(cell(bead))
	}
	return b.String()
}

func beadCell(active bool) string {
	if active {
		return " " + activeBead.Render(beadRune) + " "
	}
	return " " + idleBead.Render(beadRune) + " "
}

func rodCell() string {
	return " " + rodStyle.Render(rodRune) + " "
}
