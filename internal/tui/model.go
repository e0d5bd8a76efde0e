// Package tui реализует интерактивный тренажер в терминале:
// карточный квиз и свободный режим набора чисел.
package tui

import (
	"fmt"
	"math/big"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"soroban/internal/engine"
)

// ============================================================
// Practice Model
// ============================================================

type Mode int

const (
	ModeQuiz Mode = iota
	ModeFree
)

type Options struct {
	// Values — последовательность квиза; пустая значит случайные числа.
	Values []*big.Int
	// Columns задает ширину абакуса; 0 — DefaultColumns.
	Columns int
	// Seed для генератора случайных карточек; 0 — от часов.
	Seed int64
	// Free запускает тренажер сразу в свободном режиме.
	Free bool
}

type Model struct {
	mode    Mode
	columns int

	// Квиз.
	values   []*big.Int
	index    int
	rng      *rand.Rand
	target   *big.Int
	state    engine.AbacusState
	input    textinput.Model
	revealed bool
	feedback string
	correct  int
	total    int
	streak   int

	// Свободный режим.
	value    *big.Int
	prev     *big.Int
	showDiff bool

	width    int
	quitting bool
}

func New(opts Options) Model {
	columns := opts.Columns
	if columns < 1 {
		columns = engine.DefaultColumns
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	input := textinput.New()
	input.Placeholder = "your answer"
	input.Prompt = "> "
	input.CharLimit = columns + 1
	input.Width = columns + 12
	input.Validate = digitsOnly
	input.Focus()

	m := Model{
		mode:    ModeQuiz,
		columns: columns,
		values:  opts.Values,
		rng:     rand.New(rand.NewSource(seed)),
		input:   input,
		value:   big.NewInt(0),
		prev:    big.NewInt(0),
	}
	if opts.Free {
		m.mode = ModeFree
	}
	m.nextCard()
	return m
}

// Run запускает тренажер и блокируется до выхода игрока.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// ============================================================
// Update
// ============================================================

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "tab":
			m.switchMode()
			return m, nil
		}

		if m.mode == ModeQuiz {
			return m.updateQuiz(msg)
		}
		return m.updateFree(msg)
	}

	if m.mode == ModeQuiz {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) switchMode() {
	if m.mode == ModeQuiz {
		m.mode = ModeFree
		m.input.Blur()
		return
	}
	m.mode = ModeQuiz
	m.input.Focus()
}

// ============================================================
// Quiz Mode
// ============================================================

func (m Model) updateQuiz(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if m.revealed {
			m.nextCard()
			return m, nil
		}
		m.scoreAnswer()
		return m, nil
	case "n":
		if m.revealed {
			m.nextCard()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// scoreAnswer сверяет ответ игрока с карточкой. Ошибка показывает
// инструкцию перекладывания бусин от ответа к правильному значению.
func (m *Model) scoreAnswer() {
	guess, ok := new(big.Int).SetString(m.input.Value(), 10)
	if !ok || guess.Sign() < 0 {
		m.feedback = "Type the number shown on the abacus"
		return
	}

	m.total++
	m.revealed = true
	if guess.Cmp(m.target) == 0 {
		m.correct++
		m.streak++
		m.feedback = "Correct!"
		return
	}

	m.streak = 0
	diff := engine.DiffStates(engine.BigToState(guess, m.columns), m.state)
	m.feedback = fmt.Sprintf("Not quite, it was %s. From %s: %s",
		m.target.String(), guess.String(), diff.Summary)
}

// nextCard берет следующее значение последовательности либо случайное.
func (m *Model) nextCard() {
	if len(m.values) > 0 {
		m.target = m.values[m.index%len(m.values)]
		m.index++
	} else {
		m.target = new(big.Int).Rand(m.rng, maxValue(m.columns))
	}
	m.state = engine.BigToState(m.target, m.columns)
	m.revealed = false
	m.feedback = ""
	m.input.Reset()
}

// maxValue возвращает 10^columns — верхнюю границу случайных карточек.
func maxValue(columns int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(columns)), nil)
}

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("digits only")
		}
	}
	return nil
}

// ============================================================
// Free Mode
// ============================================================

func (m Model) updateFree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up":
		m.setValue(new(big.Int).Add(m.value, big.NewInt(1)))
		return m, nil
	case "down":
		m.setValue(new(big.Int).Sub(m.value, big.NewInt(1)))
		return m, nil
	case "backspace":
		m.setValue(new(big.Int).Div(m.value, big.NewInt(10)))
		return m, nil
	case "c":
		m.setValue(big.NewInt(0))
		return m, nil
	case "d":
		m.showDiff = !m.showDiff
		return m, nil
	}

	if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
		digit := int64(key[0] - '0')
		next := new(big.Int).Mul(m.value, big.NewInt(10))
		next.Add(next, big.NewInt(digit))
		m.setValue(next)
	}
	return m, nil
}

// setValue меняет текущее число, запоминая предыдущее для диффа.
// Значения вне диапазона колонок игнорируются.
func (m *Model) setValue(next *big.Int) {
	if check := engine.ValidateBig(next, m.columns); !check.IsValid {
		return
	}
	if next.Cmp(m.value) == 0 {
		return
	}
	m.prev = m.value
	m.value = next
}
