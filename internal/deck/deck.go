package deck

import (
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"soroban/internal/engine"
	"soroban/internal/render"
)

// ============================================================
// Deck Builder
// ============================================================

type Card struct {
	ID      string   `json:"id"`
	Index   int      `json:"index"`
	Value   *big.Int `json:"-"`
	Number  string   `json:"number"`
	Columns int      `json:"columns"`
	SVG     string   `json:"svg"`
}

type Deck struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Config    Config    `json:"config"`
	Cards     []Card    `json:"cards"`
	CreatedAt time.Time `json:"createdAt"`
}

// Build собирает колоду по конфигу: разбирает диапазон, перемешивает
// при необходимости и рендерит карточку на каждое значение.
func Build(cfg Config) (*Deck, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	values, err := ParseRange(cfg.Range, cfg.Step)
	if err != nil {
		return nil, err
	}

	if cfg.Shuffle {
		seed := time.Now().UnixNano()
		if cfg.Seed != nil {
			seed = *cfg.Seed
		}
		Shuffle(values, seed)
	}

	deck := &Deck{
		ID:        uuid.NewString(),
		Name:      cfg.Name,
		Config:    cfg,
		Cards:     make([]Card, 0, len(values)),
		CreatedAt: time.Now().UTC(),
	}

	deckColumns := deckWidth(cfg, values)
	for i, value := range values {
		columns := deckColumns
		if columns == 0 {
			columns = engine.AutoColumnsBig(value)
		}

		if check := engine.ValidateBig(value, columns); !check.IsValid {
			return nil, fmt.Errorf("card %d (%s): %s", i, value.String(), check.Error)
		}

		state := engine.BigToState(value, columns)
		svg, err := render.NewRenderer(cfg.renderOptions(columns)).Render(state)
		if err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", i, value.String(), err)
		}

		deck.Cards = append(deck.Cards, Card{
			ID:      uuid.NewString(),
			Index:   i,
			Value:   value,
			Number:  value.String(),
			Columns: columns,
			SVG:     svg,
		})
	}

	return deck, nil
}

// deckWidth возвращает общее число колонок колоды, 0 — у каждой
// карточки свое (auto без show_empty_columns).
func deckWidth(cfg Config, values []*big.Int) int {
	if !cfg.Columns.Auto {
		return cfg.Columns.Count
	}
	if !cfg.ShowEmptyColumns {
		return 0
	}
	widest := 1
	for _, value := range values {
		if columns := engine.AutoColumnsBig(value); columns > widest {
			widest = columns
		}
	}
	return widest
}

// Numbers возвращает значения карточек в порядке колоды.
func (d *Deck) Numbers() []string {
	numbers := make([]string, len(d.Cards))
	for i, card := range d.Cards {
		numbers[i] = card.Number
	}
	return numbers
}
