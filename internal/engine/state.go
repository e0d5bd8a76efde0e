package engine

import "fmt"

// ============================================================
// Bead State Model
// ============================================================

type BeadType string

const (
	BeadHeaven BeadType = "heaven"
	BeadEarth  BeadType = "earth"
)

type Direction string

const (
	Activate   Direction = "activate"
	Deactivate Direction = "deactivate"
)

// Земных бусин в колонке всегда четыре.
const EarthBeadsPerColumn = 4

// BeadState описывает один разряд: небесная бусина и число активных земных.
type BeadState struct {
	HeavenActive bool `json:"heavenActive"`
	EarthActive  int  `json:"earthActive"`
}

// Digit возвращает цифру разряда в диапазоне [0,9].
func (b BeadState) Digit() int {
	digit := b.EarthActive
	if b.HeavenActive {
		digit += 5
	}
	return digit
}

// AbacusState — состояние всех разрядов; индекс среза = разряд (0 = единицы).
type AbacusState []BeadState

// Digits возвращает цифры по разрядам (для подписи колонок).
func (s AbacusState) Digits() []int {
	digits := make([]int, len(s))
	for place, bead := range s {
		digits[place] = bead.Digit()
	}
	return digits
}

// PlaceValueBead идентифицирует конкретную бусину на абакусе.
// Position задает номер земной бусины (0 = ближняя к планке)
// и игнорируется для небесных.
type PlaceValueBead struct {
	PlaceValue int      `json:"placeValue"`
	Type       BeadType `json:"beadType"`
	Position   int      `json:"position"`
}

type BeadChange struct {
	PlaceValueBead
	Direction Direction `json:"direction"`
	Order     int       `json:"order"`
}

type DiffResult struct {
	Changes    []BeadChange     `json:"changes"`
	Highlights []PlaceValueBead `json:"highlights"`
	HasChanges bool             `json:"hasChanges"`
	Summary    string           `json:"summary"`
}

// ============================================================
// Equality
// ============================================================

// Check проверяет, что каждый разряд физически возможен.
// Нужна для состояний, пришедших извне (JSON, разобранный SVG).
func (s AbacusState) Check() error {
	for place, bead := range s {
		if bead.EarthActive < 0 || bead.EarthActive > EarthBeadsPerColumn {
			return fmt.Errorf("earth active count %d out of range at place %d", bead.EarthActive, place)
		}
	}
	return nil
}

// StatesEqual сравнивает состояния по полному набору разрядов.
// Состояния разной длины не равны, даже если старшие разряды нулевые:
// отсутствующий разряд не считается нулем.
func StatesEqual(a, b AbacusState) bool {
	if len(a) != len(b) {
		return false
	}
	for place := range a {
		if a[place] != b[place] {
			return false
		}
	}
	return true
}

// ============================================================
// State Manipulation
// ============================================================

// Toggle переключает бусину как при клике и возвращает новое состояние.
// Клик по земной бусине двигает вместе с ней все бусины между ней и планкой.
func Toggle(state AbacusState, bead PlaceValueBead) AbacusState {
	if bead.PlaceValue < 0 {
		return state
	}
	next := cloneState(state, bead.PlaceValue+1)

	switch bead.Type {
	case BeadHeaven:
		next[bead.PlaceValue].HeavenActive = !next[bead.PlaceValue].HeavenActive
	case BeadEarth:
		if bead.Position < 0 || bead.Position >= EarthBeadsPerColumn {
			return state
		}
		if bead.Position < next[bead.PlaceValue].EarthActive {
			next[bead.PlaceValue].EarthActive = bead.Position
		} else {
			next[bead.PlaceValue].EarthActive = bead.Position + 1
		}
	default:
		return state
	}
	return next
}

// Apply применяет одно изменение и возвращает новое состояние.
// Изменения ожидаются в порядке, выданном DiffStates.
func Apply(state AbacusState, change BeadChange) (AbacusState, error) {
	if change.PlaceValue < 0 {
		return state, fmt.Errorf("negative place value %d", change.PlaceValue)
	}
	next := cloneState(state, change.PlaceValue+1)
	bead := &next[change.PlaceValue]

	switch change.Type {
	case BeadHeaven:
		bead.HeavenActive = change.Direction == Activate
	case BeadEarth:
		if change.Direction == Activate {
			if bead.EarthActive != change.Position {
				return state, fmt.Errorf("earth bead out of order at place %d: position %d, active %d", change.PlaceValue, change.Position, bead.EarthActive)
			}
			bead.EarthActive = change.Position + 1
		} else {
			if bead.EarthActive != change.Position+1 {
				return state, fmt.Errorf("earth bead out of order at place %d: position %d, active %d", change.PlaceValue, change.Position, bead.EarthActive)
			}
			bead.EarthActive = change.Position
		}
	default:
		return state, fmt.Errorf("unknown bead type %q", change.Type)
	}
	return next, nil
}

// cloneState копирует состояние, при необходимости дорастив до minPlaces.
func cloneState(state AbacusState, minPlaces int) AbacusState {
	size := len(state)
	if minPlaces > size {
		size = minPlaces
	}
	next := make(AbacusState, size)
	copy(next, state)
	return next
}
