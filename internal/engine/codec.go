package engine

import "math/big"

// ============================================================
// Place-Value Codec
// ============================================================

// Число колонок по умолчанию, когда вызывающий не задал свое.
const DefaultColumns = 5

// NumberToState раскладывает значение по разрядам абакуса.
// Разряды старше maxPlaces молча отбрасываются; проверка диапазона
// выполняется отдельно через Validate.
func NumberToState(value uint64, maxPlaces int) AbacusState {
	if maxPlaces < 1 {
		maxPlaces = 1
	}
	state := make(AbacusState, maxPlaces)
	for place := 0; place < maxPlaces; place++ {
		state[place] = beadStateForDigit(int(value % 10))
		value /= 10
	}
	return state
}

// BigToState — вариант NumberToState для произвольно больших значений.
// Знак отбрасывается.
func BigToState(value *big.Int, maxPlaces int) AbacusState {
	if maxPlaces < 1 {
		maxPlaces = 1
	}
	state := make(AbacusState, maxPlaces)
	if value == nil {
		return state
	}
	rest := new(big.Int).Abs(value)
	ten := big.NewInt(10)
	digit := new(big.Int)
	for place := 0; place < maxPlaces; place++ {
		rest.QuoRem(rest, ten, digit)
		state[place] = beadStateForDigit(int(digit.Int64()))
	}
	return state
}

// StateToNumber собирает значение обратно из состояния разрядов.
func StateToNumber(state AbacusState) uint64 {
	var value uint64
	mult := uint64(1)
	for _, bead := range state {
		value += uint64(bead.Digit()) * mult
		mult *= 10
	}
	return value
}

// StateToBig — вариант StateToNumber без ограничения на разрядность.
func StateToBig(state AbacusState) *big.Int {
	value := new(big.Int)
	ten := big.NewInt(10)
	for place := len(state) - 1; place >= 0; place-- {
		value.Mul(value, ten)
		value.Add(value, big.NewInt(int64(state[place].Digit())))
	}
	return value
}

// AutoColumns возвращает число колонок, необходимое для значения.
func AutoColumns(value uint64) int {
	columns := 1
	for value >= 10 {
		value /= 10
		columns++
	}
	return columns
}

// AutoColumnsBig — вариант AutoColumns для больших значений.
func AutoColumnsBig(value *big.Int) int {
	if value == nil || value.Sign() == 0 {
		return 1
	}
	return len(new(big.Int).Abs(value).String())
}

func beadStateForDigit(digit int) BeadState {
	if digit >= 5 {
		return BeadState{HeavenActive: true, EarthActive: digit - 5}
	}
	return BeadState{EarthActive: digit}
}
