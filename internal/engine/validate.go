package engine

import (
	"fmt"
	"math/big"
)

// ============================================================
// Range Validator
// ============================================================

// Validation — результат проверки диапазона. Нарушение возвращается
// как данные, а не как ошибка: вызывающий сам решает, что с ним делать.
type Validation struct {
	IsValid bool   `json:"isValid"`
	Error   string `json:"error,omitempty"`
}

// Validate проверяет, что значение представимо на maxPlaces колонках.
func Validate(value int64, maxPlaces int) Validation {
	if value < 0 {
		return Validation{Error: "negative values are not supported"}
	}
	return ValidateBig(big.NewInt(value), maxPlaces)
}

// ValidateBig — вариант Validate для произвольно больших значений.
func ValidateBig(value *big.Int, maxPlaces int) Validation {
	if maxPlaces < 1 {
		maxPlaces = 1
	}
	if value == nil {
		return Validation{IsValid: true}
	}
	if value.Sign() < 0 {
		return Validation{Error: "negative values are not supported"}
	}
	max := MaxValue(maxPlaces)
	if value.Cmp(max) > 0 {
		return Validation{Error: fmt.Sprintf("value exceeds maximum for %d columns (max: %s)", maxPlaces, max.String())}
	}
	return Validation{IsValid: true}
}

// MaxValue возвращает максимум для заданного числа колонок (10^n - 1).
func MaxValue(maxPlaces int) *big.Int {
	if maxPlaces < 1 {
		maxPlaces = 1
	}
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(maxPlaces)), nil)
	return max.Sub(max, big.NewInt(1))
}
