// Package deck собирает колоды флеш-карточек: разбор диапазонов,
// перемешивание, генерация SVG-карточек и HTML-галереи.
package deck

import (
	"fmt"
	"math/big"
	"math/rand"
	"strings"
)

// ============================================================
// Range Parsing
// ============================================================

// Защита от диапазонов вроде 0-10^9: столько карточек не бывает.
const maxSequenceLen = 100000

// ParseRange разбирает спецификацию значений: одиночные числа и
// диапазоны через запятую ("0-9", "42", "1,5-7,10"). step прореживает
// каждый диапазон; 0 трактуется как 1. Отрицательные значения и
// перевернутые диапазоны — ошибка.
func ParseRange(spec string, step int) ([]*big.Int, error) {
	if step < 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	if step == 0 {
		step = 1
	}

	var values []*big.Int
	for _, atom := range strings.Split(spec, ",") {
		atom = strings.TrimSpace(atom)
		if atom == "" {
			continue
		}

		parsed, err := parseAtom(atom, step)
		if err != nil {
			return nil, err
		}
		values = append(values, parsed...)
		if len(values) > maxSequenceLen {
			return nil, fmt.Errorf("range %q produces more than %d values", spec, maxSequenceLen)
		}
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("empty range %q", spec)
	}
	return values, nil
}

func parseAtom(atom string, step int) ([]*big.Int, error) {
	if !strings.Contains(atom, "-") {
		value, err := parseValue(atom)
		if err != nil {
			return nil, err
		}
		return []*big.Int{value}, nil
	}

	parts := strings.SplitN(atom, "-", 2)
	start, err := parseValue(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", atom, err)
	}
	end, err := parseValue(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("invalid range %q: %w", atom, err)
	}
	if start.Cmp(end) > 0 {
		return nil, fmt.Errorf("invalid range %q: start greater than end", atom)
	}

	bigStep := big.NewInt(int64(step))
	var values []*big.Int
	for v := new(big.Int).Set(start); v.Cmp(end) <= 0; v.Add(v, bigStep) {
		values = append(values, new(big.Int).Set(v))
		if len(values) > maxSequenceLen {
			return nil, fmt.Errorf("range %q produces more than %d values", atom, maxSequenceLen)
		}
	}
	return values, nil
}

func parseValue(raw string) (*big.Int, error) {
	if raw == "" {
		return nil, fmt.Errorf("empty value")
	}
	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("invalid number %q", raw)
	}
	if value.Sign() < 0 {
		return nil, fmt.Errorf("negative values are not supported: %q", raw)
	}
	return value, nil
}

// ============================================================
// Shuffle
// ============================================================

// Shuffle перемешивает значения на месте. Одинаковый seed дает
// одинаковый порядок — колоду можно воспроизвести.
func Shuffle(values []*big.Int, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}
