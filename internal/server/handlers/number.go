package handlers

import (
	"fmt"
	"math/big"
	"strings"
)

// ============================================================
// JSON Number
// ============================================================

// Number принимает значение и как JSON-число, и как строку цифр —
// строка нужна для значений, не влезающих в int64 на клиенте.
type Number struct {
	value *big.Int
}

func (n *Number) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	raw = strings.TrimSpace(raw)

	value, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return fmt.Errorf("invalid number %q", raw)
	}
	n.value = value
	return nil
}

func (n Number) MarshalJSON() ([]byte, error) {
	if n.value == nil {
		return []byte("null"), nil
	}
	return []byte(`"` + n.value.String() + `"`), nil
}

// Big возвращает значение; nil-безопасно.
func (n *Number) Big() *big.Int {
	if n == nil || n.value == nil {
		return nil
	}
	return n.value
}

// IsSet — было ли значение в JSON.
func (n *Number) IsSet() bool {
	return n != nil && n.value != nil
}
