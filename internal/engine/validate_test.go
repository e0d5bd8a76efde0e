package engine

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		value     int64
		maxPlaces int
		valid     bool
		errText   string
	}{
		{"zero", 0, 5, true, ""},
		{"max for five columns", 99999, 5, true, ""},
		{"overflow five columns", 123456, 5, false, "value exceeds maximum for 5 columns (max: 99999)"},
		{"one past max", 100000, 5, false, "value exceeds maximum for 5 columns (max: 99999)"},
		{"negative", -1, 5, false, "negative values are not supported"},
		{"single column", 9, 1, true, ""},
		{"single column overflow", 10, 1, false, "value exceeds maximum for 1 columns (max: 9)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(tt.value, tt.maxPlaces)
			assert.Equal(t, tt.valid, result.IsValid)
			assert.Equal(t, tt.errText, result.Error)
		})
	}
}

func TestValidateOverflowMentionsMax(t *testing.T) {
	result := Validate(123456, 5)
	require.False(t, result.IsValid)
	assert.Contains(t, result.Error, "99999")
}

func TestValidateBig(t *testing.T) {
	huge, ok := new(big.Int).SetString("123456789012345678901234567890", 10)
	require.True(t, ok)

	assert.True(t, ValidateBig(huge, 30).IsValid)
	assert.False(t, ValidateBig(huge, 29).IsValid)

	negative := big.NewInt(-5)
	result := ValidateBig(negative, 5)
	assert.False(t, result.IsValid)
	assert.Equal(t, "negative values are not supported", result.Error)

	assert.True(t, ValidateBig(nil, 5).IsValid)
}

func TestMaxValue(t *testing.T) {
	assert.Equal(t, int64(9), MaxValue(1).Int64())
	assert.Equal(t, int64(99999), MaxValue(5).Int64())
	assert.Equal(t, int64(9), MaxValue(0).Int64())
}
