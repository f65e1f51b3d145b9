package grocery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	assert.Equal(t, "chicken breast", Key("  Chicken Breast "))
	assert.NotEqual(t, Key("Tomato"), Key("tomatoes"))
	assert.Equal(t, "", Key("   "))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Onion", DisplayName("onion"))
	assert.Equal(t, "Chicken breast", DisplayName(" chicken breast"))
	assert.Equal(t, "ÉCLAIR", DisplayName("éCLAIR"))
	assert.Equal(t, "", DisplayName(""))
}

func TestNormalizeCategory(t *testing.T) {
	assert.Equal(t, "produce", NormalizeCategory(" Produce "))
	assert.Equal(t, "other", NormalizeCategory(""))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"2", 2},
		{"2.5", 2.5},
		{"1/2", 0.5},
		{"1 1/2", 1.5},
		{"", 0},
		{"a pinch", 0},
		{"1/0", 0},
		{"-3", 0},
		{"NaN", 0},
		{"1 2", 0},
		{"1 1/2 3", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAmount(tt.in))
		})
	}
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "3", formatAmount(3))
	assert.Equal(t, "0.33", formatAmount(1.0/3))
	assert.Equal(t, "2.5", formatAmount(2.5))
}
