package excel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{"nil", nil, 0},
		{"empty", "", 0},
		{"blank", "   ", 0},
		{"thousands separator", "1,234", 1234},
		{"padded", "  42 ", 42},
		{"float rounds half up", 2.5, 3},
		{"negative half rounds toward zero", -2.5, -2},
		{"string float", "7.6", 8},
		{"numeric prefix", "12kg", 12},
		{"text", "abc", 0},
		{"int", 17, 17},
		{"exponent", "1e3", 1000},
		{"bool", true, 0},
		{"beyond int32 string", "3,000,000,000", 3000000000},
		{"beyond int32 float", 3e9, 3000000000},
		{"clamped high", 1e300, math.MaxInt},
		{"clamped low", -1e300, math.MinInt},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []any{"1,234.6", "abc", nil, 3.49, "-0.5", "9e2x"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %v", in)
	}
}
