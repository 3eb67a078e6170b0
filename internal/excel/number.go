package excel

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// leadingFloat matches the longest numeric prefix of a cell, so "12kg" reads as 12.
var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// Normalize coerces a spreadsheet cell into an integer quantity.
// Numbers are rounded half up and clamped to the int range. Blanks and
// unparseable text yield 0. It never fails.
func Normalize(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case uint:
		return int(n)
	case float32:
		return round(float64(n))
	case float64:
		return round(n)
	case string:
		return NormalizeString(n)
	case []byte:
		return NormalizeString(string(n))
	case bool:
		return 0
	default:
		return 0
	}
}

// NormalizeString is Normalize specialised for string cells.
func NormalizeString(s string) int {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}
	m := leadingFloat.FindString(s)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return round(f)
}

func round(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	r := math.Floor(f + 0.5)
	switch {
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}
