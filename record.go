package timing

import (
	"math"
	"strconv"
	"strings"
)

// Record is a navigation timing record: field name to host value. Values are
// normally millisecond timestamps but hosts may publish anything.
type Record map[string]any

// IsNumeric reports whether v parses as a finite float. Strings are accepted
// when their trimmed contents parse entirely.
func IsNumeric(v any) bool {
	f, ok := coerce(v)
	return ok && !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float converts a numeric value to float64. Non-numeric values yield NaN.
func Float(v any) float64 {
	if !IsNumeric(v) {
		return math.NaN()
	}
	f, _ := coerce(v)
	return f
}

// number reports v as float64 only when it is a Go number type.
func number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func coerce(v any) (float64, bool) {
	if f, ok := number(v); ok {
		return f, true
	}
	s, ok := v.(string)
	if !ok {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// field returns the value of name as an arithmetic operand. Missing or
// non-numeric values are NaN; NaN and infinite numbers pass through.
func (r Record) field(name string) float64 {
	f, ok := coerce(r[name])
	if !ok {
		return math.NaN()
	}
	return f
}
