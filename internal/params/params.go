// Package params normalizes the tolerated argument shapes shared by the MCP
// tool handlers and the REST routes.
package params

import (
	"fmt"
	"math"
	"strconv"
)

// Text accepts the tolerated shapes for a single text parameter: a bare
// string, or an object {key: "..."} / {"text": "..."} wrapping it one level
// deep.
func Text(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case map[string]any:
		if inner, ok := t[key].(string); ok {
			return inner, true
		}
		if inner, ok := t["text"].(string); ok {
			return inner, true
		}
	}
	return "", false
}

// Pair accepts the tolerated shapes for a two-operand call: {a: x, b: y} at
// the top level, the same pair nested under "params", or a two-element array
// under "params". Numeric strings are coerced.
func Pair(args map[string]any) (a, b float64, err error) {
	if nested, ok := args["params"].(map[string]any); ok {
		args = nested
	}
	if arr, ok := args["params"].([]any); ok {
		return PairFromArray(arr)
	}

	av, aok := args["a"]
	bv, bok := args["b"]
	if !aok || !bok {
		return 0, 0, fmt.Errorf("expected numeric parameters 'a' and 'b'")
	}
	if a, err = ToNumber(av); err != nil {
		return 0, 0, fmt.Errorf("parameter 'a': %w", err)
	}
	if b, err = ToNumber(bv); err != nil {
		return 0, 0, fmt.Errorf("parameter 'b': %w", err)
	}
	return a, b, nil
}

// PairFromArray reads two operands out of a JSON array.
func PairFromArray(arr []any) (float64, float64, error) {
	if len(arr) != 2 {
		return 0, 0, fmt.Errorf("expected exactly two operands, got %d", len(arr))
	}
	a, err := ToNumber(arr[0])
	if err != nil {
		return 0, 0, fmt.Errorf("first operand: %w", err)
	}
	b, err := ToNumber(arr[1])
	if err != nil {
		return 0, 0, fmt.Errorf("second operand: %w", err)
	}
	return a, b, nil
}

// ToNumber coerces a JSON value to float64. Numeric strings are accepted.
func ToNumber(v any) (float64, error) {
	switch t := v.(type) {
	case float64:
		return t, nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", t)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, fmt.Errorf("not a finite number: %q", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
