// Package calc implements the two-operand arithmetic behind the calculator tools.
package calc

import (
	"encoding/json"
	"math"
	"strconv"
)

// Number is a float64 that marshals without a fractional part when whole,
// so 10/5 renders as 2 rather than 2.0. Non-finite values marshal as
// strings since JSON has no representation for them.
type Number float64

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return json.Marshal(strconv.FormatFloat(f, 'g', -1, 64))
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return []byte(strconv.FormatInt(int64(f), 10)), nil
	}
	return json.Marshal(f)
}

// Result is the envelope returned by every calculator operation.
type Result struct {
	Success   bool    `json:"success"`
	Operation string  `json:"operation"`
	A         Number  `json:"a"`
	B         Number  `json:"b"`
	Result    *Number `json:"result"`
	Error     *string `json:"error"`
}

func ok(op string, a, b, result float64) Result {
	r := Number(result)
	return Result{Success: true, Operation: op, A: Number(a), B: Number(b), Result: &r}
}

func fail(op string, a, b float64, msg string) Result {
	return Result{Operation: op, A: Number(a), B: Number(b), Error: &msg}
}

// Add returns a + b.
func Add(a, b float64) Result {
	return ok("add", a, b, a+b)
}

// Subtract returns a - b.
func Subtract(a, b float64) Result {
	return ok("subtract", a, b, a-b)
}

// Multiply returns a * b.
func Multiply(a, b float64) Result {
	return ok("multiply", a, b, a*b)
}

// Divide returns a / b, rejecting division by zero.
func Divide(a, b float64) Result {
	if b == 0 {
		return fail("divide", a, b, "Division by zero is not allowed")
	}
	return ok("divide", a, b, a/b)
}

// Modulo returns the remainder of a / b with the sign of the divisor,
// rejecting modulo by zero.
func Modulo(a, b float64) Result {
	if b == 0 {
		return fail("modulo", a, b, "Modulo by zero is not allowed")
	}
	r := math.Mod(a, b)
	if r != 0 && (r < 0) != (b < 0) {
		r += b
	}
	return ok("modulo", a, b, r)
}

// Operations maps operation names to their implementations, in catalog order.
var Operations = []struct {
	Name string
	Fn   func(a, b float64) Result
}{
	{"add", Add},
	{"subtract", Subtract},
	{"multiply", Multiply},
	{"divide", Divide},
	{"modulo", Modulo},
}
