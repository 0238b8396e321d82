package evaluator

import "math"

// evalIntegerInfix implements checked 64-bit arithmetic. Overflow and
// division by zero are runtime errors, never silent wraparound.
func evalIntegerInfix(op string, l, r int64) Object {
	switch op {
	case "+":
		if (r > 0 && l > math.MaxInt64-r) || (r < 0 && l < math.MinInt64-r) {
			return overflowError("+")
		}
		return &Integer{Value: l + r}
	case "-":
		if (r < 0 && l > math.MaxInt64+r) || (r > 0 && l < math.MinInt64+r) {
			return overflowError("-")
		}
		return &Integer{Value: l - r}
	case "*":
		if l == -1 && r == math.MinInt64 || r == -1 && l == math.MinInt64 {
			return overflowError("*")
		}
		prod := l * r
		if l != 0 && prod/l != r {
			return overflowError("*")
		}
		return &Integer{Value: prod}
	case "/":
		if r == 0 {
			return divisionByZeroError("/")
		}
		if l == math.MinInt64 && r == -1 {
			return overflowError("/")
		}
		return &Integer{Value: l / r}
	case "%":
		if r == 0 {
			return divisionByZeroError("%")
		}
		if l == math.MinInt64 && r == -1 {
			// The remainder itself is 0 but the implied quotient
			// overflows, so it fails like division does.
			return overflowError("%")
		}
		return &Integer{Value: l % r}
	case "<":
		return &Boolean{Value: l < r}
	case ">":
		return &Boolean{Value: l > r}
	case "<=":
		return &Boolean{Value: l <= r}
	case ">=":
		return &Boolean{Value: l >= r}
	}
	return typeMismatchError("operator %s not defined on INTEGER", op)
}
