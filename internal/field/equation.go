package field

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Expression formats the linear term, e.g. "1.5x_1 + -2.0x_2 + 0.25".
func (w Weights) Expression() string {
	return fmt.Sprintf("%sx_1 + %sx_2 + %s", formatFloat(w.W1), formatFloat(w.W2), formatFloat(w.Bias))
}

// Equation formats the full hypothesis, e.g. "h(x) = sigmoid(1.0x_1 + 0.0x_2 + 0.0)".
func (w Weights) Equation() string {
	return "h(x) = sigmoid(" + w.Expression() + ")"
}

// formatFloat prints the shortest round-tripping form of v. Magnitudes in
// [1e-4, 1e16) use positional notation and always carry a fractional part,
// so integral values read "2.0" rather than "2"; the rest use an exponent.
func formatFloat(v float64) string {
	abs := math.Abs(v)
	if math.IsNaN(v) || math.IsInf(v, 0) || (abs != 0 && (abs < 1e-4 || abs >= 1e16)) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
