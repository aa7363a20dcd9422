package wire

import (
	"math"
	"strconv"
	"strings"
)

// formatNumber renders a numeric field for the wire. Integral values keep a
// trailing ".0" so rendered lines stay byte-stable across tooling that
// round-trips them through the learner's own output.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return s
	}
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
