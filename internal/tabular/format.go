package tabular

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat writes the shortest representation that round-trips, keeping a
// trailing ".0" on whole numbers so the column stays float-typed downstream.
// NaN is written as an empty cell.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") && !math.IsInf(v, 0) {
		s += ".0"
	}
	return s
}
