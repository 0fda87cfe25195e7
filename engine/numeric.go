package engine

import (
	"math"
	"time"
)

// StockTolerance is the slack used for weight and cash near-equality checks.
// Exact float comparisons reject legitimate sales after enough rounding has
// accumulated, so every stock/cash comparison goes through this tolerance.
const StockTolerance = 0.005

const roundBias = 1e-9

// SafeRound rounds a money or weight value to 2 decimal places with a small
// bias correction, so that repeated additions of values like 0.1 do not
// drift below their decimal representation. NaN and Inf pass through;
// callers guard upstream.
func SafeRound(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	if x < 0 {
		return -math.Round((-x+roundBias)*100) / 100
	}
	return math.Round((x+roundBias)*100) / 100
}

// validNumber reports whether x is usable in currency math.
func validNumber(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// SameCalendarDay reports whether t falls on the same calendar day as ref,
// evaluated in ref's location. The shift ledger and all "today" reporting
// use this one predicate.
func SameCalendarDay(t, ref time.Time) bool {
	y1, m1, d1 := t.In(ref.Location()).Date()
	y2, m2, d2 := ref.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
