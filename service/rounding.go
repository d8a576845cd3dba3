package service

import (
	"math"

	"github.com/shopspring/decimal"
)

// round2 rounds a monetary amount to 2 decimal places. Applied once at the
// component boundary; intermediates stay unrounded so the waterfall does
// not compound rounding error.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// roundRate rounds a percentage to 2 decimal places
func roundRate(f float64) float64 {
	return math.Round(f*100) / 100
}

// percentage computes part/whole*100 rounded to 2 decimals, returning 0
// for a zero denominator
func percentage(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	ratio, _ := part.Div(whole).Float64()
	return roundRate(ratio * 100)
}

// countPercentage computes part/whole*100 over counts, guarding the
// denominator
func countPercentage(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}
	return roundRate(float64(part) / float64(whole) * 100)
}
