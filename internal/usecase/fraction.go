package usecase

import (
	"math"

	"github.com/yieldscale/backend/internal/domain"
)

const (
	// MaxDenominator is the largest denominator LowestFraction will try.
	MaxDenominator = 20000

	// Tolerance is how far, in units of 1/d, a candidate n/d may sit from the
	// fractional part and still be accepted.
	Tolerance = 1e-5

	// MaxExactWhole is the magnitude from which every float64 is an integer.
	// LowestFraction returns such values as whole numbers without searching.
	MaxExactWhole = 1 << 53
)

// LowestFraction finds the fraction with the smallest denominator that matches x.
// Denominators 1..MaxDenominator are tried in order and the first n/d with
// |frac(x)*d - n| < Tolerance wins. If none qualifies, the closest candidate
// seen is returned, so the result is always a valid fraction.
func LowestFraction(x float64) domain.Fraction {
	if math.IsNaN(x) || math.IsInf(x, 0) || x == 0 {
		return domain.Fraction{Whole: 0, Numerator: 0, Denominator: 1}
	}
	if math.Abs(x) >= MaxExactWhole {
		return domain.Fraction{Whole: clampInt64(x), Numerator: 0, Denominator: 1}
	}

	whole := math.Floor(x)
	rem := x - whole

	bestNum, bestDen := 0.0, 1.0
	bestErr := math.Inf(1)

	for d := 1; d <= MaxDenominator; d++ {
		den := float64(d)
		num := math.Round(rem * den)

		if math.Abs(rem*den-num) < Tolerance {
			bestNum, bestDen = num, den
			break
		}

		if err := math.Abs(rem - num/den); err < bestErr {
			bestNum, bestDen, bestErr = num, den, err
		}
	}

	return normalizeFraction(int64(whole), int64(bestNum), int64(bestDen))
}

// normalizeFraction carries a numerator equal to the denominator into the
// whole part and collapses zero fractions to n/1.
func normalizeFraction(whole, num, den int64) domain.Fraction {
	if num >= den {
		whole += num / den
		num %= den
	}
	if num == 0 {
		den = 1
	}
	return domain.Fraction{Whole: whole, Numerator: num, Denominator: den}
}

// clampInt64 converts an integral float64 to int64, saturating at the int64 range
func clampInt64(x float64) int64 {
	switch {
	case x >= math.MaxInt64:
		return math.MaxInt64
	case x <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(x)
	}
}
