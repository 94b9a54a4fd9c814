package usecase

import (
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"

	"github.com/govalues/decimal"
	"github.com/yieldscale/backend/internal/domain"
)

// quantityPattern matches the first quantity in a yield string.
// At any start position the alternatives are tried in order, so "10 1/2"
// is read as a mixed number rather than the integer 10.
var quantityPattern = regexp.MustCompile(
	`(?P<mixed>(?P<mwhole>\d+)[ \t]+(?P<mnum>\d+)/(?P<mden>\d+))` +
		`|(?P<fraction>(?P<fnum>\d+)/(?P<fden>\d+))` +
		`|(?P<decimal>\d+\.\d+)` +
		`|(?P<integer>\d+)`,
)

var (
	groupMixed    = quantityPattern.SubexpIndex("mixed")
	groupMWhole   = quantityPattern.SubexpIndex("mwhole")
	groupMNum     = quantityPattern.SubexpIndex("mnum")
	groupMDen     = quantityPattern.SubexpIndex("mden")
	groupFraction = quantityPattern.SubexpIndex("fraction")
	groupFNum     = quantityPattern.SubexpIndex("fnum")
	groupFDen     = quantityPattern.SubexpIndex("fden")
	groupDecimal  = quantityPattern.SubexpIndex("decimal")
	groupInteger  = quantityPattern.SubexpIndex("integer")
)

const markupTemplate = "<sup>%d</sup><span>&frasl;</span><sub>%d</sub>"

// RescaleYield multiplies the first quantity in text by scale and writes the
// result back into the same position.
//
// Whole results are written as integers. Anything else is approximated by
// LowestFraction and written either as "w n/d" (markup false) or as
// superscript/subscript markup (markup true). Text without a usable quantity,
// with a zero denominator, or whose result is too small to show is returned
// unchanged. Scaling by 1 without markup always returns text as is.
func RescaleYield(text string, scale float64, markup bool) string {
	if text == "" {
		return ""
	}
	if !IsValidScale(scale) {
		return text
	}
	if scale == 1 && !markup {
		return text
	}

	match, err := FindQuantity(text)
	if err != nil {
		return text
	}

	formatted := formatQuantity(match.Value, scale, markup)
	if formatted == "" {
		// only happens with very small or degenerate results
		return text
	}

	return text[:match.Start] + formatted + text[match.End:]
}

// IsValidScale reports whether scale is a positive finite number
func IsValidScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && !math.IsNaN(scale)
}

// FindQuantity locates the first quantity in text and parses it.
// It returns domain.ErrNoQuantity when nothing matches, and the match together
// with domain.ErrZeroDenominator when the quantity divides by zero.
func FindQuantity(text string) (*domain.QuantityMatch, error) {
	loc := quantityPattern.FindStringSubmatchIndex(text)
	if loc == nil {
		return nil, domain.ErrNoQuantity
	}

	group := func(i int) string {
		if loc[2*i] < 0 {
			return ""
		}
		return text[loc[2*i]:loc[2*i+1]]
	}

	match := &domain.QuantityMatch{
		Text:  text[loc[0]:loc[1]],
		Start: loc[0],
		End:   loc[1],
	}

	switch {
	case loc[2*groupMixed] >= 0:
		match.Notation = domain.NotationMixed
		frac, ok := parseFraction(group(groupMNum), group(groupMDen))
		if !ok {
			return match, domain.ErrZeroDenominator
		}
		whole := new(big.Rat).SetInt(parseDigits(group(groupMWhole)))
		match.Value = frac.Add(frac, whole)

	case loc[2*groupFraction] >= 0:
		match.Notation = domain.NotationFraction
		frac, ok := parseFraction(group(groupFNum), group(groupFDen))
		if !ok {
			return match, domain.ErrZeroDenominator
		}
		match.Value = frac

	case loc[2*groupDecimal] >= 0:
		match.Notation = domain.NotationDecimal
		value, err := parseDecimal(group(groupDecimal))
		if err != nil {
			return nil, err
		}
		match.Value = value

	case loc[2*groupInteger] >= 0:
		match.Notation = domain.NotationInteger
		match.Value = new(big.Rat).SetInt(parseDigits(group(groupInteger)))
	}

	return match, nil
}

// formatQuantity scales value and renders it, returning "" when the result
// cannot be told apart from zero.
func formatQuantity(value *big.Rat, scale float64, markup bool) string {
	scaled := new(big.Rat).Mul(value, scaleToRat(scale))
	if scaled.IsInt() {
		return scaled.Num().String()
	}

	f, _ := scaled.Float64()
	if f >= MaxExactWhole {
		// the fractional part is below float64 resolution here; keep the exact integer part
		return new(big.Int).Quo(scaled.Num(), scaled.Denom()).String()
	}

	frac := LowestFraction(f)
	if frac.IsWhole() {
		if frac.Whole == 0 {
			return ""
		}
		return strconv.FormatInt(frac.Whole, 10)
	}

	if !markup {
		return frac.String()
	}

	out := fmt.Sprintf(markupTemplate, frac.Numerator, frac.Denominator)
	if frac.Whole > 0 {
		out = strconv.FormatInt(frac.Whole, 10) + out
	}
	return out
}

// parseFraction builds num/den, reporting false for a zero denominator
func parseFraction(num, den string) (*big.Rat, bool) {
	d := parseDigits(den)
	if d.Sign() == 0 {
		return nil, false
	}
	return new(big.Rat).SetFrac(parseDigits(num), d), true
}

// parseDigits converts a run of ASCII digits; the pattern guarantees the input
func parseDigits(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return n
}

// parseDecimal converts a decimal literal to an exact rational. Literals with
// more digits than a decimal.Decimal holds fall back to big.Rat parsing.
func parseDecimal(s string) (*big.Rat, error) {
	d, err := decimal.Parse(s)
	if err != nil {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("parse decimal %q: %w", s, err)
		}
		return r, nil
	}

	num := new(big.Int).SetUint64(d.Coef())
	den := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(d.Scale())), nil)
	return new(big.Rat).SetFrac(num, den), nil
}

// scaleToRat converts the scale through its shortest decimal form so that
// 0.1 means exactly 1/10 rather than the nearest binary fraction.
func scaleToRat(scale float64) *big.Rat {
	if r, ok := new(big.Rat).SetString(strconv.FormatFloat(scale, 'g', -1, 64)); ok {
		return r
	}
	return new(big.Rat).SetFloat64(scale)
}
