package domain

import (
	"math/big"
	"strconv"
)

// Notation identifies how a quantity was written in the source text
type Notation int

const (
	NotationInteger Notation = iota
	NotationDecimal
	NotationFraction
	NotationMixed
)

// String returns the lowercase notation name used in API responses
func (n Notation) String() string {
	switch n {
	case NotationInteger:
		return "integer"
	case NotationDecimal:
		return "decimal"
	case NotationFraction:
		return "fraction"
	case NotationMixed:
		return "mixed"
	default:
		return "unknown"
	}
}

// MarshalText lets Notation serialize as its name
func (n Notation) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

// Fraction is a non-negative rational written as Whole + Numerator/Denominator.
// In normalized form 0 <= Numerator < Denominator.
type Fraction struct {
	Whole       int64 `json:"whole"`
	Numerator   int64 `json:"numerator"`
	Denominator int64 `json:"denominator"`
}

// IsWhole reports whether the fraction has no fractional part
func (f Fraction) IsWhole() bool {
	return f.Numerator == 0
}

// Float64 returns the value of the fraction
func (f Fraction) Float64() float64 {
	if f.Denominator == 0 {
		return float64(f.Whole)
	}
	return float64(f.Whole) + float64(f.Numerator)/float64(f.Denominator)
}

// String renders the fraction as "w", "n/d" or "w n/d"
func (f Fraction) String() string {
	if f.Numerator == 0 {
		return strconv.FormatInt(f.Whole, 10)
	}
	frac := strconv.FormatInt(f.Numerator, 10) + "/" + strconv.FormatInt(f.Denominator, 10)
	if f.Whole == 0 {
		return frac
	}
	return strconv.FormatInt(f.Whole, 10) + " " + frac
}

// QuantityMatch is the first quantity found in a piece of text.
// Start and End are byte offsets into the text.
type QuantityMatch struct {
	Text     string
	Start    int
	End      int
	Notation Notation
	Value    *big.Rat
}

// ScaleRequest represents a request to rescale the quantity in a yield string
type ScaleRequest struct {
	Text   string  `json:"text" binding:"required"`
	Scale  float64 `json:"scale" binding:"required"`
	Format string  `json:"format,omitempty"` // "markup" or "plain"
}

// ScaleResult is the outcome of rescaling a yield string
type ScaleResult struct {
	Original string  `json:"original"`
	Scaled   string  `json:"scaled"`
	Scale    float64 `json:"scale"`
	Format   string  `json:"format"`
	Notation string  `json:"notation,omitempty"`
	Changed  bool    `json:"changed"`
	Source   string  `json:"source"` // "Computed" or "Cache"
}

// Output formats for rescaled quantities
const (
	FormatMarkup = "markup"
	FormatPlain  = "plain"
)
