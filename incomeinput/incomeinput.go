// Package incomeinput turns the text typed into the income field into an amount.
package incomeinput

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrEmpty      = errors.New("income is empty")
	ErrNotNumeric = errors.New("income is not a number")
	ErrNegative   = errors.New("income must not be negative")
	ErrTooLong    = errors.New("income has too many digits")
)

// maxDigits bounds the integer part; anything wider is not an annual income.
// maxFraction bounds the digits after the point.
const (
	maxDigits   = 15
	maxFraction = 8
)

var (
	plainNumber = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)$`)

	// longest first so "Rs." is not cut down to "Rs"
	currencyPrefixes = []string{"₹", "inr", "rs.", "rs"}

	// grouping separators the widget may insert, both Indian and western style
	separators = strings.NewReplacer(",", "", "_", "", " ", "", "\u00a0", "", "\u202f", "")
)

// Normalize strips the currency prefix and grouping separators, leaving digits,
// an optional decimal point and an optional leading minus.
func Normalize(text string) (string, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return "", ErrEmpty
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}

	lower := strings.ToLower(s)
	for _, p := range currencyPrefixes {
		if strings.HasPrefix(lower, p) {
			s = strings.TrimSpace(s[len(p):])
			break
		}
	}

	if !neg && strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	s = separators.Replace(s)
	if s == "" {
		return "", ErrEmpty
	}
	if neg {
		s = "-" + s
	}
	if !plainNumber.MatchString(s) {
		return "", ErrNotNumeric
	}
	return s, nil
}

// Parse reads a gross annual income. Negative amounts are rejected rather than
// clamped so a typo never silently prices as zero income.
func Parse(text string) (decimal.Decimal, error) {
	s, err := Normalize(text)
	if err != nil {
		return decimal.Zero, err
	}

	// a long digit run is rejected before it is ever parsed
	if len(strings.TrimLeft(strings.TrimPrefix(s, "-"), "0")) > maxDigits+1+maxFraction {
		return decimal.Zero, ErrTooLong
	}

	v, err := decimal.NewFromString(strings.TrimSuffix(s, "."))
	if err != nil {
		return decimal.Zero, ErrNotNumeric
	}
	return Check(v)
}

// Check applies the income rules to an amount, whether it was typed as text or
// arrived as a JSON number. Only the exponent and coefficient length are looked
// at, so 1e200000 is turned away without being expanded.
func Check(v decimal.Decimal) (decimal.Decimal, error) {
	if v.IsNegative() {
		return decimal.Zero, ErrNegative
	}
	if v.IsZero() {
		return decimal.Zero, nil
	}
	exp := int64(v.Exponent())
	if int64(v.NumDigits())+exp > maxDigits {
		return decimal.Zero, ErrTooLong
	}
	if exp < -maxFraction {
		// trailing zeros such as 1000.0000000000 are fine
		coef := v.Coefficient().String()
		zeros := int64(len(coef) - len(strings.TrimRight(coef, "0")))
		if exp+zeros < -maxFraction {
			return decimal.Zero, ErrTooLong
		}
		v = v.Truncate(maxFraction)
	}
	return v, nil
}
