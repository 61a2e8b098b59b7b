// Package money converts between user-entered decimal amounts and minor units.
package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of minor-unit digits (cents).
const Scale = 2

var (
	ErrEmpty     = errors.New("amount is required")
	ErrMalformed = errors.New("amount is not a number")
	ErrPrecision = errors.New("amount has more than two decimal places")
)

var hundred = decimal.New(1, Scale)

// Parse reads a decimal string such as "12.50" or "$12.5" into minor units.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrEmpty
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrMalformed
	}
	minor := d.Mul(hundred)
	if !minor.Equal(minor.Truncate(0)) {
		return 0, ErrPrecision
	}
	return minor.IntPart(), nil
}

// Format renders minor units as a plain decimal with two places, e.g. 149999 -> "1499.99".
func Format(minor int64) string {
	return decimal.New(minor, -Scale).StringFixed(Scale)
}
