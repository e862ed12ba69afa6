// Package currencypkg provides common currency related functionality for apps.
package currencypkg

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// The service works with a single currency.
const (
	Code       = "EGP"
	MinorUnits = 2
)

var (
	// ErrNotANumber indicates that the amount is not a decimal number.
	ErrNotANumber = errors.New("amount is not a number")
	// ErrNotPositive indicates a zero or negative amount.
	ErrNotPositive = errors.New("amount must be positive")
	// ErrTooPrecise indicates an amount with more fractional digits than MinorUnits.
	ErrTooPrecise = errors.New("amount has too many fractional digits")
)

// ParseAmount parses a strictly positive amount of at most MinorUnits fractional digits.
func ParseAmount(s string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}

	if !amount.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}

	if !amount.Equal(amount.Truncate(MinorUnits)) {
		return decimal.Zero, ErrTooPrecise
	}

	return amount, nil
}

// Format renders the amount with exactly MinorUnits fractional digits.
func Format(d decimal.Decimal) string {
	return d.StringFixed(MinorUnits)
}

// ValidAmount validates whether the field holds a valid money amount.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := ParseAmount(s)
		return err == nil
	}

	return false
}
