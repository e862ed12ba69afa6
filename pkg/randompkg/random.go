// Package randompkg provides functionality gor generating random applications common items.
package randompkg

import (
	"crypto/rand"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	alphabet = "abcdefghijklmnopqrstuvwxyz"
	digits   = "0123456789"
)

// Intn is a shortcut for generating a random integer between 0 and max using crypto/rand.
func Intn(max int) int64 {
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		panic(err)
	}

	return nBig.Int64()
}

// IntBetween generates a random integer between min and max inclusive.
func IntBetween(min, max int) int64 {
	return int64(min) + Intn(max-min+1)
}

// DecimalBetween generates a random decimal between min and max rounded to places.
func DecimalBetween(min, max float64, places int32) decimal.Decimal {
	const scale = 1 << 32

	frac := decimal.NewFromInt(Intn(scale)).Div(decimal.NewFromInt(scale))
	lo := decimal.NewFromFloat(min)
	span := decimal.NewFromFloat(max).Sub(lo)

	return lo.Add(span.Mul(frac)).Round(places)
}

func fromCharset(charset string, n int) string {
	var sb strings.Builder

	k := len(charset)

	for i := 0; i < n; i++ {
		c := charset[Intn(k)]

		_ = sb.WriteByte(c) // The returned err is always nil.
	}

	return sb.String()
}

// String generates a random string of length n.
func String(n int) string {
	return fromCharset(alphabet, n)
}

// Digits generates a random numeric string of length n.
func Digits(n int) string {
	return fromCharset(digits, n)
}

// Owner generates a random owner name.
func Owner() string {
	return String(6)
}

// MobileNumber generates a random Egyptian mobile number.
func MobileNumber() string {
	return "01" + Digits(9)
}

// MoneyAmountBetween generates a random amount of money between min and max rounded to 2 decimals.
func MoneyAmountBetween(min, max float64) string {
	return DecimalBetween(min, max, 2).StringFixed(2)
}
