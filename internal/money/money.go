// Package money validates and combines fixed-point monetary quantities.
// Crypto amounts and balances carry 8 fractional digits, USD totals carry 2,
// and both allow at most 18 integer digits. Values are shopspring decimals,
// never binary floats.
package money

import (
	"github.com/shopspring/decimal"

	domain "cryptowallet/internal/errors"
)

const (
	// CryptoScale is the fractional precision of crypto amounts and balances.
	CryptoScale = 8
	// USDScale is the fractional precision of USD totals.
	USDScale = 2
)

// maxMagnitude is 10^18; quantities must stay below it (18 integer digits).
var maxMagnitude = decimal.New(1, 18)

// Parse parses a decimal string into a quantity at the given scale.
// It fails with InvalidAmount on malformed input, negative values, values
// with finer precision than the scale, or values with more than 18 integer
// digits.
func Parse(s string, scale int32) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}
	if err := Validate(d, scale); err != nil {
		return decimal.Decimal{}, err
	}
	return d, nil
}

// Validate checks that d is a non-negative quantity within the configured
// precision for the given scale.
func Validate(d decimal.Decimal, scale int32) error {
	if d.IsNegative() {
		return domain.ErrInvalidAmount
	}
	// Compare by value so trailing zeros ("1.500000000") are accepted
	if !d.Equal(d.Truncate(scale)) {
		return domain.ErrInvalidAmount
	}
	if d.Abs().GreaterThanOrEqual(maxMagnitude) {
		return domain.ErrInvalidAmount
	}
	return nil
}

// ValidatePositive is Validate plus a strictly-positive check, used for
// transaction amounts.
func ValidatePositive(d decimal.Decimal, scale int32) error {
	if err := Validate(d, scale); err != nil {
		return err
	}
	if !d.IsPositive() {
		return domain.ErrInvalidAmount
	}
	return nil
}

// Total multiplies a crypto amount by a USD unit price and rounds the result
// half up at the USD scale. Rounding happens only here, at the storage
// boundary; the intermediate product is exact.
func Total(amount, unitPrice decimal.Decimal) decimal.Decimal {
	return amount.Mul(unitPrice).Round(USDScale)
}
