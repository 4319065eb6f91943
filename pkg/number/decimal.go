package number

import (
	"github.com/shopspring/decimal"
)

// MaxPrecision all monetary amounts are fixed point with 6 fractional
// digits; every stored amount is truncated to this precision so that
// value * 10^6 stays integral.
const MaxPrecision = 6

// Decimal parse decimal from string, zero on failure
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Truncate cut to the ledger precision
func Truncate(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(MaxPrecision)
}

// Ceil round up at the given precision
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}

// IsAmount whether d is a positive, precision-bounded ledger amount
func IsAmount(d decimal.Decimal) bool {
	return d.IsPositive() && d.Equal(d.Truncate(MaxPrecision))
}
