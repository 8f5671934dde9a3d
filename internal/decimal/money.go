package decimal

import (
	"github.com/shopspring/decimal"
)

// Zero is decimal zero
var Zero = decimal.Zero

// FromInt creates decimal from int
func FromInt(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// FromFloat creates decimal from float
func FromFloat(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// FromString parses decimal from string
func FromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}

// MustFromString parses decimal from string, panics on error
func MustFromString(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FilingInt rounds a monetary amount to whole crowns using
// round-half-away-from-zero and returns its decimal string form.
// Tax filings carry no fractional currency units.
func FilingInt(d decimal.Decimal) string {
	return d.Round(0).String()
}

// Truncate drops the fractional part toward zero. The EC sales list
// aggregation rule truncates each invoice before summing; this must
// not be replaced by rounding.
func Truncate(d decimal.Decimal) decimal.Decimal {
	return d.Truncate(0)
}

// Amount renders a monetary amount with exactly two decimal places.
func Amount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// LineTax computes tax on a line total: total * (rate/100), where rate
// is a percentage such as 21.
func LineTax(total, rate decimal.Decimal) decimal.Decimal {
	if rate.IsZero() {
		return Zero
	}
	return total.Mul(rate).Div(decimal.NewFromInt(100))
}

// Sum sums a slice of decimals
func Sum(values []decimal.Decimal) decimal.Decimal {
	result := Zero
	for _, v := range values {
		result = result.Add(v)
	}
	return result
}

// IsPositive returns true if decimal is greater than zero
func IsPositive(d decimal.Decimal) bool {
	return d.GreaterThan(Zero)
}
