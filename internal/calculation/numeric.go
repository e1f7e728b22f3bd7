package calculation

import (
	"math"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NonNegative clamps negative amounts to zero
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// CoerceFloat converts a float amount to a decimal, mapping NaN, ±Inf and
// negative values to zero.
func CoerceFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// ParseAmount reads a user-typed amount. Thousand separators, a leading "Tk"
// and surrounding spaces are ignored; anything unparseable or negative is zero.
func ParseAmount(s string) decimal.Decimal {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(strings.TrimPrefix(cleaned, "Tk"), "৳")
	cleaned = strings.NewReplacer(",", "", "_", "", " ", "").Replace(cleaned)
	if cleaned == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return NonNegative(d)
}

// RoundTaka rounds to the nearest whole Taka, halves away from zero
func RoundTaka(d decimal.Decimal) decimal.Decimal {
	return d.Round(0)
}

// percentOf returns amount * percent / 100 without rounding
func percentOf(amount, percent decimal.Decimal) decimal.Decimal {
	return amount.Mul(percent).Div(hundred)
}

// SumBy totals a decimal-valued projection of items
func SumBy[T any](items []T, value func(T) decimal.Decimal) decimal.Decimal {
	return lo.Reduce(items, func(total decimal.Decimal, item T, _ int) decimal.Decimal {
		return total.Add(value(item))
	}, decimal.Zero)
}

// LakhString renders an amount in lakh (100,000) to one decimal place,
// dropping a trailing ".0": 375000 -> "3.8", 300000 -> "3".
func LakhString(amount decimal.Decimal) string {
	return amount.Div(decimal.NewFromInt(100000)).Round(1).String()
}
