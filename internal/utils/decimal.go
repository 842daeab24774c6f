package utils

import (
	"github.com/shopspring/decimal"
)

// SumDecimals adds the values as given; it never rounds intermediate results.
func SumDecimals(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FormatMoney renders an amount the way the order screens show it: "$12.50".
func FormatMoney(value decimal.Decimal) string {
	if value.IsNegative() {
		return "-$" + value.Neg().StringFixed(2)
	}
	return "$" + value.StringFixed(2)
}

func ParseMoney(value string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
