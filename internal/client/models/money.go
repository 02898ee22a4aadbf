package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatVND renders an amount the way the storefront displays prices:
// rounded to whole dong, dot thousands separator, trailing currency sign.
//
//	FormatVND(decimal.NewFromInt(1234567)) == "1.234.567 ₫"
func FormatVND(amount decimal.Decimal) string {
	v := amount.Round(0)

	neg := v.IsNegative()
	digits := v.Abs().String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteString(" ₫")
	return b.String()
}

// FormatVNDString formats a raw amount as received from loosely typed
// sources; anything that does not parse is shown as zero.
func FormatVNDString(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return FormatVND(decimal.Zero)
	}
	return FormatVND(d)
}

// DiscountedPrice applies a percentage discount and rounds to whole dong.
// Discounts outside 0..100 are clamped.
func DiscountedPrice(price, discountPercent decimal.Decimal) decimal.Decimal {
	pct := decimal.Max(decimal.Zero, decimal.Min(hundred, discountPercent))
	return price.Mul(hundred.Sub(pct)).Div(hundred).Round(0)
}
