// Package money holds the pure price arithmetic for cart lines: line totals,
// subtotals, savings, and the two-decimal formatting used for the cart's
// denormalized total_price field.
package money

import (
	"github.com/shopspring/decimal"

	"storefront-cart/internal/domain"
)

// LineTotal is price * quantity for a single line.
func LineTotal(item domain.CartItem) decimal.Decimal {
	return item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

// Subtotal sums price * quantity over all items.
func Subtotal(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// Savings sums (mrp - price) * quantity over all items. Lines where the
// server sent mrp < price contribute zero rather than negative savings.
func Savings(items []domain.CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		perUnit := item.MRP.Sub(item.Price)
		if perUnit.IsNegative() {
			continue
		}
		total = total.Add(perUnit.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// FormatTotal renders a decimal amount as the wire/display total string,
// always with two decimal places.
func FormatTotal(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ParseTotal converts a stored total string back into a decimal. Empty or
// malformed totals parse as zero; the reducer paths that call this are
// defined to never fail.
func ParseTotal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
