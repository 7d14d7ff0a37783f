package services

import (
	"strings"
	"unicode"

	"github.com/Nerfise/bossing/models"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParsePrice reads a catalog price string such as "Php100.00" or
// "₱1,250.50". Everything before the first digit is treated as the
// currency prefix and dropped, thousands separators are stripped.
func ParsePrice(price string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(price)

	start := -1
	for i, r := range trimmed {
		if unicode.IsDigit(r) {
			start = i
			break
		}
	}
	if start == -1 {
		return decimal.Zero, errors.Errorf("price %q has no numeric part", price)
	}

	numeric := strings.ReplaceAll(trimmed[start:], ",", "")
	d, err := decimal.NewFromString(numeric)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "parse price %q", price)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.Errorf("price %q is negative", price)
	}

	return d, nil
}

// CartTotal sums price x quantity over the cart at current catalog
// prices, rounded to 2 decimals.
func CartTotal(items []models.CartItem) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		price, err := ParsePrice(item.Product.Price)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2), nil
}

// FormatAmount renders a money value the way order totals are stored:
// plain 2-decimal string, no currency prefix.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// PointsEarned is floor(total / rate), never negative. A total below
// one rate unit earns nothing.
func PointsEarned(total decimal.Decimal, rate int64) int64 {
	if rate <= 0 || total.IsNegative() {
		return 0
	}
	return total.Div(decimal.NewFromInt(rate)).Floor().IntPart()
}
