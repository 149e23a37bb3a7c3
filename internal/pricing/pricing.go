// Package pricing computes line totals from a base price, size and quantity.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// Size labels accepted by the storefront
const (
	SizeSmall    = "Pequena"
	SizeMedium   = "Médio"
	SizeLarge    = "Grande"
	SizeFamily   = "Família"
	SizeStandard = "Padrão"
)

var sizeAliases = map[string]string{
	"Small":    SizeSmall,
	"Medium":   SizeMedium,
	"Large":    SizeLarge,
	"Family":   SizeFamily,
	"Standard": SizeStandard,
}

var (
	pizzaMultipliers = map[string]decimal.Decimal{
		SizeSmall:  decimal.RequireFromString("0.8"),
		SizeLarge:  decimal.RequireFromString("1.2"),
		SizeFamily: decimal.RequireFromString("1.4"),
	}
	beverageMultipliers = map[string]decimal.Decimal{
		SizeLarge: decimal.RequireFromString("1.5"),
	}
	one = decimal.NewFromInt(1)
)

// CanonicalSize trims the label and maps English aliases to the storefront label
func CanonicalSize(size string) string {
	size = strings.TrimSpace(size)
	if canonical, ok := sizeAliases[size]; ok {
		return canonical
	}
	return size
}

// Multiplier returns the size factor for a category. Unknown combinations yield 1.
func Multiplier(category models.Category, size string) decimal.Decimal {
	size = CanonicalSize(size)
	var table map[string]decimal.Decimal
	switch models.ParseCategory(string(category)) {
	case models.CategoryPizza:
		table = pizzaMultipliers
	case models.CategoryBeverage:
		table = beverageMultipliers
	default:
		return one
	}
	if m, ok := table[size]; ok {
		return m
	}
	return one
}

// UnitPrice returns base*multiplier + surcharge
func UnitPrice(base decimal.Decimal, category models.Category, size string, surcharge decimal.Decimal) decimal.Decimal {
	return base.Mul(Multiplier(category, size)).Add(surcharge)
}

// Price returns the total for quantity units. The quantity is not validated.
func Price(base decimal.Decimal, quantity int, category models.Category, size string, surcharge decimal.Decimal) decimal.Decimal {
	return UnitPrice(base, category, size, surcharge).Mul(decimal.NewFromInt(int64(quantity)))
}

// Round2 rounds half away from zero to two decimal places
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
