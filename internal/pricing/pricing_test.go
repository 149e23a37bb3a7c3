package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPrice(t *testing.T) {
	tests := []struct {
		name      string
		base      string
		quantity  int
		category  models.Category
		size      string
		surcharge string
		expected  string
	}{
		{"pizza small", "50", 1, models.CategoryPizza, "Pequena", "0", "40.00"},
		{"pizza small alias", "50", 1, models.CategoryPizza, "Small", "0", "40.00"},
		{"pizza family", "50", 1, models.CategoryPizza, "Família", "0", "70.00"},
		{"pizza large quantity two", "40", 2, models.CategoryPizza, "Grande", "0", "96.00"},
		{"pizza medium", "40", 1, models.CategoryPizza, "Médio", "0", "40.00"},
		{"pizza unknown size", "50", 1, models.CategoryPizza, "Gigante", "0", "50.00"},
		{"pizza with surcharge", "40", 2, models.CategoryPizza, "Grande", "5", "106.00"},
		{"beverage large", "6", 3, models.CategoryBeverage, "Grande", "0", "27.00"},
		{"beverage alias", "6", 3, "beverage", "Large", "0", "27.00"},
		{"beverage small", "6", 1, models.CategoryBeverage, "Pequena", "0", "6.00"},
		{"dessert ignores size", "12", 1, models.CategoryDessert, "Família", "0", "12.00"},
		{"dessert alias", "12", 2, "dessert", "Grande", "0", "24.00"},
		{"unknown category", "10", 2, "combo", "Grande", "0", "20.00"},
		{"zero quantity", "10", 0, models.CategoryPizza, "Grande", "0", "0.00"},
		{"size label with spaces", "50", 1, models.CategoryPizza, "  Grande ", "0", "60.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Price(dec(tt.base), tt.quantity, tt.category, tt.size, dec(tt.surcharge))
			assert.Equal(t, tt.expected, got.StringFixed(2))
		})
	}
}

func TestMultiplier_SizeCaseIsExact(t *testing.T) {
	assert.True(t, Multiplier(models.CategoryPizza, "grande").Equal(decimal.NewFromInt(1)))
}

func TestPrice_FixedPoint(t *testing.T) {
	// 0.1 + 0.2 style drift must not appear in totals
	got := Price(dec("10.10"), 3, models.CategoryPizza, "Pequena", dec("0.1"))
	assert.True(t, got.Equal(dec("24.54")), got.String())
}

func TestCanonicalSize(t *testing.T) {
	assert.Equal(t, "Família", CanonicalSize("Family"))
	assert.Equal(t, "Padrão", CanonicalSize(" Standard"))
	assert.Equal(t, "XL", CanonicalSize("XL"))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.13", Round2(dec("10.125")).String())
	assert.Equal(t, "-10.13", Round2(dec("-10.125")).String())
}
