package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Category groups catalog products. The values are the storefront's own labels.
type Category string

const (
	CategoryPizza    Category = "pizza"
	CategoryDessert  Category = "sobremesa"
	CategoryBeverage Category = "bebida"
)

// ParseCategory maps a category label, including the English aliases, to a Category.
// Unknown labels are returned unchanged so pricing can degrade to the neutral multiplier.
func ParseCategory(label string) Category {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "pizza", "pizzas":
		return CategoryPizza
	case "sobremesa", "sobremesas", "dessert", "desserts":
		return CategoryDessert
	case "bebida", "bebidas", "beverage", "beverages":
		return CategoryBeverage
	default:
		return Category(strings.TrimSpace(label))
	}
}

// Product represents a sellable catalog item
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	BasePrice   decimal.Decimal `json:"basePrice"`
	Category    Category        `json:"category"`
	Image       string          `json:"image,omitempty"`
	Ingredients []string        `json:"ingredients"`
}

// HasIngredient reports whether name is one of the product's ingredients
func (p Product) HasIngredient(name string) bool {
	for _, ing := range p.Ingredients {
		if ing == name {
			return true
		}
	}
	return false
}
