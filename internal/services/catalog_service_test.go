package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogService_GetAllProducts(t *testing.T) {
	svc := NewCatalogService(nil)

	tests := []struct {
		name     string
		category string
		search   string
		expected int
	}{
		{"everything", "", "", 22},
		{"pizzas", "pizza", "", 14},
		{"desserts by alias", "dessert", "", 5},
		{"beverages", "bebida", "", 3},
		{"search across categories", "", "chocolate", 2},
		{"search within category", "pizza", "catupiry", 3},
		{"unknown category", "salada", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, svc.GetAllProducts(tt.category, tt.search), tt.expected)
		})
	}
}

func TestCatalogService_GetProductByID(t *testing.T) {
	svc := NewCatalogService(nil)

	p, err := svc.GetProductByID("p5")
	require.NoError(t, err)
	assert.Equal(t, "Calabresa", p.Name)

	_, err = svc.GetProductByID("p99")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
