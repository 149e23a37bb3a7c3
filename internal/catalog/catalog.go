// Package catalog holds the storefront's read-only menu.
package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// Catalog is an immutable product set
type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
}

// New builds a catalog from products. Later duplicates of an id are ignored.
func New(products []models.Product) *Catalog {
	c := &Catalog{byID: make(map[string]models.Product, len(products))}
	for _, p := range products {
		if _, exists := c.byID[p.ID]; exists {
			continue
		}
		if p.Ingredients == nil {
			p.Ingredients = []string{}
		}
		c.products = append(c.products, p)
		c.byID[p.ID] = p
	}
	return c
}

// Default returns the PizzaOne menu
func Default() *Catalog {
	return New(menu())
}

// All returns every product in menu order
func (c *Catalog) All() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Get looks up a product by id
func (c *Catalog) Get(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// FindByName looks up a product by its display name
func (c *Catalog) FindByName(name string) (models.Product, bool) {
	for _, p := range c.products {
		if p.Name == name {
			return p, true
		}
	}
	return models.Product{}, false
}

// Filter returns products of the given category whose name contains search (case-insensitive).
// An empty category or search matches everything.
func (c *Catalog) Filter(category models.Category, search string) []models.Product {
	search = strings.ToLower(strings.TrimSpace(search))
	out := []models.Product{}
	for _, p := range c.products {
		if category != "" && p.Category != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func product(id, name string, price int64, category models.Category, image string, ingredients ...string) models.Product {
	if ingredients == nil {
		ingredients = []string{}
	}
	return models.Product{
		ID:          id,
		Name:        name,
		BasePrice:   decimal.NewFromInt(price),
		Category:    category,
		Image:       image,
		Ingredients: ingredients,
	}
}

func menu() []models.Product {
	pz, ds, bv := models.CategoryPizza, models.CategoryDessert, models.CategoryBeverage
	return []models.Product{
		product("p1", "4 Queijos", 48, pz, "/img/4queijos.jpg", "Molho de Tomate", "Muçarela", "Parmesão", "Provolone", "Gorgonzola", "Orégano"),
		product("p2", "Atum", 42, pz, "/img/atum.jpg", "Molho de Tomate", "Muçarela", "Atum Sólido", "Cebola", "Orégano"),
		product("p3", "Banana com Doce de Leite", 44, pz, "/img/banana.jpg", "Muçarela", "Banana", "Doce de Leite", "Canela"),
		product("p4", "Brócolis com Catupiry", 42, pz, "/img/brocolis.jpg", "Molho de Tomate", "Muçarela", "Brócolis", "Catupiry", "Alho Frito"),
		product("p5", "Calabresa", 40, pz, "/img/calabresa.jpg", "Molho de Tomate", "Muçarela", "Calabresa Fatiada", "Cebola", "Azeitona"),
		product("p6", "Camarão com Catupiry", 55, pz, "/img/camarao.jpg", "Molho de Tomate", "Muçarela", "Camarão", "Catupiry", "Salsinha"),
		product("p7", "Chocolate", 38, pz, "/img/chocolate.jpg", "Muçarela", "Chocolate ao Leite", "Granulado"),
		product("p8", "Frango com Catupiry", 45, pz, "/img/frango.jpg", "Molho de Tomate", "Muçarela", "Frango Desfiado", "Catupiry", "Milho"),
		product("p9", "Milho com Bacon", 44, pz, "/img/milho.jpg", "Molho de Tomate", "Muçarela", "Milho Verde", "Bacon Crocante"),
		product("p10", "Moda da Casa", 48, pz, "/img/modadacasa.jpg", "Molho de Tomate", "Muçarela", "Presunto", "Ovo", "Ervilha", "Palmito", "Cebola"),
		product("p11", "Muçarela", 35, pz, "/img/mucarela.jpg", "Molho de Tomate", "Muçarela", "Rodelas de Tomate", "Orégano"),
		product("p12", "Napolitana", 40, pz, "/img/napolitana.jpg", "Molho de Tomate", "Muçarela", "Rodelas de Tomate", "Parmesão", "Alho"),
		product("p13", "Pepperoni", 48, pz, "/img/pepperoni.jpg", "Molho de Tomate", "Muçarela", "Pepperoni", "Orégano"),
		product("p14", "Portuguesa", 50, pz, "/img/portuguesa.jpg", "Molho de Tomate", "Muçarela", "Presunto", "Ovo", "Cebola", "Ervilha", "Azeitona"),

		product("s1", "Brownie", 12, ds, "/img/brownie.jpg"),
		product("s2", "Sorvete", 10, ds, "/img/sorvete.jpg"),
		product("s3", "Pudim", 8, ds, "/img/pudim.jpg"),
		product("s4", "Bolo de Chocolate", 9, ds, "/img/bolo.jpg"),
		product("s7", "Brigadeiro", 4, ds, "/img/brigadeiro.jpg"),

		product("b1", "Coca-Cola Lata", 6, bv, "/img/coca.jpg"),
		product("b5", "Suco Natural", 8, bv, "/img/suco.jpg", "Laranja", "Gelo"),
		product("b6", "Água Mineral", 4, bv, "/img/agua.jpg"),
	}
}
