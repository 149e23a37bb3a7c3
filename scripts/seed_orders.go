package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/franciscosanchezn/pizzaone-api/internal/catalog"
	"github.com/franciscosanchezn/pizzaone-api/internal/database"
	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/pricing"
	"github.com/franciscosanchezn/pizzaone-api/internal/repository"
	"github.com/franciscosanchezn/pizzaone-api/internal/services"
)

var (
	sizes = []string{pricing.SizeSmall, pricing.SizeMedium, pricing.SizeLarge, pricing.SizeFamily}
	notes = []string{"", "", "bem assada", "cortar em 8", "sem pressa", "troco para 100"}
)

func main() {
	// Parse command line flags
	count := flag.Int("count", 10, "Number of active orders to create")
	path := flag.String("db", "pizzaone.sqlite", "SQLite database file")
	seed := flag.Uint64("seed", 0, "Random seed (0 = random)")
	flag.Parse()

	db, err := database.InitDatabase(database.DatabaseConfig{Driver: "sqlite", Path: *path, MaxRetries: 1})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	menu := catalog.Default()
	cart := services.NewCartService(services.CartDeps{
		Catalog: menu,
		Orders:  repository.NewGormOrderRepository(db),
	})

	faker := gofakeit.New(*seed)
	products := menu.All()
	ctx := context.Background()

	for i := 0; i < *count; i++ {
		product := products[faker.Number(0, len(products)-1)]
		sel := models.Selection{
			ProductID: product.ID,
			Quantity:  faker.Number(1, 3),
			Note:      faker.RandomString(notes),
			Customer: models.Customer{
				Name:    faker.Name(),
				Phone:   faker.Phone(),
				Address: faker.Address().Address,
			},
		}
		if product.Category == models.CategoryPizza {
			sel.Size = faker.RandomString(sizes)
			if len(product.Ingredients) > 0 && faker.Bool() {
				sel.RemovedIngredients = []string{faker.RandomString(product.Ingredients)}
			}
		}

		line, err := cart.Confirm(ctx, sel)
		if err != nil {
			log.Fatalf("Failed to create order %d: %v", i+1, err)
		}
		fmt.Printf("#%d %dx %s (%s) R$ %s - %s\n", line.ID, line.Quantity, line.ProductName, line.Size, line.TotalPrice.StringFixed(2), line.Customer.Name)
	}

	fmt.Printf("Created %d active orders in %s\n", *count, *path)
}
