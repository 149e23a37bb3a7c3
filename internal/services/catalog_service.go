package services

import (
	"github.com/franciscosanchezn/pizzaone-api/internal/catalog"
	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// CatalogService provides read access to the menu
type CatalogService interface {
	// GetAllProducts lists products, optionally narrowed by category and a name search
	GetAllProducts(category, search string) []models.Product
	// GetProductByID retrieves a product by its ID
	GetProductByID(id string) (models.Product, error)
}

// catalogService is the implementation of the CatalogService interface
type catalogService struct {
	catalog *catalog.Catalog
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(c *catalog.Catalog) CatalogService {
	if c == nil {
		c = catalog.Default()
	}
	return &catalogService{catalog: c}
}

func (s *catalogService) GetAllProducts(category, search string) []models.Product {
	var cat models.Category
	if category != "" {
		cat = models.ParseCategory(category)
	}
	return s.catalog.Filter(cat, search)
}

func (s *catalogService) GetProductByID(id string) (models.Product, error) {
	p, ok := s.catalog.Get(id)
	if !ok {
		return models.Product{}, ErrProductNotFound
	}
	return p, nil
}
