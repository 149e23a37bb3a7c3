package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/services"
)

// CatalogController handles HTTP requests related to the menu
type CatalogController interface {
	// GetAllProducts retrieves the menu, optionally filtered
	GetAllProducts(c *gin.Context)
	// GetProductByID retrieves a product by its ID
	GetProductByID(c *gin.Context)
}

type catalogController struct {
	service services.CatalogService
}

// NewCatalogController creates a new instance of CatalogController
func NewCatalogController(service services.CatalogService) CatalogController {
	return &catalogController{service: service}
}

// GetAllProducts godoc
// @Summary List menu products
// @Description Get the menu with optional category and name filtering
// @Tags catalog
// @Accept json
// @Produce json
// @Param category query string false "Category (pizza, sobremesa/dessert, bebida/beverage)"
// @Param search query string false "Filter by product name (partial, case-insensitive)"
// @Success 200 {array} models.Product
// @Router /api/v1/catalog [get]
func (c *catalogController) GetAllProducts(ctx *gin.Context) {
	products := c.service.GetAllProducts(ctx.Query("category"), ctx.Query("search"))
	ctx.JSON(http.StatusOK, products)
}

// GetProductByID godoc
// @Summary Get product by ID
// @Description Get a single menu product by its ID
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} models.APIError
// @Router /api/v1/catalog/{id} [get]
func (c *catalogController) GetProductByID(ctx *gin.Context) {
	product, err := c.service.GetProductByID(ctx.Param("id"))
	if errors.Is(err, services.ErrProductNotFound) {
		ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
		return
	}
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to retrieve product"))
		return
	}
	ctx.JSON(http.StatusOK, product)
}
