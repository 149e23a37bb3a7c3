package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/repository"
	"github.com/franciscosanchezn/pizzaone-api/internal/services"
)

// InvoiceIssuer starts a background tax-document emission
type InvoiceIssuer interface {
	IssueAsync(id int64)
}

// OrderController handles HTTP requests for the active orders
type OrderController struct {
	cart     services.CartService
	invoices InvoiceIssuer
}

// NewOrderController creates a new OrderController
func NewOrderController(cart services.CartService, invoices InvoiceIssuer) *OrderController {
	return &OrderController{cart: cart, invoices: invoices}
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// GetOrders godoc
// @Summary List active orders
// @Description Get the active order lines, newest first
// @Tags orders
// @Produce json
// @Success 200 {array} models.OrderLine
// @Router /api/v1/orders [get]
func (oc *OrderController) GetOrders(c *gin.Context) {
	c.JSON(http.StatusOK, oc.cart.Lines())
}

// GetSummary godoc
// @Summary Cart summary
// @Description Get the subtotal and the item count per category of the active orders
// @Tags orders
// @Produce json
// @Success 200 {object} services.Summary
// @Router /api/v1/orders/summary [get]
func (oc *OrderController) GetSummary(c *gin.Context) {
	c.JSON(http.StatusOK, oc.cart.Summary())
}

// PreviewPrice godoc
// @Summary Price preview
// @Description Price a selection without creating an order
// @Tags cart
// @Accept json
// @Produce json
// @Param selection body models.Selection true "Product selection"
// @Success 200 {object} services.PricePreview
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/cart/preview [post]
func (oc *OrderController) PreviewPrice(c *gin.Context) {
	var sel models.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		badRequest(c, err)
		return
	}

	preview, err := oc.cart.Preview(sel)
	if err != nil {
		respondError(c, err, models.ErrInternalServer, "Failed to price selection")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// ConfirmOrder godoc
// @Summary Confirm an order line
// @Description Validate, price and persist a product selection
// @Tags orders
// @Accept json
// @Produce json
// @Param selection body models.Selection true "Product selection with customer data"
// @Success 201 {object} models.OrderLine
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/orders [post]
func (oc *OrderController) ConfirmOrder(c *gin.Context) {
	var sel models.Selection
	if err := c.ShouldBindJSON(&sel); err != nil {
		badRequest(c, err)
		return
	}

	line, err := oc.cart.Confirm(c.Request.Context(), sel)
	if err != nil {
		respondError(c, err, models.ErrOrderSaveFailed, "Failed to save order")
		return
	}
	c.JSON(http.StatusCreated, line)
}

// EditOrder godoc
// @Summary Edit an order line
// @Description Change the fields present in the body; absent fields are kept
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param changes body models.LineChanges true "Fields to change"
// @Success 200 {object} models.OrderLine
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/orders/{id} [put]
func (oc *OrderController) EditOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var changes models.LineChanges
	if err := c.ShouldBindJSON(&changes); err != nil {
		badRequest(c, err)
		return
	}

	line, err := oc.cart.Edit(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err, models.ErrOrderSaveFailed, "Failed to save order")
		return
	}
	c.JSON(http.StatusOK, line)
}

// SetQuantity godoc
// @Summary Change quantity
// @Description Set the quantity of an order line. Values below 1 are rejected.
// @Tags orders
// @Accept json
// @Produce json
// @Param id path int true "Order ID"
// @Param quantity body object{quantity=int} true "New quantity"
// @Success 200 {object} models.OrderLine
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/quantity [patch]
func (oc *OrderController) SetQuantity(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	line, err := oc.cart.SetQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		respondError(c, err, models.ErrInternalServer, "Failed to change quantity")
		return
	}
	c.JSON(http.StatusOK, line)
}

// DeleteOrder godoc
// @Summary Remove an order line
// @Description Remove an order line. Requires confirm=true.
// @Tags orders
// @Param id path int true "Order ID"
// @Param confirm query bool true "Must be true"
// @Success 204
// @Failure 400 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Router /api/v1/orders/{id} [delete]
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := oc.cart.Remove(c.Request.Context(), id); err != nil {
		respondError(c, err, models.ErrInternalServer, "Failed to remove order")
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Checkout
// @Description Emit the report and receipts for the active orders and clear them
// @Tags orders
// @Produce json
// @Success 200 {object} services.CheckoutResult
// @Failure 400 {object} models.APIError
// @Failure 500 {object} models.APIError
// @Failure 502 {object} models.APIError
// @Router /api/v1/orders/checkout [post]
func (oc *OrderController) Checkout(c *gin.Context) {
	result, err := oc.cart.Checkout(c.Request.Context())
	if err != nil {
		respondError(c, err, models.ErrCheckoutFailed, "Checkout failed")
		return
	}
	c.JSON(http.StatusOK, result)
}

// IssueInvoice godoc
// @Summary Issue tax document
// @Description Start the simulated NF-e emission for an active order line
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 202 {object} map[string]interface{}
// @Failure 404 {object} models.APIError
// @Router /api/v1/orders/{id}/invoice [post]
func (oc *OrderController) IssueInvoice(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	found := false
	for _, line := range oc.cart.Lines() {
		if line.ID == id {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Order not found"))
		return
	}

	oc.invoices.IssueAsync(id)
	c.JSON(http.StatusAccepted, gin.H{"id": id, "nfeStatus": models.InvoicePending})
}

func orderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid order ID format"))
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid request body",
		map[string]interface{}{"error": err.Error()}))
}

// respondError maps service errors to API errors. Unknown errors become 500 with fallbackCode.
func respondError(c *gin.Context, err error, fallbackCode, fallbackMessage string) {
	_ = c.Error(err)

	var verr *models.ValidationError
	var purgeErr *services.CheckoutPurgeError
	switch {
	case errors.As(err, &verr):
		details := make(map[string]interface{}, len(verr.Fields))
		for field, msg := range verr.Fields {
			details[field] = msg
		}
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Validation failed", details))
	case errors.Is(err, services.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Validation failed",
			map[string]interface{}{"quantity": "must be at least 1"}))
	case errors.Is(err, services.ErrNothingToUpdate):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrNothingToUpdate, "Nothing to update"))
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrEmptyCart, "Cart is empty"))
	case errors.Is(err, services.ErrLineNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrOrderNotFound, "Item not found"))
	case errors.Is(err, services.ErrProductNotFound):
		c.JSON(http.StatusNotFound, models.NewAPIError(models.ErrProductNotFound, "Product not found"))
	case errors.As(err, &purgeErr):
		c.JSON(http.StatusBadGateway, models.NewAPIError(models.ErrCheckoutPurgeFailed,
			"Receipts were written but the active orders could not be cleared",
			map[string]interface{}{"artifacts": purgeErr.Artifacts}))
	case errors.Is(err, repository.ErrConstraint):
		c.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrOrderSaveFailed, "Failed to save order"))
	default:
		c.JSON(http.StatusInternalServerError, models.NewAPIError(fallbackCode, fallbackMessage))
	}
}
