package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/pizzaone-api/internal/catalog"
	"github.com/franciscosanchezn/pizzaone-api/internal/config"
	"github.com/franciscosanchezn/pizzaone-api/internal/middleware"
	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/repository"
	"github.com/franciscosanchezn/pizzaone-api/internal/services"
	"github.com/franciscosanchezn/pizzaone-api/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// recordingIssuer remembers which orders had an invoice requested
type recordingIssuer struct {
	mu  sync.Mutex
	ids []int64
}

func (r *recordingIssuer) IssueAsync(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

// stuckStore cannot clear its lines
type stuckStore struct {
	*repository.LocalOrderRepository
}

func (s stuckStore) ClearAll(context.Context) error {
	return fmt.Errorf("clear: %w", repository.ErrConnectivity)
}

type testServer struct {
	router  *gin.Engine
	issuer  *recordingIssuer
	prefs   *config.PreferencesStore
	reports string
}

func newTestServer(t *testing.T, wrap func(*repository.LocalOrderRepository) repository.OrderRepository) testServer {
	t.Helper()

	local, err := repository.OpenLocalOrderRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	var orders repository.OrderRepository = local
	if wrap != nil {
		orders = wrap(local)
	}

	dir := t.TempDir()
	reports := filepath.Join(dir, "reports")
	artifacts, err := storage.NewLocalArtifactStore(reports)
	require.NoError(t, err)
	prefs, err := config.LoadPreferences(filepath.Join(dir, "preferences.yaml"))
	require.NoError(t, err)

	menu := catalog.Default()
	cart := services.NewCartService(services.CartDeps{
		Catalog:     menu,
		Orders:      orders,
		Artifacts:   artifacts,
		Preferences: prefs,
	})
	issuer := &recordingIssuer{}

	catalogController := NewCatalogController(services.NewCatalogService(menu))
	orderController := NewOrderController(cart, issuer)
	preferencesController := NewPreferencesController(prefs)

	router := gin.New()
	v1 := router.Group("/api/v1")
	v1.GET("/catalog", catalogController.GetAllProducts)
	v1.GET("/catalog/:id", catalogController.GetProductByID)
	v1.POST("/cart/preview", orderController.PreviewPrice)
	v1.GET("/orders", orderController.GetOrders)
	v1.GET("/orders/summary", orderController.GetSummary)
	v1.POST("/orders", orderController.ConfirmOrder)
	v1.POST("/orders/checkout", orderController.Checkout)
	v1.PUT("/orders/:id", orderController.EditOrder)
	v1.PATCH("/orders/:id/quantity", orderController.SetQuantity)
	v1.DELETE("/orders/:id", middleware.RequireConfirmation(), orderController.DeleteOrder)
	v1.POST("/orders/:id/invoice", orderController.IssueInvoice)
	v1.GET("/preferences", preferencesController.GetPreferences)
	v1.PUT("/preferences/theme", preferencesController.SetTheme)

	return testServer{router: router, issuer: issuer, prefs: prefs, reports: reports}
}

func (s testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s testServer) confirm(t *testing.T, productID, size string, quantity int) models.OrderLine {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/v1/orders", orderBody(productID, size, quantity))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var line models.OrderLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &line))
	return line
}

func orderBody(productID, size string, quantity int) map[string]interface{} {
	return map[string]interface{}{
		"productId": productID,
		"size":      size,
		"quantity":  quantity,
		"customer": map[string]interface{}{
			"name":    "Ana",
			"phone":   "11999990000",
			"address": "Rua A, 10",
		},
	}
}

func decodeAPIError(t *testing.T, w *httptest.ResponseRecorder) models.APIError {
	t.Helper()
	var apiErr models.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr), w.Body.String())
	return apiErr
}

func TestCatalogController(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/v1/catalog?category=bebida", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var products []models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &products))
	assert.Len(t, products, 3)

	w = s.do(t, http.MethodGet, "/api/v1/catalog/p14", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var product models.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &product))
	assert.Equal(t, "Portuguesa", product.Name)

	w = s.do(t, http.MethodGet, "/api/v1/catalog/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrProductNotFound, decodeAPIError(t, w).Code)
}

func TestOrderController_ConfirmAndList(t *testing.T) {
	s := newTestServer(t, nil)

	line := s.confirm(t, "p5", "Grande", 2)
	assert.NotZero(t, line.ID)
	assert.True(t, decimal.NewFromInt(96).Equal(line.TotalPrice))

	w := s.do(t, http.MethodGet, "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lines []models.OrderLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	require.Len(t, lines, 1)
	assert.Equal(t, line.ID, lines[0].ID)

	w = s.do(t, http.MethodGet, "/api/v1/orders/summary", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary services.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Equal(t, 2, summary.ItemCount)

	require.NotNil(t, s.prefs.Get().LastCustomer)
	assert.Equal(t, "Ana", s.prefs.Get().LastCustomer.Name)
}

func TestOrderController_ConfirmErrors(t *testing.T) {
	s := newTestServer(t, nil)

	body := orderBody("p5", "Grande", 1)
	body["customer"].(map[string]interface{})["phone"] = ""
	w := s.do(t, http.MethodPost, "/api/v1/orders", body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	apiErr := decodeAPIError(t, w)
	assert.Equal(t, models.ErrValidationFailed, apiErr.Code)
	assert.Equal(t, "is required", apiErr.Details["customer.phone"])

	w = s.do(t, http.MethodPost, "/api/v1/orders", "{not json")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrBadRequest, decodeAPIError(t, w).Code)

	w = s.do(t, http.MethodGet, "/api/v1/orders", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestOrderController_Preview(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/v1/cart/preview", map[string]interface{}{"productId": "b1", "size": "Grande", "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	var preview services.PricePreview
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &preview))
	assert.True(t, decimal.NewFromInt(27).Equal(preview.Total))

	w = s.do(t, http.MethodPost, "/api/v1/cart/preview", map[string]interface{}{"productId": "x", "quantity": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_Edit(t *testing.T) {
	s := newTestServer(t, nil)
	line := s.confirm(t, "p5", "", 1)
	path := fmt.Sprintf("/api/v1/orders/%d", line.ID)

	w := s.do(t, http.MethodPut, path, map[string]interface{}{"size": "Grande", "note": "bem assada"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.OrderLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Grande", updated.Size)
	assert.Equal(t, "bem assada", updated.Note)
	assert.True(t, decimal.NewFromInt(48).Equal(updated.TotalPrice))

	tests := []struct {
		name   string
		path   string
		body   interface{}
		status int
		code   string
	}{
		{"empty body", path, map[string]interface{}{}, http.StatusBadRequest, models.ErrNothingToUpdate},
		{"null fields", path, map[string]interface{}{"note": nil}, http.StatusBadRequest, models.ErrNothingToUpdate},
		{"unknown id", "/api/v1/orders/999", map[string]interface{}{"note": "x"}, http.StatusNotFound, models.ErrOrderNotFound},
		{"bad id", "/api/v1/orders/abc", map[string]interface{}{"note": "x"}, http.StatusBadRequest, models.ErrBadRequest},
		{"blank phone", path, map[string]interface{}{"customerPhone": " "}, http.StatusBadRequest, models.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPut, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeAPIError(t, w).Code)
		})
	}
}

func TestOrderController_SetQuantity(t *testing.T) {
	s := newTestServer(t, nil)
	line := s.confirm(t, "s1", "", 1)
	path := fmt.Sprintf("/api/v1/orders/%d/quantity", line.ID)

	w := s.do(t, http.MethodPatch, path, map[string]int{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrValidationFailed, decodeAPIError(t, w).Code)

	w = s.do(t, http.MethodPatch, path, map[string]int{"quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.OrderLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 3, updated.Quantity)
	assert.True(t, decimal.NewFromInt(36).Equal(updated.TotalPrice))
}

func TestOrderController_Delete(t *testing.T) {
	s := newTestServer(t, nil)
	line := s.confirm(t, "p5", "", 1)
	path := fmt.Sprintf("/api/v1/orders/%d", line.ID)

	w := s.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrConfirmationNeeded, decodeAPIError(t, w).Code)

	w = s.do(t, http.MethodDelete, path+"?confirm=true", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodDelete, path+"?confirm=true", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderController_Checkout(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodPost, "/api/v1/orders/checkout", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrEmptyCart, decodeAPIError(t, w).Code)

	s.confirm(t, "p5", "Grande", 2)
	s.confirm(t, "b1", "Grande", 3)

	w = s.do(t, http.MethodPost, "/api/v1/orders/checkout", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var result services.CheckoutResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, decimal.NewFromInt(123).Equal(result.Total))
	require.Len(t, result.Artifacts, 3)
	for _, a := range result.Artifacts {
		assert.FileExists(t, a.Location)
		assert.Equal(t, s.reports, filepath.Dir(a.Location))
	}

	w = s.do(t, http.MethodGet, "/api/v1/orders", nil)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestOrderController_CheckoutPurgeFailure(t *testing.T) {
	s := newTestServer(t, func(local *repository.LocalOrderRepository) repository.OrderRepository {
		return stuckStore{local}
	})
	s.confirm(t, "p5", "", 1)

	w := s.do(t, http.MethodPost, "/api/v1/orders/checkout", nil)
	require.Equal(t, http.StatusBadGateway, w.Code)
	apiErr := decodeAPIError(t, w)
	assert.Equal(t, models.ErrCheckoutPurgeFailed, apiErr.Code)
	assert.Len(t, apiErr.Details["artifacts"], 3)

	w = s.do(t, http.MethodGet, "/api/v1/orders", nil)
	var lines []models.OrderLine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	assert.Len(t, lines, 1)
}

func TestOrderController_IssueInvoice(t *testing.T) {
	s := newTestServer(t, nil)
	line := s.confirm(t, "p5", "", 1)

	w := s.do(t, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/invoice", line.ID), nil)
	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []int64{line.ID}, s.issuer.ids)

	w = s.do(t, http.MethodPost, "/api/v1/orders/1/invoice", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreferencesController(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(t, http.MethodGet, "/api/v1/preferences", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"theme":"light"}`, w.Body.String())

	w = s.do(t, http.MethodPut, "/api/v1/preferences/theme", map[string]string{"theme": "dark"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, config.ThemeDark, s.prefs.Get().Theme)

	w = s.do(t, http.MethodPut, "/api/v1/preferences/theme", map[string]string{"theme": "blue"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrValidationFailed, decodeAPIError(t, w).Code)

	w = s.do(t, http.MethodPut, "/api/v1/preferences/theme", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, models.ErrBadRequest, decodeAPIError(t, w).Code)
}

func TestRespondError_ConstraintAndUnknown(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"constraint", fmt.Errorf("save: %w", repository.ErrConstraint), http.StatusInternalServerError, models.ErrOrderSaveFailed},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, models.ErrCheckoutFailed},
		{"nothing to update", services.ErrNothingToUpdate, http.StatusBadRequest, models.ErrNothingToUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tt.err, models.ErrCheckoutFailed, "Checkout failed")
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.code, decodeAPIError(t, w).Code)
		})
	}
}
