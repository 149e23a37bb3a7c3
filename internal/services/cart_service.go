package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzaone-api/internal/catalog"
	"github.com/franciscosanchezn/pizzaone-api/internal/metrics"
	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/pricing"
	"github.com/franciscosanchezn/pizzaone-api/internal/receipts"
	"github.com/franciscosanchezn/pizzaone-api/internal/repository"
	"github.com/franciscosanchezn/pizzaone-api/internal/storage"
)

var log = logrus.StandardLogger()

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrLineNotFound    = errors.New("item not found")
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	ErrProductNotFound = errors.New("product not found")
	// ErrNothingToUpdate is returned for edits without any field
	ErrNothingToUpdate = repository.ErrNothingToUpdate
)

// CheckoutPurgeError means the checkout files were written but the active orders could not be cleared
type CheckoutPurgeError struct {
	Artifacts []Artifact
	Err       error
}

func (e *CheckoutPurgeError) Error() string {
	return fmt.Sprintf("checkout files written but active orders were kept: %v", e.Err)
}

func (e *CheckoutPurgeError) Unwrap() error {
	return e.Err
}

// Artifact is a file produced at checkout
type Artifact struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// CheckoutResult describes a completed checkout
type CheckoutResult struct {
	Artifacts []Artifact         `json:"artifacts"`
	Lines     []models.OrderLine `json:"lines"`
	Total     decimal.Decimal    `json:"total"`
	At        time.Time          `json:"at"`
}

// Summary is the cart subtotal plus item counts per category
type Summary struct {
	Subtotal   decimal.Decimal         `json:"subtotal"`
	LineCount  int                     `json:"lineCount"`
	ItemCount  int                     `json:"itemCount"`
	ByCategory map[models.Category]int `json:"byCategory"`
}

// PricePreview is the price a selection would get if confirmed
type PricePreview struct {
	Product   models.Product  `json:"product"`
	Size      string          `json:"size"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// CustomerMemory remembers the last customer for the next session
type CustomerMemory interface {
	RememberCustomer(c models.Customer) error
}

// CartDeps wires the cart to its collaborators. Ledger, Preferences, Renderer and Metrics are optional.
type CartDeps struct {
	Catalog     *catalog.Catalog
	Orders      repository.OrderRepository
	Artifacts   storage.ArtifactStore
	Ledger      *receipts.Ledger
	Preferences CustomerMemory
	Renderer    receipts.PDFRenderer
	Metrics     *metrics.Metrics
	Now         func() time.Time
}

// CartService manages the active order lines of the storefront
type CartService interface {
	// Load replaces the in-memory lines with what the store holds
	Load(ctx context.Context) error
	// Lines returns the active lines, newest first
	Lines() []models.OrderLine
	// Summary totals the active lines
	Summary() Summary
	// Preview prices a selection without creating anything
	Preview(sel models.Selection) (PricePreview, error)
	// Confirm validates, prices and persists a selection
	Confirm(ctx context.Context, sel models.Selection) (models.OrderLine, error)
	// Edit applies the set fields of changes to an active line
	Edit(ctx context.Context, id int64, changes models.LineChanges) (models.OrderLine, error)
	// SetQuantity changes the quantity of an active line
	SetQuantity(ctx context.Context, id int64, quantity int) (models.OrderLine, error)
	// Remove deletes an active line
	Remove(ctx context.Context, id int64) error
	// Checkout emits the batch files and clears the active lines
	Checkout(ctx context.Context) (CheckoutResult, error)
}

type cartService struct {
	mu       sync.Mutex
	lines    []models.OrderLine
	validate *validator.Validate

	catalog   *catalog.Catalog
	orders    repository.OrderRepository
	artifacts storage.ArtifactStore
	ledger    *receipts.Ledger
	memory    CustomerMemory
	renderer  receipts.PDFRenderer
	metrics   *metrics.Metrics
	now       func() time.Time
}

// NewCartService creates an empty cart. Call Load to pick up stored lines.
func NewCartService(deps CartDeps) CartService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	cat := deps.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	return &cartService{
		lines:     []models.OrderLine{},
		validate:  newValidator(),
		catalog:   cat,
		orders:    deps.Orders,
		artifacts: deps.Artifacts,
		ledger:    deps.Ledger,
		memory:    deps.Preferences,
		renderer:  deps.Renderer,
		metrics:   deps.Metrics,
		now:       now,
	}
}

func (s *cartService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.orders.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load active orders: %w", err)
	}
	s.lines = lines
	log.WithField("lines", len(lines)).Info("Active orders loaded")
	return nil
}

func (s *cartService) Lines() []models.OrderLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.OrderLine, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *cartService) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum := Summary{
		Subtotal:   decimal.Zero,
		LineCount:  len(s.lines),
		ByCategory: map[models.Category]int{},
	}
	for _, line := range s.lines {
		sum.Subtotal = sum.Subtotal.Add(line.TotalPrice)
		sum.ItemCount += line.Quantity
		sum.ByCategory[line.Category] += line.Quantity
	}
	return sum
}

func (s *cartService) Preview(sel models.Selection) (PricePreview, error) {
	sel = trimSelection(sel)
	product, ok := s.catalog.Get(sel.ProductID)
	if !ok {
		return PricePreview{}, ErrProductNotFound
	}
	if sel.Quantity < 1 {
		return PricePreview{}, models.NewValidationError("quantity", "must be at least 1")
	}
	if sel.Surcharge.IsNegative() {
		return PricePreview{}, models.NewValidationError("surcharge", "must not be negative")
	}

	size := selectionSize(sel)
	return PricePreview{
		Product:   product,
		Size:      size,
		Quantity:  sel.Quantity,
		UnitPrice: pricing.Round2(pricing.UnitPrice(product.BasePrice, product.Category, size, sel.Surcharge)),
		Total:     pricing.Round2(pricing.Price(product.BasePrice, sel.Quantity, product.Category, size, sel.Surcharge)),
	}, nil
}

func (s *cartService) Confirm(ctx context.Context, sel models.Selection) (models.OrderLine, error) {
	sel = trimSelection(sel)
	product, err := s.checkSelection(sel)
	if err != nil {
		return models.OrderLine{}, err
	}

	size := selectionSize(sel)
	removed := sel.RemovedIngredients
	if removed == nil {
		removed = []string{}
	}
	line := models.OrderLine{
		ProductName:        product.Name,
		Category:           product.Category,
		Size:               size,
		Quantity:           sel.Quantity,
		UnitPrice:          product.BasePrice,
		Surcharge:          sel.Surcharge,
		TotalPrice:         pricing.Round2(pricing.Price(product.BasePrice, sel.Quantity, product.Category, size, sel.Surcharge)),
		RemovedIngredients: removed,
		Note:               sel.Note,
		Customer:           sel.Customer,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	line.CreatedAt = s.now()

	created, err := s.orders.Create(ctx, line)
	if err != nil {
		return models.OrderLine{}, fmt.Errorf("failed to save order: %w", err)
	}
	s.lines = append([]models.OrderLine{created}, s.lines...)

	fields := logrus.Fields{"id": created.ID, "item": created.ProductName, "total": created.TotalPrice.StringFixed(2)}
	if s.ledger != nil {
		if err := s.ledger.Append(created); err != nil {
			log.WithFields(fields).WithError(err).Warn("Failed to append order to ledger")
		}
	}
	if s.memory != nil {
		if err := s.memory.RememberCustomer(created.Customer); err != nil {
			log.WithFields(fields).WithError(err).Warn("Failed to remember customer")
		}
	}
	if s.metrics != nil {
		s.metrics.OrdersConfirmed.WithLabelValues(string(created.Category)).Inc()
	}
	log.WithFields(fields).Info("Order confirmed")
	return created, nil
}

// checkSelection runs every check before any gateway call
func (s *cartService) checkSelection(sel models.Selection) (models.Product, error) {
	fields := map[string]string{}
	if err := s.validate.Struct(sel); err != nil {
		fields = fieldErrors(err)
	}

	product, ok := s.catalog.Get(sel.ProductID)
	if sel.ProductID != "" && !ok {
		fields["productId"] = "unknown product"
	}
	if ok {
		if msg := checkRemoved(product, sel.RemovedIngredients); msg != "" {
			fields["removedIngredients"] = msg
		}
	}
	if sel.Surcharge.IsNegative() {
		fields["surcharge"] = "must not be negative"
	}

	if len(fields) > 0 {
		return models.Product{}, &models.ValidationError{Fields: fields}
	}
	return product, nil
}

func (s *cartService) Edit(ctx context.Context, id int64, changes models.LineChanges) (models.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.OrderLine{}, ErrLineNotFound
	}
	current := s.lines[idx]

	fields := map[string]string{}
	changes.CustomerName = requiredText(fields, "customerName", changes.CustomerName)
	changes.CustomerPhone = requiredText(fields, "customerPhone", changes.CustomerPhone)
	changes.CustomerAddress = requiredText(fields, "customerAddress", changes.CustomerAddress)
	if v, ok := changes.CustomerTaxID.Get(); ok {
		changes.CustomerTaxID = models.Some(strings.TrimSpace(v))
	}
	if v, ok := changes.Note.Get(); ok {
		changes.Note = models.Some(strings.TrimSpace(v))
	}
	if v, ok := changes.Size.Get(); ok {
		size := pricing.CanonicalSize(v)
		if size == "" {
			size = models.DefaultSize
		}
		changes.Size = models.Some(size)
	}
	if q, ok := changes.Quantity.Get(); ok && q < 1 {
		fields["quantity"] = "must be at least 1"
	}
	if removed, ok := changes.RemovedIngredients.Get(); ok {
		if removed == nil {
			changes.RemovedIngredients = models.Some([]string{})
		}
		if product, found := s.catalog.FindByName(current.ProductName); found {
			if msg := checkRemoved(product, removed); msg != "" {
				fields["removedIngredients"] = msg
			}
		}
	}
	if len(fields) > 0 {
		return models.OrderLine{}, &models.ValidationError{Fields: fields}
	}

	patch := models.OrderPatch{LineChanges: changes}
	if patch.IsEmpty() {
		return models.OrderLine{}, ErrNothingToUpdate
	}

	updated := applyChanges(current, changes)
	if changes.Size.IsSet() || changes.Quantity.IsSet() {
		updated.TotalPrice = lineTotal(updated)
		patch.TotalPrice = models.Some(updated.TotalPrice)
	}

	if err := s.orders.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.OrderLine{}, ErrLineNotFound
		}
		return models.OrderLine{}, fmt.Errorf("failed to update order %d: %w", id, err)
	}
	s.lines[idx] = updated

	log.WithFields(logrus.Fields{"id": id, "total": updated.TotalPrice.StringFixed(2)}).Info("Order updated")
	return updated, nil
}

func (s *cartService) SetQuantity(ctx context.Context, id int64, quantity int) (models.OrderLine, error) {
	if quantity < 1 {
		return models.OrderLine{}, ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.OrderLine{}, ErrLineNotFound
	}
	line := s.lines[idx]
	line.Quantity = quantity
	line.TotalPrice = lineTotal(line)
	s.lines[idx] = line

	patch := models.OrderPatch{TotalPrice: models.Some(line.TotalPrice)}
	patch.Quantity = models.Some(quantity)
	if err := s.orders.Update(ctx, id, patch); err != nil {
		log.WithFields(logrus.Fields{"id": id, "quantity": quantity}).WithError(err).
			Warn("Failed to persist quantity change; keeping the in-memory value")
	}
	return line, nil
}

func (s *cartService) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return ErrLineNotFound
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete order %d: %w", id, err)
	}
	s.lines = append(s.lines[:idx], s.lines[idx+1:]...)

	log.WithField("id", id).Info("Order removed")
	return nil
}

func (s *cartService) Checkout(ctx context.Context) (CheckoutResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.lines) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	batch := receipts.Batch{Lines: make([]models.OrderLine, len(s.lines)), At: s.now()}
	copy(batch.Lines, s.lines)

	artifacts, err := s.emit(ctx, batch)
	if err != nil {
		s.countCheckout("failed")
		return CheckoutResult{}, err
	}

	if err := s.orders.ClearAll(ctx); err != nil {
		s.countCheckout("purge_failed")
		log.WithError(err).WithField("artifacts", len(artifacts)).Error("Checkout files written but active orders could not be cleared")
		return CheckoutResult{}, &CheckoutPurgeError{Artifacts: artifacts, Err: err}
	}
	s.lines = []models.OrderLine{}
	s.countCheckout("ok")

	log.WithFields(logrus.Fields{
		"lines": len(batch.Lines),
		"total": batch.Total().StringFixed(2),
	}).Info("Checkout completed")

	return CheckoutResult{
		Artifacts: artifacts,
		Lines:     batch.Lines,
		Total:     pricing.Round2(batch.Total()),
		At:        batch.At,
	}, nil
}

// emit renders and stores the report and receipts. A PDF failure is logged and skipped.
func (s *cartService) emit(ctx context.Context, batch receipts.Batch) ([]Artifact, error) {
	report, err := receipts.CSVReport(batch)
	if err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	page, err := receipts.HTMLReceipt(batch, true)
	if err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}

	type file struct {
		name, contentType string
		data              []byte
	}
	files := []file{
		{batch.CSVName(), "text/csv; charset=utf-8", report},
		{batch.TextName(), "text/plain; charset=utf-8", receipts.TextReceipt(batch)},
		{batch.HTMLName(), "text/html; charset=utf-8", page},
	}

	if s.renderer != nil {
		printable, err := receipts.HTMLReceipt(batch, false)
		if err == nil {
			var pdf []byte
			if pdf, err = s.renderer.RenderPDF(ctx, printable); err == nil {
				files = append(files, file{batch.PDFName(), "application/pdf", pdf})
			}
		}
		if err != nil {
			log.WithError(err).Warn("Failed to render PDF receipt")
		}
	}

	artifacts := make([]Artifact, 0, len(files))
	for _, f := range files {
		location, err := s.artifacts.Put(ctx, f.name, f.contentType, f.data)
		if err != nil {
			return artifacts, fmt.Errorf("failed to store %s: %w", f.name, err)
		}
		artifacts = append(artifacts, Artifact{Name: f.name, Location: location})
	}
	return artifacts, nil
}

func (s *cartService) countCheckout(outcome string) {
	if s.metrics != nil {
		s.metrics.Checkouts.WithLabelValues(outcome).Inc()
	}
}

func (s *cartService) indexOf(id int64) int {
	for i, line := range s.lines {
		if line.ID == id {
			return i
		}
	}
	return -1
}

func selectionSize(sel models.Selection) string {
	if size := pricing.CanonicalSize(sel.Size); size != "" {
		return size
	}
	return models.DefaultSize
}

// lineTotal reprices a line from its stored base price and surcharge
func lineTotal(line models.OrderLine) decimal.Decimal {
	return pricing.Round2(pricing.Price(line.UnitPrice, line.Quantity, line.Category, line.Size, line.Surcharge))
}

func applyChanges(line models.OrderLine, changes models.LineChanges) models.OrderLine {
	if v, ok := changes.Size.Get(); ok {
		line.Size = v
	}
	if v, ok := changes.Quantity.Get(); ok {
		line.Quantity = v
	}
	if v, ok := changes.RemovedIngredients.Get(); ok {
		line.RemovedIngredients = append([]string{}, v...)
	}
	if v, ok := changes.Note.Get(); ok {
		line.Note = v
	}
	if v, ok := changes.CustomerName.Get(); ok {
		line.Customer.Name = v
	}
	if v, ok := changes.CustomerPhone.Get(); ok {
		line.Customer.Phone = v
	}
	if v, ok := changes.CustomerAddress.Get(); ok {
		line.Customer.Address = v
	}
	if v, ok := changes.CustomerTaxID.Get(); ok {
		line.Customer.TaxID = v
	}
	return line
}

