package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSize is used when a selection does not name a size
const DefaultSize = "Médio"

// Customer holds the contact data attached to every order line
type Customer struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
	TaxID   string `json:"taxId,omitempty"`
}

// OrderLine is one priced, customer-attributed cart entry
type OrderLine struct {
	ID                 int64           `json:"id"`
	ProductName        string          `json:"name"`
	Category           Category        `json:"category"`
	Size               string          `json:"size"`
	Quantity           int             `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unitPrice"`
	Surcharge          decimal.Decimal `json:"surcharge"`
	TotalPrice         decimal.Decimal `json:"totalPrice"`
	RemovedIngredients []string        `json:"removedIngredients"`
	Note               string          `json:"note,omitempty"`
	Customer           Customer        `json:"customer"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// Selection is a customer's product choice before it becomes an order line
type Selection struct {
	ProductID          string          `json:"productId" validate:"required"`
	Size               string          `json:"size"`
	Quantity           int             `json:"quantity" validate:"min=1"`
	RemovedIngredients []string        `json:"removedIngredients"`
	Note               string          `json:"note"`
	Surcharge          decimal.Decimal `json:"surcharge"`
	Customer           Customer        `json:"customer"`
}

// LineChanges is a sparse edit of an active order line. Only set fields are applied.
type LineChanges struct {
	Size               Optional[string]   `json:"size"`
	Quantity           Optional[int]      `json:"quantity"`
	RemovedIngredients Optional[[]string] `json:"removedIngredients"`
	Note               Optional[string]   `json:"note"`
	CustomerName       Optional[string]   `json:"customerName"`
	CustomerPhone      Optional[string]   `json:"customerPhone"`
	CustomerAddress    Optional[string]   `json:"customerAddress"`
	CustomerTaxID      Optional[string]   `json:"customerTaxId"`
}

// OrderPatch is the partial update handed to the persistence layer
type OrderPatch struct {
	LineChanges
	TotalPrice Optional[decimal.Decimal] `json:"totalPrice"`
}

// IsEmpty reports whether the patch carries no field at all
func (p OrderPatch) IsEmpty() bool {
	return !p.Size.IsSet() && !p.Quantity.IsSet() && !p.RemovedIngredients.IsSet() &&
		!p.Note.IsSet() && !p.CustomerName.IsSet() && !p.CustomerPhone.IsSet() &&
		!p.CustomerAddress.IsSet() && !p.CustomerTaxID.IsSet() && !p.TotalPrice.IsSet()
}

// ValidationError reports user input that blocks a cart transition
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
