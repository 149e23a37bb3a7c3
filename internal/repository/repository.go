// Package repository persists order lines.
//
// GormOrderRepository talks to the relational database, LocalOrderRepository keeps a local
// buntdb copy, and FallbackOrderRepository routes each call to the local store when the
// database cannot be reached.
package repository

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

var log = logrus.StandardLogger()

var (
	// ErrConnectivity means the store could not be reached or failed for a non-data reason
	ErrConnectivity = errors.New("order store unavailable")
	// ErrConstraint means the store rejected the row (missing required fields, duplicates)
	ErrConstraint = errors.New("order rejected by store constraints")
	// ErrNotFound means no row has the requested id
	ErrNotFound = errors.New("order not found")
	// ErrNothingToUpdate means a patch carried no fields
	ErrNothingToUpdate = errors.New("nothing to update")
)

// OrderRepository persists active order lines
type OrderRepository interface {
	// Create stores a line and returns it with its assigned id
	Create(ctx context.Context, line models.OrderLine) (models.OrderLine, error)
	// List returns every stored line, newest first
	List(ctx context.Context) ([]models.OrderLine, error)
	// GetByID returns a single line
	GetByID(ctx context.Context, id int64) (models.OrderLine, error)
	// Update applies the set fields of patch
	Update(ctx context.Context, id int64, patch models.OrderPatch) error
	// Delete removes a line. A missing id is not an error.
	Delete(ctx context.Context, id int64) error
	// ClearAll removes every line
	ClearAll(ctx context.Context) error
}

// InvoiceRecorder stores the outcome of a tax-document emission
type InvoiceRecorder interface {
	MarkInvoiceIssued(ctx context.Context, id int64, url string) error
}

// Store is a repository that can also record invoices
type Store interface {
	OrderRepository
	InvoiceRecorder
}
