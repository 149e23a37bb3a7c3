package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// FallbackObserver is notified every time a call is served by the local store
type FallbackObserver func(operation string)

// FallbackOrderRepository sends every call to the primary store and retries it on the local
// store when the primary is unreachable. Id-keyed calls also consult the local store when the
// primary does not know the id, since lines created while offline live only there.
type FallbackOrderRepository struct {
	primary  Store
	local    Store
	observer FallbackObserver
}

// NewFallbackOrderRepository composes primary and local. observer may be nil.
func NewFallbackOrderRepository(primary, local Store, observer FallbackObserver) *FallbackOrderRepository {
	if observer == nil {
		observer = func(string) {}
	}
	return &FallbackOrderRepository{primary: primary, local: local, observer: observer}
}

func (r *FallbackOrderRepository) fellBack(operation string, err error) {
	log.WithFields(logrus.Fields{
		"operation": operation,
		"error":     err.Error(),
	}).Warn("Primary order store failed, using local store")
	r.observer(operation)
}

func (r *FallbackOrderRepository) Create(ctx context.Context, line models.OrderLine) (models.OrderLine, error) {
	created, err := r.primary.Create(ctx, line)
	if !errors.Is(err, ErrConnectivity) {
		return created, err
	}
	r.fellBack("create", err)
	return r.local.Create(ctx, line)
}

// List returns the primary lines merged with lines only the local store holds
func (r *FallbackOrderRepository) List(ctx context.Context) ([]models.OrderLine, error) {
	lines, err := r.primary.List(ctx)
	if err != nil {
		if !errors.Is(err, ErrConnectivity) {
			return nil, err
		}
		r.fellBack("list", err)
		return r.local.List(ctx)
	}

	offline, err := r.local.List(ctx)
	if err != nil {
		log.WithError(err).Warn("Failed to read local order store, returning primary lines only")
		return lines, nil
	}
	if len(offline) == 0 {
		return lines, nil
	}
	merged := append(lines, offline...)
	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID > merged[j].ID
	})
	return merged, nil
}

func (r *FallbackOrderRepository) GetByID(ctx context.Context, id int64) (models.OrderLine, error) {
	line, err := r.primary.GetByID(ctx, id)
	if !needsLocal(err) {
		return line, err
	}
	if errors.Is(err, ErrConnectivity) {
		r.fellBack("get", err)
	}
	return r.local.GetByID(ctx, id)
}

func (r *FallbackOrderRepository) Update(ctx context.Context, id int64, patch models.OrderPatch) error {
	if patch.IsEmpty() {
		return ErrNothingToUpdate
	}
	err := r.primary.Update(ctx, id, patch)
	if !needsLocal(err) {
		return err
	}
	if errors.Is(err, ErrConnectivity) {
		r.fellBack("update", err)
	}
	return r.local.Update(ctx, id, patch)
}

// Delete removes the id from both stores
func (r *FallbackOrderRepository) Delete(ctx context.Context, id int64) error {
	err := r.primary.Delete(ctx, id)
	if err != nil && !errors.Is(err, ErrConnectivity) {
		return err
	}
	if err != nil {
		r.fellBack("delete", err)
	}
	return r.local.Delete(ctx, id)
}

// ClearAll purges the primary first. The local store is only cleared once the primary
// is empty, so lines kept offline survive a failed purge.
func (r *FallbackOrderRepository) ClearAll(ctx context.Context) error {
	if err := r.primary.ClearAll(ctx); err != nil {
		return err
	}
	if err := r.local.ClearAll(ctx); err != nil {
		return fmt.Errorf("failed to clear local order store: %w", err)
	}
	return nil
}

func (r *FallbackOrderRepository) MarkInvoiceIssued(ctx context.Context, id int64, url string) error {
	err := r.primary.MarkInvoiceIssued(ctx, id, url)
	if !needsLocal(err) {
		return err
	}
	if errors.Is(err, ErrConnectivity) {
		r.fellBack("invoice", err)
	}
	return r.local.MarkInvoiceIssued(ctx, id, url)
}

func needsLocal(err error) bool {
	return errors.Is(err, ErrConnectivity) || errors.Is(err, ErrNotFound)
}
