package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tidwall/buntdb"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/normalizer"
)

const localKeyPrefix = "order:"

// LocalOrderRepository keeps lines in a buntdb file on the local machine.
// Ids come from the millisecond clock and are strictly increasing within the store.
type LocalOrderRepository struct {
	db  *buntdb.DB
	now func() time.Time

	mu     sync.Mutex
	lastID int64
}

// OpenLocalOrderRepository opens (or creates) the store at path. ":memory:" keeps it in memory.
func OpenLocalOrderRepository(path string) (*LocalOrderRepository, error) {
	db, err := buntdb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open local order store %s: %w", path, err)
	}
	r := &LocalOrderRepository{db: db, now: time.Now}

	err = db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(localKeyPrefix+"*", func(key, _ string) bool {
			if id, perr := strconv.ParseInt(strings.TrimPrefix(key, localKeyPrefix), 10, 64); perr == nil && id > r.lastID {
				r.lastID = id
			}
			return true
		})
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to scan local order store: %w", err)
	}
	return r, nil
}

// Close releases the underlying file
func (r *LocalOrderRepository) Close() error {
	return r.db.Close()
}

func localKey(id int64) string {
	return localKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *LocalOrderRepository) nextID() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.now().UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}
	r.lastID = id
	return id
}

func (r *LocalOrderRepository) Create(_ context.Context, line models.OrderLine) (models.OrderLine, error) {
	rec := normalizer.ToRecord(line)
	rec.ID = r.nextID()
	if rec.HoraPedido.IsZero() {
		rec.HoraPedido = r.now()
	}
	if rec.NfeStatus == "" {
		rec.NfeStatus = models.InvoicePending
	}
	if rec.FormaPagamento == "" {
		rec.FormaPagamento = "Dinheiro"
	}
	if err := r.put(rec); err != nil {
		return models.OrderLine{}, err
	}
	line.ID = rec.ID
	line.CreatedAt = rec.HoraPedido
	return line, nil
}

func (r *LocalOrderRepository) List(_ context.Context) ([]models.OrderLine, error) {
	var recs []models.OrderRecord
	err := r.db.View(func(tx *buntdb.Tx) error {
		var decodeErr error
		err := tx.AscendKeys(localKeyPrefix+"*", func(_, value string) bool {
			var rec models.OrderRecord
			if decodeErr = json.Unmarshal([]byte(value), &rec); decodeErr != nil {
				return false
			}
			recs = append(recs, rec)
			return true
		})
		if err != nil {
			return err
		}
		return decodeErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list local orders: %w", err)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if !recs[i].HoraPedido.Equal(recs[j].HoraPedido) {
			return recs[i].HoraPedido.After(recs[j].HoraPedido)
		}
		return recs[i].ID > recs[j].ID
	})

	lines := make([]models.OrderLine, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, normalizer.FromRecord(rec))
	}
	return lines, nil
}

func (r *LocalOrderRepository) GetByID(_ context.Context, id int64) (models.OrderLine, error) {
	rec, err := r.get(id)
	if err != nil {
		return models.OrderLine{}, err
	}
	return normalizer.FromRecord(rec), nil
}

func (r *LocalOrderRepository) Update(_ context.Context, id int64, patch models.OrderPatch) error {
	if patch.IsEmpty() {
		return ErrNothingToUpdate
	}
	return r.modify(id, func(rec *models.OrderRecord) {
		normalizer.ApplyPatch(rec, patch)
	})
}

func (r *LocalOrderRepository) Delete(_ context.Context, id int64) error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		_, err := tx.Delete(localKey(id))
		return err
	})
	if err != nil && !errors.Is(err, buntdb.ErrNotFound) {
		return fmt.Errorf("failed to delete local order %d: %w", id, err)
	}
	return nil
}

func (r *LocalOrderRepository) ClearAll(_ context.Context) error {
	if err := r.db.Update(func(tx *buntdb.Tx) error { return tx.DeleteAll() }); err != nil {
		return fmt.Errorf("failed to clear local orders: %w", err)
	}
	return nil
}

// MarkInvoiceIssued stores the tax-document link for a local line
func (r *LocalOrderRepository) MarkInvoiceIssued(_ context.Context, id int64, url string) error {
	return r.modify(id, func(rec *models.OrderRecord) {
		rec.NfeURL = url
		rec.NfeStatus = models.InvoiceIssued
	})
}

func (r *LocalOrderRepository) put(rec models.OrderRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode local order: %w", err)
	}
	err = r.db.Update(func(tx *buntdb.Tx) error {
		_, _, err := tx.Set(localKey(rec.ID), string(data), nil)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to save local order %d: %w", rec.ID, err)
	}
	return nil
}

func (r *LocalOrderRepository) get(id int64) (models.OrderRecord, error) {
	var rec models.OrderRecord
	err := r.db.View(func(tx *buntdb.Tx) error {
		value, err := tx.Get(localKey(id))
		if err != nil {
			return err
		}
		return json.Unmarshal([]byte(value), &rec)
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return models.OrderRecord{}, ErrNotFound
	}
	if err != nil {
		return models.OrderRecord{}, fmt.Errorf("failed to read local order %d: %w", id, err)
	}
	return rec, nil
}

func (r *LocalOrderRepository) modify(id int64, apply func(*models.OrderRecord)) error {
	err := r.db.Update(func(tx *buntdb.Tx) error {
		value, err := tx.Get(localKey(id))
		if err != nil {
			return err
		}
		var rec models.OrderRecord
		if err := json.Unmarshal([]byte(value), &rec); err != nil {
			return err
		}
		apply(&rec)
		data, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		_, _, err = tx.Set(localKey(id), string(data), nil)
		return err
	})
	if errors.Is(err, buntdb.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update local order %d: %w", id, err)
	}
	return nil
}
