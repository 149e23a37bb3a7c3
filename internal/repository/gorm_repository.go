package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
	"github.com/franciscosanchezn/pizzaone-api/internal/normalizer"
)

// GormOrderRepository stores lines in the pedidos table
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time

	mu       sync.Mutex
	migrate  func(*gorm.DB) error
	migrated bool
}

// NewGormOrderRepository creates a repository over an open database
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db, now: time.Now}
}

// WithSchema makes every call run migrate first until it succeeds once.
// A database that was down at startup gets its table on the first call that reaches it.
func (r *GormOrderRepository) WithSchema(migrate func(*gorm.DB) error) *GormOrderRepository {
	r.migrate = migrate
	return r
}

// EnsureSchema runs the schema step if one is set and has not succeeded yet
func (r *GormOrderRepository) EnsureSchema(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.migrate == nil || r.migrated {
		return nil
	}
	if err := r.migrate(r.db.WithContext(ctx)); err != nil {
		return classify(err)
	}
	r.migrated = true
	return nil
}

func (r *GormOrderRepository) Create(ctx context.Context, line models.OrderLine) (models.OrderLine, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return models.OrderLine{}, err
	}
	rec := normalizer.ToRecord(line)
	rec.ID = 0
	if rec.HoraPedido.IsZero() {
		rec.HoraPedido = r.now()
	}
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return models.OrderLine{}, classify(err)
	}
	line.ID = rec.ID
	line.CreatedAt = rec.HoraPedido
	return line, nil
}

func (r *GormOrderRepository) List(ctx context.Context) ([]models.OrderLine, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}
	var recs []models.OrderRecord
	if err := r.db.WithContext(ctx).Order("hora_pedido DESC, id_pedido DESC").Find(&recs).Error; err != nil {
		return nil, classify(err)
	}
	lines := make([]models.OrderLine, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, normalizer.FromRecord(rec))
	}
	return lines, nil
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id int64) (models.OrderLine, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return models.OrderLine{}, err
	}
	var rec models.OrderRecord
	if err := r.db.WithContext(ctx).Where("id_pedido = ?", id).First(&rec).Error; err != nil {
		return models.OrderLine{}, classify(err)
	}
	return normalizer.FromRecord(rec), nil
}

func (r *GormOrderRepository) Update(ctx context.Context, id int64, patch models.OrderPatch) error {
	cols := normalizer.Columns(patch)
	if len(cols) == 0 {
		return ErrNothingToUpdate
	}
	return r.updateColumns(ctx, id, cols)
}

func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	if err := r.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("id_pedido = ?", id).Delete(&models.OrderRecord{}).Error; err != nil {
		return classify(err)
	}
	return nil
}

func (r *GormOrderRepository) ClearAll(ctx context.Context) error {
	if err := r.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Where("1 = 1").Delete(&models.OrderRecord{}).Error; err != nil {
		return classify(err)
	}
	return nil
}

// MarkInvoiceIssued stores the tax-document link and flips the status
func (r *GormOrderRepository) MarkInvoiceIssued(ctx context.Context, id int64, url string) error {
	return r.updateColumns(ctx, id, map[string]any{
		"nfe_url":    url,
		"nfe_status": models.InvoiceIssued,
	})
}

func (r *GormOrderRepository) updateColumns(ctx context.Context, id int64, cols map[string]any) error {
	if err := r.EnsureSchema(ctx); err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Model(&models.OrderRecord{}).Where("id_pedido = ?", id).Updates(cols)
	if res.Error != nil {
		return classify(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// classify maps driver errors into the repository taxonomy.
// It expects a database opened with TranslateError so duplicate, foreign key and
// check violations arrive as gorm sentinels.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrCheckConstraintViolated),
		integrityViolation(err):
		return fmt.Errorf("%w: %v", ErrConstraint, err)
	default:
		return fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
}

// integrityViolation covers the codes the gorm translators leave untouched, such as NOT NULL
func integrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// SQLSTATE class 23: integrity constraint violation
		return strings.HasPrefix(pgErr.Code, "23")
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrConstraint
	}
	return false
}
