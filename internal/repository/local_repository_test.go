package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

func setupLocalRepository(t *testing.T) *LocalOrderRepository {
	repo, err := OpenLocalOrderRepository(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestLocalOrderRepository_IDsStrictlyIncrease(t *testing.T) {
	repo := setupLocalRepository(t)
	fixed := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	first, err := repo.Create(ctx, testLine("Atum", time.Time{}))
	require.NoError(t, err)
	second, err := repo.Create(ctx, testLine("Calabresa", time.Time{}))
	require.NoError(t, err)

	assert.Equal(t, fixed.UnixMilli(), first.ID)
	assert.Equal(t, first.ID+1, second.ID)
	assert.True(t, first.CreatedAt.Equal(fixed))
}

func TestLocalOrderRepository_ListNewestFirst(t *testing.T) {
	repo := setupLocalRepository(t)
	ctx := context.Background()
	base := time.Date(2025, 3, 1, 19, 0, 0, 0, time.UTC)

	for i, name := range []string{"Atum", "Calabresa", "Portuguesa"} {
		_, err := repo.Create(ctx, testLine(name, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	lines, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, "Portuguesa", lines[0].ProductName)
	assert.Equal(t, "Atum", lines[2].ProductName)
	assert.Equal(t, []string{"Cebola"}, lines[0].RemovedIngredients)
	assert.True(t, lines[0].TotalPrice.Equal(decimal.NewFromInt(96)))
}

func TestLocalOrderRepository_UpdateDeleteClear(t *testing.T) {
	repo := setupLocalRepository(t)
	ctx := context.Background()

	created, err := repo.Create(ctx, testLine("Calabresa", time.Now()))
	require.NoError(t, err)

	assert.ErrorIs(t, repo.Update(ctx, created.ID, models.OrderPatch{}), ErrNothingToUpdate)

	patch := models.OrderPatch{}
	patch.Quantity = models.Some(5)
	patch.CustomerTaxID = models.Some("111")
	require.NoError(t, repo.Update(ctx, created.ID, patch))
	assert.ErrorIs(t, repo.Update(ctx, created.ID+1, patch), ErrNotFound)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Quantity)
	assert.Equal(t, "111", got.Customer.TaxID)
	assert.Equal(t, "sem pressa", got.Note)

	require.NoError(t, repo.MarkInvoiceIssued(ctx, created.ID, "https://example.test/n.pdf"))

	require.NoError(t, repo.Delete(ctx, created.ID))
	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Create(ctx, testLine("Atum", time.Now()))
	require.NoError(t, err)
	require.NoError(t, repo.ClearAll(ctx))
	lines, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestLocalOrderRepository_ReopenKeepsIDsIncreasing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fallback.db")
	ctx := context.Background()
	future := time.Now().Add(time.Hour)

	repo, err := OpenLocalOrderRepository(path)
	require.NoError(t, err)
	repo.now = func() time.Time { return future }
	first, err := repo.Create(ctx, testLine("Atum", time.Time{}))
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	reopened, err := OpenLocalOrderRepository(path)
	require.NoError(t, err)
	defer reopened.Close()

	second, err := reopened.Create(ctx, testLine("Calabresa", time.Time{}))
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)

	lines, err := reopened.List(ctx)
	require.NoError(t, err)
	assert.Len(t, lines, 2)
}
