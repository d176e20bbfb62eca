package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	products := []model.Product{
		{Description: "linen shirt", SalePrice: 120, Barcode: "b1", Section: "shirts", Stock: 10, IsAvailable: true},
		{Description: "denim pants", SalePrice: 200, Barcode: "b2", Section: "pants", Stock: 5, IsAvailable: true},
		{Description: "silk shirt", SalePrice: 350, Barcode: "b3", Section: "shirts", Stock: 0, IsAvailable: false},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func TestProductRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	seedCatalog(t, db)
	page := Page{Offset: 0, Limit: 10}

	// Section filter.
	shirts, err := repo.List(ctx, ProductFilter{Section: "shirts"}, page)
	require.NoError(t, err)
	assert.Len(t, shirts, 2)

	// Price bound is inclusive.
	maxPrice := 200.0
	cheap, err := repo.List(ctx, ProductFilter{MaxPrice: &maxPrice}, page)
	require.NoError(t, err)
	assert.Len(t, cheap, 2)

	// Availability filter.
	available := true
	inStock, err := repo.List(ctx, ProductFilter{Available: &available}, page)
	require.NoError(t, err)
	assert.Len(t, inStock, 2)

	// Filters combine with AND.
	combined, err := repo.List(ctx, ProductFilter{
		Section:   "shirts",
		MaxPrice:  &maxPrice,
		Available: &available,
	}, page)
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "linen shirt", combined[0].Description)
}

func TestProductRepository_CreateDuplicateBarcode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	seedCatalog(t, db)

	err := repo.Create(ctx, &model.Product{
		Description: "another",
		SalePrice:   10,
		Barcode:     "b1",
		Section:     "misc",
	})
	assert.Equal(t, apperr.KindConflict, apperr.From(err).Kind)
}

func TestProductRepository_FindByBarcode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	seedCatalog(t, db)

	product, err := repo.FindByBarcode(context.Background(), "b2")
	require.NoError(t, err)
	assert.Equal(t, "denim pants", product.Description)

	_, err = repo.FindByBarcode(context.Background(), "missing")
	assert.Equal(t, apperr.KindNotFound, apperr.From(err).Kind)
}

func TestProductRepository_UpdateIsAPatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	seedCatalog(t, db)

	original, err := repo.FindByBarcode(ctx, "b1")
	require.NoError(t, err)

	price := 99.9
	updated, err := repo.Update(ctx, original.ID, ProductPatch{SalePrice: &price})
	require.NoError(t, err)

	assert.Equal(t, 99.9, updated.SalePrice)
	assert.Equal(t, original.Description, updated.Description)
	assert.Equal(t, original.Stock, updated.Stock)
	assert.Equal(t, original.IsAvailable, updated.IsAvailable)
}

func TestProductRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	seedCatalog(t, db)

	product, err := repo.FindByBarcode(ctx, "b3")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, product.ID))
	_, err = repo.FindByID(ctx, product.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.From(err).Kind)

	assert.Equal(t, apperr.KindNotFound, apperr.From(repo.Delete(ctx, product.ID)).Kind)
}
