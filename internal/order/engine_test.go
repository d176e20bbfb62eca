package order

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Client{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	))

	return db
}

func seedProduct(t *testing.T, db *gorm.DB, description string, price float64, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		Description: description,
		SalePrice:   price,
		Barcode:     "bc-" + description,
		Section:     "test",
		Stock:       stock,
		IsAvailable: true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func productStock(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()

	var product model.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Stock
}

func TestEngine_PlaceOrder(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 10)

	placed, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 3},
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), placed.ClientID)
	assert.Equal(t, model.OrderStatusPending, placed.Status)
	require.Len(t, placed.Items, 1)
	assert.Equal(t, shirt.ID, placed.Items[0].ProductID)
	assert.Equal(t, 3, placed.Items[0].Quantity)
	assert.Equal(t, 49.9, placed.Items[0].Price)
	assert.Equal(t, 7, productStock(t, db, shirt.ID))
}

func TestEngine_PlaceOrder_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 10)

	placed, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 1},
	})
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Product{}).Where("id = ?", shirt.ID).
		Update("sale_price", 99.9).Error)

	var item model.OrderItem
	require.NoError(t, db.First(&item, placed.Items[0].ID).Error)
	assert.Equal(t, 49.9, item.Price)
}

func TestEngine_PlaceOrder_InsufficientStock(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 3)

	_, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 5},
	})
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindInsufficientStock, appErr.Kind)
	assert.Equal(t, shirt.ID, appErr.ProductID)
	assert.Equal(t, 3, appErr.Available)
	assert.Equal(t, 3, productStock(t, db, shirt.ID))
}

func TestEngine_PlaceOrder_OutOfStock(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 0)

	_, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 2},
	})
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindOutOfStock, appErr.Kind)
	assert.Equal(t, shirt.ID, appErr.ProductID)
	assert.Equal(t, 0, productStock(t, db, shirt.ID))
}

func TestEngine_PlaceOrder_UnknownProductRollsBackEverything(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 10)

	_, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 4},
		{ProductID: 9999, Quantity: 1},
	})
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindNotFound, appErr.Kind)
	assert.Equal(t, uint(9999), appErr.ProductID)

	// The first line had already validated and decremented; the failure of
	// the second line must undo it along with the header and items.
	assert.Equal(t, 10, productStock(t, db, shirt.ID))

	var orders, items int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestEngine_PlaceOrder_MultiLineDecrementsEveryProduct(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 10)
	pants := seedProduct(t, db, "pants", 89.9, 5)

	placed, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 2},
		{ProductID: pants.ID, Quantity: 5},
	})
	require.NoError(t, err)

	require.Len(t, placed.Items, 2)
	assert.Equal(t, 8, productStock(t, db, shirt.ID))
	assert.Equal(t, 0, productStock(t, db, pants.ID))
}

func TestEngine_PlaceOrder_ContendingOrdersNeverOverdraw(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 5)

	// Back-to-back placements whose combined quantity exceeds stock: the
	// first succeeds, the second sees only what is left.
	_, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 3},
	})
	require.NoError(t, err)

	_, err = engine.PlaceOrder(context.Background(), 2, []Line{
		{ProductID: shirt.ID, Quantity: 3},
	})
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindInsufficientStock, appErr.Kind)
	assert.Equal(t, 2, appErr.Available)
	assert.Equal(t, 2, productStock(t, db, shirt.ID))
}

// interceptStock registers a one-shot update callback that fires before the
// engine's guarded decrement, simulating a rival purchase landing between the
// availability read and the write. The rival update runs on the engine's own
// transaction connection so the in-memory store sees it.
func interceptStock(t *testing.T, db *gorm.DB, productID uint, quantity int) {
	t.Helper()

	fired := false
	err := db.Callback().Update().Before("gorm:update").Register("rival_purchase", func(tx *gorm.DB) {
		if fired {
			return
		}
		fired = true
		tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE products SET stock = stock - ? WHERE id = ?", quantity, productID)
	})
	require.NoError(t, err)
}

func TestEngine_PlaceOrder_LostRaceReportsRemainingStock(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 5)

	// The read sees 5 units, then a rival takes 4: the decrement predicate
	// no longer holds, no rows are affected, and the re-read classifies the
	// failure against what is actually left.
	interceptStock(t, db, shirt.ID, 4)

	_, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 3},
	})
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindInsufficientStock, appErr.Kind)
	assert.Equal(t, shirt.ID, appErr.ProductID)
	assert.Equal(t, 1, appErr.Available)

	// The losing placement rolls back whole, rival update included.
	assert.Equal(t, 5, productStock(t, db, shirt.ID))

	var orders int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orders).Error)
	assert.Zero(t, orders)
}

func TestEngine_PlaceOrder_LostRaceToLastUnitsReportsOutOfStock(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 5)

	// The rival drains the product completely; the re-read sees zero stock.
	interceptStock(t, db, shirt.ID, 5)

	_, err := engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 3},
	})
	require.Error(t, err)

	appErr := apperr.From(err)
	assert.Equal(t, apperr.KindOutOfStock, appErr.Kind)
	assert.Equal(t, shirt.ID, appErr.ProductID)
	assert.Equal(t, 5, productStock(t, db, shirt.ID))
}

func TestEngine_PlaceOrder_RejectsInvalidInput(t *testing.T) {
	db := setupTestDB(t)
	engine := NewEngine(db)
	shirt := seedProduct(t, db, "shirt", 49.9, 5)

	_, err := engine.PlaceOrder(context.Background(), 1, nil)
	assert.Equal(t, apperr.KindInvalidInput, apperr.From(err).Kind)

	_, err = engine.PlaceOrder(context.Background(), 1, []Line{
		{ProductID: shirt.ID, Quantity: 0},
	})
	assert.Equal(t, apperr.KindInvalidInput, apperr.From(err).Kind)
	assert.Equal(t, 5, productStock(t, db, shirt.ID))
}
