package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/MarcsonSantos/lu-estilo/internal/model"
	"github.com/MarcsonSantos/lu-estilo/pkg/config"
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

func testPagination() config.PaginationConfig {
	return config.PaginationConfig{DefaultLimit: 10, MaxLimit: 100}
}

func TestNormalizePage(t *testing.T) {
	cfg := testPagination()

	// Zero values fall back to the default limit.
	page := NormalizePage(cfg, 0, 0)
	assert.Equal(t, Page{Offset: 0, Limit: 10}, page)

	// Negative offsets are clamped to zero.
	page = NormalizePage(cfg, -5, 20)
	assert.Equal(t, Page{Offset: 0, Limit: 20}, page)

	// Oversized limits are clamped to the configured maximum.
	page = NormalizePage(cfg, 30, 100000)
	assert.Equal(t, Page{Offset: 30, Limit: 100}, page)
}
