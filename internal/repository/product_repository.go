package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

// ProductRepository provides data access for Product entities.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a ProductRepository over the given database handle.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter narrows a catalog listing. All filters are optional and
// combine with logical AND.
type ProductFilter struct {
	Section   string   // exact match on section
	MaxPrice  *float64 // inclusive upper bound on sale price
	Available *bool    // exact match on availability
}

// ProductPatch carries a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Description    *string    `json:"description,omitempty"`
	SalePrice      *float64   `json:"sale_price,omitempty"`
	Barcode        *string    `json:"barcode,omitempty"`
	Section        *string    `json:"section,omitempty"`
	Stock          *int       `json:"stock,omitempty"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Image          *string    `json:"image,omitempty"`
	IsAvailable    *bool      `json:"is_available,omitempty"`
}

// FindByID returns the product with the given id.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal(err)
	}
	return &product, nil
}

// FindByBarcode returns the product with the given barcode.
func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).Where("barcode = ?", barcode).First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Internal(err)
	}
	return &product, nil
}

// List returns products matching the filter, with offset/limit pagination.
func (r *ProductRepository) List(ctx context.Context, filter ProductFilter, page Page) ([]model.Product, error) {
	query := r.db.WithContext(ctx).Model(&model.Product{})

	if filter.Section != "" {
		query = query.Where("section = ?", filter.Section)
	}
	if filter.MaxPrice != nil {
		query = query.Where("sale_price <= ?", *filter.MaxPrice)
	}
	if filter.Available != nil {
		query = query.Where("is_available = ?", *filter.Available)
	}

	var products []model.Product
	err := query.Offset(page.Offset).Limit(page.Limit).Order("id").Find(&products).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return products, nil
}

// Create persists a new product. Duplicate barcode is a conflict.
func (r *ProductRepository) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Product{}).Where("barcode = ?", product.Barcode).Count(&count).Error; err != nil {
			return apperr.Internal(err)
		}
		if count > 0 {
			return apperr.Conflict("barcode already registered")
		}
		if err := tx.Create(product).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
}

// Update applies a partial update; only fields present in the patch touch the
// row. Returns the refreshed product.
func (r *ProductRepository) Update(ctx context.Context, id uint, patch ProductPatch) (*model.Product, error) {
	product, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.SalePrice != nil {
		updates["sale_price"] = *patch.SalePrice
	}
	if patch.Barcode != nil {
		updates["barcode"] = *patch.Barcode
	}
	if patch.Section != nil {
		updates["section"] = *patch.Section
	}
	if patch.Stock != nil {
		updates["stock"] = *patch.Stock
	}
	if patch.ExpirationDate != nil {
		updates["expiration_date"] = *patch.ExpirationDate
	}
	if patch.Image != nil {
		updates["image"] = *patch.Image
	}
	if patch.IsAvailable != nil {
		updates["is_available"] = *patch.IsAvailable
	}
	if len(updates) == 0 {
		return product, nil
	}

	if err := r.db.WithContext(ctx).Model(product).Updates(updates).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return product, nil
}

// Delete removes a product from the catalog.
func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if result.Error != nil {
		return apperr.Internal(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("product not found")
	}
	return nil
}
