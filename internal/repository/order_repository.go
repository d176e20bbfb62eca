package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

// OrderRepository provides data access for Order aggregates. Order creation
// lives in the order engine, not here.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an OrderRepository over the given database handle.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID returns the order with the given id, items included.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, apperr.Internal(err)
	}
	return &order, nil
}

// List returns all orders with offset/limit pagination.
func (r *OrderRepository) List(ctx context.Context, page Page) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Offset(page.Offset).
		Limit(page.Limit).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}

// ListByClient returns the orders owned by one client.
func (r *OrderRepository) ListByClient(ctx context.Context, clientID uint, page Page) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("client_id = ?", clientID).
		Offset(page.Offset).
		Limit(page.Limit).
		Order("id").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}

// UpdateStatus sets the order status. Items never change after commit.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) (*model.Order, error) {
	order, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(order).Update("status", status).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return order, nil
}

// Delete removes an order and its items together. The explicit item delete
// keeps the cascade independent of driver-level foreign key enforcement.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&model.OrderItem{}).Error; err != nil {
			return apperr.Internal(err)
		}
		result := tx.Delete(&model.Order{}, id)
		if result.Error != nil {
			return apperr.Internal(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperr.NotFound("order not found")
		}
		return nil
	})
}
