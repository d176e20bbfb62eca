// Package order implements the order placement transaction: validate every
// requested line against live inventory, decrement stock, and persist the
// order header with its items as one atomic unit.
package order

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/MarcsonSantos/lu-estilo/internal/apperr"
	"github.com/MarcsonSantos/lu-estilo/internal/model"
)

// Line is one requested order line.
type Line struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Engine executes order placements against the store.
type Engine struct {
	db *gorm.DB
}

// NewEngine creates an Engine over the given database handle.
func NewEngine(db *gorm.DB) *Engine {
	return &Engine{db: db}
}

// PlaceOrder creates an order for the client as a single all-or-nothing
// transaction. Lines are processed in caller order; the first failing line
// aborts the whole call, leaving no header, no items, and no stock change
// behind. On success each item's price is the product's sale price at this
// instant, and the sum of stock decrements equals the sum of item quantities.
func (e *Engine) PlaceOrder(ctx context.Context, clientID uint, lines []Line) (*model.Order, error) {
	if len(lines) == 0 {
		return nil, apperr.InvalidInput("order must contain at least one item")
	}

	var order model.Order
	err := e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order = model.Order{ClientID: clientID, Status: model.OrderStatusPending}
		if err := tx.Create(&order).Error; err != nil {
			return apperr.Internal(err)
		}

		for _, line := range lines {
			if line.Quantity <= 0 {
				return apperr.InvalidInput("item quantity must be positive")
			}

			var product model.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.ProductNotFound(line.ProductID)
				}
				return apperr.Internal(err)
			}

			// Checks are ordered so the failure names the first condition
			// that fired: existence, then zero stock, then insufficiency.
			if product.Stock <= 0 {
				return apperr.OutOfStock(product.ID, product.Description)
			}
			if product.Stock < line.Quantity {
				return apperr.InsufficientStock(product.ID, product.Description, product.Stock)
			}

			// Guarded decrement: the stock predicate is re-evaluated by the
			// store at write time, so two concurrent placements can never
			// both take the same units. A lost race re-reads and reports
			// the stock error the winner left us with.
			result := tx.Model(&model.Product{}).
				Where("id = ? AND stock >= ?", product.ID, line.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", line.Quantity))
			if result.Error != nil {
				return apperr.Internal(result.Error)
			}
			if result.RowsAffected == 0 {
				if err := tx.First(&product, line.ProductID).Error; err != nil {
					return apperr.Internal(err)
				}
				if product.Stock <= 0 {
					return apperr.OutOfStock(product.ID, product.Description)
				}
				return apperr.InsufficientStock(product.ID, product.Description, product.Stock)
			}

			item := model.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Price:     product.SalePrice,
			}
			if err := tx.Create(&item).Error; err != nil {
				return apperr.Internal(err)
			}
			order.Items = append(order.Items, item)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}
