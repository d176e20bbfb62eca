package model

import (
	"time"
)

// OrderStatusPending is the status assigned to newly placed orders.
const OrderStatusPending = "pending"

// Order is the aggregate root for a purchase. Items are immutable once the
// order is committed and are removed together with it.
type Order struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	ClientID  uint      `json:"client_id" gorm:"index;not null"`
	Status    string    `json:"status" gorm:"type:varchar(50);default:pending"`
	CreatedAt time.Time `json:"created_at"`

	Items []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// OrderItem is a single line of an order. Price is the unit price captured at
// order time and is never recomputed from the product afterwards.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primarykey"`
	OrderID   uint    `json:"order_id" gorm:"index;not null"`
	ProductID uint    `json:"product_id" gorm:"index;not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	Price     float64 `json:"price" gorm:"not null"`
}
