package model

import (
	"time"
)

// Product represents a catalog item. Stock is the only concurrency-sensitive
// field; the order engine guarantees it never goes negative.
type Product struct {
	ID             uint       `json:"id" gorm:"primarykey"`
	Description    string     `json:"description" gorm:"type:text;not null"`
	SalePrice      float64    `json:"sale_price" gorm:"not null"`
	Barcode        string     `json:"barcode" gorm:"type:varchar(64);unique;not null"`
	Section        string     `json:"section" gorm:"type:varchar(100);not null;index"`
	Stock          int        `json:"stock" gorm:"not null;default:0"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Image          *string    `json:"image,omitempty" gorm:"type:varchar(255)"`
	IsAvailable    bool       `json:"is_available" gorm:"default:true"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
