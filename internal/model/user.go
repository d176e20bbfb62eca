package model

import (
	"time"
)

// User represents an authenticated identity. Credentials are stored as a
// bcrypt digest and never serialized.
type User struct {
	ID             uint      `json:"id" gorm:"primarykey"`
	Email          string    `json:"email" gorm:"type:varchar(255);unique;not null"`
	CPF            string    `json:"cpf" gorm:"type:varchar(32);unique;not null"`
	HashedPassword string    `json:"-" gorm:"type:varchar(255);not null"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	IsAdmin        bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Client *Client `json:"client,omitempty" gorm:"foreignKey:UserID"`
}
