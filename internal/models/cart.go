package models

import (
	"time"
)

// Favorite marks a product as a favorite of a user. The (phone, product)
// pair is unique.
type Favorite struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber string    `gorm:"size:10;uniqueIndex:idx_favorites_phone_product" json:"phone_number"`
	ProductID   uint      `gorm:"uniqueIndex:idx_favorites_phone_product" json:"product_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CartItem is a cart line with a mutable quantity. The (phone, product) pair
// is unique; adding the same product again merges into the existing line.
type CartItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	PhoneNumber string    `gorm:"size:10;uniqueIndex:idx_cart_phone_product" json:"phone_number"`
	ProductID   uint      `gorm:"uniqueIndex:idx_cart_phone_product" json:"product_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
