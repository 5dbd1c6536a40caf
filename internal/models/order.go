package models

import (
	"time"
)

// OrderStatusPending is the state every order starts in.
const OrderStatusPending = "Pending"

// Order is an immutable record of a placed order. Only the status may change
// after creation.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	OrderNumber     string      `gorm:"size:20;uniqueIndex;not null" json:"order_number"`
	PhoneNumber     string      `gorm:"size:10;index" json:"phone_number"`
	Status          string      `gorm:"size:20;default:Pending" json:"status"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	DeliveryAddress string      `gorm:"not null" json:"delivery_address"`
	PaymentMethod   string      `gorm:"size:50;default:'Cash on Delivery'" json:"payment_method"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem snapshots a product at order time so later catalog changes never
// alter historical orders.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"index" json:"order_id"`
	ProductID   uint      `gorm:"not null" json:"product_id"`
	ProductName string    `gorm:"size:200;not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"not null" json:"unit_price"`
	Subtotal    float64   `gorm:"not null" json:"subtotal"`
	CreatedAt   time.Time `json:"created_at"`
}
