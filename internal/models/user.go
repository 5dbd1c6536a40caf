package models

import (
	"time"
)

// User represents a customer profile. The canonical 10-digit phone number is
// the primary key and never changes once the row exists; rows are created on
// first OTP contact with empty name and email.
type User struct {
	PhoneNumber string     `gorm:"primaryKey;size:10" json:"phone_number"`
	Name        string     `gorm:"size:100" json:"name"`
	Email       string     `gorm:"size:100" json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Favorites   []Favorite `gorm:"foreignKey:PhoneNumber;references:PhoneNumber;constraint:OnDelete:CASCADE" json:"-"`
	CartItems   []CartItem `gorm:"foreignKey:PhoneNumber;references:PhoneNumber;constraint:OnDelete:CASCADE" json:"-"`
	Orders      []Order    `gorm:"foreignKey:PhoneNumber;references:PhoneNumber;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName keeps the table name used by the existing mobile clients.
func (User) TableName() string {
	return "user_profiles"
}

// ProfileComplete reports whether both name and email have been provided.
func (u User) ProfileComplete() bool {
	return u.Name != "" && u.Email != ""
}
