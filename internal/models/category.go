package models

import "time"

// Category represents income/expense category.
// Default categories are seeded at registration and cannot be deleted.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Name      string    `gorm:"size:64;not null" json:"name"`
	Type      string    `gorm:"size:16;index;not null" json:"type"` // income / expense
	Icon      string    `gorm:"size:16" json:"icon"`
	Color     string    `gorm:"size:16" json:"color"`
	IsDefault bool      `gorm:"not null;default:false" json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
