package models

import "time"

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a single income or expense record.
// Amounts are stored in cents (int64) to avoid float error.
type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	AccountID   uint      `gorm:"index;not null" json:"account_id"`
	Type        string    `gorm:"size:16;index;not null" json:"type"` // income / expense
	AmountCent  int64     `gorm:"not null" json:"amount_cent"`
	Description string    `gorm:"size:255" json:"description"`
	OccurredAt  time.Time `gorm:"index;not null" json:"date"`
	Receipt     string    `gorm:"size:255" json:"receipt"` // stored file path, optional
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Account  *Account  `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}
