package models

import "time"

// Account types.
const (
	AccountCash    = "cash"
	AccountBank    = "bank"
	AccountEwallet = "ewallet"
)

// Account is a money holder (wallet, bank account, e-wallet).
// BalanceCent is a derived cache: it must equal the signed sum of the
// account's transactions and is only ever mutated through the ledger.
type Account struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	Type        string    `gorm:"size:16;not null" json:"type"` // cash / bank / ewallet
	BalanceCent int64     `gorm:"not null;default:0" json:"balance_cent"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
