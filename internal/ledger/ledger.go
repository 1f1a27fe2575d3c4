// Package ledger owns every mutation of transactions so that an
// account's cached balance always equals the signed sum of the
// transactions referencing it. Each mutation runs the record write and
// the balance adjustment inside one store transaction, so a failure in
// either step rolls back both.
package ledger

import (
	"errors"
	"fmt"

	"github.com/mutiaradiva/Chachingify-Website/internal/models"

	"gorm.io/gorm"
)

// Ledger applies transaction mutations together with their balance effects.
type Ledger struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Ledger {
	return &Ledger{DB: db}
}

// Delta returns the signed balance contribution of a transaction:
// negative for expenses, positive for income.
func Delta(txType string, amountCent int64) int64 {
	if txType == models.TypeExpense {
		return -amountCent
	}
	return amountCent
}

// Create inserts the transaction and applies its delta to the account.
func (l *Ledger) Create(txn *models.Transaction) error {
	return l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("create transaction: %w", err)
		}
		return applyDelta(tx, txn.UserID, txn.AccountID, Delta(txn.Type, txn.AmountCent))
	})
}

// Update saves the modified transaction, reverting the old contribution
// on the old account and applying the new one on the new account. When
// both accounts coincide the two steps still run sequentially against
// the same record, replacing the old delta with the new.
func (l *Ledger) Update(txn *models.Transaction, oldAccountID uint, oldType string, oldAmountCent int64) error {
	return l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(txn).Error; err != nil {
			return fmt.Errorf("save transaction: %w", err)
		}
		if err := applyDelta(tx, txn.UserID, oldAccountID, -Delta(oldType, oldAmountCent)); err != nil {
			return err
		}
		return applyDelta(tx, txn.UserID, txn.AccountID, Delta(txn.Type, txn.AmountCent))
	})
}

// Delete removes the transaction and reverts its contribution.
func (l *Ledger) Delete(txn *models.Transaction) error {
	return l.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Transaction{}, txn.ID).Error; err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		return applyDelta(tx, txn.UserID, txn.AccountID, -Delta(txn.Type, txn.AmountCent))
	})
}

// applyDelta adds delta to the named account's balance. A missing
// account is skipped, not an error: transaction history is not blocked
// by a dangling account reference. The lookup is owner-scoped, so a
// foreign account id behaves exactly like a missing one.
func applyDelta(tx *gorm.DB, userID, accountID uint, delta int64) error {
	var account models.Account
	err := tx.Where("id = ? AND user_id = ?", accountID, userID).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load account: %w", err)
	}

	account.BalanceCent += delta
	if err := tx.Save(&account).Error; err != nil {
		return fmt.Errorf("save account balance: %w", err)
	}
	return nil
}
