package util

import (
	"fmt"
	"time"
)

// ValidateAmountCent checks a transaction amount (cents): positive and
// below the sanity ceiling.
func ValidateAmountCent(cent int64) error {
	if cent <= 0 {
		return fmt.Errorf("amount must be positive, got %d", cent)
	}
	if cent >= 1_000_000_000_00 { // one billion
		return fmt.Errorf("amount too large, got %d", cent)
	}
	return nil
}

// ValidateTransactionType checks income/expense.
func ValidateTransactionType(t string) error {
	if t != "income" && t != "expense" {
		return fmt.Errorf("invalid transaction type %q", t)
	}
	return nil
}

// ValidateAccountType checks cash/bank/ewallet.
func ValidateAccountType(t string) error {
	switch t {
	case "cash", "bank", "ewallet":
		return nil
	}
	return fmt.Errorf("invalid account type %q", t)
}

// ValidateGoalStatus checks active/completed/cancelled.
func ValidateGoalStatus(s string) error {
	switch s {
	case "active", "completed", "cancelled":
		return nil
	}
	return fmt.Errorf("invalid goal status %q", s)
}

// dateLayouts accepted on input, most specific first.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDate parses a client-supplied date in any accepted layout.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date format %q", s)
}

// ValidateDate checks strict YYYY-MM-DD, used for range filters.
func ValidateDate(dateStr string) error {
	if dateStr == "" {
		return fmt.Errorf("date is empty")
	}
	_, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return fmt.Errorf("invalid date format: %w", err)
	}
	return nil
}
