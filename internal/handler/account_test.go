package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAccountCreateValidation(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")

	testCases := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"type": "bank"}},
		{"blank name", gin.H{"name": "   ", "type": "bank"}},
		{"bad type", gin.H{"name": "Dompet", "type": "crypto"}},
	}

	for _, tc := range testCases {
		rec := doJSON(t, r, http.MethodPost, "/api/accounts", token, tc.body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", tc.name, rec.Code)
		}
	}
}

// Renaming an account must not disturb its cached balance.
func TestAccountUpdateKeepsBalance(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")
	accountID := defaultAccountID(t, r, token)
	incomeCat := categoryIDByType(t, r, token, "income")

	createTransaction(t, r, token, incomeCat, accountID, "income", "500", "2025-08-01")

	rec := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/accounts/%d", accountID), token, gin.H{
		"name": "Dompet utama",
		"type": "ewallet",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update account status = %d, body %s", rec.Code, rec.Body.String())
	}

	if got := accountBalanceCent(t, r, token, accountID); got != 500_00 {
		t.Errorf("balance after rename = %d, want %d", got, int64(500_00))
	}
}

func TestAccountOwnershipIsolation(t *testing.T) {
	r := newTestServer(t)
	tokenA := register(t, r, "alice@example.com")
	tokenB := register(t, r, "bob@example.com")
	accountA := defaultAccountID(t, r, tokenA)

	rec := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/accounts/%d", accountA), tokenB, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user get status = %d, want 404", rec.Code)
	}
	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/accounts/%d", accountA), tokenB, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("cross-user delete status = %d, want 404", rec.Code)
	}
}
