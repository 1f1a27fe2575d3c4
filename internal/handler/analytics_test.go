package handler_test

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAnalyticsSummary(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")
	accountID := defaultAccountID(t, r, token)
	incomeCat := categoryIDByType(t, r, token, "income")
	expenseCat := categoryIDByType(t, r, token, "expense")

	createTransaction(t, r, token, incomeCat, accountID, "income", "1000", "2025-07-01")
	createTransaction(t, r, token, expenseCat, accountID, "expense", "200", "2025-07-02")
	createTransaction(t, r, token, expenseCat, accountID, "expense", "300", "2025-08-10")

	rec := doJSON(t, r, http.MethodGet, "/api/analytics/summary", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary status = %d, body %s", rec.Code, rec.Body.String())
	}
	var summary struct {
		TotalIncomeCent  int64 `json:"total_income_cent"`
		TotalExpenseCent int64 `json:"total_expense_cent"`
		BalanceCent      int64 `json:"balance_cent"`
		TransactionCount int   `json:"transaction_count"`
	}
	decode(t, rec, &summary)

	if summary.TotalIncomeCent != 1000_00 {
		t.Errorf("total income = %d, want %d", summary.TotalIncomeCent, int64(1000_00))
	}
	if summary.TotalExpenseCent != 500_00 {
		t.Errorf("total expense = %d, want %d", summary.TotalExpenseCent, int64(500_00))
	}
	if summary.BalanceCent != 500_00 {
		t.Errorf("balance = %d, want %d", summary.BalanceCent, int64(500_00))
	}
	if summary.TransactionCount != 3 {
		t.Errorf("count = %d, want 3", summary.TransactionCount)
	}

	// windowed: July only, endDate inclusive
	rec = doJSON(t, r, http.MethodGet, "/api/analytics/summary?startDate=2025-07-01&endDate=2025-07-31", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("windowed summary status = %d", rec.Code)
	}
	decode(t, rec, &summary)
	if summary.TransactionCount != 2 {
		t.Errorf("windowed count = %d, want 2", summary.TransactionCount)
	}
	if summary.TotalExpenseCent != 200_00 {
		t.Errorf("windowed expense = %d, want %d", summary.TotalExpenseCent, int64(200_00))
	}
}

// by-category totals for a type must sum to the summary total of that
// type over the same window.
func TestByCategoryMatchesSummary(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")
	accountID := defaultAccountID(t, r, token)
	incomeCat := categoryIDByType(t, r, token, "income")

	expenseCats := listObjects(t, r, "/api/categories?type=expense", token)
	catA := objectID(t, expenseCats[0])
	catB := objectID(t, expenseCats[1])

	createTransaction(t, r, token, incomeCat, accountID, "income", "1000", "2025-07-01")
	createTransaction(t, r, token, catA, accountID, "expense", "200", "2025-07-02")
	createTransaction(t, r, token, catA, accountID, "expense", "300", "2025-07-20")
	createTransaction(t, r, token, catB, accountID, "expense", "150", "2025-07-25")

	rec := doJSON(t, r, http.MethodGet, "/api/analytics/by-category", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("by-category status = %d, body %s", rec.Code, rec.Body.String())
	}
	var breakdown []struct {
		CategoryID uint   `json:"category_id"`
		Name       string `json:"name"`
		TotalCent  int64  `json:"total_cent"`
		Count      int    `json:"count"`
	}
	decode(t, rec, &breakdown)

	if len(breakdown) != 2 {
		t.Fatalf("breakdown groups = %d, want 2", len(breakdown))
	}

	// sorted descending by total
	if breakdown[0].TotalCent < breakdown[1].TotalCent {
		t.Errorf("breakdown not sorted descending: %d before %d",
			breakdown[0].TotalCent, breakdown[1].TotalCent)
	}

	var sum int64
	for _, g := range breakdown {
		if g.Name == "" {
			t.Errorf("group %d missing category name", g.CategoryID)
		}
		sum += g.TotalCent
	}
	if sum != 650_00 {
		t.Errorf("breakdown sum = %d, want summary expense total %d", sum, int64(650_00))
	}
}

// Deleting a category removes its transactions from the breakdown
// (inner join), while the summary still counts them.
func TestByCategoryInnerJoin(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")
	accountID := defaultAccountID(t, r, token)

	rec := doJSON(t, r, http.MethodPost, "/api/categories", token, map[string]interface{}{
		"name": "Sementara",
		"type": "expense",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create category status = %d", rec.Code)
	}
	var cat map[string]interface{}
	decode(t, rec, &cat)
	catID := objectID(t, cat)

	createTransaction(t, r, token, catID, accountID, "expense", "100", "2025-07-01")

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/categories/%d", catID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete category status = %d", rec.Code)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/analytics/by-category", token, nil)
	var breakdown []map[string]interface{}
	decode(t, rec, &breakdown)
	if len(breakdown) != 0 {
		t.Errorf("breakdown with deleted category = %v, want empty", breakdown)
	}

	rec = doJSON(t, r, http.MethodGet, "/api/analytics/summary", token, nil)
	var summary struct {
		TransactionCount int `json:"transaction_count"`
	}
	decode(t, rec, &summary)
	if summary.TransactionCount != 1 {
		t.Errorf("summary count = %d, want 1", summary.TransactionCount)
	}
}

// daily buckets of one month must sum to that month's monthly bucket.
func TestTrendDailySumsToMonthly(t *testing.T) {
	r := newTestServer(t)
	token := register(t, r, "dina@example.com")
	accountID := defaultAccountID(t, r, token)
	incomeCat := categoryIDByType(t, r, token, "income")
	expenseCat := categoryIDByType(t, r, token, "expense")

	createTransaction(t, r, token, incomeCat, accountID, "income", "1000", "2025-07-01")
	createTransaction(t, r, token, expenseCat, accountID, "expense", "200", "2025-07-02")
	createTransaction(t, r, token, expenseCat, accountID, "expense", "300", "2025-07-20")
	createTransaction(t, r, token, expenseCat, accountID, "expense", "150", "2025-08-05")

	type bucket struct {
		Date        string `json:"date"`
		IncomeCent  int64  `json:"income_cent"`
		ExpenseCent int64  `json:"expense_cent"`
	}

	rec := doJSON(t, r, http.MethodGet, "/api/analytics/trend?interval=daily", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("daily trend status = %d", rec.Code)
	}
	var daily []bucket
	decode(t, rec, &daily)

	rec = doJSON(t, r, http.MethodGet, "/api/analytics/trend?interval=monthly", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("monthly trend status = %d", rec.Code)
	}
	var monthly []bucket
	decode(t, rec, &monthly)

	if len(monthly) != 2 {
		t.Fatalf("monthly buckets = %d, want 2", len(monthly))
	}
	// ascending bucket order
	if monthly[0].Date != "2025-07" || monthly[1].Date != "2025-08" {
		t.Errorf("monthly bucket order = %s, %s", monthly[0].Date, monthly[1].Date)
	}

	var julyIncome, julyExpense int64
	for _, b := range daily {
		if len(b.Date) >= 7 && b.Date[:7] == "2025-07" {
			julyIncome += b.IncomeCent
			julyExpense += b.ExpenseCent
		}
	}
	if julyIncome != monthly[0].IncomeCent {
		t.Errorf("july daily income sum = %d, monthly = %d", julyIncome, monthly[0].IncomeCent)
	}
	if julyExpense != monthly[0].ExpenseCent {
		t.Errorf("july daily expense sum = %d, monthly = %d", julyExpense, monthly[0].ExpenseCent)
	}
}
