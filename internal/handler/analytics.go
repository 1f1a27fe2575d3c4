package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/mutiaradiva/Chachingify-Website/internal/middleware"
	"github.com/mutiaradiva/Chachingify-Website/internal/models"
	"github.com/mutiaradiva/Chachingify-Website/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AnalyticsHandler serves read-only derived views over a user's
// transactions. Everything is recomputed from the transaction set on
// each call; nothing here mutates state.
type AnalyticsHandler struct {
	DB *gorm.DB
}

func NewAnalyticsHandler(db *gorm.DB) *AnalyticsHandler {
	return &AnalyticsHandler{DB: db}
}

// rangedQuery applies the optional startDate/endDate query parameters
// as inclusive whole-day bounds. ok is false when a bound is malformed
// and the error response has already been written.
func rangedQuery(c *gin.Context, q *gorm.DB) (*gorm.DB, bool) {
	if s := c.Query("startDate"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid startDate, want YYYY-MM-DD", err)
			return nil, false
		}
		q = q.Where("occurred_at >= ?", start)
	}
	if s := c.Query("endDate"); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid endDate, want YYYY-MM-DD", err)
			return nil, false
		}
		q = q.Where("occurred_at < ?", end.Add(24*time.Hour))
	}
	return q, true
}

// Summary reports income/expense totals and the net balance for the
// selected window.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	q, ok := rangedQuery(c, h.DB.Where("user_id = ?", user.ID))
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	var incomeCent, expenseCent int64
	for i := range transactions {
		if transactions[i].Type == models.TypeIncome {
			incomeCent += transactions[i].AmountCent
		} else {
			expenseCent += transactions[i].AmountCent
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_income_cent":  incomeCent,
		"total_income":       util.FormatCent(incomeCent),
		"total_expense_cent": expenseCent,
		"total_expense":      util.FormatCent(expenseCent),
		"balance_cent":       incomeCent - expenseCent,
		"balance":            util.FormatCent(incomeCent - expenseCent),
		"transaction_count":  len(transactions),
	})
}

type categoryBreakdown struct {
	CategoryID uint   `json:"category_id"`
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	Color      string `json:"color"`
	TotalCent  int64  `json:"total_cent"`
	Total      string `json:"total"`
	Count      int    `json:"count"`
}

// ByCategory groups the window's transactions of one type by category,
// joining in the category metadata. Transactions whose category has
// been deleted produce no entry.
func (h *AnalyticsHandler) ByCategory(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	txType := c.DefaultQuery("type", models.TypeExpense)
	if err := util.ValidateTransactionType(txType); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid type", err)
		return
	}

	q, ok := rangedQuery(c, h.DB.Where("user_id = ? AND type = ?", user.ID, txType))
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	grouped := make(map[uint]*categoryBreakdown)
	for i := range transactions {
		t := &transactions[i]
		g, ok := grouped[t.CategoryID]
		if !ok {
			g = &categoryBreakdown{CategoryID: t.CategoryID}
			grouped[t.CategoryID] = g
		}
		g.TotalCent += t.AmountCent
		g.Count++
	}

	ids := make([]uint, 0, len(grouped))
	for id := range grouped {
		ids = append(ids, id)
	}

	var categories []models.Category
	if len(ids) > 0 {
		if err := h.DB.Where("user_id = ? AND id IN ?", user.ID, ids).
			Find(&categories).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
			return
		}
	}

	result := make([]categoryBreakdown, 0, len(categories))
	for i := range categories {
		cat := &categories[i]
		g := grouped[cat.ID]
		g.Name = cat.Name
		g.Icon = cat.Icon
		g.Color = cat.Color
		g.Total = util.FormatCent(g.TotalCent)
		result = append(result, *g)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].TotalCent > result[j].TotalCent
	})

	c.JSON(http.StatusOK, result)
}

type trendBucket struct {
	Date        string `json:"date"`
	IncomeCent  int64  `json:"income_cent"`
	ExpenseCent int64  `json:"expense_cent"`
	Income      string `json:"income"`
	Expense     string `json:"expense"`
}

// Trend buckets the window's transactions by calendar day or month and
// pivots income/expense into one record per bucket.
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	interval := c.DefaultQuery("interval", "daily")
	layout := "2006-01-02"
	if interval == "monthly" {
		layout = "2006-01"
	} else if interval != "daily" {
		util.Error(c, http.StatusBadRequest, "Invalid interval, want daily or monthly", nil)
		return
	}

	q, ok := rangedQuery(c, h.DB.Where("user_id = ?", user.ID))
	if !ok {
		return
	}

	var transactions []models.Transaction
	if err := q.Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	buckets := make(map[string]*trendBucket)
	for i := range transactions {
		t := &transactions[i]
		key := t.OccurredAt.Format(layout)
		b, ok := buckets[key]
		if !ok {
			b = &trendBucket{Date: key}
			buckets[key] = b
		}
		if t.Type == models.TypeIncome {
			b.IncomeCent += t.AmountCent
		} else {
			b.ExpenseCent += t.AmountCent
		}
	}

	result := make([]trendBucket, 0, len(buckets))
	for _, b := range buckets {
		b.Income = util.FormatCent(b.IncomeCent)
		b.Expense = util.FormatCent(b.ExpenseCent)
		result = append(result, *b)
	}

	// bucket keys are zero-padded, lexicographic order is chronological
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	c.JSON(http.StatusOK, result)
}
