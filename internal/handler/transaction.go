package handler

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mutiaradiva/Chachingify-Website/internal/ledger"
	"github.com/mutiaradiva/Chachingify-Website/internal/middleware"
	"github.com/mutiaradiva/Chachingify-Website/internal/models"
	"github.com/mutiaradiva/Chachingify-Website/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionHandler serves transaction CRUD. All mutations go through
// the ledger so account balances stay consistent.
type TransactionHandler struct {
	DB        *gorm.DB
	Ledger    *ledger.Ledger
	UploadDir string
}

func NewTransactionHandler(db *gorm.DB, l *ledger.Ledger, uploadDir string) *TransactionHandler {
	return &TransactionHandler{DB: db, Ledger: l, UploadDir: uploadDir}
}

// transactionReq binds both JSON and multipart form bodies; the latter
// is used when a receipt file rides along.
type transactionReq struct {
	CategoryID  uint   `json:"category_id" form:"category_id"`
	AccountID   uint   `json:"account_id" form:"account_id"`
	Type        string `json:"type" form:"type"`
	Amount      string `json:"amount" form:"amount"`
	Description string `json:"description" form:"description" binding:"max=255"`
	Date        string `json:"date" form:"date"`
}

type transactionResp struct {
	ID          uint             `json:"id"`
	CategoryID  uint             `json:"category_id"`
	AccountID   uint             `json:"account_id"`
	Type        string           `json:"type"`
	AmountCent  int64            `json:"amount_cent"`
	Amount      string           `json:"amount"`
	Description string           `json:"description"`
	Date        time.Time        `json:"date"`
	Receipt     string           `json:"receipt,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	Category    *models.Category `json:"category,omitempty"`
	Account     *models.Account  `json:"account,omitempty"`
}

func toTransactionResp(t *models.Transaction) transactionResp {
	return transactionResp{
		ID:          t.ID,
		CategoryID:  t.CategoryID,
		AccountID:   t.AccountID,
		Type:        t.Type,
		AmountCent:  t.AmountCent,
		Amount:      util.FormatCent(t.AmountCent),
		Description: t.Description,
		Date:        t.OccurredAt,
		Receipt:     t.Receipt,
		CreatedAt:   t.CreatedAt,
		Category:    t.Category,
		Account:     t.Account,
	}
}

// checkRefs verifies that referenced category/account rows belong to
// the user, writing a 404 otherwise. References are never trusted from
// the request body alone; a foreign id looks the same as a missing
// one. Zero ids are skipped so partial updates can leave them out.
func (h *TransactionHandler) checkRefs(c *gin.Context, userID, categoryID, accountID uint) bool {
	if categoryID != 0 {
		var n int64
		if err := h.DB.Model(&models.Category{}).
			Where("id = ? AND user_id = ?", categoryID, userID).
			Count(&n).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
			return false
		}
		if n == 0 {
			util.Error(c, http.StatusNotFound, "Category not found", nil)
			return false
		}
	}
	if accountID != 0 {
		var n int64
		if err := h.DB.Model(&models.Account{}).
			Where("id = ? AND user_id = ?", accountID, userID).
			Count(&n).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
			return false
		}
		if n == 0 {
			util.Error(c, http.StatusNotFound, "Account not found", nil)
			return false
		}
	}
	return true
}

// saveReceipt stores an uploaded receipt under a uuid filename and
// returns the public path recorded on the transaction.
func (h *TransactionHandler) saveReceipt(c *gin.Context) (string, error) {
	file, err := c.FormFile("receipt")
	if err != nil {
		// no file attached
		return "", nil
	}
	name := uuid.NewString() + filepath.Ext(file.Filename)
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func (h *TransactionHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)

	// date bounds are whole days, both ends inclusive
	if s := c.Query("startDate"); s != "" {
		start, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid startDate, want YYYY-MM-DD", err)
			return
		}
		q = q.Where("occurred_at >= ?", start)
	}
	if s := c.Query("endDate"); s != "" {
		end, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid endDate, want YYYY-MM-DD", err)
			return
		}
		q = q.Where("occurred_at < ?", end.Add(24*time.Hour))
	}
	if s := c.Query("categoryId"); s != "" {
		q = q.Where("category_id = ?", s)
	}
	if s := c.Query("accountId"); s != "" {
		q = q.Where("account_id = ?", s)
	}
	if t := c.Query("type"); t == models.TypeIncome || t == models.TypeExpense {
		q = q.Where("type = ?", t)
	}

	var transactions []models.Transaction
	if err := q.Preload("Category").Preload("Account").
		Order("occurred_at DESC, id DESC").
		Find(&transactions).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	items := make([]transactionResp, 0, len(transactions))
	for i := range transactions {
		items = append(items, toTransactionResp(&transactions[i]))
	}
	c.JSON(http.StatusOK, items)
}

func (h *TransactionHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id", nil)
		return
	}

	var txn models.Transaction
	if err := h.DB.Preload("Category").Preload("Account").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Transaction not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, toTransactionResp(&txn))
}

func (h *TransactionHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req transactionReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if req.CategoryID == 0 {
		util.Error(c, http.StatusBadRequest, "Category is required", nil)
		return
	}
	if req.AccountID == 0 {
		util.Error(c, http.StatusBadRequest, "Account is required", nil)
		return
	}
	if err := util.ValidateTransactionType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid transaction type", err)
		return
	}
	amountCent, err := util.ParseCent(req.Amount)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid amount", err)
		return
	}
	if err := util.ValidateAmountCent(amountCent); err != nil {
		util.Error(c, http.StatusBadRequest, "Amount must be positive", err)
		return
	}
	if !h.checkRefs(c, user.ID, req.CategoryID, req.AccountID) {
		return
	}

	occurredAt := time.Now()
	if req.Date != "" {
		t, err := util.ParseDate(req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid date", err)
			return
		}
		occurredAt = t
	}

	receipt, err := h.saveReceipt(c)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to store receipt", err)
		return
	}

	txn := models.Transaction{
		UserID:      user.ID,
		CategoryID:  req.CategoryID,
		AccountID:   req.AccountID,
		Type:        req.Type,
		AmountCent:  amountCent,
		Description: req.Description,
		OccurredAt:  occurredAt,
		Receipt:     receipt,
	}
	if err := h.Ledger.Create(&txn); err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	_ = h.DB.Preload("Category").Preload("Account").First(&txn, txn.ID).Error

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Transaction created successfully",
		"transaction": toTransactionResp(&txn),
	})
}

// Update mutates any provided subset of fields; absent fields keep
// their old values. The old balance contribution is reverted and the
// new one applied by the ledger.
func (h *TransactionHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id", nil)
		return
	}

	var req transactionReq
	if err := c.ShouldBind(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	var txn models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Transaction not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	if !h.checkRefs(c, user.ID, req.CategoryID, req.AccountID) {
		return
	}

	oldAccountID := txn.AccountID
	oldType := txn.Type
	oldAmountCent := txn.AmountCent

	if req.CategoryID != 0 {
		txn.CategoryID = req.CategoryID
	}
	if req.AccountID != 0 {
		txn.AccountID = req.AccountID
	}
	if req.Type != "" {
		if err := util.ValidateTransactionType(req.Type); err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid transaction type", err)
			return
		}
		txn.Type = req.Type
	}
	if req.Amount != "" {
		amountCent, err := util.ParseCent(req.Amount)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid amount", err)
			return
		}
		if err := util.ValidateAmountCent(amountCent); err != nil {
			util.Error(c, http.StatusBadRequest, "Amount must be positive", err)
			return
		}
		txn.AmountCent = amountCent
	}
	if req.Description != "" {
		txn.Description = req.Description
	}
	if req.Date != "" {
		t, err := util.ParseDate(req.Date)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid date", err)
			return
		}
		txn.OccurredAt = t
	}
	receipt, err := h.saveReceipt(c)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Failed to store receipt", err)
		return
	}
	if receipt != "" {
		txn.Receipt = receipt
	}

	if err := h.Ledger.Update(&txn, oldAccountID, oldType, oldAmountCent); err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	_ = h.DB.Preload("Category").Preload("Account").First(&txn, txn.ID).Error

	c.JSON(http.StatusOK, gin.H{
		"message":     "Transaction updated successfully",
		"transaction": toTransactionResp(&txn),
	})
}

func (h *TransactionHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id", nil)
		return
	}

	var txn models.Transaction
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&txn).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Transaction not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	if err := h.Ledger.Delete(&txn); err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	util.Message(c, http.StatusOK, "Transaction deleted successfully")
}
