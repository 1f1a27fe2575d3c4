package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mutiaradiva/Chachingify-Website/internal/middleware"
	"github.com/mutiaradiva/Chachingify-Website/internal/models"
	"github.com/mutiaradiva/Chachingify-Website/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AccountHandler serves account CRUD. Balances are never writable
// here: they only move through the ledger.
type AccountHandler struct {
	DB *gorm.DB
}

func NewAccountHandler(db *gorm.DB) *AccountHandler {
	return &AccountHandler{DB: db}
}

type accountResp struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	BalanceCent int64     `json:"balance_cent"`
	Balance     string    `json:"balance"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAccountResp(a *models.Account) accountResp {
	return accountResp{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.Type,
		BalanceCent: a.BalanceCent,
		Balance:     util.FormatCent(a.BalanceCent),
		CreatedAt:   a.CreatedAt,
	}
}

type accountReq struct {
	Name string `json:"name" binding:"required,max=64"`
	Type string `json:"type" binding:"required"`
}

func (h *AccountHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var accounts []models.Account
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at ASC").
		Find(&accounts).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	items := make([]accountResp, 0, len(accounts))
	for i := range accounts {
		items = append(items, toAccountResp(&accounts[i]))
	}
	c.JSON(http.StatusOK, items)
}

func (h *AccountHandler) Get(c *gin.Context) {
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

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Account not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, toAccountResp(&account))
}

func (h *AccountHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if err := util.ValidateAccountType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid account type", err)
		return
	}

	account := models.Account{
		UserID:      user.ID,
		Name:        req.Name,
		Type:        req.Type,
		BalanceCent: 0,
	}
	if err := h.DB.Create(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusCreated, toAccountResp(&account))
}

func (h *AccountHandler) Update(c *gin.Context) {
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

	var req accountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if err := util.ValidateAccountType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid account type", err)
		return
	}

	var account models.Account
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Account not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	account.Name = req.Name
	account.Type = req.Type
	if err := h.DB.Save(&account).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, toAccountResp(&account))
}

func (h *AccountHandler) Delete(c *gin.Context) {
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

	res := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		Delete(&models.Account{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, "Account not found", nil)
		return
	}

	util.Message(c, http.StatusOK, "Account deleted successfully")
}
