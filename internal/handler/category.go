package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mutiaradiva/Chachingify-Website/internal/middleware"
	"github.com/mutiaradiva/Chachingify-Website/internal/models"
	"github.com/mutiaradiva/Chachingify-Website/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CategoryHandler serves category CRUD. Seeded default categories are
// immutable: they cannot be deleted.
type CategoryHandler struct {
	DB *gorm.DB
}

func NewCategoryHandler(db *gorm.DB) *CategoryHandler {
	return &CategoryHandler{DB: db}
}

type categoryReq struct {
	Name  string `json:"name" binding:"required,max=64"`
	Type  string `json:"type" binding:"required"`
	Icon  string `json:"icon" binding:"max=16"`
	Color string `json:"color" binding:"max=16"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	q := h.DB.Where("user_id = ?", user.ID)
	if t := c.Query("type"); t == models.TypeIncome || t == models.TypeExpense {
		q = q.Where("type = ?", t)
	}

	var categories []models.Category
	if err := q.Order("id ASC").Find(&categories).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
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

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Category not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if err := util.ValidateTransactionType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid category type", err)
		return
	}

	category := models.Category{
		UserID: user.ID,
		Name:   req.Name,
		Type:   req.Type,
		Icon:   req.Icon,
		Color:  req.Color,
	}
	if err := h.DB.Create(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
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

	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if err := util.ValidateTransactionType(req.Type); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid category type", err)
		return
	}

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Category not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	category.Name = req.Name
	category.Type = req.Type
	category.Icon = req.Icon
	category.Color = req.Color
	if err := h.DB.Save(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
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

	var category models.Category
	if err := h.DB.Where("id = ? AND user_id = ?", id, user.ID).
		First(&category).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Category not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	if category.IsDefault {
		util.Error(c, http.StatusBadRequest, "Cannot delete default category", nil)
		return
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	util.Message(c, http.StatusOK, "Category deleted successfully")
}
