package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/mutiaradiva/Chachingify-Website/internal/middleware"
	"github.com/mutiaradiva/Chachingify-Website/internal/models"
	"github.com/mutiaradiva/Chachingify-Website/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// ExportHandler streams a user's transactions as CSV or XLSX.
type ExportHandler struct {
	DB *gorm.DB
}

func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{DB: db}
}

var exportHeader = []string{"Type", "Category", "Account", "Amount", "Description", "Date"}

func (h *ExportHandler) loadTransactions(userID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := h.DB.Preload("Category").Preload("Account").
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func exportRow(t *models.Transaction) []string {
	categoryName := ""
	if t.Category != nil {
		categoryName = t.Category.Name
	}
	accountName := ""
	if t.Account != nil {
		accountName = t.Account.Name
	}
	return []string{
		t.Type,
		categoryName,
		accountName,
		util.FormatCent(t.AmountCent),
		t.Description,
		t.OccurredAt.Format("2006-01-02"),
	}
}

// ExportCSV writes the transaction history as a CSV attachment.
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	transactions, err := h.loadTransactions(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM so spreadsheet apps detect the encoding
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write(exportHeader)
	for i := range transactions {
		writer.Write(exportRow(&transactions[i]))
	}
}

// ExportXLSX writes the transaction history as an XLSX attachment.
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	transactions, err := h.loadTransactions(user.ID)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	f := excelize.NewFile()
	sheetName := "Transactions"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}
	f.SetActiveSheet(index)

	for i, head := range exportHeader {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, head)
	}

	for idx := range transactions {
		row := idx + 2
		for col, val := range exportRow(&transactions[idx]) {
			cell := fmt.Sprintf("%c%d", 'A'+col, row)
			f.SetCellValue(sheetName, cell, val)
		}
	}

	f.SetColWidth(sheetName, "A", "A", 10)
	f.SetColWidth(sheetName, "B", "C", 18)
	f.SetColWidth(sheetName, "D", "D", 12)
	f.SetColWidth(sheetName, "E", "E", 30)
	f.SetColWidth(sheetName, "F", "F", 12)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"transactions_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
	}
}
