// Package seed provisions the fixtures every new user starts with:
// the default categories and a zero-balance cash account.
package seed

import (
	"fmt"

	"github.com/mutiaradiva/Chachingify-Website/internal/config"
	"github.com/mutiaradiva/Chachingify-Website/internal/models"

	"gorm.io/gorm"
)

// defaultCategories is the built-in list, used when the deployment
// config does not override it.
var defaultCategories = []config.SeedCategory{
	{Name: "Makanan & Minuman", Type: "expense", Icon: "🍔", Color: "#ef4444"},
	{Name: "Transport", Type: "expense", Icon: "🚗", Color: "#f59e0b"},
	{Name: "Belanja", Type: "expense", Icon: "🛍️", Color: "#ec4899"},
	{Name: "Tagihan", Type: "expense", Icon: "📄", Color: "#8b5cf6"},
	{Name: "Hiburan", Type: "expense", Icon: "🎮", Color: "#06b6d4"},
	{Name: "Kesehatan", Type: "expense", Icon: "💊", Color: "#10b981"},
	{Name: "Gaji", Type: "income", Icon: "💰", Color: "#22c55e"},
	{Name: "Bonus", Type: "income", Icon: "🎁", Color: "#3b82f6"},
}

const defaultAccountName = "Kas"

// Apply creates the default categories and account for a new user.
// Call it inside the registration transaction so a partial seed never
// survives a failed registration.
func Apply(tx *gorm.DB, cfg config.SeedConfig, userID uint) error {
	cats := cfg.Categories
	if len(cats) == 0 {
		cats = defaultCategories
	}

	categories := make([]models.Category, 0, len(cats))
	for _, sc := range cats {
		categories = append(categories, models.Category{
			UserID:    userID,
			Name:      sc.Name,
			Type:      sc.Type,
			Icon:      sc.Icon,
			Color:     sc.Color,
			IsDefault: true,
		})
	}
	if err := tx.Create(&categories).Error; err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	accountName := cfg.AccountName
	if accountName == "" {
		accountName = defaultAccountName
	}
	account := models.Account{
		UserID:      userID,
		Name:        accountName,
		Type:        models.AccountCash,
		BalanceCent: 0,
	}
	if err := tx.Create(&account).Error; err != nil {
		return fmt.Errorf("seed account: %w", err)
	}
	return nil
}
