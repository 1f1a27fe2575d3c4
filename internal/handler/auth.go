package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mutiaradiva/Chachingify-Website/internal/config"
	"github.com/mutiaradiva/Chachingify-Website/internal/models"
	"github.com/mutiaradiva/Chachingify-Website/internal/seed"
	"github.com/mutiaradiva/Chachingify-Website/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	DB         *gorm.DB
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Seed       config.SeedConfig
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	ttlHours := cfg.JWT.ExpireHours
	if ttlHours <= 0 {
		ttlHours = 24 * 7
	}
	cost := cfg.Security.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AuthHandler{
		DB:         db,
		JWTSecret:  cfg.JWT.Secret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: cost,
		Seed:       cfg.Seed,
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type registerReq struct {
	Name     string `json:"name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,max=128"`
	Password string `json:"password" binding:"required,min=6,max=64"`
}

// Register creates the user and provisions the default categories and
// cash account inside one store transaction, so a failed seed surfaces
// as a failed registration instead of a half-provisioned user.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !emailRe.MatchString(req.Email) {
		util.Error(c, http.StatusBadRequest, "Invalid email address", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	// The unique index on email is the only duplicate check, so two
	// concurrent registrations cannot both slip past a pre-check.
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return seed.Apply(tx, h.Seed, user.ID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.Error(c, http.StatusBadRequest, "Email already registered", nil)
			return
		}
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			// same response as a bad password, so emails can't be probed
			util.Error(c, http.StatusBadRequest, "Invalid credentials", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid credentials", nil)
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
