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

// GoalHandler serves savings goal CRUD plus the contribute action.
// Goals are independent of transactions; contributions do not touch
// any account balance.
type GoalHandler struct {
	DB *gorm.DB
}

func NewGoalHandler(db *gorm.DB) *GoalHandler {
	return &GoalHandler{DB: db}
}

type goalResp struct {
	ID              uint      `json:"id"`
	Name            string    `json:"name"`
	TargetCent      int64     `json:"target_cent"`
	Target          string    `json:"target_amount"`
	CurrentCent     int64     `json:"current_cent"`
	Current         string    `json:"current_amount"`
	Deadline        time.Time `json:"deadline"`
	Icon            string    `json:"icon"`
	Status          string    `json:"status"`
	Progress        float64   `json:"progress"`
	RemainingCent   int64     `json:"remaining_cent"`
	Remaining       string    `json:"remaining"`
	MonthsRemaining int       `json:"months_remaining"`
	CreatedAt       time.Time `json:"created_at"`
}

func toGoalResp(g *models.Goal, now time.Time) goalResp {
	// progress is clamped to [0,100] for display even though the
	// stored current amount may exceed the target
	progress := 100.0
	if g.TargetCent > 0 {
		progress = float64(g.CurrentCent) / float64(g.TargetCent) * 100
		if progress > 100 {
			progress = 100
		}
	}

	remaining := g.TargetCent - g.CurrentCent
	if remaining < 0 {
		remaining = 0
	}

	months := (g.Deadline.Year()-now.Year())*12 + int(g.Deadline.Month()) - int(now.Month())
	if months < 0 {
		months = 0
	}

	return goalResp{
		ID:              g.ID,
		Name:            g.Name,
		TargetCent:      g.TargetCent,
		Target:          util.FormatCent(g.TargetCent),
		CurrentCent:     g.CurrentCent,
		Current:         util.FormatCent(g.CurrentCent),
		Deadline:        g.Deadline,
		Icon:            g.Icon,
		Status:          g.Status,
		Progress:        progress,
		RemainingCent:   remaining,
		Remaining:       util.FormatCent(remaining),
		MonthsRemaining: months,
		CreatedAt:       g.CreatedAt,
	}
}

type goalReq struct {
	Name          string `json:"name" binding:"max=64"`
	TargetAmount  string `json:"target_amount"`
	CurrentAmount string `json:"current_amount"`
	Deadline      string `json:"deadline"`
	Icon          string `json:"icon" binding:"max=16"`
	Status        string `json:"status"`
}

func (h *GoalHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var goals []models.Goal
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&goals).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	now := time.Now()
	items := make([]goalResp, 0, len(goals))
	for i := range goals {
		items = append(items, toGoalResp(&goals[i], now))
	}
	c.JSON(http.StatusOK, items)
}

func (h *GoalHandler) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	goal, ok := h.findGoal(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toGoalResp(goal, time.Now()))
}

func (h *GoalHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Error(c, http.StatusBadRequest, "Name is required", nil)
		return
	}

	targetCent, err := util.ParseCent(req.TargetAmount)
	if err != nil || targetCent < 0 {
		util.Error(c, http.StatusBadRequest, "Invalid target amount", err)
		return
	}

	var currentCent int64
	if req.CurrentAmount != "" {
		currentCent, err = util.ParseCent(req.CurrentAmount)
		if err != nil || currentCent < 0 {
			util.Error(c, http.StatusBadRequest, "Invalid current amount", err)
			return
		}
	}

	deadline, err := util.ParseDate(req.Deadline)
	if err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid deadline", err)
		return
	}

	icon := req.Icon
	if icon == "" {
		icon = "🎯"
	}
	status := req.Status
	if status == "" {
		status = models.GoalActive
	}
	if err := util.ValidateGoalStatus(status); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid goal status", err)
		return
	}

	goal := models.Goal{
		UserID:      user.ID,
		Name:        req.Name,
		TargetCent:  targetCent,
		CurrentCent: currentCent,
		Deadline:    deadline,
		Icon:        icon,
		Status:      status,
	}
	if err := h.DB.Create(&goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusCreated, toGoalResp(&goal, time.Now()))
}

func (h *GoalHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	goal, ok := h.findGoal(c, user.ID)
	if !ok {
		return
	}

	var req goalReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		goal.Name = name
	}
	if req.TargetAmount != "" {
		targetCent, err := util.ParseCent(req.TargetAmount)
		if err != nil || targetCent < 0 {
			util.Error(c, http.StatusBadRequest, "Invalid target amount", err)
			return
		}
		goal.TargetCent = targetCent
	}
	if req.CurrentAmount != "" {
		currentCent, err := util.ParseCent(req.CurrentAmount)
		if err != nil || currentCent < 0 {
			util.Error(c, http.StatusBadRequest, "Invalid current amount", err)
			return
		}
		goal.CurrentCent = currentCent
	}
	if req.Deadline != "" {
		deadline, err := util.ParseDate(req.Deadline)
		if err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid deadline", err)
			return
		}
		goal.Deadline = deadline
	}
	if req.Icon != "" {
		goal.Icon = req.Icon
	}
	if req.Status != "" {
		if err := util.ValidateGoalStatus(req.Status); err != nil {
			util.Error(c, http.StatusBadRequest, "Invalid goal status", err)
			return
		}
		goal.Status = req.Status
	}

	if err := h.DB.Save(goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, toGoalResp(goal, time.Now()))
}

func (h *GoalHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	goal, ok := h.findGoal(c, user.ID)
	if !ok {
		return
	}

	if err := h.DB.Delete(goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	util.Message(c, http.StatusOK, "Goal deleted successfully")
}

type contributeReq struct {
	Amount string `json:"amount" binding:"required"`
}

// Contribute adds the amount to the goal's saved total. The total may
// exceed the target; progress display clamps at 100%.
func (h *GoalHandler) Contribute(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	goal, ok := h.findGoal(c, user.ID)
	if !ok {
		return
	}

	var req contributeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	amountCent, err := util.ParseCent(req.Amount)
	if err != nil || amountCent <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid amount", err)
		return
	}

	goal.CurrentCent += amountCent
	if err := h.DB.Save(goal).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, toGoalResp(goal, time.Now()))
}

// findGoal loads the path id's goal scoped to the owner, writing the
// error response itself when the lookup fails.
func (h *GoalHandler) findGoal(c *gin.Context, userID uint) (*models.Goal, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, "Invalid id", nil)
		return nil, false
	}

	var goal models.Goal
	if err := h.DB.Where("id = ? AND user_id = ?", id, userID).
		First(&goal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, "Goal not found", nil)
		} else {
			util.Error(c, http.StatusInternalServerError, "Server error", err)
		}
		return nil, false
	}
	return &goal, true
}
