package models

import "time"

// Goal statuses.
const (
	GoalActive    = "active"
	GoalCompleted = "completed"
	GoalCancelled = "cancelled"
)

// Goal tracks saving progress toward a target amount by a deadline.
// It has no linkage to transactions; CurrentCent grows only through
// the dedicated contribute operation.
type Goal struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Name        string    `gorm:"size:64;not null" json:"name"`
	TargetCent  int64     `gorm:"not null" json:"target_cent"`
	CurrentCent int64     `gorm:"not null;default:0" json:"current_cent"`
	Deadline    time.Time `gorm:"not null" json:"deadline"`
	Icon        string    `gorm:"size:16" json:"icon"`
	Status      string    `gorm:"size:16;not null;default:active" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
