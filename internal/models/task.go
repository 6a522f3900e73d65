package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityLow    TaskPriority = "LOW"
)

// Task is either a parent task (ParentTaskID == nil) or a subtask of one.
type Task struct {
	ID            uint64         `gorm:"primarykey" json:"-"`
	ProjectID     uint64         `gorm:"not null;index" json:"-"`
	ParentTaskID  *uint64        `gorm:"index" json:"-"`
	PublicID      string         `gorm:"type:char(36);uniqueIndex;not null" json:"id"`
	Caption       string         `gorm:"type:varchar(100);not null" json:"caption"`
	Description   string         `gorm:"type:varchar(1000);not null" json:"description"`
	DueDate       datatypes.Date `gorm:"type:date;not null" json:"due_date"`
	EstimatedTime int            `gorm:"not null" json:"estimated_time"`
	ActualTime    int            `gorm:"not null;default:0" json:"actual_time"`
	Progress      int            `gorm:"not null;default:0" json:"progress"`
	Priority      TaskPriority   `gorm:"type:varchar(10);not null;default:'LOW'" json:"priority"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Project    Project `gorm:"foreignKey:ProjectID" json:"-"`
	ParentTask *Task   `gorm:"foreignKey:ParentTaskID" json:"-"`
}

// IsParent reports whether the task sits at the top of its hierarchy.
func (t *Task) IsParent() bool {
	return t.ParentTaskID == nil
}
