package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectStatus string

const (
	ProjectStatusActive   ProjectStatus = "ACTIVE"
	ProjectStatusArchived ProjectStatus = "ARCHIVED"
)

type Project struct {
	ID          uint64         `gorm:"primarykey" json:"-"`
	UserID      uint64         `gorm:"not null;index" json:"-"`
	PublicID    string         `gorm:"type:char(36);uniqueIndex;not null" json:"id"`
	Caption     string         `gorm:"type:varchar(100);not null" json:"caption"`
	Description string         `gorm:"type:varchar(1000);not null" json:"description"`
	Status      ProjectStatus  `gorm:"type:varchar(20);not null;default:'ACTIVE'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User  User   `gorm:"foreignKey:UserID" json:"-"`
	Tasks []Task `gorm:"foreignKey:ProjectID" json:"-"`
}
