package models

import (
	"time"
)

// Task 任务模型
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"type:varchar(100);not null" json:"title"`
	Completed   bool      `gorm:"not null;default:false" json:"completed"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	Color       string    `gorm:"type:varchar(30);not null;default:default" json:"color"` // default/red/yellow/green/blue/purple
	Priority    int       `gorm:"not null;default:0" json:"priority"`                     // 0-3
	Description *string   `gorm:"type:text" json:"description"`
}
