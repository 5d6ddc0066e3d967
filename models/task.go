package models

import (
	"time"

	"github.com/google/uuid"
)

const TaskStatusComplete = "complete"

type Task struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title          string     `gorm:"not null" json:"title"`
	ClientID       uuid.UUID  `gorm:"type:uuid;index;not null" json:"client_id"`
	Description    *string    `gorm:"type:text" json:"description,omitempty"`
	Status         string     `gorm:"type:varchar(20);not null" json:"status"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	EstimatedCost  *float64   `json:"estimated_cost,omitempty"`
	Project        *string    `gorm:"type:varchar(255)" json:"project,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
