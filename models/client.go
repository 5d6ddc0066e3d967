package models

import (
	"time"

	"github.com/google/uuid"
)

// Valid client statuses.
const (
	ClientStatusActive = "active"
	ClientStatusIdle   = "idle"
	ClientStatusGone   = "gone"
)

type Client struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Phone      string    `gorm:"not null" json:"phone"`
	Address    string    `gorm:"not null" json:"address"`
	Status     string    `gorm:"type:varchar(20);not null" json:"status"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`
	HasAccount bool      `gorm:"default:false" json:"has_account"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
