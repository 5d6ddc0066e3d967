package models

import (
	"time"

	"github.com/google/uuid"
)

type Invoice struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ClientID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"client_id"`
	InvoiceNumber string     `gorm:"type:varchar(50);unique;not null" json:"invoice_number"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Status        string     `gorm:"type:varchar(20);not null" json:"status"`
	IssueDate     time.Time  `gorm:"not null" json:"issue_date"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Notes         *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
