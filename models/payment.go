package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment lifecycle statuses. Transitions run pending -> invoiced ->
// received; the reconciler only ever applies the final step and never
// moves a received payment back.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusInvoiced = "invoiced"
	PaymentStatusReceived = "received"
)

// Payment is the one entity with a lifecycle. TransactionID and ReceivedAt
// are set together by the reconciler when the status becomes received and
// stay NULL before that.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TaskID        uuid.UUID  `gorm:"type:uuid;index;not null" json:"task_id"`
	ClientID      uuid.UUID  `gorm:"type:uuid;index;not null" json:"client_id"`
	Amount        float64    `gorm:"not null" json:"amount"`
	Status        string     `gorm:"type:varchar(20);not null" json:"status"`
	DueDate       time.Time  `gorm:"not null" json:"due_date"`
	InvoiceNumber *string    `gorm:"type:varchar(50)" json:"invoice_number,omitempty"`
	Notes         *string    `gorm:"type:text" json:"notes,omitempty"`
	TransactionID *string    `gorm:"type:varchar(255)" json:"transaction_id,omitempty"`
	ReceivedAt    *time.Time `json:"received_at,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}
