package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User is a login. Client users carry the client they belong to; admins
// have no client link.
type User struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"`
	Name      string     `gorm:"not null" json:"name"`
	Role      string     `gorm:"type:varchar(50);default:'user'" json:"role"`
	ClientID  *uuid.UUID `gorm:"type:uuid;index" json:"client_id,omitempty"`
	Phone     *string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// Migrate runs auto migration for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Client{}, &Task{}, &Invoice{}, &Payment{})
}
