package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer is a wholesale customer master record. The kunde role logs in
// against this row for read-only access to its own orders.
type Customer struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(200);not null" json:"name"`
	Number       string         `gorm:"uniqueIndex;type:varchar(50);not null" json:"number"`
	Category     string         `gorm:"type:varchar(100);index" json:"category"` // customer group (Gastronomie, Einzelhandel, ...)
	Region       string         `gorm:"type:varchar(100);index" json:"region"`
	PasswordHash string         `gorm:"type:varchar(200)" json:"-"`
	LastLoginAt  *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Customer) TableName() string {
	return "customers"
}
