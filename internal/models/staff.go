package models

import (
	"time"

	"gorm.io/gorm"
)

// Staff is a warehouse or office account (Kommissionierer, Kontrolleur,
// Zerleger, Admin). TokenVersion and TokenInvalidBefore support token
// revocation on password change.
type Staff struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"uniqueIndex;type:varchar(100);not null" json:"username"`
	DisplayName        string         `gorm:"type:varchar(100)" json:"display_name"`
	PasswordHash       string         `gorm:"type:varchar(200);not null" json:"-"`
	Role               string         `gorm:"type:varchar(50);index;not null" json:"role"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Staff) TableName() string {
	return "staff"
}

// IsAdmin reports whether the account has the admin role.
func (s *Staff) IsAdmin() bool {
	return s != nil && s.Role == "admin"
}
