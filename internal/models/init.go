package models

import (
	"strings"

	"github.com/fleischwerk-next/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin creates the initial admin staff account on an empty
// installation.
func InitDefaultAdmin(username, password string) error {
	var count int64
	DB.Model(&Staff{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	staff := Staff{
		Username:     username,
		DisplayName:  "Administrator",
		PasswordHash: string(hash),
		Role:         "admin",
	}

	if err := DB.Create(&staff).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", strings.TrimSpace(username), "password_hidden", true)
	}

	return nil
}
