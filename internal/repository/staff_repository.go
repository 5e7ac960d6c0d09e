package repository

import (
	"errors"
	"time"

	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
)

// StaffRepository is the staff account data access interface.
type StaffRepository interface {
	Create(staff *models.Staff) error
	GetByID(id uint) (*models.Staff, error)
	GetByUsername(username string) (*models.Staff, error)
	List(page, pageSize int) ([]models.Staff, int64, error)
	UpdateLastLogin(id uint, at time.Time) error
	UpdatePassword(id uint, passwordHash string, at time.Time) error
	WithTx(tx *gorm.DB) *GormStaffRepository
}

// GormStaffRepository is the GORM implementation.
type GormStaffRepository struct {
	db *gorm.DB
}

// NewStaffRepository creates a staff repository.
func NewStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormStaffRepository) WithTx(tx *gorm.DB) *GormStaffRepository {
	if tx == nil {
		return r
	}
	return &GormStaffRepository{db: tx}
}

// Create stores a staff account.
func (r *GormStaffRepository) Create(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

// GetByID fetches a staff account by id.
func (r *GormStaffRepository) GetByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// GetByUsername fetches a staff account by username.
func (r *GormStaffRepository) GetByUsername(username string) (*models.Staff, error) {
	var staff models.Staff
	if err := r.db.Where("username = ?", username).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &staff, nil
}

// List returns a page of staff accounts.
func (r *GormStaffRepository) List(page, pageSize int) ([]models.Staff, int64, error) {
	query := r.db.Model(&models.Staff{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var staff []models.Staff
	if err := query.Order("id asc").Find(&staff).Error; err != nil {
		return nil, 0, err
	}
	return staff, total, nil
}

// UpdateLastLogin records a successful login.
func (r *GormStaffRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Staff{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}

// UpdatePassword replaces the password hash and invalidates older tokens
// by bumping the token version.
func (r *GormStaffRepository) UpdatePassword(id uint, passwordHash string, at time.Time) error {
	return r.db.Model(&models.Staff{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"password_hash":        passwordHash,
			"token_version":        gorm.Expr("token_version + 1"),
			"token_invalid_before": at,
		}).Error
}
