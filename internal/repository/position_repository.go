package repository

import (
	"errors"

	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
)

// PositionRepository is the order position data access interface.
type PositionRepository interface {
	Create(position *models.OrderPosition) error
	GetByID(id uint) (*models.OrderPosition, error)
	ListByOrder(orderID uint) ([]models.OrderPosition, error)
	CountUnpicked(orderID uint) (int64, error)
	Update(position *models.OrderPosition) error
	UpdateFields(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormPositionRepository
}

// GormPositionRepository is the GORM implementation.
type GormPositionRepository struct {
	db *gorm.DB
}

// NewPositionRepository creates a position repository.
func NewPositionRepository(db *gorm.DB) *GormPositionRepository {
	return &GormPositionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormPositionRepository) WithTx(tx *gorm.DB) *GormPositionRepository {
	if tx == nil {
		return r
	}
	return &GormPositionRepository{db: tx}
}

// Create stores a position.
func (r *GormPositionRepository) Create(position *models.OrderPosition) error {
	return r.db.Create(position).Error
}

// GetByID fetches a position by id.
func (r *GormPositionRepository) GetByID(id uint) (*models.OrderPosition, error) {
	var position models.OrderPosition
	if err := r.db.First(&position, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &position, nil
}

// ListByOrder returns all positions of an order.
func (r *GormPositionRepository) ListByOrder(orderID uint) ([]models.OrderPosition, error) {
	var positions []models.OrderPosition
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// CountUnpicked counts positions of an order without a picked quantity.
func (r *GormPositionRepository) CountUnpicked(orderID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.OrderPosition{}).
		Where("order_id = ? AND picked_qty IS NULL", orderID).
		Count(&count).Error
	return count, err
}

// Update saves a full position record.
func (r *GormPositionRepository) Update(position *models.OrderPosition) error {
	return r.db.Save(position).Error
}

// UpdateFields writes selected position fields.
func (r *GormPositionRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.OrderPosition{}).Where("id = ?", id).Updates(updates).Error
}

// Delete soft-deletes a position.
func (r *GormPositionRepository) Delete(id uint) error {
	return r.db.Delete(&models.OrderPosition{}, id).Error
}
