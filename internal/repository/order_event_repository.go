package repository

import (
	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
)

// OrderEventRepository is the order status feed access interface.
type OrderEventRepository interface {
	Create(event *models.OrderEvent) error
	ListByOrder(orderID uint) ([]models.OrderEvent, error)
	WithTx(tx *gorm.DB) *GormOrderEventRepository
}

// GormOrderEventRepository is the GORM implementation.
type GormOrderEventRepository struct {
	db *gorm.DB
}

// NewOrderEventRepository creates an order event repository.
func NewOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderEventRepository) WithTx(tx *gorm.DB) *GormOrderEventRepository {
	if tx == nil {
		return r
	}
	return &GormOrderEventRepository{db: tx}
}

// Create appends a feed entry.
func (r *GormOrderEventRepository) Create(event *models.OrderEvent) error {
	return r.db.Create(event).Error
}

// ListByOrder returns the feed of an order in chronological order.
func (r *GormOrderEventRepository) ListByOrder(orderID uint) ([]models.OrderEvent, error) {
	var events []models.OrderEvent
	if err := r.db.Where("order_id = ?", orderID).Order("id asc").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
