package repository

import (
	"errors"
	"time"

	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository is the order data access interface. All claim and
// finish operations are single conditional UPDATEs; the boolean result
// reports whether the guard matched (false means a concurrent writer
// won or the order was not in the expected state).
type OrderRepository interface {
	Create(order *models.Order, positions []models.OrderPosition) error
	GetByID(id uint) (*models.Order, error)
	GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error)
	List(filter OrderListFilter) ([]models.Order, int64, error)
	ClaimPicking(orderID uint, staffID uint, now time.Time) (bool, error)
	FinishPicking(orderID uint, staffID uint, totalPallets int, now time.Time) (bool, error)
	ClaimControl(orderID uint, staffID uint, now time.Time) (bool, error)
	FinishControl(orderID uint, staffID uint, now time.Time) (bool, error)
	UpdateFields(id uint, updates map[string]interface{}) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository is the GORM implementation.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository.
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create stores an order with its positions.
func (r *GormOrderRepository) Create(order *models.Order, positions []models.OrderPosition) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	for i := range positions {
		positions[i].OrderID = order.ID
	}
	if len(positions) > 0 {
		if err := r.db.Create(&positions).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches an order with positions.
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Positions").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// GetByIDAndCustomer fetches an order scoped to a customer.
func (r *GormOrderRepository) GetByIDAndCustomer(id uint, customerID uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Positions").
		Where("id = ? AND customer_id = ?", id, customerID).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the filter.
func (r *GormOrderRepository) List(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{})

	if filter.CustomerID != 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PickingStatus != "" {
		query = query.Where("kommissioniert_status = ?", filter.PickingStatus)
	}
	if filter.ControlStatus != "" {
		query = query.Where("kontrolliert_status = ?", filter.ControlStatus)
	}
	if len(filter.PickingStatusNot) > 0 {
		query = query.Where("kommissioniert_status NOT IN ?", filter.PickingStatusNot)
	}
	if filter.KommissioniertBy != 0 {
		query = query.Where("kommissioniert_by = ?", filter.KommissioniertBy)
	}
	if filter.ControlVisibleTo != 0 {
		query = query.Where("kontrolliert_status <> ? OR kontrolliert_by = ?",
			constants.ControlStatusInKontrolle, filter.ControlVisibleTo)
	}
	if filter.DeliveryFrom != nil {
		query = query.Where("delivery_date >= ?", *filter.DeliveryFrom)
	}
	if filter.DeliveryTo != nil {
		query = query.Where("delivery_date <= ?", *filter.DeliveryTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Preload("Positions").Order("id desc").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// ClaimPicking atomically claims the picking axis for a staff member.
// The WHERE clause is the compare-and-set guard: only an unclaimed
// order in picking status "offen" matches.
func (r *GormOrderRepository) ClaimPicking(orderID uint, staffID uint, now time.Time) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND kommissioniert_status = ? AND kommissioniert_by IS NULL",
			orderID, constants.PickingStatusOffen).
		Updates(map[string]interface{}{
			"kommissioniert_status":     constants.PickingStatusGestartet,
			"kommissioniert_by":         staffID,
			"kommissioniert_start_time": now,
			"status":                    constants.OrderStatusInBearbeitung,
			"updated_at":                now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FinishPicking atomically moves picking from gestartet to fertig for
// its claimant and resets the control axis.
func (r *GormOrderRepository) FinishPicking(orderID uint, staffID uint, totalPallets int, now time.Time) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND kommissioniert_status = ? AND kommissioniert_by = ?",
			orderID, constants.PickingStatusGestartet, staffID).
		Updates(map[string]interface{}{
			"kommissioniert_status":   constants.PickingStatusFertig,
			"kommissioniert_end_time": now,
			"total_pallets":           totalPallets,
			"kontrolliert_status":     constants.ControlStatusOffen,
			"updated_at":              now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// ClaimControl atomically claims the control axis. Only a fully picked,
// unclaimed order matches the guard.
func (r *GormOrderRepository) ClaimControl(orderID uint, staffID uint, now time.Time) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND kommissioniert_status = ? AND kontrolliert_status = ? AND kontrolliert_by IS NULL",
			orderID, constants.PickingStatusFertig, constants.ControlStatusOffen).
		Updates(map[string]interface{}{
			"kontrolliert_status": constants.ControlStatusInKontrolle,
			"kontrolliert_by":     staffID,
			"updated_at":          now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// FinishControl atomically moves control from in_kontrolle to geprueft
// for its claimant.
func (r *GormOrderRepository) FinishControl(orderID uint, staffID uint, now time.Time) (bool, error) {
	result := r.db.Model(&models.Order{}).
		Where("id = ? AND kontrolliert_status = ? AND kontrolliert_by = ?",
			orderID, constants.ControlStatusInKontrolle, staffID).
		Updates(map[string]interface{}{
			"kontrolliert_status": constants.ControlStatusGeprueft,
			"kontrolliert_time":   now,
			"updated_at":          now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

// UpdateFields writes arbitrary order fields. Reserved for the audited
// admin override path.
func (r *GormOrderRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error
}
