package repository

import (
	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
)

// OverrideAuditLogRepository is the override audit trail access
// interface. Logs are append-only; there is no update or delete.
type OverrideAuditLogRepository interface {
	Create(log *models.OverrideAuditLog) error
	List(filter OverrideAuditLogListFilter) ([]models.OverrideAuditLog, int64, error)
	WithTx(tx *gorm.DB) *GormOverrideAuditLogRepository
}

// GormOverrideAuditLogRepository is the GORM implementation.
type GormOverrideAuditLogRepository struct {
	db *gorm.DB
}

// NewOverrideAuditLogRepository creates an override audit log repository.
func NewOverrideAuditLogRepository(db *gorm.DB) *GormOverrideAuditLogRepository {
	return &GormOverrideAuditLogRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormOverrideAuditLogRepository) WithTx(tx *gorm.DB) *GormOverrideAuditLogRepository {
	if tx == nil {
		return r
	}
	return &GormOverrideAuditLogRepository{db: tx}
}

// Create appends an audit entry.
func (r *GormOverrideAuditLogRepository) Create(log *models.OverrideAuditLog) error {
	return r.db.Create(log).Error
}

// List returns audit entries matching the filter, newest first.
func (r *GormOverrideAuditLogRepository) List(filter OverrideAuditLogListFilter) ([]models.OverrideAuditLog, int64, error) {
	query := r.db.Model(&models.OverrideAuditLog{})

	if filter.OperatorStaffID != 0 {
		query = query.Where("operator_staff_id = ?", filter.OperatorStaffID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var logs []models.OverrideAuditLog
	if err := query.Order("id desc").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
