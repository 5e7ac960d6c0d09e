package repository

import (
	"errors"

	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SurchargeRepository is the customer surcharge data access interface.
type SurchargeRepository interface {
	Get(articleID, customerID uint) (*models.CustomerSurcharge, error)
	Upsert(surcharge *models.CustomerSurcharge) error
	UpsertBatch(surcharges []models.CustomerSurcharge) error
	ListByCustomer(customerID uint) ([]models.CustomerSurcharge, error)
	ListByCustomerAndArticles(customerID uint, articleIDs []uint) ([]models.CustomerSurcharge, error)
	Delete(articleID, customerID uint) error
	WithTx(tx *gorm.DB) *GormSurchargeRepository
}

// GormSurchargeRepository is the GORM implementation.
type GormSurchargeRepository struct {
	db *gorm.DB
}

// NewSurchargeRepository creates a surcharge repository.
func NewSurchargeRepository(db *gorm.DB) *GormSurchargeRepository {
	return &GormSurchargeRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormSurchargeRepository) WithTx(tx *gorm.DB) *GormSurchargeRepository {
	if tx == nil {
		return r
	}
	return &GormSurchargeRepository{db: tx}
}

// Get fetches the surcharge row for an (article, customer) pair.
func (r *GormSurchargeRepository) Get(articleID, customerID uint) (*models.CustomerSurcharge, error) {
	var surcharge models.CustomerSurcharge
	if err := r.db.Where("article_id = ? AND customer_id = ?", articleID, customerID).
		First(&surcharge).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &surcharge, nil
}

// Upsert writes one surcharge row, updating the amount on conflict.
func (r *GormSurchargeRepository) Upsert(surcharge *models.CustomerSurcharge) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"surcharge_amount", "updated_at"}),
	}).Create(surcharge).Error
}

// UpsertBatch writes surcharge rows in bulk with conflict handling.
func (r *GormSurchargeRepository) UpsertBatch(surcharges []models.CustomerSurcharge) error {
	if len(surcharges) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "customer_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"surcharge_amount", "updated_at"}),
	}).CreateInBatches(&surcharges, 200).Error
}

// ListByCustomer returns all surcharge rows of a customer.
func (r *GormSurchargeRepository) ListByCustomer(customerID uint) ([]models.CustomerSurcharge, error) {
	var surcharges []models.CustomerSurcharge
	if err := r.db.Where("customer_id = ?", customerID).
		Order("article_id asc").Find(&surcharges).Error; err != nil {
		return nil, err
	}
	return surcharges, nil
}

// ListByCustomerAndArticles returns the customer's surcharge rows limited
// to the given articles.
func (r *GormSurchargeRepository) ListByCustomerAndArticles(customerID uint, articleIDs []uint) ([]models.CustomerSurcharge, error) {
	if len(articleIDs) == 0 {
		return nil, nil
	}
	var surcharges []models.CustomerSurcharge
	if err := r.db.Where("customer_id = ? AND article_id IN ?", customerID, articleIDs).
		Find(&surcharges).Error; err != nil {
		return nil, err
	}
	return surcharges, nil
}

// Delete removes the surcharge row for an (article, customer) pair.
func (r *GormSurchargeRepository) Delete(articleID, customerID uint) error {
	return r.db.Where("article_id = ? AND customer_id = ?", articleID, customerID).
		Delete(&models.CustomerSurcharge{}).Error
}
