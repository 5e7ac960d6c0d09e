package repository

import (
	"errors"
	"time"

	"github.com/fleischwerk-next/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository is the customer master data access interface.
type CustomerRepository interface {
	Create(customer *models.Customer) error
	GetByID(id uint) (*models.Customer, error)
	GetByNumber(number string) (*models.Customer, error)
	ListByCriteria(criteria CustomerCriteria) ([]models.Customer, error)
	List(page, pageSize int) ([]models.Customer, int64, error)
	UpdateLastLogin(id uint, at time.Time) error
	WithTx(tx *gorm.DB) *GormCustomerRepository
}

// GormCustomerRepository is the GORM implementation.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a customer repository.
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) *GormCustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

// Create stores a customer.
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// GetByID fetches a customer by id.
func (r *GormCustomerRepository) GetByID(id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByNumber fetches a customer by its unique number.
func (r *GormCustomerRepository) GetByNumber(number string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("number = ?", number).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// ListByCriteria returns customers matching the mass surcharge criteria.
// Empty criteria match all customers.
func (r *GormCustomerRepository) ListByCriteria(criteria CustomerCriteria) ([]models.Customer, error) {
	query := r.db.Model(&models.Customer{})
	if criteria.Category != "" {
		query = query.Where("category = ?", criteria.Category)
	}
	if criteria.Region != "" {
		query = query.Where("region = ?", criteria.Region)
	}

	var customers []models.Customer
	if err := query.Order("id asc").Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

// List returns a page of customers.
func (r *GormCustomerRepository) List(page, pageSize int) ([]models.Customer, int64, error) {
	query := r.db.Model(&models.Customer{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, page, pageSize)

	var customers []models.Customer
	if err := query.Order("id asc").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

// UpdateLastLogin records a successful login.
func (r *GormCustomerRepository) UpdateLastLogin(id uint, at time.Time) error {
	return r.db.Model(&models.Customer{}).Where("id = ?", id).
		Update("last_login_at", at).Error
}
