package service

import (
	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SurchargeService maintains per-customer price adjustments and
// resolves effective prices. Only exact (article, customer) rows exist;
// the mass endpoints materialize rows for every matching customer at
// write time, so price resolution stays a single lookup.
type SurchargeService struct {
	surchargeRepo repository.SurchargeRepository
	articleRepo   repository.ArticleRepository
	customerRepo  repository.CustomerRepository
}

// NewSurchargeService creates the surcharge service.
func NewSurchargeService(surchargeRepo repository.SurchargeRepository, articleRepo repository.ArticleRepository, customerRepo repository.CustomerRepository) *SurchargeService {
	return &SurchargeService{
		surchargeRepo: surchargeRepo,
		articleRepo:   articleRepo,
		customerRepo:  customerRepo,
	}
}

// ResolveEffectivePrice returns base price plus the customer's
// surcharge, if any. A missing surcharge row means base price.
func (s *SurchargeService) ResolveEffectivePrice(article *models.Article, customerID uint) (models.Money, error) {
	if article == nil {
		return models.Money{}, ErrArticleNotFound
	}
	surcharge, err := s.surchargeRepo.Get(article.ID, customerID)
	if err != nil {
		return models.Money{}, err
	}
	if surcharge == nil {
		return article.BasePrice, nil
	}
	return models.NewMoneyFromDecimal(article.BasePrice.Decimal.Add(surcharge.SurchargeAmount.Decimal)), nil
}

// SetSurcharge writes one (article, customer) surcharge row.
func (s *SurchargeService) SetSurcharge(articleID, customerID uint, amount models.Money) error {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return ErrCustomerNotFound
	}
	return s.surchargeRepo.Upsert(&models.CustomerSurcharge{
		ArticleID:       articleID,
		CustomerID:      customerID,
		SurchargeAmount: amount,
	})
}

// DeleteSurcharge removes one surcharge row.
func (s *SurchargeService) DeleteSurcharge(articleID, customerID uint) error {
	return s.surchargeRepo.Delete(articleID, customerID)
}

// ListByCustomer returns all surcharge rows of a customer.
func (s *SurchargeService) ListByCustomer(customerID uint) ([]models.CustomerSurcharge, error) {
	customer, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}
	return s.surchargeRepo.ListByCustomer(customerID)
}

// MassSurchargeInput materializes one surcharge amount for an article
// across all customers matching the criteria.
type MassSurchargeInput struct {
	ArticleID uint
	Criteria  repository.CustomerCriteria
	Amount    models.Money
}

// ApplyMassSurcharge writes the surcharge for every matching customer
// in one transaction. Customers added later are not affected; a rule is
// a write-time materialization, not a standing condition.
func (s *SurchargeService) ApplyMassSurcharge(input MassSurchargeInput) (int, error) {
	article, err := s.articleRepo.GetByID(input.ArticleID)
	if err != nil {
		return 0, err
	}
	if article == nil {
		return 0, ErrArticleNotFound
	}

	customers, err := s.customerRepo.ListByCriteria(input.Criteria)
	if err != nil {
		return 0, err
	}
	if len(customers) == 0 {
		return 0, nil
	}

	rows := make([]models.CustomerSurcharge, 0, len(customers))
	for _, customer := range customers {
		rows = append(rows, models.CustomerSurcharge{
			ArticleID:       input.ArticleID,
			CustomerID:      customer.ID,
			SurchargeAmount: input.Amount,
		})
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.surchargeRepo.WithTx(tx).UpsertBatch(rows)
	})
	if err != nil {
		return 0, err
	}

	logger.Infow("mass_surcharge_applied",
		"article_id", input.ArticleID,
		"customers", len(rows),
		"amount", input.Amount.String(),
	)
	return len(rows), nil
}

// BulkEditInput adjusts the existing surcharge rows of one customer
// over an article selection.
type BulkEditInput struct {
	CustomerID uint
	Selection  repository.ArticleSelection
	Mode       string
	Amount     models.Money
}

// BulkEditByCustomer adjusts existing surcharge rows in bulk. Only
// articles that already carry a row for the customer are touched; set
// replaces the amount, add and sub shift it. An empty selection is
// rejected instead of silently matching everything.
func (s *SurchargeService) BulkEditByCustomer(input BulkEditInput) (int, error) {
	if input.Selection.IsEmpty() {
		return 0, ErrEmptySelection
	}
	switch input.Mode {
	case constants.SurchargeModeSet, constants.SurchargeModeAdd, constants.SurchargeModeSub:
	default:
		return 0, ErrInvalidSurcharge
	}

	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return 0, err
	}
	if customer == nil {
		return 0, ErrCustomerNotFound
	}

	articles, err := s.articleRepo.ListBySelection(input.Selection)
	if err != nil {
		return 0, err
	}
	if len(articles) == 0 {
		return 0, ErrEmptySelection
	}
	articleIDs := make([]uint, 0, len(articles))
	for _, article := range articles {
		articleIDs = append(articleIDs, article.ID)
	}

	existing, err := s.surchargeRepo.ListByCustomerAndArticles(input.CustomerID, articleIDs)
	if err != nil {
		return 0, err
	}
	if len(existing) == 0 {
		return 0, nil
	}

	for i := range existing {
		existing[i].SurchargeAmount = applySurchargeMode(existing[i].SurchargeAmount, input.Mode, input.Amount)
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		return s.surchargeRepo.WithTx(tx).UpsertBatch(existing)
	})
	if err != nil {
		return 0, err
	}

	logger.Infow("surcharge_bulk_edit",
		"customer_id", input.CustomerID,
		"mode", input.Mode,
		"rows", len(existing),
	)
	return len(existing), nil
}

func applySurchargeMode(current models.Money, mode string, amount models.Money) models.Money {
	var next decimal.Decimal
	switch mode {
	case constants.SurchargeModeSet:
		next = amount.Decimal
	case constants.SurchargeModeAdd:
		next = current.Decimal.Add(amount.Decimal)
	case constants.SurchargeModeSub:
		next = current.Decimal.Sub(amount.Decimal)
	default:
		next = current.Decimal
	}
	return models.NewMoneyFromDecimal(next)
}
