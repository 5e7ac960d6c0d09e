package service

import (
	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricingService derives line weights, line prices and order totals.
// Derived values are recomputed inside the same transaction as the
// position write that triggered them; they are never edited directly.
type PricingService struct {
	orderRepo    repository.OrderRepository
	positionRepo repository.PositionRepository
	articleRepo  repository.ArticleRepository
}

// NewPricingService creates the pricing engine.
func NewPricingService(orderRepo repository.OrderRepository, positionRepo repository.PositionRepository, articleRepo repository.ArticleRepository) *PricingService {
	return &PricingService{
		orderRepo:    orderRepo,
		positionRepo: positionRepo,
		articleRepo:  articleRepo,
	}
}

// LineWeight converts an ordered quantity to kilograms using the
// article's unit conversion weights. Unknown units and unmaintained
// conversion weights yield zero; the order still flows through picking,
// only its price stays empty until master data is fixed.
func (s *PricingService) LineWeight(article *models.Article, qty models.Weight, unit string) models.Weight {
	if article == nil {
		return models.Weight{}
	}
	switch unit {
	case constants.UnitKg:
		return models.NewWeightFromDecimal(qty.Decimal)
	case constants.UnitStueck:
		return models.NewWeightFromDecimal(qty.Decimal.Mul(article.WeightPerPiece.Decimal))
	case constants.UnitKiste:
		return models.NewWeightFromDecimal(qty.Decimal.Mul(article.WeightPerCrate.Decimal))
	case constants.UnitKarton:
		return models.NewWeightFromDecimal(qty.Decimal.Mul(article.WeightPerCarton.Decimal))
	default:
		logger.Warnw("line_weight_unknown_unit",
			"article_id", article.ID,
			"unit", unit,
		)
		return models.Weight{}
	}
}

// ComputeLine fills LineWeight and LinePrice of a position from its
// article and the effective unit price.
func (s *PricingService) ComputeLine(position *models.OrderPosition, article *models.Article, unitPrice models.Money) {
	if position == nil {
		return
	}
	weight := s.LineWeight(article, position.OrderedQty, position.Unit)
	position.UnitPrice = unitPrice
	position.LineWeight = weight
	position.LinePrice = models.NewMoneyFromDecimal(unitPrice.Decimal.Mul(weight.Decimal))
}

// RecomputeOrderTotals sums line weights and prices of all live
// positions into the order header. Runs inside the caller's
// transaction.
func (s *PricingService) RecomputeOrderTotals(tx *gorm.DB, orderID uint) error {
	positions, err := s.positionRepo.WithTx(tx).ListByOrder(orderID)
	if err != nil {
		return err
	}

	totalWeight := decimal.Zero
	totalPrice := decimal.Zero
	for _, position := range positions {
		totalWeight = totalWeight.Add(position.LineWeight.Decimal)
		totalPrice = totalPrice.Add(position.LinePrice.Decimal)
	}

	return s.orderRepo.WithTx(tx).UpdateFields(orderID, map[string]interface{}{
		"total_weight": models.NewWeightFromDecimal(totalWeight),
		"total_price":  models.NewMoneyFromDecimal(totalPrice),
	})
}
