package service

import (
	"strings"
	"time"

	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService creates orders and edits their positions before picking
// starts. Position writes and the derived price recompute share one
// transaction.
type OrderService struct {
	orderRepo        repository.OrderRepository
	positionRepo     repository.PositionRepository
	articleRepo      repository.ArticleRepository
	customerRepo     repository.CustomerRepository
	pricingService   *PricingService
	surchargeService *SurchargeService
	maxPositions     int
}

// NewOrderService creates the order service.
func NewOrderService(orderRepo repository.OrderRepository, positionRepo repository.PositionRepository, articleRepo repository.ArticleRepository, customerRepo repository.CustomerRepository, pricingService *PricingService, surchargeService *SurchargeService, maxPositions int) *OrderService {
	if maxPositions <= 0 {
		maxPositions = 200
	}
	return &OrderService{
		orderRepo:        orderRepo,
		positionRepo:     positionRepo,
		articleRepo:      articleRepo,
		customerRepo:     customerRepo,
		pricingService:   pricingService,
		surchargeService: surchargeService,
		maxPositions:     maxPositions,
	}
}

// CreateOrderInput is the order intake payload from the sales flow.
type CreateOrderInput struct {
	OrderNo      string
	CustomerID   uint
	DeliveryDate *string
	Remarks      string
	Positions    []CreatePositionInput
}

// CreatePositionInput is one intake line.
type CreatePositionInput struct {
	ArticleID        uint
	OrderedQty       models.Weight
	Unit             string
	Remark           string
	NeedsDisassembly bool
	NeedsVacuum      bool
}

// CreateOrder creates an order with priced positions. Unit prices are
// snapshotted at intake; later surcharge edits never touch existing
// orders.
func (s *OrderService) CreateOrder(input CreateOrderInput) (*models.Order, error) {
	orderNo := strings.TrimSpace(input.OrderNo)
	if orderNo == "" || input.CustomerID == 0 || len(input.Positions) == 0 {
		return nil, ErrInvalidPosition
	}
	if len(input.Positions) > s.maxPositions {
		return nil, ErrTooManyPositions
	}

	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrCustomerNotFound
	}

	order := &models.Order{
		OrderNo:              orderNo,
		CustomerID:           input.CustomerID,
		Status:               constants.OrderStatusOffen,
		KommissioniertStatus: constants.PickingStatusOffen,
		KontrolliertStatus:   constants.ControlStatusOffen,
		Remarks:              input.Remarks,
	}
	if input.DeliveryDate != nil {
		parsed, err := parseDeliveryDate(*input.DeliveryDate)
		if err != nil {
			return nil, ErrInvalidPosition
		}
		order.DeliveryDate = parsed
	}

	positions := make([]models.OrderPosition, 0, len(input.Positions))
	for _, line := range input.Positions {
		position, err := s.buildPosition(line, input.CustomerID)
		if err != nil {
			return nil, err
		}
		positions = append(positions, *position)
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).Create(order, positions); err != nil {
			return err
		}
		return s.pricingService.RecomputeOrderTotals(tx, order.ID)
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateOrderNumber
		}
		return nil, err
	}

	logger.Infow("order_created",
		"order_id", order.ID,
		"order_no", order.OrderNo,
		"customer_id", order.CustomerID,
		"positions", len(positions),
	)
	return s.orderRepo.GetByID(order.ID)
}

// AddPosition appends a position to an order whose picking has not
// started.
func (s *OrderService) AddPosition(orderID uint, input CreatePositionInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.KommissioniertStatus != constants.PickingStatusOffen {
		return nil, ErrOrderNotEditable
	}
	if len(order.Positions) >= s.maxPositions {
		return nil, ErrTooManyPositions
	}

	position, err := s.buildPosition(input, order.CustomerID)
	if err != nil {
		return nil, err
	}
	position.OrderID = orderID

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.positionRepo.WithTx(tx).Create(position); err != nil {
			return err
		}
		return s.pricingService.RecomputeOrderTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// UpdatePositionInput changes quantity or unit of an intake line.
type UpdatePositionInput struct {
	OrderedQty models.Weight
	Unit       string
	Remark     *string
}

// UpdatePosition edits an intake line before picking starts and
// recomputes the derived prices.
func (s *OrderService) UpdatePosition(orderID, positionID uint, input UpdatePositionInput) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.KommissioniertStatus != constants.PickingStatusOffen {
		return nil, ErrOrderNotEditable
	}

	position, err := s.positionRepo.GetByID(positionID)
	if err != nil {
		return nil, err
	}
	if position == nil || position.OrderID != orderID {
		return nil, ErrPositionNotFound
	}

	if !validUnit(input.Unit) {
		return nil, ErrInvalidPosition
	}
	if !input.OrderedQty.Decimal.IsPositive() {
		return nil, ErrInvalidPosition
	}

	article, err := s.articleRepo.GetByID(position.ArticleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	position.OrderedQty = input.OrderedQty
	position.Unit = input.Unit
	if input.Remark != nil {
		position.Remark = *input.Remark
	}
	s.pricingService.ComputeLine(position, article, position.UnitPrice)

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.positionRepo.WithTx(tx).Update(position); err != nil {
			return err
		}
		return s.pricingService.RecomputeOrderTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// DeletePosition removes an intake line before picking starts.
func (s *OrderService) DeletePosition(orderID, positionID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.KommissioniertStatus != constants.PickingStatusOffen {
		return nil, ErrOrderNotEditable
	}

	position, err := s.positionRepo.GetByID(positionID)
	if err != nil {
		return nil, err
	}
	if position == nil || position.OrderID != orderID {
		return nil, ErrPositionNotFound
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.positionRepo.WithTx(tx).Delete(positionID); err != nil {
			return err
		}
		return s.pricingService.RecomputeOrderTotals(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.GetByID(orderID)
}

// buildPosition validates an intake line and derives its prices.
func (s *OrderService) buildPosition(input CreatePositionInput, customerID uint) (*models.OrderPosition, error) {
	if input.ArticleID == 0 || !input.OrderedQty.Decimal.IsPositive() || !validUnit(input.Unit) {
		return nil, ErrInvalidPosition
	}

	article, err := s.articleRepo.GetByID(input.ArticleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}

	unitPrice, err := s.surchargeService.ResolveEffectivePrice(article, customerID)
	if err != nil {
		return nil, err
	}

	position := &models.OrderPosition{
		ArticleID:        input.ArticleID,
		OrderedQty:       input.OrderedQty,
		Unit:             input.Unit,
		Remark:           input.Remark,
		NeedsDisassembly: input.NeedsDisassembly,
		NeedsVacuum:      input.NeedsVacuum,
	}
	s.pricingService.ComputeLine(position, article, unitPrice)
	return position, nil
}

// parseDeliveryDate accepts date-only and RFC3339 forms.
func parseDeliveryDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	if parsed, err := time.Parse("2006-01-02", trimmed); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func validUnit(unit string) bool {
	switch unit {
	case constants.UnitKg, constants.UnitStueck, constants.UnitKiste, constants.UnitKarton:
		return true
	}
	return false
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
