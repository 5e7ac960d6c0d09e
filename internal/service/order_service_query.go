package service

import (
	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"
)

// OrderQueryService answers role-scoped order reads. Visibility rules
// live here so handlers stay thin: pickers see open work and their own
// claims, controllers never see another controller's active claim, and
// customers only see their own orders.
type OrderQueryService struct {
	orderRepo      repository.OrderRepository
	orderEventRepo repository.OrderEventRepository
}

// NewOrderQueryService creates the query service.
func NewOrderQueryService(orderRepo repository.OrderRepository, orderEventRepo repository.OrderEventRepository) *OrderQueryService {
	return &OrderQueryService{
		orderRepo:      orderRepo,
		orderEventRepo: orderEventRepo,
	}
}

// ListOrdersInput carries listing parameters from the handler.
type ListOrdersInput struct {
	Page          int
	PageSize      int
	Status        string
	PickingStatus string
	ControlStatus string
	CustomerID    uint
}

// ListForStaff lists orders visible to a staff actor.
func (s *OrderQueryService) ListForStaff(actor Actor, input ListOrdersInput) ([]models.Order, int64, error) {
	filter := repository.OrderListFilter{
		Page:          input.Page,
		PageSize:      input.PageSize,
		Status:        input.Status,
		PickingStatus: input.PickingStatus,
		ControlStatus: input.ControlStatus,
		CustomerID:    input.CustomerID,
	}

	switch actor.Role {
	case constants.RoleAdmin:
		// Admins see everything.
	case constants.RoleKontrolle:
		filter.ControlVisibleTo = actor.StaffID
	case constants.RoleKommissionierung:
		// Once picking is fertig the order belongs to the control
		// queue and leaves the picker's view.
		filter.PickingStatusNot = []string{constants.PickingStatusFertig}
	default:
		return nil, 0, ErrRoleForbidden
	}

	return s.orderRepo.List(filter)
}

// GetForStaff fetches one order for a staff actor.
func (s *OrderQueryService) GetForStaff(actor Actor, orderID uint) (*models.Order, error) {
	switch actor.Role {
	case constants.RoleAdmin, constants.RoleKommissionierung, constants.RoleKontrolle:
	default:
		return nil, ErrRoleForbidden
	}
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if actor.Role == constants.RoleKontrolle &&
		order.KontrolliertStatus == constants.ControlStatusInKontrolle &&
		order.KontrolliertBy != nil && *order.KontrolliertBy != actor.StaffID {
		return nil, ErrOrderNotFound
	}
	if actor.Role == constants.RoleKommissionierung &&
		order.KommissioniertStatus == constants.PickingStatusFertig {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListForCustomer lists the customer's own orders.
func (s *OrderQueryService) ListForCustomer(customerID uint, page, pageSize int) ([]models.Order, int64, error) {
	if customerID == 0 {
		return nil, 0, ErrCustomerNotFound
	}
	return s.orderRepo.List(repository.OrderListFilter{
		Page:       page,
		PageSize:   pageSize,
		CustomerID: customerID,
	})
}

// GetForCustomer fetches one of the customer's own orders.
func (s *OrderQueryService) GetForCustomer(customerID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndCustomer(orderID, customerID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// ListEvents returns the status feed of an order.
func (s *OrderQueryService) ListEvents(actor Actor, orderID uint) ([]models.OrderEvent, error) {
	if _, err := s.GetForStaff(actor, orderID); err != nil {
		return nil, err
	}
	return s.orderEventRepo.ListByOrder(orderID)
}
