package service

import (
	"time"

	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/queue"
	"github.com/fleischwerk-next/internal/repository"
)

// WorkflowService runs the picking and control state machines. Both
// axes only move forward; every transition is a conditional UPDATE in
// the repository, so two concurrent claimants resolve to exactly one
// winner without advisory locks.
type WorkflowService struct {
	orderRepo    repository.OrderRepository
	positionRepo repository.PositionRepository
	queueClient  *queue.Client
}

// NewWorkflowService creates the workflow engine.
func NewWorkflowService(orderRepo repository.OrderRepository, positionRepo repository.PositionRepository, queueClient *queue.Client) *WorkflowService {
	return &WorkflowService{
		orderRepo:    orderRepo,
		positionRepo: positionRepo,
		queueClient:  queueClient,
	}
}

// ClaimPicking claims the picking axis for the actor. The loser of a
// concurrent claim gets ErrAlreadyClaimed.
func (s *WorkflowService) ClaimPicking(actor Actor, orderID uint) (*models.Order, error) {
	if !actor.CanPick() {
		return nil, ErrRoleForbidden
	}

	ok, err := s.orderRepo.ClaimPicking(orderID, actor.StaffID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.pickingClaimFailure(orderID)
	}

	s.publishEvent(orderID, constants.EventAxisPicking, constants.PickingStatusGestartet, actor.StaffID)
	logger.Infow("picking_claimed", "order_id", orderID, "staff_id", actor.StaffID)
	return s.orderRepo.GetByID(orderID)
}

// CompletePositionInput carries the picking result of one position.
type CompletePositionInput struct {
	PickedQty    models.Weight
	PickedUnit   string
	GrossWeight  *models.Weight
	EmptyGoods   models.EmptyGoodsList
	BatchNumbers models.StringArray
	Remark       string
}

// CompletePosition records the picking result of one position. Only the
// picking claimant may write results, and only while picking is
// gestartet.
func (s *WorkflowService) CompletePosition(actor Actor, orderID, positionID uint, input CompletePositionInput) (*models.OrderPosition, error) {
	if !actor.CanPick() {
		return nil, ErrRoleForbidden
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.KommissioniertStatus != constants.PickingStatusGestartet {
		return nil, ErrIllegalTransition
	}
	if !actor.IsAdmin() && (order.KommissioniertBy == nil || *order.KommissioniertBy != actor.StaffID) {
		return nil, ErrNotClaimant
	}

	// Admins may record partial results; everyone else delivers the
	// full picking slip.
	if !actor.IsAdmin() {
		if input.PickedQty.Decimal.IsZero() || input.PickedUnit == "" || input.GrossWeight == nil {
			return nil, ErrMissingPickedFields
		}
	}

	position, err := s.positionRepo.GetByID(positionID)
	if err != nil {
		return nil, err
	}
	if position == nil || position.OrderID != orderID {
		return nil, ErrPositionNotFound
	}

	now := time.Now()
	pickedQty := input.PickedQty
	position.PickedQty = &pickedQty
	position.PickedUnit = input.PickedUnit
	position.PickedAt = &now
	position.GrossWeight = input.GrossWeight
	position.EmptyGoods = input.EmptyGoods
	position.BatchNumbers = input.BatchNumbers
	if input.Remark != "" {
		position.Remark = input.Remark
	}

	if err := s.positionRepo.Update(position); err != nil {
		return nil, err
	}
	return position, nil
}

// CompletePicking finishes the picking axis. Requires every position to
// carry a picking result; admins bypass that guard through the override
// service, not here.
func (s *WorkflowService) CompletePicking(actor Actor, orderID uint, totalPallets int) (*models.Order, error) {
	if !actor.CanPick() {
		return nil, ErrRoleForbidden
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.KommissioniertStatus != constants.PickingStatusGestartet {
		return nil, ErrIllegalTransition
	}
	if !actor.IsAdmin() && (order.KommissioniertBy == nil || *order.KommissioniertBy != actor.StaffID) {
		return nil, ErrNotClaimant
	}

	unpicked, err := s.positionRepo.CountUnpicked(orderID)
	if err != nil {
		return nil, err
	}
	if unpicked > 0 {
		return nil, ErrPositionsUnfinished
	}

	claimant := actor.StaffID
	if order.KommissioniertBy != nil {
		claimant = *order.KommissioniertBy
	}
	ok, err := s.orderRepo.FinishPicking(orderID, claimant, totalPallets, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIllegalTransition
	}

	s.publishEvent(orderID, constants.EventAxisPicking, constants.PickingStatusFertig, actor.StaffID)
	logger.Infow("picking_completed", "order_id", orderID, "staff_id", actor.StaffID, "total_pallets", totalPallets)
	return s.orderRepo.GetByID(orderID)
}

// ClaimControl claims the control axis. Requires picking to be fertig;
// the loser of a concurrent claim gets ErrAlreadyClaimed.
func (s *WorkflowService) ClaimControl(actor Actor, orderID uint) (*models.Order, error) {
	if !actor.CanControl() {
		return nil, ErrRoleForbidden
	}

	ok, err := s.orderRepo.ClaimControl(orderID, actor.StaffID, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, s.controlClaimFailure(orderID)
	}

	s.publishEvent(orderID, constants.EventAxisControl, constants.ControlStatusInKontrolle, actor.StaffID)
	logger.Infow("control_claimed", "order_id", orderID, "staff_id", actor.StaffID)
	return s.orderRepo.GetByID(orderID)
}

// CompleteControl finishes the control axis and closes the order.
func (s *WorkflowService) CompleteControl(actor Actor, orderID uint) (*models.Order, error) {
	if !actor.CanControl() {
		return nil, ErrRoleForbidden
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.KontrolliertStatus != constants.ControlStatusInKontrolle {
		return nil, ErrIllegalTransition
	}
	if !actor.IsAdmin() && (order.KontrolliertBy == nil || *order.KontrolliertBy != actor.StaffID) {
		return nil, ErrNotClaimant
	}

	claimant := actor.StaffID
	if order.KontrolliertBy != nil {
		claimant = *order.KontrolliertBy
	}
	ok, err := s.orderRepo.FinishControl(orderID, claimant, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrIllegalTransition
	}

	if err := s.orderRepo.UpdateFields(orderID, map[string]interface{}{
		"status": constants.OrderStatusAbgeschlossen,
	}); err != nil {
		return nil, err
	}

	s.publishEvent(orderID, constants.EventAxisControl, constants.ControlStatusGeprueft, actor.StaffID)
	logger.Infow("control_completed", "order_id", orderID, "staff_id", actor.StaffID)
	return s.orderRepo.GetByID(orderID)
}

// pickingClaimFailure turns a missed picking CAS into a precise error.
func (s *WorkflowService) pickingClaimFailure(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.KommissioniertStatus != constants.PickingStatusOffen && order.KommissioniertBy == nil {
		return ErrIllegalTransition
	}
	return ErrAlreadyClaimed
}

// controlClaimFailure turns a missed control CAS into a precise error.
func (s *WorkflowService) controlClaimFailure(orderID uint) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.KommissioniertStatus != constants.PickingStatusFertig {
		return ErrIllegalTransition
	}
	return ErrAlreadyClaimed
}

// publishEvent pushes a feed task, best effort. A down broker never
// blocks a workflow transition.
func (s *WorkflowService) publishEvent(orderID uint, axis, status string, actorID uint) {
	if s.queueClient == nil {
		return
	}
	err := s.queueClient.EnqueueOrderStatusEvent(queue.OrderStatusEventPayload{
		OrderID: orderID,
		Axis:    axis,
		Status:  status,
		ActorID: actorID,
	})
	if err != nil {
		logger.Warnw("order_status_event_enqueue_failed",
			"order_id", orderID,
			"axis", axis,
			"status", status,
			"error", err,
		)
	}
}
