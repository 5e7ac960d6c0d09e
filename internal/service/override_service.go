package service

import (
	"time"

	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"

	"gorm.io/gorm"
)

// OverrideService is the admin-only escape hatch around the workflow
// guards. Every override writes its audit entry in the same transaction
// as the change itself; an override without a trail cannot happen.
type OverrideService struct {
	orderRepo      repository.OrderRepository
	positionRepo   repository.PositionRepository
	auditRepo      repository.OverrideAuditLogRepository
	pricingService *PricingService
}

// NewOverrideService creates the override service.
func NewOverrideService(orderRepo repository.OrderRepository, positionRepo repository.PositionRepository, auditRepo repository.OverrideAuditLogRepository, pricingService *PricingService) *OverrideService {
	return &OverrideService{
		orderRepo:      orderRepo,
		positionRepo:   positionRepo,
		auditRepo:      auditRepo,
		pricingService: pricingService,
	}
}

// CompletePicking forces the picking axis to fertig regardless of open
// positions.
func (s *OverrideService) CompletePicking(actor Actor, orderID uint, totalPallets int, requestID string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrRoleForbidden
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	if order.KommissioniertStatus == constants.PickingStatusFertig {
		return nil, ErrIllegalTransition
	}

	unpicked, err := s.positionRepo.CountUnpicked(orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = models.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"kommissioniert_status":   constants.PickingStatusFertig,
			"kommissioniert_end_time": now,
			"kontrolliert_status":     constants.ControlStatusOffen,
		}
		if totalPallets > 0 {
			updates["total_pallets"] = totalPallets
		}
		if order.KommissioniertBy == nil {
			updates["kommissioniert_by"] = actor.StaffID
		}
		if err := s.orderRepo.WithTx(tx).UpdateFields(orderID, updates); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Create(&models.OverrideAuditLog{
			OperatorStaffID:  actor.StaffID,
			OperatorUsername: actor.Username,
			OrderID:          orderID,
			Action:           constants.OverrideActionCompletePicking,
			RequestID:        requestID,
			DetailJSON: models.JSON{
				"previous_picking_status": order.KommissioniertStatus,
				"unpicked_positions":      unpicked,
				"total_pallets":           totalPallets,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Warnw("override_complete_picking",
		"order_id", orderID,
		"staff_id", actor.StaffID,
		"unpicked_positions", unpicked,
	)
	return s.orderRepo.GetByID(orderID)
}

// SetStatusInput is a direct status edit on one axis.
type SetStatusInput struct {
	Axis   string // kommissionierung / kontrolle / sales
	Status string
}

var overrideStatusValues = map[string]map[string]bool{
	constants.EventAxisPicking: {
		constants.PickingStatusOffen:     true,
		constants.PickingStatusGestartet: true,
		constants.PickingStatusFertig:    true,
	},
	constants.EventAxisControl: {
		constants.ControlStatusOffen:       true,
		constants.ControlStatusInKontrolle: true,
		constants.ControlStatusGeprueft:    true,
	},
	"sales": {
		constants.OrderStatusOffen:         true,
		constants.OrderStatusInBearbeitung: true,
		constants.OrderStatusAbgeschlossen: true,
		constants.OrderStatusStorniert:     true,
	},
}

// SetStatus edits one status axis directly, including backwards moves
// the state machines forbid.
func (s *OverrideService) SetStatus(actor Actor, orderID uint, input SetStatusInput, requestID string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrRoleForbidden
	}

	allowed, ok := overrideStatusValues[input.Axis]
	if !ok || !allowed[input.Status] {
		return nil, ErrIllegalTransition
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	updates := map[string]interface{}{}
	var previous string
	switch input.Axis {
	case constants.EventAxisPicking:
		previous = order.KommissioniertStatus
		updates["kommissioniert_status"] = input.Status
		if input.Status == constants.PickingStatusOffen {
			updates["kommissioniert_by"] = nil
			updates["kommissioniert_start_time"] = nil
			updates["kommissioniert_end_time"] = nil
		}
	case constants.EventAxisControl:
		previous = order.KontrolliertStatus
		updates["kontrolliert_status"] = input.Status
		if input.Status == constants.ControlStatusOffen {
			updates["kontrolliert_by"] = nil
			updates["kontrolliert_time"] = nil
		}
	case "sales":
		previous = order.Status
		updates["status"] = input.Status
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.orderRepo.WithTx(tx).UpdateFields(orderID, updates); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Create(&models.OverrideAuditLog{
			OperatorStaffID:  actor.StaffID,
			OperatorUsername: actor.Username,
			OrderID:          orderID,
			Action:           constants.OverrideActionSetStatus,
			RequestID:        requestID,
			DetailJSON: models.JSON{
				"axis":            input.Axis,
				"previous_status": previous,
				"new_status":      input.Status,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Warnw("override_set_status",
		"order_id", orderID,
		"staff_id", actor.StaffID,
		"axis", input.Axis,
		"status", input.Status,
	)
	return s.orderRepo.GetByID(orderID)
}

// DeletePosition removes a position regardless of picking progress and
// recomputes the order totals.
func (s *OverrideService) DeletePosition(actor Actor, orderID, positionID uint, requestID string) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, ErrRoleForbidden
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
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
		if err := s.pricingService.RecomputeOrderTotals(tx, orderID); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Create(&models.OverrideAuditLog{
			OperatorStaffID:  actor.StaffID,
			OperatorUsername: actor.Username,
			OrderID:          orderID,
			PositionID:       &positionID,
			Action:           constants.OverrideActionDeletePosition,
			RequestID:        requestID,
			DetailJSON: models.JSON{
				"article_id": position.ArticleID,
				"was_picked": position.PickedQty != nil,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Warnw("override_delete_position",
		"order_id", orderID,
		"position_id", positionID,
		"staff_id", actor.StaffID,
	)
	return s.orderRepo.GetByID(orderID)
}

// ListAuditLogs returns the override trail.
func (s *OverrideService) ListAuditLogs(actor Actor, filter repository.OverrideAuditLogListFilter) ([]models.OverrideAuditLog, int64, error) {
	if !actor.IsAdmin() {
		return nil, 0, ErrRoleForbidden
	}
	return s.auditRepo.List(filter)
}
