package service

import (
	"errors"
	"testing"

	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/repository"
)

func TestOverrideCompletePickingWithOpenPositions(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-6001", 2)
	admin := adminActor(1)

	if _, err := env.workflowService.ClaimPicking(pickerActor(10), order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	forced, err := env.overrideService.CompletePicking(admin, order.ID, 2, "req-1")
	if err != nil {
		t.Fatalf("override: %v", err)
	}
	if forced.KommissioniertStatus != constants.PickingStatusFertig {
		t.Fatalf("picking status = %s", forced.KommissioniertStatus)
	}

	logs, total, err := env.overrideService.ListAuditLogs(admin, repository.OverrideAuditLogListFilter{OrderID: order.ID})
	if err != nil {
		t.Fatalf("list audit: %v", err)
	}
	if total != 1 || logs[0].Action != constants.OverrideActionCompletePicking {
		t.Fatalf("audit trail wrong: total=%d logs=%v", total, logs)
	}
	if logs[0].DetailJSON["unpicked_positions"] == nil {
		t.Fatal("audit detail missing unpicked count")
	}
}

func TestOverrideRequiresAdmin(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-6002", 1)

	if _, err := env.overrideService.CompletePicking(pickerActor(10), order.ID, 1, "req-2"); !errors.Is(err, ErrRoleForbidden) {
		t.Fatalf("err = %v, want ErrRoleForbidden", err)
	}
	if _, err := env.overrideService.SetStatus(controllerActor(20), order.ID, SetStatusInput{Axis: "sales", Status: "storniert"}, "req-3"); !errors.Is(err, ErrRoleForbidden) {
		t.Fatalf("err = %v, want ErrRoleForbidden", err)
	}
}

func TestOverrideSetStatusBackwards(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-6003", 1)
	admin := adminActor(1)
	picker := pickerActor(10)

	if _, err := env.workflowService.ClaimPicking(picker, order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	reset, err := env.overrideService.SetStatus(admin, order.ID, SetStatusInput{
		Axis:   constants.EventAxisPicking,
		Status: constants.PickingStatusOffen,
	}, "req-4")
	if err != nil {
		t.Fatalf("override set status: %v", err)
	}
	if reset.KommissioniertStatus != constants.PickingStatusOffen {
		t.Fatalf("picking status = %s, want offen", reset.KommissioniertStatus)
	}
	if reset.KommissioniertBy != nil {
		t.Fatal("claimant must be cleared on reset")
	}

	// The freed order is claimable again.
	if _, err := env.workflowService.ClaimPicking(pickerActor(11), order.ID); err != nil {
		t.Fatalf("reclaim after reset: %v", err)
	}
}

func TestOverrideSetStatusRejectsUnknownValue(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-6004", 1)

	_, err := env.overrideService.SetStatus(adminActor(1), order.ID, SetStatusInput{
		Axis:   constants.EventAxisPicking,
		Status: "erledigt",
	}, "req-5")
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
}

func TestOverrideDeletePositionRecomputesTotals(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-6005", 2)
	admin := adminActor(1)

	if order.TotalPrice.String() != "4.00" {
		t.Fatalf("initial total = %s, want 4.00", order.TotalPrice.String())
	}

	updated, err := env.overrideService.DeletePosition(admin, order.ID, order.Positions[0].ID, "req-6")
	if err != nil {
		t.Fatalf("override delete: %v", err)
	}
	if updated.TotalPrice.String() != "2.00" {
		t.Fatalf("total after delete = %s, want 2.00", updated.TotalPrice.String())
	}
	if len(updated.Positions) != 1 {
		t.Fatalf("positions = %d, want 1", len(updated.Positions))
	}

	logs, _, err := env.overrideService.ListAuditLogs(admin, repository.OverrideAuditLogListFilter{
		OrderID: order.ID,
		Action:  constants.OverrideActionDeletePosition,
	})
	if err != nil || len(logs) != 1 {
		t.Fatalf("audit trail missing: logs=%v err=%v", logs, err)
	}
	if logs[0].PositionID == nil || *logs[0].PositionID != order.Positions[0].ID {
		t.Fatal("audit entry must reference the deleted position")
	}
}
