package service

import (
	"errors"
	"testing"

	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/models"
)

func (e *testEnv) createFlowOrder(t *testing.T, orderNo string, lines int) *models.Order {
	t.Helper()
	article := e.createArticle(t, "F-"+orderNo, 2.00, 0, 0, 0)
	customer := e.createCustomer(t, "KF-"+orderNo, "", "")

	positions := make([]CreatePositionInput, 0, lines)
	for i := 0; i < lines; i++ {
		positions = append(positions, CreatePositionInput{
			ArticleID:  article.ID,
			OrderedQty: models.NewWeightFromFloat(1),
			Unit:       "kg",
		})
	}
	order, err := e.orderService.CreateOrder(CreateOrderInput{
		OrderNo:    orderNo,
		CustomerID: customer.ID,
		Positions:  positions,
	})
	if err != nil {
		t.Fatalf("create flow order: %v", err)
	}
	return order
}

func grossWeight(value float64) *models.Weight {
	w := models.NewWeightFromFloat(value)
	return &w
}

func (e *testEnv) pickAll(t *testing.T, actor Actor, order *models.Order) {
	t.Helper()
	for _, position := range order.Positions {
		_, err := e.workflowService.CompletePosition(actor, order.ID, position.ID, CompletePositionInput{
			PickedQty:   models.NewWeightFromFloat(1),
			PickedUnit:  "kg",
			GrossWeight: grossWeight(1.1),
		})
		if err != nil {
			t.Fatalf("complete position %d: %v", position.ID, err)
		}
	}
}

func TestFullWorkflowHappyPath(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5001", 2)
	picker := pickerActor(10)
	controller := controllerActor(20)

	claimed, err := env.workflowService.ClaimPicking(picker, order.ID)
	if err != nil {
		t.Fatalf("claim picking: %v", err)
	}
	if claimed.KommissioniertStatus != constants.PickingStatusGestartet {
		t.Fatalf("picking status = %s", claimed.KommissioniertStatus)
	}

	env.pickAll(t, picker, order)

	finished, err := env.workflowService.CompletePicking(picker, order.ID, 3)
	if err != nil {
		t.Fatalf("complete picking: %v", err)
	}
	if finished.KommissioniertStatus != constants.PickingStatusFertig {
		t.Fatalf("picking status = %s", finished.KommissioniertStatus)
	}
	if finished.TotalPallets != 3 {
		t.Fatalf("total pallets = %d", finished.TotalPallets)
	}

	if _, err := env.workflowService.ClaimControl(controller, order.ID); err != nil {
		t.Fatalf("claim control: %v", err)
	}
	done, err := env.workflowService.CompleteControl(controller, order.ID)
	if err != nil {
		t.Fatalf("complete control: %v", err)
	}
	if done.KontrolliertStatus != constants.ControlStatusGeprueft {
		t.Fatalf("control status = %s", done.KontrolliertStatus)
	}
	if done.Status != constants.OrderStatusAbgeschlossen {
		t.Fatalf("order status = %s", done.Status)
	}
}

func TestClaimPickingSecondClaimantLoses(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5002", 1)

	if _, err := env.workflowService.ClaimPicking(pickerActor(10), order.ID); err != nil {
		t.Fatalf("first claim: %v", err)
	}
	_, err := env.workflowService.ClaimPicking(pickerActor(11), order.ID)
	if !errors.Is(err, ErrAlreadyClaimed) {
		t.Fatalf("err = %v, want ErrAlreadyClaimed", err)
	}
}

func TestClaimPickingRoleForbidden(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5003", 1)

	for _, actor := range []Actor{
		{StaffID: 30, Role: constants.RoleZerleger},
		{StaffID: 31, Role: constants.RoleKontrolle},
	} {
		if _, err := env.workflowService.ClaimPicking(actor, order.ID); !errors.Is(err, ErrRoleForbidden) {
			t.Fatalf("role %s: err = %v, want ErrRoleForbidden", actor.Role, err)
		}
	}
}

func TestCompletePositionOnlyClaimant(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5004", 1)
	picker := pickerActor(10)

	if _, err := env.workflowService.ClaimPicking(picker, order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	_, err := env.workflowService.CompletePosition(pickerActor(11), order.ID, order.Positions[0].ID, CompletePositionInput{
		PickedQty:   models.NewWeightFromFloat(1),
		PickedUnit:  "kg",
		GrossWeight: grossWeight(1.1),
	})
	if !errors.Is(err, ErrNotClaimant) {
		t.Fatalf("err = %v, want ErrNotClaimant", err)
	}
}

func TestCompletePositionRequiresPickedFields(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5005", 1)
	picker := pickerActor(10)

	if _, err := env.workflowService.ClaimPicking(picker, order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	_, err := env.workflowService.CompletePosition(picker, order.ID, order.Positions[0].ID, CompletePositionInput{})
	if !errors.Is(err, ErrMissingPickedFields) {
		t.Fatalf("err = %v, want ErrMissingPickedFields", err)
	}

	// Gross weight is part of the mandatory slip for pickers.
	_, err = env.workflowService.CompletePosition(picker, order.ID, order.Positions[0].ID, CompletePositionInput{
		PickedQty:  models.NewWeightFromFloat(1),
		PickedUnit: "kg",
	})
	if !errors.Is(err, ErrMissingPickedFields) {
		t.Fatalf("err = %v, want ErrMissingPickedFields", err)
	}
}

func TestCompletePositionAdminMaySkipFields(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5010", 1)

	if _, err := env.workflowService.ClaimPicking(pickerActor(10), order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	position, err := env.workflowService.CompletePosition(adminActor(1), order.ID, order.Positions[0].ID, CompletePositionInput{
		PickedUnit: "kg",
	})
	if err != nil {
		t.Fatalf("admin complete position: %v", err)
	}
	if position.PickedAt == nil {
		t.Fatal("picked_at not set")
	}
}

func TestCompletePickingRequiresAllPositions(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5006", 2)
	picker := pickerActor(10)

	if _, err := env.workflowService.ClaimPicking(picker, order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	if _, err := env.workflowService.CompletePosition(picker, order.ID, order.Positions[0].ID, CompletePositionInput{
		PickedQty:   models.NewWeightFromFloat(1),
		PickedUnit:  "kg",
		GrossWeight: grossWeight(1.1),
	}); err != nil {
		t.Fatalf("complete position: %v", err)
	}

	_, err := env.workflowService.CompletePicking(picker, order.ID, 1)
	if !errors.Is(err, ErrPositionsUnfinished) {
		t.Fatalf("err = %v, want ErrPositionsUnfinished", err)
	}
}

func TestCompletePickingOnlyClaimant(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5011", 1)
	picker := pickerActor(10)

	if _, err := env.workflowService.ClaimPicking(picker, order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	env.pickAll(t, picker, order)

	_, err := env.workflowService.CompletePicking(pickerActor(11), order.ID, 1)
	if !errors.Is(err, ErrNotClaimant) {
		t.Fatalf("err = %v, want ErrNotClaimant", err)
	}
}

func TestClaimControlBeforePickingFertig(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5007", 1)

	_, err := env.workflowService.ClaimControl(controllerActor(20), order.ID)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
	_, err = env.workflowService.CompleteControl(controllerActor(20), order.ID)
	if !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("complete control err = %v, want ErrIllegalTransition", err)
	}
}

func TestOrderNotEditableAfterPickingStarts(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5008", 1)
	article := env.createArticle(t, "F-EXTRA", 1.00, 0, 0, 0)

	if _, err := env.workflowService.ClaimPicking(pickerActor(10), order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	_, err := env.orderService.AddPosition(order.ID, CreatePositionInput{
		ArticleID:  article.ID,
		OrderedQty: models.NewWeightFromFloat(1),
		Unit:       "kg",
	})
	if !errors.Is(err, ErrOrderNotEditable) {
		t.Fatalf("err = %v, want ErrOrderNotEditable", err)
	}
}

func TestControlVisibilityInQueries(t *testing.T) {
	env := setupEnv(t)
	order := env.createFlowOrder(t, "A-5009", 1)
	picker := pickerActor(10)

	if _, err := env.workflowService.ClaimPicking(picker, order.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}
	env.pickAll(t, picker, order)
	if _, err := env.workflowService.CompletePicking(picker, order.ID, 1); err != nil {
		t.Fatalf("complete picking: %v", err)
	}
	if _, err := env.workflowService.ClaimControl(controllerActor(20), order.ID); err != nil {
		t.Fatalf("claim control: %v", err)
	}

	// Another controller must not see the claimed order.
	if _, err := env.queryService.GetForStaff(controllerActor(21), order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
	// The claimant and the admin still do.
	if _, err := env.queryService.GetForStaff(controllerActor(20), order.ID); err != nil {
		t.Fatalf("claimant read: %v", err)
	}
	if _, err := env.queryService.GetForStaff(adminActor(1), order.ID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
	// Once picking is fertig the order leaves the picker's view.
	if _, err := env.queryService.GetForStaff(picker, order.ID); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("err = %v, want ErrOrderNotFound", err)
	}
	orders, _, err := env.queryService.ListForStaff(picker, ListOrdersInput{Page: 1, PageSize: 20})
	if err != nil {
		t.Fatalf("picker list: %v", err)
	}
	for _, o := range orders {
		if o.ID == order.ID {
			t.Fatalf("fertig order should not appear in the picker's list")
		}
	}
}
