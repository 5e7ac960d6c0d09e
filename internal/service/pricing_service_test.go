package service

import (
	"testing"

	"github.com/fleischwerk-next/internal/models"
)

func TestLineWeightConversions(t *testing.T) {
	env := setupEnv(t)
	article := env.createArticle(t, "10001", 2.00, 1.2, 10.0, 5.0)

	cases := []struct {
		unit string
		qty  float64
		want string
	}{
		{"kg", 5.0, "5.000"},
		{"stueck", 4, "4.800"},
		{"kiste", 2, "20.000"},
		{"karton", 3, "15.000"},
		{"palette", 1, "0.000"},
	}
	for _, c := range cases {
		got := env.pricingService.LineWeight(article, models.NewWeightFromFloat(c.qty), c.unit)
		if got.String() != c.want {
			t.Fatalf("LineWeight(%s, %v) = %s, want %s", c.unit, c.qty, got.String(), c.want)
		}
	}
}

func TestComputeLineDerivesPrice(t *testing.T) {
	env := setupEnv(t)
	article := env.createArticle(t, "10002", 3.00, 1.2, 0, 0)

	position := &models.OrderPosition{
		ArticleID:  article.ID,
		OrderedQty: models.NewWeightFromFloat(4),
		Unit:       "stueck",
	}
	env.pricingService.ComputeLine(position, article, article.BasePrice)

	if position.LineWeight.String() != "4.800" {
		t.Fatalf("line weight = %s, want 4.800", position.LineWeight.String())
	}
	if position.LinePrice.String() != "14.40" {
		t.Fatalf("line price = %s, want 14.40", position.LinePrice.String())
	}
}

func TestCreateOrderTotals(t *testing.T) {
	env := setupEnv(t)
	kgArticle := env.createArticle(t, "10003", 2.00, 0, 0, 0)
	pieceArticle := env.createArticle(t, "10004", 3.00, 1.2, 0, 0)
	customer := env.createCustomer(t, "K-100", "gastronomie", "nord")

	order, err := env.orderService.CreateOrder(CreateOrderInput{
		OrderNo:    "A-3001",
		CustomerID: customer.ID,
		Positions: []CreatePositionInput{
			{ArticleID: kgArticle.ID, OrderedQty: models.NewWeightFromFloat(5), Unit: "kg"},
			{ArticleID: pieceArticle.ID, OrderedQty: models.NewWeightFromFloat(4), Unit: "stueck"},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if order.TotalWeight.String() != "9.800" {
		t.Fatalf("total weight = %s, want 9.800", order.TotalWeight.String())
	}
	if order.TotalPrice.String() != "24.40" {
		t.Fatalf("total price = %s, want 24.40", order.TotalPrice.String())
	}
}

func TestUpdatePositionRecomputesTotals(t *testing.T) {
	env := setupEnv(t)
	article := env.createArticle(t, "10005", 2.50, 0, 0, 0)
	customer := env.createCustomer(t, "K-101", "", "")

	order, err := env.orderService.CreateOrder(CreateOrderInput{
		OrderNo:    "A-3002",
		CustomerID: customer.ID,
		Positions: []CreatePositionInput{
			{ArticleID: article.ID, OrderedQty: models.NewWeightFromFloat(10), Unit: "kg"},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TotalPrice.String() != "25.00" {
		t.Fatalf("initial total price = %s, want 25.00", order.TotalPrice.String())
	}

	updated, err := env.orderService.UpdatePosition(order.ID, order.Positions[0].ID, UpdatePositionInput{
		OrderedQty: models.NewWeightFromFloat(4),
		Unit:       "kg",
	})
	if err != nil {
		t.Fatalf("update position: %v", err)
	}
	if updated.TotalPrice.String() != "10.00" {
		t.Fatalf("updated total price = %s, want 10.00", updated.TotalPrice.String())
	}
	if updated.TotalWeight.String() != "4.000" {
		t.Fatalf("updated total weight = %s, want 4.000", updated.TotalWeight.String())
	}
}

func TestUnknownUnitPricesToZeroButOrderFlows(t *testing.T) {
	env := setupEnv(t)
	// Conversion weight not maintained: stueck with zero weight per piece.
	article := env.createArticle(t, "10006", 9.99, 0, 0, 0)
	customer := env.createCustomer(t, "K-102", "", "")

	order, err := env.orderService.CreateOrder(CreateOrderInput{
		OrderNo:    "A-3003",
		CustomerID: customer.ID,
		Positions: []CreatePositionInput{
			{ArticleID: article.ID, OrderedQty: models.NewWeightFromFloat(3), Unit: "stueck"},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.TotalPrice.String() != "0.00" {
		t.Fatalf("total price = %s, want 0.00", order.TotalPrice.String())
	}

	if _, err := env.workflowService.ClaimPicking(pickerActor(1), order.ID); err != nil {
		t.Fatalf("order with zero weight must still be claimable: %v", err)
	}
}
