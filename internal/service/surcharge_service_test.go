package service

import (
	"errors"
	"testing"

	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"
)

func TestResolveEffectivePrice(t *testing.T) {
	env := setupEnv(t)
	article := env.createArticle(t, "20001", 2.00, 0, 0, 0)
	customer := env.createCustomer(t, "K-200", "", "")

	price, err := env.surchargeService.ResolveEffectivePrice(article, customer.ID)
	if err != nil {
		t.Fatalf("resolve without surcharge: %v", err)
	}
	if price.String() != "2.00" {
		t.Fatalf("price = %s, want base 2.00", price.String())
	}

	if err := env.surchargeService.SetSurcharge(article.ID, customer.ID, models.NewMoneyFromFloat(0.30)); err != nil {
		t.Fatalf("set surcharge: %v", err)
	}

	price, err = env.surchargeService.ResolveEffectivePrice(article, customer.ID)
	if err != nil {
		t.Fatalf("resolve with surcharge: %v", err)
	}
	if price.String() != "2.30" {
		t.Fatalf("price = %s, want 2.30", price.String())
	}
}

func TestSurchargeSnapshotDoesNotTouchExistingOrders(t *testing.T) {
	env := setupEnv(t)
	article := env.createArticle(t, "20002", 2.00, 0, 0, 0)
	customer := env.createCustomer(t, "K-201", "", "")

	order, err := env.orderService.CreateOrder(CreateOrderInput{
		OrderNo:    "A-4001",
		CustomerID: customer.ID,
		Positions: []CreatePositionInput{
			{ArticleID: article.ID, OrderedQty: models.NewWeightFromFloat(2), Unit: "kg"},
		},
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	if err := env.surchargeService.SetSurcharge(article.ID, customer.ID, models.NewMoneyFromFloat(1.00)); err != nil {
		t.Fatalf("set surcharge: %v", err)
	}

	reloaded, err := env.orderRepo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Positions[0].UnitPrice.String() != "2.00" {
		t.Fatalf("snapshot price = %s, want 2.00", reloaded.Positions[0].UnitPrice.String())
	}
}

func TestApplyMassSurchargeMaterializesRows(t *testing.T) {
	env := setupEnv(t)
	article := env.createArticle(t, "20003", 5.00, 0, 0, 0)
	gastro1 := env.createCustomer(t, "K-202", "gastronomie", "nord")
	gastro2 := env.createCustomer(t, "K-203", "gastronomie", "sued")
	retail := env.createCustomer(t, "K-204", "einzelhandel", "nord")

	count, err := env.surchargeService.ApplyMassSurcharge(MassSurchargeInput{
		ArticleID: article.ID,
		Criteria:  repository.CustomerCriteria{Category: "gastronomie"},
		Amount:    models.NewMoneyFromFloat(0.50),
	})
	if err != nil {
		t.Fatalf("mass surcharge: %v", err)
	}
	if count != 2 {
		t.Fatalf("materialized %d rows, want 2", count)
	}

	for _, c := range []uint{gastro1.ID, gastro2.ID} {
		row, err := env.surchargeRepo.Get(article.ID, c)
		if err != nil || row == nil {
			t.Fatalf("gastronomie customer %d missing surcharge row: %v", c, err)
		}
		if row.SurchargeAmount.String() != "0.50" {
			t.Fatalf("amount = %s, want 0.50", row.SurchargeAmount.String())
		}
	}
	if row, _ := env.surchargeRepo.Get(article.ID, retail.ID); row != nil {
		t.Fatal("einzelhandel customer must not get the rule")
	}
}

func TestBulkEditByCustomerSub(t *testing.T) {
	env := setupEnv(t)
	a1 := env.createArticle(t, "20004", 5.00, 0, 0, 0)
	a2 := env.createArticle(t, "20005", 6.00, 0, 0, 0)
	a3 := env.createArticle(t, "20006", 7.00, 0, 0, 0)
	customer := env.createCustomer(t, "K-205", "", "")

	for _, id := range []uint{a1.ID, a2.ID} {
		if err := env.surchargeService.SetSurcharge(id, customer.ID, models.NewMoneyFromFloat(0.50)); err != nil {
			t.Fatalf("seed surcharge: %v", err)
		}
	}

	count, err := env.surchargeService.BulkEditByCustomer(BulkEditInput{
		CustomerID: customer.ID,
		Selection:  repository.ArticleSelection{ArticleIDs: []uint{a1.ID, a2.ID, a3.ID}},
		Mode:       "sub",
		Amount:     models.NewMoneyFromFloat(0.10),
	})
	if err != nil {
		t.Fatalf("bulk edit: %v", err)
	}
	// a3 has no row for the customer, so only two rows change.
	if count != 2 {
		t.Fatalf("edited %d rows, want 2", count)
	}

	row, _ := env.surchargeRepo.Get(a1.ID, customer.ID)
	if row.SurchargeAmount.String() != "0.40" {
		t.Fatalf("amount = %s, want 0.40", row.SurchargeAmount.String())
	}
	if row, _ := env.surchargeRepo.Get(a3.ID, customer.ID); row != nil {
		t.Fatal("bulk edit must not create rows")
	}
}

func TestBulkEditRejectsEmptySelection(t *testing.T) {
	env := setupEnv(t)
	customer := env.createCustomer(t, "K-206", "", "")

	_, err := env.surchargeService.BulkEditByCustomer(BulkEditInput{
		CustomerID: customer.ID,
		Selection:  repository.ArticleSelection{},
		Mode:       "set",
		Amount:     models.NewMoneyFromFloat(0.10),
	})
	if !errors.Is(err, ErrEmptySelection) {
		t.Fatalf("err = %v, want ErrEmptySelection", err)
	}
}
