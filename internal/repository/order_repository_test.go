package repository

import (
	"testing"
	"time"

	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Staff{},
		&models.Customer{},
		&models.Article{},
		&models.CustomerSurcharge{},
		&models.Order{},
		&models.OrderPosition{},
		&models.OrderEvent{},
		&models.OverrideAuditLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestOrder(t *testing.T, db *gorm.DB, orderNo string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNo:              orderNo,
		CustomerID:           1,
		Status:               constants.OrderStatusOffen,
		KommissioniertStatus: constants.PickingStatusOffen,
		KontrolliertStatus:   constants.ControlStatusOffen,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func TestClaimPickingExactlyOneWinner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, db, "A-1001")
	now := time.Now()

	ok1, err := repo.ClaimPicking(order.ID, 10, now)
	if err != nil {
		t.Fatalf("first claim: %v", err)
	}
	ok2, err := repo.ClaimPicking(order.ID, 11, now)
	if err != nil {
		t.Fatalf("second claim: %v", err)
	}
	if !ok1 || ok2 {
		t.Fatalf("expected exactly one winner, got ok1=%v ok2=%v", ok1, ok2)
	}

	got, err := repo.GetByID(order.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.KommissioniertStatus != constants.PickingStatusGestartet {
		t.Fatalf("picking status = %s, want gestartet", got.KommissioniertStatus)
	}
	if got.KommissioniertBy == nil || *got.KommissioniertBy != 10 {
		t.Fatalf("claimant = %v, want 10", got.KommissioniertBy)
	}
	if got.Status != constants.OrderStatusInBearbeitung {
		t.Fatalf("order status = %s, want in_bearbeitung", got.Status)
	}
}

func TestFinishPickingOnlyClaimant(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, db, "A-1002")
	now := time.Now()

	if ok, err := repo.ClaimPicking(order.ID, 10, now); err != nil || !ok {
		t.Fatalf("claim: ok=%v err=%v", ok, err)
	}

	if ok, err := repo.FinishPicking(order.ID, 11, 2, now); err != nil {
		t.Fatalf("finish by stranger: %v", err)
	} else if ok {
		t.Fatal("finish by non-claimant must not match")
	}

	ok, err := repo.FinishPicking(order.ID, 10, 2, now)
	if err != nil || !ok {
		t.Fatalf("finish by claimant: ok=%v err=%v", ok, err)
	}

	got, _ := repo.GetByID(order.ID)
	if got.KommissioniertStatus != constants.PickingStatusFertig {
		t.Fatalf("picking status = %s, want fertig", got.KommissioniertStatus)
	}
	if got.TotalPallets != 2 {
		t.Fatalf("total pallets = %d, want 2", got.TotalPallets)
	}
}

func TestClaimControlRequiresPickingFertig(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	order := createTestOrder(t, db, "A-1003")
	now := time.Now()

	if ok, err := repo.ClaimControl(order.ID, 20, now); err != nil {
		t.Fatalf("claim control: %v", err)
	} else if ok {
		t.Fatal("control claim before picking fertig must not match")
	}

	if ok, _ := repo.ClaimPicking(order.ID, 10, now); !ok {
		t.Fatal("claim picking failed")
	}
	if ok, _ := repo.FinishPicking(order.ID, 10, 1, now); !ok {
		t.Fatal("finish picking failed")
	}

	ok1, err := repo.ClaimControl(order.ID, 20, now)
	if err != nil {
		t.Fatalf("claim control: %v", err)
	}
	ok2, err := repo.ClaimControl(order.ID, 21, now)
	if err != nil {
		t.Fatalf("claim control 2: %v", err)
	}
	if !ok1 || ok2 {
		t.Fatalf("expected exactly one control winner, got ok1=%v ok2=%v", ok1, ok2)
	}

	if ok, _ := repo.FinishControl(order.ID, 21, now); ok {
		t.Fatal("finish control by non-claimant must not match")
	}
	if ok, err := repo.FinishControl(order.ID, 20, now); err != nil || !ok {
		t.Fatalf("finish control: ok=%v err=%v", ok, err)
	}

	got, _ := repo.GetByID(order.ID)
	if got.KontrolliertStatus != constants.ControlStatusGeprueft {
		t.Fatalf("control status = %s, want geprueft", got.KontrolliertStatus)
	}
}

func TestListControlVisibility(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	now := time.Now()

	a := createTestOrder(t, db, "A-2001")
	b := createTestOrder(t, db, "A-2002")
	for _, o := range []*models.Order{a, b} {
		if ok, _ := repo.ClaimPicking(o.ID, 10, now); !ok {
			t.Fatal("claim picking failed")
		}
		if ok, _ := repo.FinishPicking(o.ID, 10, 1, now); !ok {
			t.Fatal("finish picking failed")
		}
	}
	if ok, _ := repo.ClaimControl(a.ID, 20, now); !ok {
		t.Fatal("claim control failed")
	}

	// Staff 21 sees b (open) but not a (claimed by 20).
	orders, total, err := repo.List(OrderListFilter{ControlVisibleTo: 21})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(orders) != 1 || orders[0].ID != b.ID {
		t.Fatalf("visibility filter wrong: total=%d orders=%v", total, orders)
	}

	// The claimant still sees both.
	_, total, err = repo.List(OrderListFilter{ControlVisibleTo: 20})
	if err != nil {
		t.Fatalf("list claimant: %v", err)
	}
	if total != 2 {
		t.Fatalf("claimant total = %d, want 2", total)
	}
}
