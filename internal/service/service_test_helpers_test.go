package service

import (
	"testing"

	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testEnv wires the services against an in-memory database.
type testEnv struct {
	db               *gorm.DB
	orderRepo        *repository.GormOrderRepository
	positionRepo     *repository.GormPositionRepository
	articleRepo      *repository.GormArticleRepository
	customerRepo     *repository.GormCustomerRepository
	surchargeRepo    *repository.GormSurchargeRepository
	auditRepo        *repository.GormOverrideAuditLogRepository
	eventRepo        *repository.GormOrderEventRepository
	pricingService   *PricingService
	surchargeService *SurchargeService
	orderService     *OrderService
	workflowService  *WorkflowService
	overrideService  *OverrideService
	queryService     *OrderQueryService
}

func setupEnv(t *testing.T) *testEnv {
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
	// Services open transactions through the package-level handle.
	models.DB = db

	env := &testEnv{
		db:            db,
		orderRepo:     repository.NewOrderRepository(db),
		positionRepo:  repository.NewPositionRepository(db),
		articleRepo:   repository.NewArticleRepository(db),
		customerRepo:  repository.NewCustomerRepository(db),
		surchargeRepo: repository.NewSurchargeRepository(db),
		auditRepo:     repository.NewOverrideAuditLogRepository(db),
		eventRepo:     repository.NewOrderEventRepository(db),
	}
	env.pricingService = NewPricingService(env.orderRepo, env.positionRepo, env.articleRepo)
	env.surchargeService = NewSurchargeService(env.surchargeRepo, env.articleRepo, env.customerRepo)
	env.orderService = NewOrderService(env.orderRepo, env.positionRepo, env.articleRepo, env.customerRepo, env.pricingService, env.surchargeService, 0)
	env.workflowService = NewWorkflowService(env.orderRepo, env.positionRepo, nil)
	env.overrideService = NewOverrideService(env.orderRepo, env.positionRepo, env.auditRepo, env.pricingService)
	env.queryService = NewOrderQueryService(env.orderRepo, env.eventRepo)
	return env
}

func (e *testEnv) createArticle(t *testing.T, number string, basePrice float64, perPiece, perCrate, perCarton float64) *models.Article {
	t.Helper()
	article := &models.Article{
		Name:            "Artikel " + number,
		Number:          number,
		Category:        "fleisch",
		BasePrice:       models.NewMoneyFromFloat(basePrice),
		WeightPerPiece:  models.NewWeightFromFloat(perPiece),
		WeightPerCrate:  models.NewWeightFromFloat(perCrate),
		WeightPerCarton: models.NewWeightFromFloat(perCarton),
	}
	if err := e.articleRepo.Create(article); err != nil {
		t.Fatalf("create article: %v", err)
	}
	return article
}

func (e *testEnv) createCustomer(t *testing.T, number, category, region string) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:     "Kunde " + number,
		Number:   number,
		Category: category,
		Region:   region,
	}
	if err := e.customerRepo.Create(customer); err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return customer
}

func pickerActor(id uint) Actor {
	return Actor{StaffID: id, Username: "picker", Role: "kommissionierung"}
}

func controllerActor(id uint) Actor {
	return Actor{StaffID: id, Username: "controller", Role: "kontrolle"}
}

func adminActor(id uint) Actor {
	return Actor{StaffID: id, Username: "admin", Role: "admin"}
}
