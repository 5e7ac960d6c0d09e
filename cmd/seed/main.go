package main

import (
	"fmt"
	"time"

	"github.com/fleischwerk-next/internal/authz"
	"github.com/fleischwerk-next/internal/config"
	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	authzService, err := authz.NewService(models.DB)
	if err != nil {
		stdLog.Fatalf("Failed to init authz: %v", err)
	}
	if err := authzService.SeedBuiltinRoles(); err != nil {
		stdLog.Fatalf("Failed to seed builtin roles: %v", err)
	}

	// Warehouse staff accounts, one per role.
	staffSeeds := []struct {
		Username    string
		DisplayName string
		Role        string
		Password    string
	}{
		{Username: "anna.k", DisplayName: "Anna Kaiser", Role: constants.RoleKommissionierung, Password: "picker123"},
		{Username: "bernd.m", DisplayName: "Bernd Maier", Role: constants.RoleKommissionierung, Password: "picker123"},
		{Username: "clara.s", DisplayName: "Clara Schmidt", Role: constants.RoleKontrolle, Password: "control123"},
		{Username: "dieter.z", DisplayName: "Dieter Zorn", Role: constants.RoleZerleger, Password: "zerleger123"},
	}

	for _, seed := range staffSeeds {
		var existing models.Staff
		if err := models.DB.Where("username = ?", seed.Username).First(&existing).Error; err == nil {
			stdLog.Printf("Staff already exists: %s", seed.Username)
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)
		if err != nil {
			stdLog.Printf("Failed to hash password for %s: %v", seed.Username, err)
			continue
		}
		staff := models.Staff{
			Username:     seed.Username,
			DisplayName:  seed.DisplayName,
			PasswordHash: string(hash),
			Role:         seed.Role,
		}
		if err := models.DB.Create(&staff).Error; err != nil {
			stdLog.Printf("Failed to create staff %s: %v", seed.Username, err)
			continue
		}
		if err := authzService.SetStaffRoles(staff.ID, []string{seed.Role}); err != nil {
			stdLog.Printf("Failed to assign role %s to %s: %v", seed.Role, seed.Username, err)
		} else {
			stdLog.Printf("Created staff: %s (%s)", seed.Username, seed.Role)
		}
	}

	// Customers. The first one gets portal access.
	portalHash, err := bcrypt.GenerateFromPassword([]byte("kunde123"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash customer password: %v", err)
	}
	customers := []models.Customer{
		{Name: "Gasthaus Adler", Number: "K-1001", Category: "gastronomie", Region: "nord", PasswordHash: string(portalHash)},
		{Name: "Hotel Linde", Number: "K-1002", Category: "gastronomie", Region: "sued"},
		{Name: "Feinkost Berger", Number: "K-2001", Category: "einzelhandel", Region: "nord"},
		{Name: "Metzgerei Huber", Number: "K-2002", Category: "einzelhandel", Region: "sued"},
	}

	for _, cust := range customers {
		var existing models.Customer
		if err := models.DB.Where("number = ?", cust.Number).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cust).Error; err != nil {
				stdLog.Printf("Failed to create customer %s: %v", cust.Number, err)
			} else {
				stdLog.Printf("Created customer: %s", cust.Number)
			}
		} else {
			stdLog.Printf("Customer already exists: %s", cust.Number)
		}
	}

	// Article master data.
	articles := []models.Article{
		{Name: "Schweineschulter", Number: "A-100", Category: "schwein", BasePrice: models.NewMoneyFromFloat(4.20)},
		{Name: "Schweinefilet", Number: "A-110", Category: "schwein", BasePrice: models.NewMoneyFromFloat(9.80)},
		{Name: "Rinderhuefte", Number: "A-200", Category: "rind", BasePrice: models.NewMoneyFromFloat(12.50)},
		{Name: "Rinderhackfleisch", Number: "A-210", Category: "rind", BasePrice: models.NewMoneyFromFloat(6.90)},
		{
			Name: "Bratwurst 100g", Number: "A-300", Category: "wurst",
			BasePrice:       models.NewMoneyFromFloat(0.45),
			WeightPerPiece:  models.NewWeightFromFloat(0.1),
			WeightPerCrate:  models.NewWeightFromFloat(5.0),
			WeightPerCarton: models.NewWeightFromFloat(10.0),
		},
		{
			Name: "Leberkaese 500g", Number: "A-310", Category: "wurst",
			BasePrice:       models.NewMoneyFromFloat(2.80),
			WeightPerPiece:  models.NewWeightFromFloat(0.5),
			WeightPerCrate:  models.NewWeightFromFloat(6.0),
			WeightPerCarton: models.NewWeightFromFloat(12.0),
		},
	}

	for _, art := range articles {
		var existing models.Article
		if err := models.DB.Where("number = ?", art.Number).First(&existing).Error; err != nil {
			if err := models.DB.Create(&art).Error; err != nil {
				stdLog.Printf("Failed to create article %s: %v", art.Number, err)
			} else {
				stdLog.Printf("Created article: %s", art.Number)
			}
		} else {
			stdLog.Printf("Article already exists: %s", art.Number)
		}
	}

	// Customer surcharges: Gasthaus Adler pays extra on the filet.
	var adler models.Customer
	var filet models.Article
	if err := models.DB.Where("number = ?", "K-1001").First(&adler).Error; err == nil {
		if err := models.DB.Where("number = ?", "A-110").First(&filet).Error; err == nil {
			var existing models.CustomerSurcharge
			if err := models.DB.Where("article_id = ? AND customer_id = ?", filet.ID, adler.ID).First(&existing).Error; err != nil {
				surcharge := models.CustomerSurcharge{
					ArticleID:       filet.ID,
					CustomerID:      adler.ID,
					SurchargeAmount: models.NewMoneyFromFloat(0.30),
				}
				if err := models.DB.Create(&surcharge).Error; err != nil {
					stdLog.Printf("Failed to create surcharge: %v", err)
				} else {
					stdLog.Printf("Created surcharge: %s / %s", filet.Number, adler.Number)
				}
			}
		}
	}

	// One open sample order for the picking queue.
	seedSampleOrder(stdLog.Printf)

	fmt.Println("\nSeed data created:")
	fmt.Println("- 1 admin + 4 staff accounts (roles assigned)")
	fmt.Println("- 4 customers (K-1001 has portal access)")
	fmt.Println("- 6 articles")
	fmt.Println("- 1 customer surcharge")
	fmt.Println("- 1 open order with 2 positions")
}

func seedSampleOrder(logf func(format string, v ...interface{})) {
	var existing models.Order
	if err := models.DB.Where("order_no = ?", "AUF-2026-0001").First(&existing).Error; err == nil {
		logf("Order already exists: AUF-2026-0001")
		return
	}

	var customer models.Customer
	if err := models.DB.Where("number = ?", "K-1001").First(&customer).Error; err != nil {
		logf("Skip sample order: customer not found")
		return
	}
	var shoulder models.Article
	var bratwurst models.Article
	if err := models.DB.Where("number = ?", "A-100").First(&shoulder).Error; err != nil {
		logf("Skip sample order: article A-100 not found")
		return
	}
	if err := models.DB.Where("number = ?", "A-300").First(&bratwurst).Error; err != nil {
		logf("Skip sample order: article A-300 not found")
		return
	}

	delivery := time.Now().AddDate(0, 0, 2)
	order := models.Order{
		OrderNo:              "AUF-2026-0001",
		CustomerID:           customer.ID,
		Status:               constants.OrderStatusOffen,
		DeliveryDate:         &delivery,
		KommissioniertStatus: constants.PickingStatusOffen,
		KontrolliertStatus:   constants.ControlStatusOffen,
		// 10kg shoulder at 4.20 plus 40 sausages (4kg) at 0.45.
		TotalWeight: models.NewWeightFromFloat(14.0),
		TotalPrice:  models.NewMoneyFromFloat(43.80),
		Positions: []models.OrderPosition{
			{
				ArticleID:  shoulder.ID,
				OrderedQty: models.NewWeightFromFloat(10),
				Unit:       constants.UnitKg,
				UnitPrice:  shoulder.BasePrice,
				LineWeight: models.NewWeightFromFloat(10.0),
				LinePrice:  models.NewMoneyFromFloat(42.00),
			},
			{
				ArticleID:  bratwurst.ID,
				OrderedQty: models.NewWeightFromFloat(40),
				Unit:       constants.UnitStueck,
				UnitPrice:  bratwurst.BasePrice,
				LineWeight: models.NewWeightFromFloat(4.0),
				LinePrice:  models.NewMoneyFromFloat(1.80),
			},
		},
	}
	if err := models.DB.Create(&order).Error; err != nil {
		logf("Failed to create sample order: %v", err)
		return
	}
	logf("Created order: AUF-2026-0001")
}
