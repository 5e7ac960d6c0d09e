package provider

import (
	"github.com/fleischwerk-next/internal/authz"
	"github.com/fleischwerk-next/internal/cache"
	"github.com/fleischwerk-next/internal/config"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/queue"
	"github.com/fleischwerk-next/internal/repository"
	"github.com/fleischwerk-next/internal/service"
)

// Container is the dependency injection container.
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	StaffRepo      repository.StaffRepository
	CustomerRepo   repository.CustomerRepository
	ArticleRepo    repository.ArticleRepository
	OrderRepo      repository.OrderRepository
	PositionRepo   repository.PositionRepository
	SurchargeRepo  repository.SurchargeRepository
	AuditLogRepo   repository.OverrideAuditLogRepository
	OrderEventRepo repository.OrderEventRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	PricingService    *service.PricingService
	SurchargeService  *service.SurchargeService
	OrderService      *service.OrderService
	WorkflowService   *service.WorkflowService
	OverrideService   *service.OverrideService
	OrderQueryService *service.OrderQueryService
}

// NewContainer builds the container.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.StaffRepo = repository.NewStaffRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.ArticleRepo = repository.NewArticleRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PositionRepo = repository.NewPositionRepository(db)
	c.SurchargeRepo = repository.NewSurchargeRepository(db)
	c.AuditLogRepo = repository.NewOverrideAuditLogRepository(db)
	c.OrderEventRepo = repository.NewOrderEventRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.SeedBuiltinRoles(); err != nil {
		logger.Errorw("provider_seed_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.StaffRepo, c.CustomerRepo)
	c.PricingService = service.NewPricingService(c.OrderRepo, c.PositionRepo, c.ArticleRepo)
	c.SurchargeService = service.NewSurchargeService(c.SurchargeRepo, c.ArticleRepo, c.CustomerRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.PositionRepo, c.ArticleRepo, c.CustomerRepo, c.PricingService, c.SurchargeService, c.Config.Fulfillment.MaxPositionsPerOrder)
	c.WorkflowService = service.NewWorkflowService(c.OrderRepo, c.PositionRepo, c.QueueClient)
	c.OverrideService = service.NewOverrideService(c.OrderRepo, c.PositionRepo, c.AuditLogRepo, c.PricingService)
	c.OrderQueryService = service.NewOrderQueryService(c.OrderRepo, c.OrderEventRepo)
}
