package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fleischwerk-next/internal/authz"
	"github.com/fleischwerk-next/internal/cache"
	"github.com/fleischwerk-next/internal/config"
	customerhandlers "github.com/fleischwerk-next/internal/http/handlers/customer"
	staffhandlers "github.com/fleischwerk-next/internal/http/handlers/staff"
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all API routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	staffHandler := staffhandlers.New(c)
	customerHandler := customerhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "fw"
	}
	redisClient := cache.Client()
	staffLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:staff_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
	customerLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:customer_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	apiV1 := r.Group("/api/v1")
	{
		// Login endpoints, no token required.
		apiV1.POST("/auth/login", RateLimitMiddleware(redisClient, staffLoginRule, KeyByIPAndJSONField("username")), staffHandler.Login)
		apiV1.POST("/customer/login", RateLimitMiddleware(redisClient, customerLoginRule, KeyByIPAndJSONField("number")), customerHandler.Login)

		// Customer portal, read only.
		my := apiV1.Group("/my")
		my.Use(CustomerJWTAuthMiddleware(cfg.CustomerJWT.SecretKey, c.CustomerRepo))
		{
			my.GET("/orders", customerHandler.MyOrders)
			my.GET("/orders/:id", customerHandler.MyOrder)
		}

		// Staff API, role-gated per route.
		staff := apiV1.Group("/staff")
		authorized := staff.Use(StaffJWTAuthMiddleware(cfg.JWT.SecretKey, c.StaffRepo), StaffRBACMiddleware(c.AuthzService))
		{
			authorized.GET("/me", staffHandler.Me)
			authorized.PUT("/password", staffHandler.ChangePassword)

			// Order intake and maintenance.
			authorized.POST("/orders", staffHandler.CreateOrder)
			authorized.GET("/orders", staffHandler.ListOrders)
			authorized.GET("/orders/:id", staffHandler.GetOrder)
			authorized.GET("/orders/:id/events", staffHandler.ListOrderEvents)
			authorized.POST("/orders/:id/positions", staffHandler.AddPosition)
			authorized.PUT("/orders/:id/positions/:pos_id", staffHandler.UpdatePosition)
			authorized.DELETE("/orders/:id/positions/:pos_id", staffHandler.DeletePosition)

			// Fulfillment workflow.
			authorized.POST("/orders/:id/claim-picking", staffHandler.ClaimPicking)
			authorized.PUT("/orders/:id/positions/:pos_id/complete", staffHandler.CompletePosition)
			authorized.POST("/orders/:id/complete-picking", staffHandler.CompletePicking)
			authorized.POST("/orders/:id/claim-control", staffHandler.ClaimControl)
			authorized.POST("/orders/:id/complete-control", staffHandler.CompleteControl)

			// Surcharge administration.
			authorized.GET("/surcharges/effective-price", staffHandler.EffectivePrice)
			authorized.POST("/surcharges", staffHandler.SetSurcharge)
			authorized.DELETE("/surcharges/:article_id/:customer_id", staffHandler.DeleteSurcharge)
			authorized.GET("/customers/:customer_id/surcharges", staffHandler.ListCustomerSurcharges)
			authorized.POST("/surcharges/mass", staffHandler.MassSurcharge)
			authorized.POST("/surcharges/bulk-edit", staffHandler.BulkEditSurcharges)

			// Admin overrides, audited.
			authorized.POST("/orders/:id/override/complete-picking", staffHandler.OverrideCompletePicking)
			authorized.PUT("/orders/:id/override/status", staffHandler.OverrideSetStatus)
			authorized.DELETE("/orders/:id/override/positions/:pos_id", staffHandler.OverrideDeletePosition)
			authorized.GET("/override-audit-logs", staffHandler.ListOverrideAuditLogs)

			// Permission catalog for role administration.
			authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
				response.Success(ctx, buildStaffPermissionCatalog(r))
			})
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type staffPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildStaffPermissionCatalog(engine *gin.Engine) []staffPermissionCatalogItem {
	if engine == nil {
		return []staffPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]staffPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/staff/") {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, staffPermissionCatalogItem{
			Module:     deriveStaffPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveStaffPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "staff" {
		return segments[0]
	}
	return segments[1]
}
