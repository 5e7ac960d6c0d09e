package router

import (
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fleischwerk-next/internal/authz"
	"github.com/fleischwerk-next/internal/cache"
	"github.com/fleischwerk-next/internal/config"
	"github.com/fleischwerk-next/internal/constants"
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/logger"
	"github.com/fleischwerk-next/internal/repository"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"
const requestIDHeader = "X-Request-ID"
const staffRoleContextKey = "staff_role"

// CORSMiddleware handles cross-origin requests.
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware assigns every request an ID, echoing a
// caller-supplied one when present.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware writes one structured log line per request.
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// StaffJWTAuthMiddleware authenticates staff tokens. It validates the
// token version and the invalid-before watermark against the cached
// auth snapshot, falling back to the database on a cache miss.
func StaffJWTAuthMiddleware(secretKey string, staffRepo repository.StaffRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			response.Unauthorized(c, "jwt secret not configured")
			c.Abort()
			return
		}
		if staffRepo == nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		claims, ok := parseBearerToken(c, secretKey, &service.StaffClaims{})
		if !ok {
			return
		}
		staffClaims, ok := claims.(*service.StaffClaims)
		if !ok || staffClaims.StaffID == 0 {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if cached, hit, cacheErr := cache.GetStaffAuthState(c.Request.Context(), staffClaims.StaffID); cacheErr == nil && hit && cached != nil {
			if staffClaims.TokenVersion != cached.TokenVersion || !isIssuedAfterInvalidBeforeUnix(staffClaims.IssuedAt, cached.TokenInvalidBefore) {
				response.Unauthorized(c, "token revoked")
				c.Abort()
				return
			}
			c.Set("staff_id", staffClaims.StaffID)
			c.Set("staff_username", staffClaims.Username)
			c.Set(staffRoleContextKey, cached.Role)
			c.Next()
			return
		}

		staff, err := staffRepo.GetByID(staffClaims.StaffID)
		if err != nil || staff == nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		if staffClaims.TokenVersion != staff.TokenVersion || !isIssuedAfterInvalidBefore(staffClaims.IssuedAt, staff.TokenInvalidBefore) {
			response.Unauthorized(c, "token revoked")
			c.Abort()
			return
		}
		_ = cache.SetStaffAuthState(c.Request.Context(), cache.BuildStaffAuthState(staff))

		c.Set("staff_id", staffClaims.StaffID)
		c.Set("staff_username", staffClaims.Username)
		c.Set(staffRoleContextKey, staff.Role)
		c.Next()
	}
}

// StaffRBACMiddleware enforces route-level permissions. Admins bypass
// the enforcer.
func StaffRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("staff_rbac_service_unavailable")
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		if role, ok := c.Get(staffRoleContextKey); ok {
			if roleValue, typeOK := role.(string); typeOK && roleValue == constants.RoleAdmin {
				c.Next()
				return
			}
		}

		staffIDRaw, exists := c.Get("staff_id")
		if !exists {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		var staffID uint
		switch value := staffIDRaw.(type) {
		case uint:
			staffID = value
		case int:
			if value > 0 {
				staffID = uint(value)
			}
		case float64:
			if value > 0 {
				staffID = uint(value)
			}
		}
		if staffID == 0 {
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceStaff(staffID, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("staff_rbac_enforce_failed",
				"staff_id", staffID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Unauthorized(c, "unauthorized")
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("staff_rbac_permission_denied",
				"staff_id", staffID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			response.Forbidden(c, "forbidden")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CustomerJWTAuthMiddleware authenticates customer portal tokens.
func CustomerJWTAuthMiddleware(secretKey string, customerRepo repository.CustomerRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secretKey == "" {
			response.Unauthorized(c, "jwt secret not configured")
			c.Abort()
			return
		}
		if customerRepo == nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		claims, ok := parseBearerToken(c, secretKey, &service.CustomerClaims{})
		if !ok {
			return
		}
		customerClaims, ok := claims.(*service.CustomerClaims)
		if !ok || customerClaims.CustomerID == 0 {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}

		if cached, hit, cacheErr := cache.GetCustomerAuthState(c.Request.Context(), customerClaims.CustomerID); cacheErr == nil && hit && cached != nil {
			c.Set("customer_id", customerClaims.CustomerID)
			c.Set("customer_number", cached.Number)
			c.Next()
			return
		}

		customer, err := customerRepo.GetByID(customerClaims.CustomerID)
		if err != nil || customer == nil {
			response.Unauthorized(c, "invalid token")
			c.Abort()
			return
		}
		_ = cache.SetCustomerAuthState(c.Request.Context(), cache.BuildCustomerAuthState(customer))

		c.Set("customer_id", customerClaims.CustomerID)
		c.Set("customer_number", customer.Number)
		c.Next()
	}
}

func parseBearerToken(c *gin.Context, secretKey string, claims jwt.Claims) (jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Unauthorized(c, "authorization header missing")
		c.Abort()
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") {
		response.Unauthorized(c, "authorization header malformed")
		c.Abort()
		return nil, false
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})
	if err != nil || !token.Valid {
		response.Unauthorized(c, "invalid token")
		c.Abort()
		return nil, false
	}
	return claims, true
}

func isIssuedAfterInvalidBefore(issuedAt *jwt.NumericDate, invalidBefore *time.Time) bool {
	if invalidBefore == nil {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBefore.Unix()
}

func isIssuedAfterInvalidBeforeUnix(issuedAt *jwt.NumericDate, invalidBeforeUnix int64) bool {
	if invalidBeforeUnix <= 0 {
		return true
	}
	if issuedAt == nil {
		return false
	}
	return issuedAt.Time.Unix() >= invalidBeforeUnix
}
