package customer

import (
	"errors"
	"strings"

	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the customer login payload.
type LoginRequest struct {
	Number   string `json:"number" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a customer by number and password.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "number and password required", err)
		return
	}

	result, err := h.AuthService.LoginCustomer(c.Request.Context(), strings.TrimSpace(req.Number), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid credentials", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	requestLog(c).Infow("customer_login", "customer_id", result.Customer.ID, "number", result.Customer.Number)
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"customer": gin.H{
			"id":     result.Customer.ID,
			"name":   result.Customer.Name,
			"number": result.Customer.Number,
		},
	})
}
