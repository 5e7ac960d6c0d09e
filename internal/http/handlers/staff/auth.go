package staff

import (
	"errors"
	"strings"

	handlershared "github.com/fleischwerk-next/internal/http/handlers/shared"
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// LoginRequest is the staff login payload.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login authenticates a staff account.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "username and password required", err)
		return
	}

	result, err := h.AuthService.LoginStaff(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, response.CodeUnauthorized, "invalid credentials", nil)
			return
		}
		respondError(c, response.CodeInternal, "login failed", err)
		return
	}

	requestLog(c).Infow("staff_login", "staff_id", result.Staff.ID, "username", result.Staff.Username)
	response.Success(c, gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"staff": gin.H{
			"id":           result.Staff.ID,
			"username":     result.Staff.Username,
			"display_name": result.Staff.DisplayName,
			"role":         result.Staff.Role,
		},
	})
}

// ChangePasswordRequest is the password rotation payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// ChangePassword rotates the caller's password and revokes old tokens.
func (h *Handler) ChangePassword(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "old and new password required", err)
		return
	}

	err := h.AuthService.ChangeStaffPassword(c.Request.Context(), actor.StaffID, req.OldPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			respondError(c, response.CodeUnauthorized, "invalid credentials", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "password change failed", err)
		}
		return
	}
	response.SuccessWithMsg(c, "password changed", nil)
}

// Me returns the caller's identity.
func (h *Handler) Me(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	staff, err := h.StaffRepo.GetByID(actor.StaffID)
	if err != nil {
		respondError(c, response.CodeInternal, "load staff failed", err)
		return
	}
	if staff == nil {
		handlershared.RespondError(c, response.CodeNotFound, "staff not found", nil)
		return
	}
	response.Success(c, staff)
}
