package staff

import (
	"strconv"

	handlershared "github.com/fleischwerk-next/internal/http/handlers/shared"
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/repository"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OverrideCompletePickingRequest forces picking to fertig.
type OverrideCompletePickingRequest struct {
	TotalPallets int `json:"total_pallets"`
}

// OverrideCompletePicking forces the picking axis to fertig regardless
// of open positions. Admin only, audited.
func (h *Handler) OverrideCompletePicking(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req OverrideCompletePickingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid payload", err)
		return
	}

	order, err := h.OverrideService.CompletePicking(actor, orderID, req.TotalPallets, requestID(c))
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "override failed")
		return
	}
	response.Success(c, order)
}

// OverrideSetStatusRequest edits one status axis directly.
type OverrideSetStatusRequest struct {
	Axis   string `json:"axis" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// OverrideSetStatus edits one status axis directly. Admin only,
// audited.
func (h *Handler) OverrideSetStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req OverrideSetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "axis and status required", err)
		return
	}

	order, err := h.OverrideService.SetStatus(actor, orderID, service.SetStatusInput{
		Axis:   req.Axis,
		Status: req.Status,
	}, requestID(c))
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "override failed")
		return
	}
	response.Success(c, order)
}

// OverrideDeletePosition removes a position regardless of picking
// progress. Admin only, audited.
func (h *Handler) OverrideDeletePosition(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	positionID, ok := paramUint(c, "pos_id")
	if !ok {
		return
	}

	order, err := h.OverrideService.DeletePosition(actor, orderID, positionID, requestID(c))
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "override failed")
		return
	}
	response.Success(c, order)
}

// ListOverrideAuditLogs returns the override trail.
func (h *Handler) ListOverrideAuditLogs(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.OverrideAuditLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Action:   c.Query("action"),
	}
	if raw := c.Query("order_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.OrderID = uint(parsed)
		}
	}
	if raw := c.Query("operator_staff_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			filter.OperatorStaffID = uint(parsed)
		}
	}

	logs, total, err := h.OverrideService.ListAuditLogs(actor, filter)
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "list audit logs failed")
		return
	}

	response.SuccessWithPage(c, logs, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}
