package staff

import (
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ClaimPicking claims the picking axis for the caller.
func (h *Handler) ClaimPicking(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	order, err := h.WorkflowService.ClaimPicking(actor, orderID)
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "claim picking failed")
		return
	}
	response.Success(c, order)
}

// CompletePositionRequest carries the picking result of one position.
type CompletePositionRequest struct {
	PickedQty    models.Weight         `json:"picked_qty"`
	PickedUnit   string                `json:"picked_unit"`
	GrossWeight  *models.Weight        `json:"gross_weight"`
	EmptyGoods   models.EmptyGoodsList `json:"empty_goods"`
	BatchNumbers models.StringArray    `json:"batch_numbers"`
	Remark       string                `json:"remark"`
}

// CompletePosition records the picking result of one position.
func (h *Handler) CompletePosition(c *gin.Context) {
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

	var req CompletePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid picking payload", err)
		return
	}

	position, err := h.WorkflowService.CompletePosition(actor, orderID, positionID, service.CompletePositionInput{
		PickedQty:    req.PickedQty,
		PickedUnit:   req.PickedUnit,
		GrossWeight:  req.GrossWeight,
		EmptyGoods:   req.EmptyGoods,
		BatchNumbers: req.BatchNumbers,
		Remark:       req.Remark,
	})
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "complete position failed")
		return
	}
	response.Success(c, position)
}

// CompletePickingRequest finishes the picking axis.
type CompletePickingRequest struct {
	TotalPallets int `json:"total_pallets"`
}

// CompletePicking finishes the picking axis.
func (h *Handler) CompletePicking(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req CompletePickingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid payload", err)
		return
	}

	order, err := h.WorkflowService.CompletePicking(actor, orderID, req.TotalPallets)
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "complete picking failed")
		return
	}
	response.Success(c, order)
}

// ClaimControl claims the control axis for the caller.
func (h *Handler) ClaimControl(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	order, err := h.WorkflowService.ClaimControl(actor, orderID)
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "claim control failed")
		return
	}
	response.Success(c, order)
}

// CompleteControl finishes the control axis and closes the order.
func (h *Handler) CompleteControl(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	order, err := h.WorkflowService.CompleteControl(actor, orderID)
	if err != nil {
		respondWithMappedError(c, err, workflowErrorRules, response.CodeInternal, "complete control failed")
		return
	}
	response.Success(c, order)
}
