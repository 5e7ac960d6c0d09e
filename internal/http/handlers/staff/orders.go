package staff

import (
	"strconv"

	handlershared "github.com/fleischwerk-next/internal/http/handlers/shared"
	"github.com/fleischwerk-next/internal/http/response"
	"github.com/fleischwerk-next/internal/models"
	"github.com/fleischwerk-next/internal/service"

	"github.com/gin-gonic/gin"
)

// ListOrders lists orders visible to the caller's role.
func (h *Handler) ListOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	var customerID uint
	if raw := c.Query("customer_id"); raw != "" {
		if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
			customerID = uint(parsed)
		}
	}

	orders, total, err := h.OrderQueryService.ListForStaff(actor, service.ListOrdersInput{
		Page:          page,
		PageSize:      pageSize,
		Status:        c.Query("status"),
		PickingStatus: c.Query("picking_status"),
		ControlStatus: c.Query("control_status"),
		CustomerID:    customerID,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "list orders failed")
		return
	}

	response.SuccessWithPage(c, orders, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	})
}

// GetOrder fetches one order.
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderQueryService.GetForStaff(actor, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "load order failed")
		return
	}
	response.Success(c, order)
}

// ListOrderEvents returns the status feed of an order.
func (h *Handler) ListOrderEvents(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	events, err := h.OrderQueryService.ListEvents(actor, orderID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "load events failed")
		return
	}
	response.Success(c, events)
}

// CreateOrderRequest is the order intake payload.
type CreateOrderRequest struct {
	OrderNo      string                  `json:"order_no" binding:"required"`
	CustomerID   uint                    `json:"customer_id" binding:"required"`
	DeliveryDate *string                 `json:"delivery_date"`
	Remarks      string                  `json:"remarks"`
	Positions    []CreatePositionRequest `json:"positions" binding:"required"`
}

// CreatePositionRequest is one intake line.
type CreatePositionRequest struct {
	ArticleID        uint          `json:"article_id" binding:"required"`
	OrderedQty       models.Weight `json:"ordered_qty"`
	Unit             string        `json:"unit" binding:"required"`
	Remark           string        `json:"remark"`
	NeedsDisassembly bool          `json:"needs_disassembly"`
	NeedsVacuum      bool          `json:"needs_vacuum"`
}

func (r CreatePositionRequest) toInput() service.CreatePositionInput {
	return service.CreatePositionInput{
		ArticleID:        r.ArticleID,
		OrderedQty:       r.OrderedQty,
		Unit:             r.Unit,
		Remark:           r.Remark,
		NeedsDisassembly: r.NeedsDisassembly,
		NeedsVacuum:      r.NeedsVacuum,
	}
}

// CreateOrder creates an order with priced positions. Admin only; order
// intake belongs to the office, not the floor.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid order payload", err)
		return
	}

	positions := make([]service.CreatePositionInput, 0, len(req.Positions))
	for _, line := range req.Positions {
		positions = append(positions, line.toInput())
	}

	order, err := h.OrderService.CreateOrder(service.CreateOrderInput{
		OrderNo:      req.OrderNo,
		CustomerID:   req.CustomerID,
		DeliveryDate: req.DeliveryDate,
		Remarks:      req.Remarks,
		Positions:    positions,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "create order failed")
		return
	}
	response.Success(c, order)
}

// AddPosition appends a position before picking starts.
func (h *Handler) AddPosition(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}

	var req CreatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid position payload", err)
		return
	}

	order, err := h.OrderService.AddPosition(orderID, req.toInput())
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "add position failed")
		return
	}
	response.Success(c, order)
}

// UpdatePositionRequest edits an intake line.
type UpdatePositionRequest struct {
	OrderedQty models.Weight `json:"ordered_qty"`
	Unit       string        `json:"unit" binding:"required"`
	Remark     *string       `json:"remark"`
}

// UpdatePosition edits an intake line before picking starts.
func (h *Handler) UpdatePosition(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	positionID, ok := paramUint(c, "pos_id")
	if !ok {
		return
	}

	var req UpdatePositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid position payload", err)
		return
	}

	order, err := h.OrderService.UpdatePosition(orderID, positionID, service.UpdatePositionInput{
		OrderedQty: req.OrderedQty,
		Unit:       req.Unit,
		Remark:     req.Remark,
	})
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "update position failed")
		return
	}
	response.Success(c, order)
}

// DeletePosition removes an intake line before picking starts.
func (h *Handler) DeletePosition(c *gin.Context) {
	orderID, ok := paramUint(c, "id")
	if !ok {
		return
	}
	positionID, ok := paramUint(c, "pos_id")
	if !ok {
		return
	}

	order, err := h.OrderService.DeletePosition(orderID, positionID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "delete position failed")
		return
	}
	response.Success(c, order)
}
